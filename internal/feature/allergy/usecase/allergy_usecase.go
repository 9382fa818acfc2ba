// Package usecase はallergyフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"health_backend/internal/feature/allergy/domain/entity"
)

// ErrAllergyNotFound は対象ユーザーの配下にレコードが存在しない場合に返されます。
// 他ユーザーのレコードIDを指定した場合も同じエラーになります（存在と区別不可）。
var ErrAllergyNotFound = errors.New("allergy not found")

// AllergyRepository はアレルギーレコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AllergyRepository interface {
	Create(ctx context.Context, a *entity.Allergy) error
	// ListByUser returns the user's allergies, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Allergy, error)
	// FindByID scopes the lookup to the owning user; a foreign ID yields
	// ErrAllergyNotFound.
	FindByID(ctx context.Context, userID, allergyID string) (*entity.Allergy, error)
	Delete(ctx context.Context, userID, allergyID string) error
}

// allergyUsecase はアレルギーレコードのビジネスロジックを実装します。
type allergyUsecase struct {
	allergies AllergyRepository
}

// NewAllergyUsecase はallergyUsecaseの新しいインスタンスを生成します。
func NewAllergyUsecase(allergies AllergyRepository) *allergyUsecase {
	return &allergyUsecase{allergies: allergies}
}

// Create は本人のアレルギーレコードを追加します。
func (u *allergyUsecase) Create(ctx context.Context, userID, allergyName string) (*entity.Allergy, error) {
	if allergyName == "" {
		return nil, errors.New("allergy name is required")
	}

	a := &entity.Allergy{
		UserID:      userID,
		AllergyName: allergyName,
	}
	if err := u.allergies.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create allergy: %w", err)
	}
	return a, nil
}

// List は本人のアレルギーレコード一覧を返します。
func (u *allergyUsecase) List(ctx context.Context, userID string) ([]entity.Allergy, error) {
	return u.allergies.ListByUser(ctx, userID)
}

// Get は本人のアレルギーレコードを1件取得します。
func (u *allergyUsecase) Get(ctx context.Context, userID, allergyID string) (*entity.Allergy, error) {
	return u.allergies.FindByID(ctx, userID, allergyID)
}

// Delete は本人のアレルギーレコードを削除します。
func (u *allergyUsecase) Delete(ctx context.Context, userID, allergyID string) error {
	return u.allergies.Delete(ctx, userID, allergyID)
}

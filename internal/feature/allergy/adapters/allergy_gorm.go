// Package adapters はallergyフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"health_backend/internal/feature/allergy/domain/entity"
	"health_backend/internal/feature/allergy/usecase"
)

// allergyGorm はAllergyRepositoryインターフェースのGORM実装です。
type allergyGorm struct {
	db *gorm.DB
}

// allergyGormがAllergyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.AllergyRepository = (*allergyGorm)(nil)

// NewAllergyGorm は指定されたgorm.DB接続でallergyGormの新しいインスタンスを生成します。
func NewAllergyGorm(db *gorm.DB) *allergyGorm {
	return &allergyGorm{db: db}
}

// Create はアレルギーレコードをデータベースに追加します。
func (r *allergyGorm) Create(ctx context.Context, a *entity.Allergy) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListByUser は指定ユーザーのアレルギーを新しい順で返します。
func (r *allergyGorm) ListByUser(ctx context.Context, userID string) ([]entity.Allergy, error) {
	var out []entity.Allergy
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID は所有者スコープでレコードを1件取得します。
func (r *allergyGorm) FindByID(ctx context.Context, userID, allergyID string) (*entity.Allergy, error) {
	var a entity.Allergy
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND allergy_id = ?", userID, allergyID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAllergyNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete は所有者スコープでレコードを削除します。
func (r *allergyGorm) Delete(ctx context.Context, userID, allergyID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND allergy_id = ?", userID, allergyID).
		Delete(&entity.Allergy{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrAllergyNotFound
	}
	return nil
}

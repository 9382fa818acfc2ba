// Package usecase はaccountフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"health_backend/internal/feature/auth/domain/entity"
)

// ErrUserNotFound は対象アカウントが存在しない場合に返されます。
var ErrUserNotFound = errors.New("user not found")

// UserRepository はアカウント操作の永続化層を抽象化します。
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// DeleteAccount removes the user row and every dependent health
	// record in one transaction.
	DeleteAccount(ctx context.Context, userID string) error
}

// UpdateAccountInput は本人プロフィールの部分更新入力です。nilのフィールドは変更されません。
// 電話番号・パスポートIDは本人確認書類に紐づくため、このAPIでは変更できません。
type UpdateAccountInput struct {
	FirstName     *string
	LastName      *string
	Gender        *string
	Nationality   *string
	MaritalStatus *string
}

// accountUsecase は本人アカウントのビジネスロジックを実装します。
type accountUsecase struct {
	users UserRepository
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(users UserRepository) *accountUsecase {
	return &accountUsecase{users: users}
}

// Get は本人のアカウント情報を取得します。
func (u *accountUsecase) Get(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// Update は指定されたフィールドのみを上書きする部分更新です。
func (u *accountUsecase) Update(ctx context.Context, userID string, in UpdateAccountInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		if *in.FirstName == "" {
			return nil, errors.New("first name cannot be empty")
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if *in.LastName == "" {
			return nil, errors.New("last name cannot be empty")
		}
		user.LastName = *in.LastName
	}
	if in.Gender != nil {
		switch *in.Gender {
		case entity.GenderMale, entity.GenderFemale, entity.GenderOther:
		default:
			return nil, fmt.Errorf("invalid gender %q", *in.Gender)
		}
		user.Gender = *in.Gender
	}
	if in.Nationality != nil {
		user.Nationality = *in.Nationality
	}
	if in.MaritalStatus != nil {
		user.MaritalStatus = *in.MaritalStatus
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user, nil
}

// Delete はアカウントと配下の医療レコードをすべて削除します。
func (u *accountUsecase) Delete(ctx context.Context, userID string) error {
	return u.users.DeleteAccount(ctx, userID)
}

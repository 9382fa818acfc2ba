package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	authentity "health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/family/usecase"
)

// userDirectoryGorm はusersテーブル上のUserDirectory実装です。
// 参照専用で、アカウントの変更は行いません。
type userDirectoryGorm struct {
	db *gorm.DB
}

// userDirectoryGormがUserDirectoryを実装していることをコンパイル時に検証します。
var _ usecase.UserDirectory = (*userDirectoryGorm)(nil)

// NewUserDirectoryGorm は指定されたgorm.DB接続でuserDirectoryGormの新しいインスタンスを生成します。
func NewUserDirectoryGorm(db *gorm.DB) *userDirectoryGorm {
	return &userDirectoryGorm{db: db}
}

// FindByCodeNumber は公開コード番号でアカウントを解決します。
func (r *userDirectoryGorm) FindByCodeNumber(ctx context.Context, codeNumber string) (*usecase.LinkedUser, error) {
	return r.findOne(ctx, "code_number = ?", codeNumber)
}

// FindByID は内部IDでアカウントを解決します。
func (r *userDirectoryGorm) FindByID(ctx context.Context, userID string) (*usecase.LinkedUser, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *userDirectoryGorm) findOne(ctx context.Context, query, arg string) (*usecase.LinkedUser, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCodeNumberNotFound
		}
		return nil, err
	}
	return &usecase.LinkedUser{
		UserID:     u.UserID,
		FullName:   u.FullName(),
		CodeNumber: u.CodeNumber,
	}, nil
}

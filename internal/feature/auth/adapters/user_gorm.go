// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"health_backend/internal/feature/auth/domain/entity"
	"health_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique-constraint violations.
const pgUniqueViolation = "23505"

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// isDuplicateKey reports whether err is a unique-constraint violation,
// covering both GORM's translated error (sqlite) and the raw pg error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Create はユーザーをデータベースに追加します。
// ユニーク制約違反はusecase.ErrDuplicateKeyとして返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindByPhoneNumber は電話番号でユーザーを取得します。
func (r *userGorm) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error) {
	return r.findOne(ctx, "phone_number = ?", phoneNumber)
}

// FindByPassportID はパスポートIDでユーザーを取得します。
func (r *userGorm) FindByPassportID(ctx context.Context, passportID string) (*entity.User, error) {
	return r.findOne(ctx, "passport_id = ?", passportID)
}

// FindByID は内部IDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

// FindByCodeNumber は公開コード番号でユーザーを取得します。
func (r *userGorm) FindByCodeNumber(ctx context.Context, codeNumber string) (*entity.User, error) {
	return r.findOne(ctx, "code_number = ?", codeNumber)
}

func (r *userGorm) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with the given ID is still present.
// Used by the request authenticator to reject tokens of deleted accounts.
func (r *userGorm) Exists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetOTP はOTPコードと有効期限を1回の更新で保存します。
// ペア不変条件（片方のみの設定禁止）はこのAPI形状で担保されます。
func (r *userGorm) SetOTP(ctx context.Context, userID, code string, expiry time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"otp_code":   code,
			"otp_expiry": expiry,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// UpdatePasswordAndClearOTP はパスワードハッシュの置き換えとOTPペアの
// クリアを単一のUPDATEで実行します。
func (r *userGorm) UpdatePasswordAndClearOTP(ctx context.Context, userID, newHash string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": newHash,
			"otp_code":      nil,
			"otp_expiry":    nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Update は編集可能なプロフィール項目を保存します。
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete はユーザー行を削除します。依存レコードの削除は呼び出し側の責務です。
func (r *userGorm) Delete(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	allergyentity "health_backend/internal/feature/allergy/domain/entity"
	authentity "health_backend/internal/feature/auth/domain/entity"
	diseaseentity "health_backend/internal/feature/disease/domain/entity"
	familyentity "health_backend/internal/feature/family/domain/entity"
	profileentity "health_backend/internal/feature/healthprofile/domain/entity"
	labentity "health_backend/internal/feature/labtest/domain/entity"
	medentity "health_backend/internal/feature/medication/domain/entity"

	"health_backend/internal/feature/account/usecase"
)

// accountGorm はUserRepositoryインターフェースのGORM実装です。
type accountGorm struct {
	db *gorm.DB
}

// accountGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*accountGorm)(nil)

// NewAccountGorm は指定されたgorm.DB接続でaccountGormの新しいインスタンスを生成します。
func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// FindByID は内部IDでアカウントを取得します。
func (r *accountGorm) FindByID(ctx context.Context, userID string) (*authentity.User, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update は編集済みのアカウントを保存します。
func (r *accountGorm) Update(ctx context.Context, u *authentity.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// DeleteAccount はアカウント行と配下の医療レコードを1トランザクションで削除します。
// 外部キー制約が無効なSQLite環境でも同じ結果になるよう、依存テーブルを明示的に
// 削除します。
func (r *accountGorm) DeleteAccount(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&authentity.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}

		dependents := []interface{}{
			&familyentity.FamilyMember{},
			&diseaseentity.ChronicDisease{},
			&allergyentity.Allergy{},
			&medentity.Medication{},
			&labentity.LabScanTest{},
			&profileentity.HealthProfile{},
		}
		for _, model := range dependents {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

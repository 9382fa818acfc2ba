// Package adapters はhealthprofileフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"health_backend/internal/feature/healthprofile/domain/entity"
	"health_backend/internal/feature/healthprofile/usecase"
)

// profileGorm はProfileRepositoryインターフェースのGORM実装です。
type profileGorm struct {
	db *gorm.DB
}

// profileGormがProfileRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileGorm は指定されたgorm.DB接続でprofileGormの新しいインスタンスを生成します。
func NewProfileGorm(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

// FindByUser はユーザーのプロフィールを取得します。
func (r *profileGorm) FindByUser(ctx context.Context, userID string) (*entity.HealthProfile, error) {
	var p entity.HealthProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert はuser_id単位で行を作成または上書きします。既存行のProfileIDと
// CreatedAtは維持されます。
func (r *profileGorm) Upsert(ctx context.Context, p *entity.HealthProfile) error {
	var existing entity.HealthProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(p).Error
		}
		return err
	}

	p.ProfileID = existing.ProfileID
	p.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(p).Error
}

// Package adapters はfamilyフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"health_backend/internal/feature/family/domain/entity"
	"health_backend/internal/feature/family/usecase"
)

// familyGorm はFamilyRepositoryインターフェースのGORM実装です。
type familyGorm struct {
	db *gorm.DB
}

// familyGormがFamilyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.FamilyRepository = (*familyGorm)(nil)

// NewFamilyGorm は指定されたgorm.DB接続でfamilyGormの新しいインスタンスを生成します。
func NewFamilyGorm(db *gorm.DB) *familyGorm {
	return &familyGorm{db: db}
}

// Create は家族リンクをデータベースに追加します。
func (r *familyGorm) Create(ctx context.Context, f *entity.FamilyMember) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// ListByUser は指定ユーザーの家族リンクを新しい順で返します。
func (r *familyGorm) ListByUser(ctx context.Context, userID string) ([]entity.FamilyMember, error) {
	var out []entity.FamilyMember
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID は所有者スコープでリンクを1件取得します。
func (r *familyGorm) FindByID(ctx context.Context, userID, familyID string) (*entity.FamilyMember, error) {
	var f entity.FamilyMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND family_id = ?", userID, familyID).
		First(&f).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFamilyMemberNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Delete は所有者スコープでリンクを削除します。
func (r *familyGorm) Delete(ctx context.Context, userID, familyID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND family_id = ?", userID, familyID).
		Delete(&entity.FamilyMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrFamilyMemberNotFound
	}
	return nil
}

// LinkExists は同一アカウントへの二重リンクの有無を返します。
func (r *familyGorm) LinkExists(ctx context.Context, userID, linkedUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.FamilyMember{}).
		Where("user_id = ? AND linked_user_id = ?", userID, linkedUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

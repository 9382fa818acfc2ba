// Package adapters はmedicationフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"health_backend/internal/feature/medication/domain/entity"
	"health_backend/internal/feature/medication/usecase"
)

// medicationGorm はMedicationRepositoryインターフェースのGORM実装です。
type medicationGorm struct {
	db *gorm.DB
}

// medicationGormがMedicationRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MedicationRepository = (*medicationGorm)(nil)

// NewMedicationGorm は指定されたgorm.DB接続でmedicationGormの新しいインスタンスを生成します。
func NewMedicationGorm(db *gorm.DB) *medicationGorm {
	return &medicationGorm{db: db}
}

// Create は服薬レコードをデータベースに追加します。
func (r *medicationGorm) Create(ctx context.Context, m *entity.Medication) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByUser は指定ユーザーの服薬レコードを新しい順で返します。
func (r *medicationGorm) ListByUser(ctx context.Context, userID string) ([]entity.Medication, error) {
	var out []entity.Medication
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
func (r *medicationGorm) FindByID(ctx context.Context, userID, medID string) (*entity.Medication, error) {
	var m entity.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND med_id = ?", userID, medID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMedicationNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Update は服薬レコード全体を保存します。部分更新の解決はusecase側の責務です。
func (r *medicationGorm) Update(ctx context.Context, m *entity.Medication) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete は所有者スコープでレコードを削除します。
func (r *medicationGorm) Delete(ctx context.Context, userID, medID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND med_id = ?", userID, medID).
		Delete(&entity.Medication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrMedicationNotFound
	}
	return nil
}

// Package adapters はdiseaseフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"health_backend/internal/feature/disease/domain/entity"
	"health_backend/internal/feature/disease/usecase"
)

// diseaseGorm はDiseaseRepositoryインターフェースのGORM実装です。
type diseaseGorm struct {
	db *gorm.DB
}

// diseaseGormがDiseaseRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.DiseaseRepository = (*diseaseGorm)(nil)

// NewDiseaseGorm は指定されたgorm.DB接続でdiseaseGormの新しいインスタンスを生成します。
func NewDiseaseGorm(db *gorm.DB) *diseaseGorm {
	return &diseaseGorm{db: db}
}

// Create は疾患レコードをデータベースに追加します。暗号化はusecase側の責務です。
func (r *diseaseGorm) Create(ctx context.Context, d *entity.ChronicDisease) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// ListByUser は指定ユーザーの疾患レコードを新しい順で返します。
func (r *diseaseGorm) ListByUser(ctx context.Context, userID string) ([]entity.ChronicDisease, error) {
	var out []entity.ChronicDisease
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
func (r *diseaseGorm) FindByID(ctx context.Context, userID, diseaseID string) (*entity.ChronicDisease, error) {
	var d entity.ChronicDisease
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND disease_id = ?", userID, diseaseID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDiseaseNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Delete は所有者スコープでレコードを削除します。
func (r *diseaseGorm) Delete(ctx context.Context, userID, diseaseID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND disease_id = ?", userID, diseaseID).
		Delete(&entity.ChronicDisease{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrDiseaseNotFound
	}
	return nil
}

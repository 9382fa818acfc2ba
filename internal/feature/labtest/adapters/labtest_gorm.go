// Package adapters はlabtestフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"health_backend/internal/feature/labtest/domain/entity"
	"health_backend/internal/feature/labtest/usecase"
)

// labtestGorm はTestRepositoryインターフェースのGORM実装です。
type labtestGorm struct {
	db *gorm.DB
}

// labtestGormがTestRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TestRepository = (*labtestGorm)(nil)

// NewLabTestGorm は指定されたgorm.DB接続でlabtestGormの新しいインスタンスを生成します。
func NewLabTestGorm(db *gorm.DB) *labtestGorm {
	return &labtestGorm{db: db}
}

// Create は検査レコードをデータベースに追加します。
func (r *labtestGorm) Create(ctx context.Context, l *entity.LabScanTest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// ListByUser は指定ユーザーの検査レコードを新しい順で返します。
// testTypeが空でなければその種別のみに絞り込みます。
func (r *labtestGorm) ListByUser(ctx context.Context, userID, testType string) ([]entity.LabScanTest, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if testType != "" {
		q = q.Where("test_type = ?", testType)
	}

	var out []entity.LabScanTest
	if err := q.Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID は所有者スコープでレコードを1件取得します。
func (r *labtestGorm) FindByID(ctx context.Context, userID, testID string) (*entity.LabScanTest, error) {
	var l entity.LabScanTest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTestNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Delete は所有者スコープでレコードを削除します。
func (r *labtestGorm) Delete(ctx context.Context, userID, testID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Delete(&entity.LabScanTest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTestNotFound
	}
	return nil
}

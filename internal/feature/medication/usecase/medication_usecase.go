// Package usecase はmedicationフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health_backend/internal/feature/medication/domain/entity"
)

// ErrMedicationNotFound は対象ユーザーの配下にレコードが存在しない場合に返されます。
var ErrMedicationNotFound = errors.New("medication not found")

// MedicationRepository は服薬レコードの永続化層を抽象化します。
type MedicationRepository interface {
	Create(ctx context.Context, m *entity.Medication) error
	ListByUser(ctx context.Context, userID string) ([]entity.Medication, error)
	FindByID(ctx context.Context, userID, medID string) (*entity.Medication, error)
	Update(ctx context.Context, m *entity.Medication) error
	Delete(ctx context.Context, userID, medID string) error
}

// CreateMedicationInput は服薬レコード登録の入力です。
type CreateMedicationInput struct {
	MedName     string
	Dose        string
	Frequency   string
	DurationEnd *time.Time
}

// UpdateMedicationInput は部分更新の入力です。nilのフィールドは変更されません。
type UpdateMedicationInput struct {
	MedName     *string
	Dose        *string
	Frequency   *string
	DurationEnd *time.Time
}

// medicationUsecase は服薬レコードのビジネスロジックを実装します。
type medicationUsecase struct {
	meds MedicationRepository
}

// NewMedicationUsecase はmedicationUsecaseの新しいインスタンスを生成します。
func NewMedicationUsecase(meds MedicationRepository) *medicationUsecase {
	return &medicationUsecase{meds: meds}
}

// Create は本人の服薬レコードを追加します。
func (u *medicationUsecase) Create(ctx context.Context, userID string, in CreateMedicationInput) (*entity.Medication, error) {
	if in.MedName == "" {
		return nil, errors.New("medication name is required")
	}

	m := &entity.Medication{
		UserID:      userID,
		MedName:     in.MedName,
		Dose:        in.Dose,
		Frequency:   in.Frequency,
		DurationEnd: in.DurationEnd,
	}
	if err := u.meds.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return m, nil
}

// List は本人の服薬レコード一覧を返します。
func (u *medicationUsecase) List(ctx context.Context, userID string) ([]entity.Medication, error) {
	return u.meds.ListByUser(ctx, userID)
}

// Get は本人の服薬レコードを1件取得します。
func (u *medicationUsecase) Get(ctx context.Context, userID, medID string) (*entity.Medication, error) {
	return u.meds.FindByID(ctx, userID, medID)
}

// Update は指定されたフィールドのみを上書きする部分更新です。
func (u *medicationUsecase) Update(ctx context.Context, userID, medID string, in UpdateMedicationInput) (*entity.Medication, error) {
	m, err := u.meds.FindByID(ctx, userID, medID)
	if err != nil {
		return nil, err
	}

	if in.MedName != nil {
		if *in.MedName == "" {
			return nil, errors.New("medication name cannot be empty")
		}
		m.MedName = *in.MedName
	}
	if in.Dose != nil {
		m.Dose = *in.Dose
	}
	if in.Frequency != nil {
		m.Frequency = *in.Frequency
	}
	if in.DurationEnd != nil {
		m.DurationEnd = in.DurationEnd
	}

	if err := u.meds.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return m, nil
}

// Delete は本人の服薬レコードを削除します。
func (u *medicationUsecase) Delete(ctx context.Context, userID, medID string) error {
	return u.meds.Delete(ctx, userID, medID)
}

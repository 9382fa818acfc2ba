package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health_backend/internal/feature/medication/domain/entity"
)

// mockMedicationRepository is a mock implementation of the MedicationRepository interface.
type mockMedicationRepository struct {
	CreateFunc     func(ctx context.Context, m *entity.Medication) error
	ListByUserFunc func(ctx context.Context, userID string) ([]entity.Medication, error)
	FindByIDFunc   func(ctx context.Context, userID, medID string) (*entity.Medication, error)
	UpdateFunc     func(ctx context.Context, m *entity.Medication) error
	DeleteFunc     func(ctx context.Context, userID, medID string) error
}

func (m *mockMedicationRepository) Create(ctx context.Context, med *entity.Medication) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, med)
	}
	return nil
}

func (m *mockMedicationRepository) ListByUser(ctx context.Context, userID string) ([]entity.Medication, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMedicationRepository) FindByID(ctx context.Context, userID, medID string) (*entity.Medication, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, medID)
	}
	return nil, ErrMedicationNotFound
}

func (m *mockMedicationRepository) Update(ctx context.Context, med *entity.Medication) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, med)
	}
	return nil
}

func (m *mockMedicationRepository) Delete(ctx context.Context, userID, medID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, medID)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestMedicationUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var created *entity.Medication
		uc := NewMedicationUsecase(&mockMedicationRepository{
			CreateFunc: func(ctx context.Context, m *entity.Medication) error {
				created = m
				return nil
			},
		})

		m, err := uc.Create(ctx, "u-1", CreateMedicationInput{
			MedName:   "Metformin",
			Dose:      "500mg",
			Frequency: "twice daily",
		})
		require.NoError(t, err)
		assert.Equal(t, created, m)
		assert.Equal(t, "u-1", m.UserID)
		assert.Nil(t, m.DurationEnd)
	})

	t.Run("empty name rejected before the repository is hit", func(t *testing.T) {
		uc := NewMedicationUsecase(&mockMedicationRepository{
			CreateFunc: func(ctx context.Context, m *entity.Medication) error {
				t.Fatal("repository must not be called")
				return nil
			},
		})

		_, err := uc.Create(ctx, "u-1", CreateMedicationInput{MedName: ""})
		assert.Error(t, err)
	})
}

func TestMedicationUsecase_Update(t *testing.T) {
	ctx := context.Background()

	stored := func() *entity.Medication {
		end := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
		return &entity.Medication{
			MedID:       "m-1",
			UserID:      "u-1",
			MedName:     "Metformin",
			Dose:        "500mg",
			Frequency:   "twice daily",
			DurationEnd: &end,
		}
	}

	newUC := func(saved **entity.Medication) *medicationUsecase {
		return NewMedicationUsecase(&mockMedicationRepository{
			FindByIDFunc: func(ctx context.Context, userID, medID string) (*entity.Medication, error) {
				if userID == "u-1" && medID == "m-1" {
					return stored(), nil
				}
				return nil, ErrMedicationNotFound
			},
			UpdateFunc: func(ctx context.Context, m *entity.Medication) error {
				*saved = m
				return nil
			},
		})
	}

	t.Run("only provided fields change", func(t *testing.T) {
		var saved *entity.Medication
		uc := newUC(&saved)

		m, err := uc.Update(ctx, "u-1", "m-1", UpdateMedicationInput{
			Dose: strPtr("1000mg"),
		})
		require.NoError(t, err)

		assert.Equal(t, "1000mg", m.Dose)
		assert.Equal(t, "Metformin", m.MedName, "omitted field must keep its value")
		assert.Equal(t, "twice daily", m.Frequency, "omitted field must keep its value")
		require.NotNil(t, m.DurationEnd)
		assert.Equal(t, saved, m)
	})

	t.Run("explicit empty string clears an optional field", func(t *testing.T) {
		var saved *entity.Medication
		uc := newUC(&saved)

		m, err := uc.Update(ctx, "u-1", "m-1", UpdateMedicationInput{
			Frequency: strPtr(""),
		})
		require.NoError(t, err)
		assert.Empty(t, m.Frequency)
	})

	t.Run("name cannot be cleared", func(t *testing.T) {
		var saved *entity.Medication
		uc := newUC(&saved)

		_, err := uc.Update(ctx, "u-1", "m-1", UpdateMedicationInput{
			MedName: strPtr(""),
		})
		assert.Error(t, err)
		assert.Nil(t, saved, "nothing must be written")
	})

	t.Run("unknown record", func(t *testing.T) {
		var saved *entity.Medication
		uc := newUC(&saved)

		_, err := uc.Update(ctx, "u-1", "m-404", UpdateMedicationInput{Dose: strPtr("1mg")})
		assert.ErrorIs(t, err, ErrMedicationNotFound)
	})

	t.Run("foreign record reads as not found", func(t *testing.T) {
		var saved *entity.Medication
		uc := newUC(&saved)

		_, err := uc.Update(ctx, "u-2", "m-1", UpdateMedicationInput{Dose: strPtr("1mg")})
		assert.ErrorIs(t, err, ErrMedicationNotFound)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		uc := NewMedicationUsecase(&mockMedicationRepository{
			FindByIDFunc: func(ctx context.Context, userID, medID string) (*entity.Medication, error) {
				return stored(), nil
			},
			UpdateFunc: func(ctx context.Context, m *entity.Medication) error {
				return errors.New("db down")
			},
		})

		_, err := uc.Update(ctx, "u-1", "m-1", UpdateMedicationInput{Dose: strPtr("1mg")})
		assert.Error(t, err)
	})
}

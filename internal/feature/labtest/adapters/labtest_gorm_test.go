package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"health_backend/internal/feature/labtest/domain/entity"
	"health_backend/internal/feature/labtest/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.LabScanTest{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seed(t *testing.T, db *gorm.DB, userID, testType string, createdAt time.Time) *entity.LabScanTest {
	t.Helper()
	l := &entity.LabScanTest{UserID: userID, TestType: testType}
	require.NoError(t, db.Create(l).Error)
	// Backdate after insert so ordering is deterministic.
	require.NoError(t, db.Model(l).Update("created_at", createdAt).Error)
	l.CreatedAt = createdAt
	return l
}

func TestLabTestGorm_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLabTestGorm(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest := seed(t, db, "u-1", entity.TypeLab, base)
	middle := seed(t, db, "u-1", entity.TypeScan, base.Add(time.Hour))
	newest := seed(t, db, "u-1", entity.TypeLab, base.Add(2*time.Hour))
	seed(t, db, "u-2", entity.TypeLab, base.Add(3*time.Hour))

	t.Run("newest first, owner scoped", func(t *testing.T) {
		out, err := repo.ListByUser(ctx, "u-1", "")
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, newest.TestID, out[0].TestID)
		assert.Equal(t, middle.TestID, out[1].TestID)
		assert.Equal(t, oldest.TestID, out[2].TestID)
	})

	t.Run("filter by type", func(t *testing.T) {
		out, err := repo.ListByUser(ctx, "u-1", entity.TypeScan)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, middle.TestID, out[0].TestID)
	})

	t.Run("empty result for unknown user", func(t *testing.T) {
		out, err := repo.ListByUser(ctx, "u-404", "")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestLabTestGorm_FindAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLabTestGorm(db)
	ctx := context.Background()

	l := seed(t, db, "u-1", entity.TypeLab, time.Now().UTC())

	t.Run("foreign user sees not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "u-2", l.TestID)
		assert.ErrorIs(t, err, usecase.ErrTestNotFound)

		err = repo.Delete(ctx, "u-2", l.TestID)
		assert.ErrorIs(t, err, usecase.ErrTestNotFound)
	})

	t.Run("owner reads and deletes", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "u-1", l.TestID)
		require.NoError(t, err)
		assert.Equal(t, entity.TypeLab, found.TestType)

		require.NoError(t, repo.Delete(ctx, "u-1", l.TestID))
		_, err = repo.FindByID(ctx, "u-1", l.TestID)
		assert.ErrorIs(t, err, usecase.ErrTestNotFound)
	})
}

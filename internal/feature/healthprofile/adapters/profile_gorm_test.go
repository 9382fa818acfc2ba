package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"health_backend/internal/feature/healthprofile/domain/entity"
	"health_backend/internal/feature/healthprofile/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.HealthProfile{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestProfileGorm_FindByUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileGorm(db)

	_, err := repo.FindByUser(context.Background(), "u-1")
	assert.ErrorIs(t, err, usecase.ErrProfileNotFound)
}

func TestProfileGorm_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileGorm(db)
	ctx := context.Background()

	t.Run("first write creates the row", func(t *testing.T) {
		p := &entity.HealthProfile{
			UserID:       "u-1",
			HealthStatus: entity.StatusHealthy,
			SleepPattern: "7h",
		}
		require.NoError(t, repo.Upsert(ctx, p))
		assert.NotEmpty(t, p.ProfileID)

		found, err := repo.FindByUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusHealthy, found.HealthStatus)
	})

	t.Run("second write overwrites, keeping identity", func(t *testing.T) {
		before, err := repo.FindByUser(ctx, "u-1")
		require.NoError(t, err)

		p := &entity.HealthProfile{
			UserID:        "u-1",
			HealthStatus:  entity.StatusCheckup,
			ActivityLevel: "sedentary",
		}
		require.NoError(t, repo.Upsert(ctx, p))

		after, err := repo.FindByUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, before.ProfileID, after.ProfileID, "upsert must not mint a new row")
		assert.Equal(t, entity.StatusCheckup, after.HealthStatus)
		assert.Equal(t, "sedentary", after.ActivityLevel)
		assert.Empty(t, after.SleepPattern, "full overwrite clears omitted fields")

		var count int64
		require.NoError(t, db.Model(&entity.HealthProfile{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("profiles are per user", func(t *testing.T) {
		p := &entity.HealthProfile{UserID: "u-2", HealthStatus: entity.StatusCritical}
		require.NoError(t, repo.Upsert(ctx, p))

		first, err := repo.FindByUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCheckup, first.HealthStatus)
	})
}

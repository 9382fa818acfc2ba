// Package usecase はhealthprofileフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"health_backend/internal/feature/healthprofile/domain/entity"
)

// ErrProfileNotFound はプロフィールが未作成の場合に返されます。
var ErrProfileNotFound = errors.New("health profile not found")

// ProfileRepository はライフスタイルプロフィールの永続化層を抽象化します。
type ProfileRepository interface {
	// FindByUser returns the user's profile or ErrProfileNotFound.
	FindByUser(ctx context.Context, userID string) (*entity.HealthProfile, error)
	// Upsert creates the row on first write and overwrites it afterwards,
	// keyed by the unique user_id.
	Upsert(ctx context.Context, p *entity.HealthProfile) error
}

// UpsertProfileInput はプロフィール保存の入力です。すべてのフィールドで上書きします。
type UpsertProfileInput struct {
	HealthStatus  string
	ActivityLevel string
	DietaryNotes  string
	SleepPattern  string
}

// profileUsecase はライフスタイルプロフィールのビジネスロジックを実装します。
type profileUsecase struct {
	profiles ProfileRepository
}

// NewProfileUsecase はprofileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(profiles ProfileRepository) *profileUsecase {
	return &profileUsecase{profiles: profiles}
}

// Get は本人のプロフィールを取得します。未作成なら ErrProfileNotFound。
func (u *profileUsecase) Get(ctx context.Context, userID string) (*entity.HealthProfile, error) {
	return u.profiles.FindByUser(ctx, userID)
}

// Upsert はプロフィールを作成または全項目上書きします。
func (u *profileUsecase) Upsert(ctx context.Context, userID string, in UpsertProfileInput) (*entity.HealthProfile, error) {
	switch in.HealthStatus {
	case "", entity.StatusHealthy, entity.StatusCheckup, entity.StatusCritical:
	default:
		return nil, fmt.Errorf("invalid health status %q", in.HealthStatus)
	}

	p := &entity.HealthProfile{
		UserID:        userID,
		HealthStatus:  in.HealthStatus,
		ActivityLevel: in.ActivityLevel,
		DietaryNotes:  in.DietaryNotes,
		SleepPattern:  in.SleepPattern,
	}
	if err := u.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save health profile: %w", err)
	}
	return p, nil
}

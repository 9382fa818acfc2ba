// Package entity defines the domain entities for the healthprofile feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthStatus values accepted on the lifestyle profile.
const (
	StatusHealthy  = "Healthy"
	StatusCheckup  = "Checkup"
	StatusCritical = "Critical"
)

// HealthProfile is the account holder's lifestyle summary. At most one
// row exists per user; writes go through an upsert.
type HealthProfile struct {
	ProfileID string `gorm:"primaryKey;size:36" json:"profile_id"`
	UserID    string `gorm:"size:36;uniqueIndex;not null" json:"user_id"`

	HealthStatus  string `gorm:"size:50" json:"health_status,omitempty"`
	ActivityLevel string `gorm:"size:100" json:"activity_level,omitempty"`
	DietaryNotes  string `gorm:"size:1000" json:"dietary_notes,omitempty"`
	SleepPattern  string `gorm:"size:255" json:"sleep_pattern,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (HealthProfile) TableName() string { return "health_profiles" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (p *HealthProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ProfileID == "" {
		p.ProfileID = uuid.NewString()
	}
	return nil
}

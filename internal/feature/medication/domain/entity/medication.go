// Package entity defines the domain entities for the medication feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication is a drug the account holder currently takes or has taken.
type Medication struct {
	MedID   string `gorm:"primaryKey;size:36" json:"med_id"`
	UserID  string `gorm:"size:36;index;not null" json:"user_id"`
	MedName string `gorm:"size:255;not null" json:"med_name"`

	Dose      string `gorm:"size:100" json:"dose,omitempty"`
	Frequency string `gorm:"size:100" json:"frequency,omitempty"`

	// DurationEnd marks when the course ends; nil for open-ended medication.
	DurationEnd *time.Time `json:"duration_end,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (Medication) TableName() string { return "medications" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.MedID == "" {
		m.MedID = uuid.NewString()
	}
	return nil
}

// Package entity defines the domain entities for the allergy feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allergy is a substance the account holder reacts to.
type Allergy struct {
	AllergyID   string `gorm:"primaryKey;size:36" json:"allergy_id"`
	UserID      string `gorm:"size:36;index;not null" json:"user_id"`
	AllergyName string `gorm:"size:255;not null" json:"allergy_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (Allergy) TableName() string { return "allergies" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (a *Allergy) BeforeCreate(tx *gorm.DB) error {
	if a.AllergyID == "" {
		a.AllergyID = uuid.NewString()
	}
	return nil
}

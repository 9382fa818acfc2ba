// Package entity defines the domain entities for the disease feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChronicDisease stores a long-term diagnosis. The disease name is kept
// encrypted at rest; NameEncrypted holds the opaque cipher token and is
// never serialized to clients.
type ChronicDisease struct {
	DiseaseID     string `gorm:"primaryKey;size:36" json:"disease_id"`
	UserID        string `gorm:"size:36;index;not null" json:"user_id"`
	NameEncrypted string `gorm:"size:1024;not null" json:"-"`

	DiagnosisDate *time.Time `json:"diagnosis_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (ChronicDisease) TableName() string { return "chronic_diseases" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (d *ChronicDisease) BeforeCreate(tx *gorm.DB) error {
	if d.DiseaseID == "" {
		d.DiseaseID = uuid.NewString()
	}
	return nil
}

// DiseaseView is the decrypted, client-facing shape of a record.
type DiseaseView struct {
	DiseaseID     string     `json:"disease_id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	DiagnosisDate *time.Time `json:"diagnosis_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

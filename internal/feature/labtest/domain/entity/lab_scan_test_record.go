// Package entity defines the domain entities for the labtest feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestType values accepted on a record.
const (
	TypeLab  = "Lab"
	TypeScan = "Scan"
)

// LabScanTest is a lab result or imaging scan attached to the account.
type LabScanTest struct {
	TestID   string `gorm:"primaryKey;size:36" json:"test_id"`
	UserID   string `gorm:"size:36;index;not null" json:"user_id"`
	TestType string `gorm:"size:20;not null" json:"test_type"`
	ImageURL string `gorm:"size:1024" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (LabScanTest) TableName() string { return "lab_scan_tests" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (l *LabScanTest) BeforeCreate(tx *gorm.DB) error {
	if l.TestID == "" {
		l.TestID = uuid.NewString()
	}
	return nil
}

// ScanAnalysis is the outcome of running an uploaded report image through
// OCR and the language model.
type ScanAnalysis struct {
	ExtractedText string `json:"extracted_text"`
	Summary       string `json:"summary"`
}

// Package entity defines the domain entities for the family feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FamilyMember links the owning user to another registered account. The
// link is established through the other account's public code number,
// never its internal user ID.
type FamilyMember struct {
	FamilyID string `gorm:"primaryKey;size:36" json:"family_id"`
	UserID   string `gorm:"size:36;index;not null" json:"user_id"`

	// Name is a snapshot of the linked user's name at link time. Reads
	// prefer the linked account's current name; the snapshot remains as
	// a fallback once that account is gone.
	Name     string `gorm:"size:255;not null" json:"name"`
	Relation string `gorm:"size:100;not null" json:"relation"`

	LinkedUserID string `gorm:"size:36;index;not null" json:"linked_user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (FamilyMember) TableName() string { return "family_members" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (f *FamilyMember) BeforeCreate(tx *gorm.DB) error {
	if f.FamilyID == "" {
		f.FamilyID = uuid.NewString()
	}
	return nil
}

// FamilyMemberView is the client-facing shape of a link, carrying the
// linked account's current display name and public code number.
type FamilyMemberView struct {
	FamilyID   string    `json:"family_id"`
	Relation   string    `json:"relation"`
	Name       string    `json:"name"`
	CodeNumber string    `json:"code_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

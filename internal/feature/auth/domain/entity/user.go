// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted at registration.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// User represents a registered account and its credential state.
//
// OTPCode and OTPExpiry are a pair: both set while a password reset is
// pending, both nil otherwise. No code path may persist one without the
// other.
type User struct {
	// UserID is the opaque internal identifier, generated at registration.
	UserID string `gorm:"primaryKey;size:36" json:"user_id"`

	// CodeNumber is the public, human-shareable identifier (USR-XXXXXXXX)
	// used to link family members. Distinct from UserID.
	CodeNumber string `gorm:"uniqueIndex;size:50;not null" json:"code_number"`

	FirstName     string `gorm:"size:100;not null" json:"first_name"`
	LastName      string `gorm:"size:100;not null" json:"last_name"`
	PassportID    string `gorm:"uniqueIndex;size:50;not null" json:"passport_id"`
	Gender        string `gorm:"size:20;not null" json:"gender"`
	Nationality   string `gorm:"size:100" json:"nationality,omitempty"`
	MaritalStatus string `gorm:"size:50" json:"marital_status,omitempty"`

	// PhoneNumber is the unique natural key used as the login identifier.
	PhoneNumber string `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`

	// PasswordHash never stores or transmits the password in clear form.
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	OTPCode   *string    `gorm:"size:10" json:"-"`
	OTPExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides GORM's default pluralization.
func (User) TableName() string { return "users" }

// BeforeCreate assigns a fresh UUID when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// FullName returns the display name used in family-member listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

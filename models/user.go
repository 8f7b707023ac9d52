package models

import (
	"time"
)

// User is a profile row. The ID is a generated UUID for password accounts and
// the Firebase UID for accounts created through the external identity flow;
// it is the join key for every per-user table.
//
// The storage column is full_name but the API field is "name" — the mapping
// lives here and in handlers.CanonicalName, nowhere else.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	FullName        string    `json:"name" gorm:"column:full_name"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string    `json:"-"` // empty for external-identity accounts
	Phone           string    `json:"phone"`
	Gender          string    `json:"gender"`
	ProfileImageURL string    `json:"profile_image_url"`
	DateOfBirth     string    `json:"date_of_birth"`
	EmailVerified   bool      `json:"email_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string { return "profiles" }

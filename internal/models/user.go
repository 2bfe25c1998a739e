// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus represents the state of a user's identity verification.
type VerificationStatus string

const (
	// VerificationNone means the user never started identity verification.
	VerificationNone VerificationStatus = "NONE"
	// VerificationPending means a verification session is in flight.
	VerificationPending VerificationStatus = "PENDING"
	// VerificationVerified means the identity provider confirmed the user.
	VerificationVerified VerificationStatus = "VERIFIED"
	// VerificationRejected means the identity provider rejected the documents.
	VerificationRejected VerificationStatus = "REJECTED"
)

// User represents a traveller account.
type User struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	Email              string             `gorm:"unique;not null" json:"email"`
	Password           string             `gorm:"not null" json:"-"`
	Name               string             `json:"name"`
	Image              string             `json:"image"`
	Bio                string             `json:"bio"`
	DOB                *time.Time         `json:"dob"`
	Nationality        string             `json:"nationality"`
	ProfileComplete    bool               `gorm:"default:false" json:"profile_complete"`
	Points             int                `gorm:"default:0" json:"points"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'NONE'" json:"verification_status"`
	IsPublic           bool               `gorm:"default:true" json:"is_public"`

	// Preference quiz answers used when building itinerary prompts.
	TravelStyle    string `json:"travel_style"`
	FoodPreference string `json:"food_preference"`
	Pace           string `json:"pace"`
	Interests      string `json:"interests"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// UserSummary is the public slice of a user embedded in feed and friend
// responses.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Summary returns the public representation of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
	}
}

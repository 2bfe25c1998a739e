// Package models contains data structures for the application's domain models.
package models

import "time"

// TripRole is a member's role on a trip.
type TripRole string

const (
	// TripRoleOwner is the creator of the trip. Exactly one per trip, set at
	// creation; there is no transfer path.
	TripRoleOwner TripRole = "OWNER"
	// TripRoleMember is an invited participant.
	TripRoleMember TripRole = "MEMBER"
)

// MembershipStatus is the acceptance state of a trip membership.
type MembershipStatus string

const (
	// MembershipPending means the invite has not been answered yet.
	MembershipPending MembershipStatus = "PENDING"
	// MembershipAccepted means the user accepted (owners start here).
	MembershipAccepted MembershipStatus = "ACCEPTED"
)

// Trip is a planned journey, solo or group.
type Trip struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"not null" json:"name"`
	Destination     string     `gorm:"not null" json:"destination"`
	TravelStartDate time.Time  `gorm:"not null" json:"travel_start_date"`
	TravelEndDate   time.Time  `gorm:"not null" json:"travel_end_date"`
	Budget          *float64   `json:"budget"`
	SouvenirType    string     `json:"souvenir_type"`
	CreatedAt       time.Time  `json:"created_at"`

	Memberships []TripMembership `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	Suggestions []Suggestion     `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"suggestions,omitempty"`
}

// TripMembership links a user to a trip with a role and acceptance status.
// The (trip, user) pair is unique.
type TripMembership struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	TripID    uint             `gorm:"not null;uniqueIndex:idx_trip_user" json:"trip_id"`
	UserID    uint             `gorm:"not null;uniqueIndex:idx_trip_user" json:"user_id"`
	Role      TripRole         `gorm:"type:varchar(10);default:'MEMBER'" json:"role"`
	Status    MembershipStatus `gorm:"type:varchar(10);default:'PENDING'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	Trip Trip `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (TripMembership) TableName() string {
	return "trip_memberships"
}

// Package models contains data structures for the application's domain models.
package models

import "time"

// FriendRequestStatus represents the status of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestPending indicates a request awaiting a response.
	FriendRequestPending FriendRequestStatus = "PENDING"
	// FriendRequestAccepted indicates a request that created a friendship.
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
)

// FriendRequest is a pending or accepted request between two users.
// Rejected requests are deleted rather than marked.
//
// There is no uniqueness constraint on the unordered (from, to) pair;
// duplicates are guarded by a check before insert, so two concurrent senders
// can race. Documented in DESIGN.md rather than fixed.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	FromUserID uint                `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint                `gorm:"not null;index" json:"to_user_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`

	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// Friendship is one direction of the symmetric is-friend-of relation.
// Invariant: whenever (A, B) exists, (B, A) exists too. Both edges are
// written in the same transaction on acceptance and removed together on
// unfriend.
type Friendship struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FriendID  uint      `gorm:"primaryKey;autoIncrement:false" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`

	Friend User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// Friendship status values derived relative to a viewer. Computed from the
// edges and pending requests, never stored.
const (
	FriendshipStatusFriends  = "friends"
	FriendshipStatusSent     = "sent"
	FriendshipStatusReceived = "received"
	FriendshipStatusNone     = "none"
)

// Package models contains data structures for the application's domain models.
package models

import "time"

// RewardType categorizes partner rewards.
type RewardType string

const (
	RewardTypeDiscount       RewardType = "DISCOUNT"
	RewardTypeFreeUpgrade    RewardType = "FREE_UPGRADE"
	RewardTypeExclusiveOffer RewardType = "EXCLUSIVE_OFFER"
)

// Reward is a partner offer claimable with points.
type Reward struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"uniqueIndex;not null" json:"name"`
	Description    string     `json:"description"`
	PointsRequired int        `gorm:"not null" json:"points_required"`
	Type           RewardType `gorm:"type:varchar(20)" json:"type"`
	PartnerName    string     `json:"partner_name"`
	CreatedAt      time.Time  `json:"created_at"`

	// Unlocked is not persisted; computed per requesting user
	Unlocked bool `gorm:"-" json:"unlocked"`
}

// RewardUnlock records that a user claimed a reward. The points debit happens
// in the same transaction that inserts this row.
type RewardUnlock struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RewardID  uint      `gorm:"primaryKey;autoIncrement:false" json:"reward_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (RewardUnlock) TableName() string {
	return "reward_unlocks"
}

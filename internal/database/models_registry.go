package database

import "mex/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Follow{},
		&models.Trip{},
		&models.TripMembership{},
		&models.Suggestion{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Reward{},
		&models.RewardUnlock{},
	}
}

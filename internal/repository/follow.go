package repository

import (
	"context"
	"errors"

	"mex/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph data operations.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followeeID uint) (bool, int64, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle flips the follower's edge to the followee and returns the resulting
// state with the authoritative follower count.
//
// Like the like toggle, the check and the write are separate statements; the
// unique (follower, followee) index stops duplicate rows but the reported
// state may lag under concurrent toggles.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, int64, error) {
	var existing models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&existing).Error

	following := false
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).Delete(&models.Follow{}, existing.ID).Error; err != nil {
			return false, 0, models.NewInternalError(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		if err := r.db.WithContext(ctx).Create(&follow).Error; err != nil {
			return false, 0, models.NewInternalError(err)
		}
		following = true
	default:
		return false, 0, models.NewInternalError(err)
	}

	count, err := r.CountFollowers(ctx, followeeID)
	if err != nil {
		return false, 0, err
	}
	return following, count, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followee_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followee_id").
		Where("f.follower_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

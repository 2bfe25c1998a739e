// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"mex/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend request and friendship
// data operations.
type FriendRepository interface {
	CreateRequest(ctx context.Context, request *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	GetPendingRequestBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	AcceptRequest(ctx context.Context, request *models.FriendRequest) error
	AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetMutualFriends(ctx context.Context, userID1, userID2 uint) ([]models.User, error)
	RemoveFriendship(ctx context.Context, userID1, userID2 uint) error
	CountFriends(ctx context.Context, userID uint) (int64, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).Preload("FromUser").Preload("ToUser").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetPendingRequestBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	var request models.FriendRequest

	// Match the unordered pair in either direction
	if err := r.db.WithContext(ctx).
		Where("status = ? AND ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))",
			models.FriendRequestPending, userID1, userID2, userID2, userID1).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, models.FriendRequestPending).
		Preload("FromUser").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FriendRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AcceptRequest marks the request accepted and writes both friendship edges
// in a single transaction, keeping the symmetric relation consistent.
func (r *friendRepository) AcceptRequest(ctx context.Context, request *models.FriendRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.FriendRequestAccepted).Error; err != nil {
			return err
		}
		edges := []models.Friendship{
			{UserID: request.FromUserID, FriendID: request.ToUserID},
			{UserID: request.ToUserID, FriendID: request.FromUserID},
		}
		return tx.Create(&edges).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID1, userID2).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON users.id = f.friend_id").
		Where("f.user_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *friendRepository) GetMutualFriends(ctx context.Context, userID1, userID2 uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f1 ON users.id = f1.friend_id AND f1.user_id = ?", userID1).
		Joins("JOIN friendships f2 ON users.id = f2.friend_id AND f2.user_id = ?", userID2).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// RemoveFriendship deletes both edges and any request row between the pair
// in a single transaction.
func (r *friendRepository) RemoveFriendship(ctx context.Context, userID1, userID2 uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				userID1, userID2, userID2, userID1).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.
			Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
				userID1, userID2, userID2, userID1).
			Delete(&models.FriendRequest{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) CountFriends(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

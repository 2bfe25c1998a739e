package repository

import (
	"context"
	"errors"

	"mex/internal/models"

	"gorm.io/gorm"
)

// RewardRepository defines the interface for reward catalog and claim
// operations.
type RewardRepository interface {
	List(ctx context.Context, userID uint) ([]models.Reward, error)
	GetByID(ctx context.Context, id uint) (*models.Reward, error)
	Claim(ctx context.Context, userID, rewardID uint) error
}

type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

// List returns the full catalog with each reward's Unlocked flag set for the
// requesting user.
func (r *rewardRepository) List(ctx context.Context, userID uint) ([]models.Reward, error) {
	var rewards []models.Reward
	if err := r.db.WithContext(ctx).Order("points_required ASC").Find(&rewards).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var unlockedIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.RewardUnlock{}).
		Where("user_id = ?", userID).
		Pluck("reward_id", &unlockedIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	unlocked := make(map[uint]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = true
	}
	for i := range rewards {
		rewards[i].Unlocked = unlocked[rewards[i].ID]
	}
	return rewards, nil
}

func (r *rewardRepository) GetByID(ctx context.Context, id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.WithContext(ctx).First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reward", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &reward, nil
}

// Claim debits the user's points and records the unlock atomically. The
// balance check, debit and insert share one transaction so the balance can
// never go negative and a reward can only be unlocked once per user.
func (r *rewardRepository) Claim(ctx context.Context, userID, rewardID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Reward", rewardID)
			}
			return models.NewInternalError(err)
		}

		var existing int64
		if err := tx.Model(&models.RewardUnlock{}).
			Where("user_id = ? AND reward_id = ?", userID, rewardID).
			Count(&existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		if existing > 0 {
			return models.NewConflictError("Reward already claimed")
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", userID)
			}
			return models.NewInternalError(err)
		}
		if user.Points < reward.PointsRequired {
			return models.NewInsufficientPointsError()
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points - ?", reward.PointsRequired)).Error; err != nil {
			return models.NewInternalError(err)
		}

		unlock := models.RewardUnlock{UserID: userID, RewardID: rewardID}
		if err := tx.Create(&unlock).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

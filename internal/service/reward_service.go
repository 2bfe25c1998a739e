package service

import (
	"context"

	"mex/internal/models"
	"mex/internal/repository"
)

// RewardService provides reward catalog and claim business logic.
type RewardService struct {
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository
}

// NewRewardService returns a new RewardService.
func NewRewardService(rewardRepo repository.RewardRepository, userRepo repository.UserRepository) *RewardService {
	return &RewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
	}
}

// ListRewards returns the catalog with the user's unlocked flags and current
// points balance.
func (s *RewardService) ListRewards(ctx context.Context, userID uint) ([]models.Reward, int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	rewards, err := s.rewardRepo.List(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return rewards, user.Points, nil
}

// ClaimReward debits the user's points and unlocks the reward atomically.
// Returns the remaining balance.
func (s *RewardService) ClaimReward(ctx context.Context, userID, rewardID uint) (int, error) {
	if err := s.rewardRepo.Claim(ctx, userID, rewardID); err != nil {
		return 0, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

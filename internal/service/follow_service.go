package service

import (
	"context"

	"mex/internal/models"
	"mex/internal/repository"
)

// FollowService provides follow graph business logic. Follows are one-way
// edges and independent of friendships.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ToggleFollow flips the user's follow edge to the target and returns the
// resulting state with the target's follower count. The returned state is
// authoritative; clients reconcile any optimistic UI against it.
func (s *FollowService) ToggleFollow(ctx context.Context, userID, targetUserID uint) (bool, int64, error) {
	if userID == targetUserID {
		return false, 0, models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return false, 0, err
	}
	return s.followRepo.Toggle(ctx, userID, targetUserID)
}

// GetFollowers returns the users following the target.
func (s *FollowService) GetFollowers(ctx context.Context, targetUserID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, targetUserID)
}

// GetFollowing returns the users the target follows.
func (s *FollowService) GetFollowing(ctx context.Context, targetUserID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, targetUserID)
}

// Package service contains the business logic layer of the application.
package service

import (
	"context"

	"mex/internal/models"
	"mex/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest sends a friend request to the target user.
//
// The duplicate check and the insert are separate statements; two users who
// request each other at the same instant can both succeed. Accepting either
// request still produces a single symmetric friendship.
func (s *FriendService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendRequest, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	alreadyFriends, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if alreadyFriends {
		return nil, models.NewConflictError("You are already friends")
	}

	existing, err := s.friendRepo.GetPendingRequestBetween(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.FromUserID == userID {
			return nil, models.NewConflictError("Friend request already sent")
		}
		return nil, models.NewConflictError("You already have a pending friend request from this user")
	}

	request := &models.FriendRequest{
		FromUserID: userID,
		ToUserID:   targetUserID,
		Status:     models.FriendRequestPending,
	}
	if err := s.friendRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	return s.friendRepo.GetRequestByID(ctx, request.ID)
}

// GetIncomingRequests returns pending friend requests addressed to the user.
func (s *FriendService) GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friendRepo.GetIncomingRequests(ctx, userID)
}

// AcceptRequest accepts a pending friend request, creating both friendship
// edges.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ToUserID != userID {
		return nil, models.NewForbiddenError("You can only accept friend requests sent to you")
	}
	if request.Status != models.FriendRequestPending {
		return nil, models.NewValidationError("Friend request is not pending")
	}

	if err := s.friendRepo.AcceptRequest(ctx, request); err != nil {
		return nil, err
	}

	return s.friendRepo.GetRequestByID(ctx, requestID)
}

// DeclineRequest removes a pending friend request. The recipient declines,
// the sender cancels; both paths delete the row.
func (s *FriendService) DeclineRequest(ctx context.Context, userID, requestID uint) error {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.ToUserID != userID && request.FromUserID != userID {
		return models.NewForbiddenError("You can only decline or cancel your own pending requests")
	}
	if request.Status != models.FriendRequestPending {
		return models.NewValidationError("Friend request is not pending")
	}

	return s.friendRepo.DeleteRequest(ctx, requestID)
}

// GetFriends returns the list of friends for the user.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// GetMutualFriends returns friends shared between the viewer and another
// user.
func (s *FriendService) GetMutualFriends(ctx context.Context, userID, targetUserID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}
	return s.friendRepo.GetMutualFriends(ctx, userID, targetUserID)
}

// GetFriendshipStatus returns the relation between the viewer and another
// user as one of friends, sent, received or none, plus the pending request
// ID when one exists.
func (s *FriendService) GetFriendshipStatus(ctx context.Context, userID, targetUserID uint) (string, uint, error) {
	friends, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return "", 0, err
	}
	if friends {
		return models.FriendshipStatusFriends, 0, nil
	}

	request, err := s.friendRepo.GetPendingRequestBetween(ctx, userID, targetUserID)
	if err != nil {
		return "", 0, err
	}
	if request == nil {
		return models.FriendshipStatusNone, 0, nil
	}
	if request.FromUserID == userID {
		return models.FriendshipStatusSent, request.ID, nil
	}
	return models.FriendshipStatusReceived, request.ID, nil
}

// RemoveFriend deletes the friendship in both directions.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, targetUserID uint) error {
	friends, err := s.friendRepo.AreFriends(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if !friends {
		return models.NewNotFoundError("Friendship", targetUserID)
	}
	return s.friendRepo.RemoveFriendship(ctx, userID, targetUserID)
}

package service

import (
	"context"
	"strings"
	"time"

	"mex/internal/models"
	"mex/internal/repository"
)

// TripInput carries the fields needed to create a trip.
type TripInput struct {
	Name            string
	Destination     string
	TravelStartDate time.Time
	TravelEndDate   time.Time
	Budget          *float64
	SouvenirType    string
	InviteeIDs      []uint
}

// TripService provides trip planning and membership business logic.
type TripService struct {
	tripRepo   repository.TripRepository
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewTripService returns a new TripService.
func NewTripService(tripRepo repository.TripRepository, friendRepo repository.FriendRepository, userRepo repository.UserRepository) *TripService {
	return &TripService{
		tripRepo:   tripRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

func (s *TripService) validateInput(input *TripInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return models.NewValidationError("Trip name is required")
	}
	if strings.TrimSpace(input.Destination) == "" {
		return models.NewValidationError("Destination is required")
	}
	if input.TravelStartDate.IsZero() || input.TravelEndDate.IsZero() {
		return models.NewValidationError("Travel dates are required")
	}
	if input.TravelEndDate.Before(input.TravelStartDate) {
		return models.NewValidationError("Travel end date must not be before the start date")
	}
	if input.Budget != nil && *input.Budget < 0 {
		return models.NewValidationError("Budget must not be negative")
	}
	return nil
}

// CreateTrip creates a solo or group trip. The creator becomes the OWNER
// with an ACCEPTED membership; invitees get PENDING memberships. Only
// friends of the creator can be invited.
func (s *TripService) CreateTrip(ctx context.Context, ownerID uint, input TripInput) (*models.Trip, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	for _, inviteeID := range input.InviteeIDs {
		if inviteeID == ownerID {
			continue
		}
		friends, err := s.friendRepo.AreFriends(ctx, ownerID, inviteeID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, models.NewValidationError("You can only invite friends to a trip")
		}
	}

	trip := &models.Trip{
		Name:            strings.TrimSpace(input.Name),
		Destination:     strings.TrimSpace(input.Destination),
		TravelStartDate: input.TravelStartDate,
		TravelEndDate:   input.TravelEndDate,
		Budget:          input.Budget,
		SouvenirType:    input.SouvenirType,
	}
	if err := s.tripRepo.CreateWithMembers(ctx, trip, ownerID, input.InviteeIDs); err != nil {
		return nil, err
	}

	return s.tripRepo.GetByID(ctx, trip.ID)
}

// GetTrip returns a trip if the user is a member of it in any state.
func (s *TripService) GetTrip(ctx context.Context, userID, tripID uint) (*models.Trip, error) {
	membership, err := s.tripRepo.GetMembership(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, models.NewForbiddenError("You are not a member of this trip")
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// ListTrips returns the trips the user has accepted membership in.
func (s *TripService) ListTrips(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.tripRepo.ListForUser(ctx, userID)
}

// ListInvites returns the user's pending trip invitations.
func (s *TripService) ListInvites(ctx context.Context, userID uint) ([]models.TripMembership, error) {
	return s.tripRepo.ListInvites(ctx, userID)
}

// InviteMembers adds friends of the inviting owner as PENDING members.
// Users already on the trip are skipped silently.
func (s *TripService) InviteMembers(ctx context.Context, userID, tripID uint, inviteeIDs []uint) (*models.Trip, error) {
	membership, err := s.tripRepo.GetMembership(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || membership.Role != models.TripRoleOwner {
		return nil, models.NewForbiddenError("Only the trip owner can invite members")
	}

	filtered := make([]uint, 0, len(inviteeIDs))
	for _, inviteeID := range inviteeIDs {
		if inviteeID == userID {
			continue
		}
		friends, err := s.friendRepo.AreFriends(ctx, userID, inviteeID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, models.NewValidationError("You can only invite friends to a trip")
		}
		filtered = append(filtered, inviteeID)
	}

	if err := s.tripRepo.InviteMembers(ctx, tripID, filtered); err != nil {
		return nil, err
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// RespondToInvite accepts or declines the user's pending invitation.
// Accepting flips the membership to ACCEPTED; declining deletes the row so
// the user can be re-invited later.
func (s *TripService) RespondToInvite(ctx context.Context, userID, tripID uint, accept bool) error {
	membership, err := s.tripRepo.GetMembership(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return models.NewNotFoundError("Trip invitation", tripID)
	}
	if membership.Status != models.MembershipPending {
		return models.NewValidationError("Invitation has already been answered")
	}

	if accept {
		return s.tripRepo.AcceptInvite(ctx, membership.ID)
	}
	return s.tripRepo.DeclineInvite(ctx, membership.ID)
}

// DeleteTrip removes the trip with its memberships and suggestions. Owner
// only.
func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID uint) error {
	membership, err := s.tripRepo.GetMembership(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if membership == nil || membership.Role != models.TripRoleOwner {
		return models.NewForbiddenError("Only the trip owner can delete the trip")
	}
	return s.tripRepo.Delete(ctx, tripID)
}

package service

import (
	"context"
	"strings"
	"time"

	"mex/internal/models"
	"mex/internal/repository"
	"mex/internal/validation"
)

// ProfileUpdate carries optional profile fields; nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name           *string
	Image          *string
	Bio            *string
	Nationality    *string
	IsPublic       *bool
	TravelStyle    *string
	FoodPreference *string
	Pace           *string
	Interests      *string
}

// UserStats aggregates a user's public activity numbers.
type UserStats struct {
	UserID  uint  `json:"user_id"`
	Posts   int64 `json:"posts"`
	Friends int64 `json:"friends"`
	Trips   int64 `json:"trips"`
	Points  int   `json:"points"`

	// TripsPerMonth counts trips by travel start month ("2006-01") over the
	// trailing twelve months.
	TripsPerMonth map[string]int `json:"trips_per_month"`
}

// UserService provides profile and account business logic.
type UserService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	friendRepo repository.FriendRepository
	tripRepo   repository.TripRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, friendRepo repository.FriendRepository, tripRepo repository.TripRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		friendRepo: friendRepo,
		tripRepo:   tripRepo,
	}
}

// GetProfile returns the user's full profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies the provided fields. When all four quiz answers are
// present after the update, the profile is marked complete.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := validation.ValidateName(*update.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Image != nil {
		user.Image = *update.Image
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Nationality != nil {
		user.Nationality = *update.Nationality
	}
	if update.IsPublic != nil {
		user.IsPublic = *update.IsPublic
	}
	if update.TravelStyle != nil {
		user.TravelStyle = *update.TravelStyle
	}
	if update.FoodPreference != nil {
		user.FoodPreference = *update.FoodPreference
	}
	if update.Pace != nil {
		user.Pace = *update.Pace
	}
	if update.Interests != nil {
		user.Interests = *update.Interests
	}

	user.ProfileComplete = user.TravelStyle != "" &&
		user.FoodPreference != "" &&
		user.Pace != "" &&
		user.Interests != ""

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers finds users by name or email fragment, excluding the searcher.
func (s *UserService) SearchUsers(ctx context.Context, query string, searcherID uint) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, models.NewValidationError("Search query must be at least 2 characters")
	}
	return s.userRepo.Search(ctx, query, searcherID, 20)
}

// GetStats aggregates a user's post, friend and trip counts with their
// points balance.
func (s *UserService) GetStats(ctx context.Context, userID uint) (*UserStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	friends, err := s.friendRepo.CountFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	trips, err := s.tripRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	allTrips, err := s.tripRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		UserID:        user.ID,
		Posts:         posts,
		Friends:       friends,
		Trips:         trips,
		Points:        user.Points,
		TripsPerMonth: tripsPerMonth(allTrips, time.Now()),
	}, nil
}

// tripsPerMonth buckets trips by travel start month over the twelve months
// ending at now.
func tripsPerMonth(trips []models.Trip, now time.Time) map[string]int {
	histogram := make(map[string]int)
	cutoff := now.AddDate(-1, 0, 0)
	for _, trip := range trips {
		if trip.TravelStartDate.Before(cutoff) || trip.TravelStartDate.After(now) {
			continue
		}
		histogram[trip.TravelStartDate.Format("2006-01")]++
	}
	return histogram
}

// StartVerification marks the user's identity verification as in flight.
func (s *UserService) StartVerification(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.VerificationStatus == models.VerificationVerified {
		return nil, models.NewValidationError("Identity is already verified")
	}
	user.VerificationStatus = models.VerificationPending
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

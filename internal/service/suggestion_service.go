package service

import (
	"context"

	"mex/internal/itinerary"
	"mex/internal/models"
	"mex/internal/repository"
)

// ProposalGenerator produces itinerary proposals from a prompt.
type ProposalGenerator interface {
	GenerateProposals(ctx context.Context, prompt string) ([]itinerary.Proposal, error)
}

// LocationGeocoder resolves a location name to coordinates, returning nil
// when the lookup fails.
type LocationGeocoder interface {
	Geocode(ctx context.Context, locationName, destination string) *models.LatLng
}

// SuggestionService orchestrates itinerary generation, geocoding and
// persistence.
type SuggestionService struct {
	suggestionRepo repository.SuggestionRepository
	tripRepo       repository.TripRepository
	userRepo       repository.UserRepository
	generator      ProposalGenerator
	geocoder       LocationGeocoder
}

// NewSuggestionService returns a new SuggestionService.
func NewSuggestionService(
	suggestionRepo repository.SuggestionRepository,
	tripRepo repository.TripRepository,
	userRepo repository.UserRepository,
	generator ProposalGenerator,
	geocoder LocationGeocoder,
) *SuggestionService {
	return &SuggestionService{
		suggestionRepo: suggestionRepo,
		tripRepo:       tripRepo,
		userRepo:       userRepo,
		generator:      generator,
		geocoder:       geocoder,
	}
}

func (s *SuggestionService) requireMembership(ctx context.Context, userID, tripID uint) (*models.Trip, error) {
	membership, err := s.tripRepo.GetMembership(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || membership.Status != models.MembershipAccepted {
		return nil, models.NewForbiddenError("You are not a member of this trip")
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// GenerateSuggestions asks the generation service for proposals, resolves
// coordinates for every itinerary block and stores the batch. Geocoding
// failures degrade to nil coordinates rather than failing the run.
func (s *SuggestionService) GenerateSuggestions(ctx context.Context, userID, tripID uint) ([]models.Suggestion, error) {
	trip, err := s.requireMembership(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := itinerary.BuildPrompt(trip, user)
	proposals, err := s.generator.GenerateProposals(ctx, prompt)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.Suggestion, 0, len(proposals))
	for _, proposal := range proposals {
		days := proposal.Itinerary
		for d := range days {
			s.geocodeBlock(ctx, &days[d].Morning, trip.Destination)
			s.geocodeBlock(ctx, &days[d].Afternoon, trip.Destination)
			s.geocodeBlock(ctx, &days[d].Evening, trip.Destination)
		}
		suggestions = append(suggestions, models.Suggestion{
			TripID:    tripID,
			Title:     proposal.Title,
			Summary:   proposal.Summary,
			Itinerary: days,
		})
	}

	if err := s.suggestionRepo.CreateBatch(ctx, suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (s *SuggestionService) geocodeBlock(ctx context.Context, block *models.ItineraryBlock, destination string) {
	if block.LocationName == "" {
		return
	}
	block.Coords = s.geocoder.Geocode(ctx, block.LocationName, destination)
}

// ListSuggestions returns the stored proposals for a trip, newest first.
func (s *SuggestionService) ListSuggestions(ctx context.Context, userID, tripID uint) ([]models.Suggestion, error) {
	if _, err := s.requireMembership(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.suggestionRepo.ListForTrip(ctx, tripID)
}

// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"mex/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GenerateSuggestions handles POST /api/suggestions. Runs the full pipeline:
// prompt build, generation call with bounded retry, per-location geocoding
// and a single transactional persist.
func (s *Server) GenerateSuggestions(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		TripID uint `json:"trip_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.TripID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("trip_id is required"))
	}

	suggestions, err := s.suggestionService.GenerateSuggestions(ctx, userID, req.TripID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"suggestions": suggestions,
	})
}

// GetTripSuggestions handles GET /api/trips/:tripId/suggestions
func (s *Server) GetTripSuggestions(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	suggestions, listErr := s.suggestionService.ListSuggestions(ctx, userID, tripID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(suggestions)
}

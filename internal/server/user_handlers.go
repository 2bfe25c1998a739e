// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"mex/internal/models"
	"mex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/profile. Absent fields are left untouched;
// setting all four quiz answers marks the profile complete.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name           *string `json:"name"`
		Image          *string `json:"image"`
		Bio            *string `json:"bio"`
		Nationality    *string `json:"nationality"`
		IsPublic       *bool   `json:"is_public"`
		TravelStyle    *string `json:"travel_style"`
		FoodPreference *string `json:"food_preference"`
		Pace           *string `json:"pace"`
		Interests      *string `json:"interests"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, service.ProfileUpdate{
		Name:           req.Name,
		Image:          req.Image,
		Bio:            req.Bio,
		Nationality:    req.Nationality,
		IsPublic:       req.IsPublic,
		TravelStyle:    req.TravelStyle,
		FoodPreference: req.FoodPreference,
		Pace:           req.Pace,
		Interests:      req.Interests,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// SearchUsers handles GET /api/users/search?query=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	users, err := s.userService.SearchUsers(c.Context(), c.Query("query"), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	summaries := make([]any, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return c.JSON(summaries)
}

// GetUserStats handles GET /api/stats/:userId
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	stats, statsErr := s.userService.GetStats(c.Context(), targetID)
	if statsErr != nil {
		return respondServiceError(c, statsErr)
	}

	return c.JSON(stats)
}

// StartVerification handles POST /api/profile/verification
func (s *Server) StartVerification(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.StartVerification(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"verification_status": user.VerificationStatus,
	})
}

// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:userId/follow. The response carries
// the authoritative state so clients can reconcile an optimistic button.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, count, toggleErr := s.followService.ToggleFollow(ctx, userID, targetUserID)
	if toggleErr != nil {
		return respondServiceError(c, toggleErr)
	}

	return c.JSON(fiber.Map{
		"following":       following,
		"followers_count": count,
	})
}

// GetFollowers handles GET /api/users/:userId/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.Context()
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	followers, listErr := s.followService.GetFollowers(ctx, targetUserID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:userId/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ctx := c.Context()
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, listErr := s.followService.GetFollowing(ctx, targetUserID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(following)
}

// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetRewards handles GET /api/rewards. Each catalog entry carries an
// unlocked flag for the requesting user.
func (s *Server) GetRewards(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	rewards, points, err := s.rewardService.ListRewards(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"rewards": rewards,
		"points":  points,
	})
}

// ClaimReward handles POST /api/rewards/:rewardId/claim. The sufficiency
// check and points debit run in one transaction.
func (s *Server) ClaimReward(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	rewardID, err := s.parseID(c, "rewardId")
	if err != nil {
		return nil
	}

	points, claimErr := s.rewardService.ClaimReward(ctx, userID, rewardID)
	if claimErr != nil {
		return respondServiceError(c, claimErr)
	}

	return c.JSON(fiber.Map{
		"reward_id": rewardID,
		"points":    points,
	})
}

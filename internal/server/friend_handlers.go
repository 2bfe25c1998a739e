// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/friends/request/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	request, sendErr := s.friendService.SendRequest(ctx, userID, targetUserID)
	if sendErr != nil {
		return respondServiceError(c, sendErr)
	}

	// Notify both users so UI updates immediately.
	s.publishUserEvent(request.ToUserID, EventFriendRequestReceived, map[string]interface{}{
		"request_id": request.ID,
		"from_user":  userSummary(request.FromUser),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	s.publishUserEvent(request.FromUserID, EventFriendRequestSent, map[string]interface{}{
		"request_id": request.ID,
		"to_user":    userSummary(request.ToUser),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(request)
}

// GetFriendRequests handles GET /api/friends/requests
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requests, err := s.friendService.GetIncomingRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// AcceptFriendRequest handles POST /api/friends/accept/:requestId
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, acceptErr := s.friendService.AcceptRequest(ctx, userID, requestID)
	if acceptErr != nil {
		return respondServiceError(c, acceptErr)
	}

	s.publishUserEvent(request.FromUserID, EventFriendRequestAccepted, map[string]interface{}{
		"request_id":  request.ID,
		"friend_user": userSummary(request.ToUser),
		"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})
	s.publishUserEvent(request.ToUserID, EventFriendAdded, map[string]interface{}{
		"request_id":  request.ID,
		"friend_user": userSummary(request.FromUser),
		"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(request)
}

// RejectFriendRequest handles POST /api/friends/reject/:requestId.
// The recipient rejects; the sender cancels their own pending request.
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if declineErr := s.friendService.DeclineRequest(ctx, userID, requestID); declineErr != nil {
		return respondServiceError(c, declineErr)
	}

	s.publishUserEvent(userID, EventFriendRequestRejected, map[string]interface{}{
		"request_id":  requestID,
		"by_user_id":  userID,
		"rejected_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.SendStatus(fiber.StatusOK)
}

// RemoveFriend handles POST /api/friends/remove/:userId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if removeErr := s.friendService.RemoveFriend(ctx, userID, targetUserID); removeErr != nil {
		return respondServiceError(c, removeErr)
	}

	s.publishUserEvent(userID, EventFriendRemoved, map[string]interface{}{
		"user_id":    targetUserID,
		"removed_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	s.publishUserEvent(targetUserID, EventFriendRemoved, map[string]interface{}{
		"user_id":    userID,
		"removed_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.SendStatus(fiber.StatusOK)
}

// GetFriends handles GET /api/friends/list
func (s *Server) GetFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.GetFriends(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(friends)
}

// GetUserFriends handles GET /api/friends/list/:userId
func (s *Server) GetUserFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friends, listErr := s.friendService.GetFriends(ctx, targetUserID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(friends)
}

// GetFriendshipStatus handles GET /api/friends/status/:userId
func (s *Server) GetFriendshipStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, requestID, statusErr := s.friendService.GetFriendshipStatus(ctx, userID, targetUserID)
	if statusErr != nil {
		return respondServiceError(c, statusErr)
	}

	return c.JSON(fiber.Map{
		"status":     status,
		"request_id": requestID,
	})
}

// GetMutualFriends handles GET /api/friends/mutual/:userId
func (s *Server) GetMutualFriends(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	mutual, mutualErr := s.friendService.GetMutualFriends(ctx, userID, targetUserID)
	if mutualErr != nil {
		return respondServiceError(c, mutualErr)
	}

	return c.JSON(mutual)
}

// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"mex/internal/models"
	"mex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts (newest first, counts and liked flag
// relative to the requesting user)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	pagination := parsePagination(c, 20)

	posts, err := s.postService.GetFeed(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/posts. Creating a post credits the author's
// points balance in the same transaction.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content   string `json:"content"`
		MediaURL  string `json:"media_url"`
		MediaType string `json:"media_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, userID, req.Content, req.MediaURL, req.MediaType)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post":           post,
		"points_awarded": service.PointsPerPost,
	})
}

// DeletePost handles DELETE /api/posts/:postId (author only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if deleteErr := s.postService.DeletePost(ctx, userID, postID); deleteErr != nil {
		return respondServiceError(c, deleteErr)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:postId/like and returns the
// authoritative new state so optimistic clients can reconcile.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	liked, count, toggleErr := s.postService.ToggleLike(ctx, userID, postID)
	if toggleErr != nil {
		return respondServiceError(c, toggleErr)
	}

	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}

// CreateComment handles POST /api/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, commentErr := s.postService.AddComment(ctx, userID, postID, req.Text)
	if commentErr != nil {
		return respondServiceError(c, commentErr)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:postId/comments (oldest first)
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, listErr := s.postService.GetComments(ctx, postID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(comments)
}

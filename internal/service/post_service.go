package service

import (
	"context"
	"strings"

	"mex/internal/middleware"
	"mex/internal/models"
	"mex/internal/repository"
)

// PointsPerPost is credited to the author every time a post is published.
const PointsPerPost = 10

const maxPostLength = 2000
const maxCommentLength = 500

// PostService provides feed post business logic.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost publishes a post and credits the author PointsPerPost in the
// same transaction.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content, mediaURL, mediaType string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostLength {
		return nil, models.NewValidationError("Post content is too long")
	}

	post := &models.Post{
		AuthorID:  authorID,
		Content:   content,
		MediaURL:  mediaURL,
		MediaType: mediaType,
	}
	if err := s.postRepo.CreateWithPoints(ctx, post, PointsPerPost); err != nil {
		return nil, err
	}
	middleware.PointsAwarded.WithLabelValues("post").Add(float64(PointsPerPost))

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetFeed returns the newest posts with counts and the viewer's liked flags.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.postRepo.List(ctx, viewerID, limit, offset)
}

// DeletePost removes a post and its interactions. Author only. The points
// earned for the post are not clawed back.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the user's like on a post and returns the resulting state
// with the authoritative count.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, 0, err
	}
	return s.postRepo.ToggleLike(ctx, userID, postID)
}

// AddComment attaches a comment to a post.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLength {
		return nil, models.NewValidationError("Comment is too long")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     text,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments returns a post's comments oldest first.
func (s *PostService) GetComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.postRepo.ListComments(ctx, postID)
}

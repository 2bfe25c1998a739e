package service

import (
	"context"
	"strings"
	"testing"

	"mex/internal/middleware"
	"mex/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPostServiceCreatePostAwardsPoints(t *testing.T) {
	var awarded int
	posts := noopPostRepo()
	posts.createWithPointsFn = func(_ context.Context, post *models.Post, points int) error {
		post.ID = 1
		awarded = points
		return nil
	}
	svc := NewPostService(posts, noopUserRepo())

	before := testutil.ToFloat64(middleware.PointsAwarded.WithLabelValues("post"))

	if _, err := svc.CreatePost(context.Background(), 1, "hello from Fes", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != PointsPerPost {
		t.Fatalf("expected %d points per post, got %d", PointsPerPost, awarded)
	}

	after := testutil.ToFloat64(middleware.PointsAwarded.WithLabelValues("post"))
	if after-before != float64(PointsPerPost) {
		t.Fatalf("expected points counter to grow by %d, got %v", PointsPerPost, after-before)
	}
}

func TestPostServiceCreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo())
	ctx := context.Background()

	if _, err := svc.CreatePost(ctx, 1, "   ", "", ""); !assertAppErrorCode(err, "VALIDATION_ERROR") {
		t.Fatalf("expected validation error for empty content, got %#v", err)
	}

	long := strings.Repeat("x", maxPostLength+1)
	if _, err := svc.CreatePost(ctx, 1, long, "", ""); !assertAppErrorCode(err, "VALIDATION_ERROR") {
		t.Fatalf("expected validation error for oversized content, got %#v", err)
	}
}

func TestPostServiceDeletePostAuthorOnly(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 1}, nil
	}
	svc := NewPostService(posts, noopUserRepo())

	err := svc.DeletePost(context.Background(), 2, 10)
	if !assertAppErrorCode(err, "FORBIDDEN") {
		t.Fatalf("expected forbidden error, got %#v", err)
	}

	if err := svc.DeletePost(context.Background(), 1, 10); err != nil {
		t.Fatalf("author deletion should succeed, got %v", err)
	}
}

func TestPostServiceToggleLikeUnknownPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewPostService(posts, noopUserRepo())

	_, _, err := svc.ToggleLike(context.Background(), 1, 99)
	if !assertAppErrorCode(err, "NOT_FOUND") {
		t.Fatalf("expected not found error, got %#v", err)
	}
}

func TestPostServiceToggleLikeReturnsAuthoritativeState(t *testing.T) {
	posts := noopPostRepo()
	posts.toggleLikeFn = func(context.Context, uint, uint) (bool, int64, error) { return false, 3, nil }
	svc := NewPostService(posts, noopUserRepo())

	liked, count, err := svc.ToggleLike(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked || count != 3 {
		t.Fatalf("expected unliked with count 3, got liked=%v count=%d", liked, count)
	}
}

func TestPostServiceAddCommentValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo())
	ctx := context.Background()

	if _, err := svc.AddComment(ctx, 1, 10, ""); !assertAppErrorCode(err, "VALIDATION_ERROR") {
		t.Fatalf("expected validation error for empty comment, got %#v", err)
	}

	long := strings.Repeat("y", maxCommentLength+1)
	if _, err := svc.AddComment(ctx, 1, 10, long); !assertAppErrorCode(err, "VALIDATION_ERROR") {
		t.Fatalf("expected validation error for oversized comment, got %#v", err)
	}
}

func TestPostServiceAddCommentSuccess(t *testing.T) {
	var saved *models.Comment
	posts := noopPostRepo()
	posts.createCommentFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 3
		saved = c
		return nil
	}
	svc := NewPostService(posts, noopUserRepo())

	comment, err := svc.AddComment(context.Background(), 1, 10, "  lovely view  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || saved.PostID != 10 || saved.AuthorID != 1 {
		t.Fatalf("comment not persisted with expected fields: %#v", saved)
	}
	if comment.Text != "lovely view" {
		t.Fatalf("expected trimmed text, got %q", comment.Text)
	}
}

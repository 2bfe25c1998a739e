package repository

import (
	"context"
	"errors"

	"mex/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for feed post data operations.
type PostRepository interface {
	CreateWithPoints(ctx context.Context, post *models.Post, points int) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error)
	Delete(ctx context.Context, postID uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// CreateWithPoints inserts the post and credits the author's points balance
// in the same transaction, so a failed insert never awards points.
func (r *postRepository) CreateWithPoints(ctx context.Context, post *models.Post, points int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if points <= 0 {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("id = ?", post.AuthorID).
			Update("points", gorm.Expr("points + ?", points)).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns the newest posts with like/comment counts and the viewer's
// liked flag populated.
func (r *postRepository) List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countRow struct {
		PostID uint
		N      int64
	}

	var likeCounts []countRow
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&likeCounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var commentCounts []countRow
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&commentCounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var likedIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Pluck("post_id", &likedIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	likesByPost := make(map[uint]int64, len(likeCounts))
	for _, row := range likeCounts {
		likesByPost[row.PostID] = row.N
	}
	commentsByPost := make(map[uint]int64, len(commentCounts))
	for _, row := range commentCounts {
		commentsByPost[row.PostID] = row.N
	}
	likedByViewer := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedByViewer[id] = true
	}

	for i := range posts {
		posts[i].LikesCount = int(likesByPost[posts[i].ID])
		posts[i].CommentsCount = int(commentsByPost[posts[i].ID])
		posts[i].Liked = likedByViewer[posts[i].ID]
	}
	return posts, nil
}

// Delete removes the post with its likes and comments in one transaction.
func (r *postRepository) Delete(ctx context.Context, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Post{}, postID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike flips the viewer's like on a post and returns the resulting
// state with the authoritative count.
//
// The check and the write are separate statements, so two concurrent toggles
// from the same user can race; the unique (user, post) index stops duplicate
// rows but the reported state may lag. Documented in DESIGN.md rather than
// fixed.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var existing models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&existing).Error

	liked := false
	switch {
	case err == nil:
		if err := r.db.WithContext(ctx).Delete(&models.Like{}, existing.ID).Error; err != nil {
			return false, 0, models.NewInternalError(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{UserID: userID, PostID: postID}
		if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
			return false, 0, models.NewInternalError(err)
		}
		liked = true
	default:
		return false, 0, models.NewInternalError(err)
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return false, 0, models.NewInternalError(err)
	}
	return liked, count, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *postRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

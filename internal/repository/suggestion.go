package repository

import (
	"context"

	"mex/internal/models"

	"gorm.io/gorm"
)

// SuggestionRepository defines the interface for itinerary proposal storage.
type SuggestionRepository interface {
	CreateBatch(ctx context.Context, suggestions []models.Suggestion) error
	ListForTrip(ctx context.Context, tripID uint) ([]models.Suggestion, error)
}

type suggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

// CreateBatch stores a generation run's proposals together; a partial batch
// is never persisted.
func (r *suggestionRepository) CreateBatch(ctx context.Context, suggestions []models.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&suggestions).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *suggestionRepository) ListForTrip(ctx context.Context, tripID uint) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&suggestions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return suggestions, nil
}

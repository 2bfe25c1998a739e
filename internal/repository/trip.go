package repository

import (
	"context"
	"errors"

	"mex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TripRepository defines the interface for trip and membership data operations.
type TripRepository interface {
	CreateWithMembers(ctx context.Context, trip *models.Trip, ownerID uint, inviteeIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Trip, error)
	ListInvites(ctx context.Context, userID uint) ([]models.TripMembership, error)
	GetMembership(ctx context.Context, tripID, userID uint) (*models.TripMembership, error)
	InviteMembers(ctx context.Context, tripID uint, userIDs []uint) error
	AcceptInvite(ctx context.Context, membershipID uint) error
	DeclineInvite(ctx context.Context, membershipID uint) error
	Delete(ctx context.Context, tripID uint) error
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

// CreateWithMembers inserts the trip, its OWNER membership and any PENDING
// invitee memberships in one transaction. The owner membership starts
// ACCEPTED; invitees must answer their invite.
func (r *tripRepository) CreateWithMembers(ctx context.Context, trip *models.Trip, ownerID uint, inviteeIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		owner := models.TripMembership{
			TripID: trip.ID,
			UserID: ownerID,
			Role:   models.TripRoleOwner,
			Status: models.MembershipAccepted,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		for _, inviteeID := range inviteeIDs {
			if inviteeID == ownerID {
				continue
			}
			member := models.TripMembership{
				TripID: trip.ID,
				UserID: inviteeID,
				Role:   models.TripRoleMember,
				Status: models.MembershipPending,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).
		Preload("Memberships").
		Preload("Memberships.User").
		Preload("Suggestions").
		First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trip", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &trip, nil
}

func (r *tripRepository) ListForUser(ctx context.Context, userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).
		Joins("JOIN trip_memberships tm ON tm.trip_id = trips.id").
		Where("tm.user_id = ? AND tm.status = ?", userID, models.MembershipAccepted).
		Preload("Memberships").
		Preload("Memberships.User").
		Order("trips.travel_start_date ASC").
		Find(&trips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return trips, nil
}

func (r *tripRepository) ListInvites(ctx context.Context, userID uint) ([]models.TripMembership, error) {
	var invites []models.TripMembership
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.MembershipPending).
		Preload("Trip").
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return invites, nil
}

func (r *tripRepository) GetMembership(ctx context.Context, tripID, userID uint) (*models.TripMembership, error) {
	var membership models.TripMembership
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &membership, nil
}

// InviteMembers adds PENDING memberships, silently skipping users who are
// already on the trip in any state.
func (r *tripRepository) InviteMembers(ctx context.Context, tripID uint, userIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, userID := range userIDs {
			member := models.TripMembership{
				TripID: tripID,
				UserID: userID,
				Role:   models.TripRoleMember,
				Status: models.MembershipPending,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) AcceptInvite(ctx context.Context, membershipID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.TripMembership{}).
		Where("id = ?", membershipID).
		Update("status", models.MembershipAccepted).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeclineInvite removes the membership row entirely, so a declined user can
// be invited again later.
func (r *tripRepository) DeclineInvite(ctx context.Context, membershipID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.TripMembership{}, membershipID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the trip with its memberships and suggestions in one
// transaction. Explicit deletes rather than FK cascade so behavior matches
// across database engines.
func (r *tripRepository) Delete(ctx context.Context, tripID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Suggestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Trip{}, tripID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tripRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TripMembership{}).
		Where("user_id = ? AND status = ?", userID, models.MembershipAccepted).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

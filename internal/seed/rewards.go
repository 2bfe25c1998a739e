package seed

import (
	"fmt"

	"mex/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInReward is a permanent partner offer.
type BuiltInReward struct {
	Name           string
	Description    string
	PointsRequired int
	Type           models.RewardType
	PartnerName    string
}

// BuiltInRewards defines the permanent partner reward catalog.
var BuiltInRewards = []BuiltInReward{
	{
		Name:           "10% off dinner at Nomad",
		Description:    "Discount on the full menu at the rooftop restaurant.",
		PointsRequired: 100,
		Type:           models.RewardTypeDiscount,
		PartnerName:    "Nomad Restaurant",
	},
	{
		Name:           "Free pastry upgrade",
		Description:    "A complimentary pastry with any coffee order.",
		PointsRequired: 50,
		Type:           models.RewardTypeFreeUpgrade,
		PartnerName:    "Café des Épices",
	},
	{
		Name:           "Private hammam session",
		Description:    "An exclusive spa session for two.",
		PointsRequired: 250,
		Type:           models.RewardTypeExclusiveOffer,
		PartnerName:    "Les Bains de Marrakech",
	},
}

// Rewards seeds the permanent partner reward catalog. Entries are upserted by
// name so re-running keeps catalog IDs stable.
func Rewards(db *gorm.DB) error {
	for _, item := range BuiltInRewards {
		reward := models.Reward{
			Name:           item.Name,
			Description:    item.Description,
			PointsRequired: item.PointsRequired,
			Type:           item.Type,
			PartnerName:    item.PartnerName,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "points_required", "type", "partner_name"}),
		}).Create(&reward).Error
		if err != nil {
			return fmt.Errorf("seed built-in reward %q: %w", item.Name, err)
		}
	}
	return nil
}

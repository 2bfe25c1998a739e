// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LatLng is a geographic coordinate attached to an itinerary location.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ItineraryBlock is one part of a day (morning, afternoon or evening).
// Coords stays nil when geocoding failed or was skipped for the location.
type ItineraryBlock struct {
	Description  string  `json:"description"`
	LocationName string  `json:"locationName"`
	Coords       *LatLng `json:"coords"`
}

// ItineraryDay is a single themed day inside a proposal.
type ItineraryDay struct {
	Day       int            `json:"day"`
	Theme     string         `json:"theme"`
	Morning   ItineraryBlock `json:"morning"`
	Afternoon ItineraryBlock `json:"afternoon"`
	Evening   ItineraryBlock `json:"evening"`
}

// Itinerary is the ordered list of days stored as a JSON column.
type Itinerary []ItineraryDay

// Value implements driver.Valuer so GORM stores the itinerary as JSON.
func (i Itinerary) Value() (driver.Value, error) {
	if i == nil {
		return nil, nil
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (i *Itinerary) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("unsupported itinerary column type %T", value)
	}
}

// Suggestion is a stored AI-generated itinerary proposal attached to a trip.
// Immutable once stored; there is no edit path.
type Suggestion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TripID    uint      `gorm:"not null;index" json:"trip_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Itinerary Itinerary `gorm:"type:text" json:"itinerary"`
	CreatedAt time.Time `json:"created_at"`
}

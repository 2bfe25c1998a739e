// Package itinerary talks to the external generation and geocoding services
// to produce trip itinerary proposals.
package itinerary

import (
	"fmt"
	"strings"

	"mex/internal/models"
)

// ProposalCount is how many distinct proposals one generation run asks for.
const ProposalCount = 4

// BuildPrompt assembles the generation prompt from the trip parameters and
// the requesting user's preference quiz answers. The response contract (a
// JSON object with a "proposals" array) is spelled out in the prompt itself.
func BuildPrompt(trip *models.Trip, user *models.User) string {
	var b strings.Builder

	days := int(trip.TravelEndDate.Sub(trip.TravelStartDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}

	fmt.Fprintf(&b, "You are a travel planner. Create %d distinct itinerary proposals for a %d-day trip to %s.\n\n",
		ProposalCount, days, trip.Destination)

	b.WriteString("Traveler preferences:\n")
	writePreference(&b, "Travel style", user.TravelStyle)
	writePreference(&b, "Food preference", user.FoodPreference)
	writePreference(&b, "Pace", user.Pace)
	writePreference(&b, "Interests", user.Interests)
	if trip.Budget != nil {
		fmt.Fprintf(&b, "- Budget: %.0f\n", *trip.Budget)
	}
	if trip.SouvenirType != "" {
		fmt.Fprintf(&b, "- Souvenir interest: %s\n", trip.SouvenirType)
	}

	b.WriteString("\nRespond with ONLY a JSON object, no markdown, in this exact shape:\n")
	b.WriteString(`{"proposals":[{"title":"...","summary":"...","itinerary":[{"day":1,"theme":"...",` +
		`"morning":{"description":"...","locationName":"..."},` +
		`"afternoon":{"description":"...","locationName":"..."},` +
		`"evening":{"description":"...","locationName":"..."}}]}]}`)
	b.WriteString("\n\nEvery locationName must be a real, geocodable place in or near the destination.")

	return b.String()
}

func writePreference(b *strings.Builder, label, value string) {
	if value == "" {
		value = "no preference"
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"time"

	"mex/internal/models"
	"mex/internal/service"

	"github.com/gofiber/fiber/v2"
)

type tripRequest struct {
	Name            string    `json:"name"`
	Destination     string    `json:"destination"`
	TravelStartDate time.Time `json:"travel_start_date"`
	TravelEndDate   time.Time `json:"travel_end_date"`
	Budget          *float64  `json:"budget"`
	SouvenirType    string    `json:"souvenir_type"`
	InviteeIDs      []uint    `json:"invitee_ids"`
}

// CreateTrip handles POST /api/trips (and the /api/group-trips alias).
// A request without invitees creates a solo trip.
func (s *Server) CreateTrip(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req tripRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trip, err := s.tripService.CreateTrip(ctx, userID, service.TripInput{
		Name:            req.Name,
		Destination:     req.Destination,
		TravelStartDate: req.TravelStartDate,
		TravelEndDate:   req.TravelEndDate,
		Budget:          req.Budget,
		SouvenirType:    req.SouvenirType,
		InviteeIDs:      req.InviteeIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.notifyTripInvites(trip, userID, req.InviteeIDs)

	return c.Status(fiber.StatusCreated).JSON(trip)
}

// GetTrips handles GET /api/trips (accepted memberships only)
func (s *Server) GetTrips(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	trips, err := s.tripService.ListTrips(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(trips)
}

// GetTrip handles GET /api/trips/:tripId
func (s *Server) GetTrip(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	trip, getErr := s.tripService.GetTrip(ctx, userID, tripID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}

	return c.JSON(trip)
}

// GetTripInvites handles GET /api/trips/invites (pending memberships)
func (s *Server) GetTripInvites(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	invites, err := s.tripService.ListInvites(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(invites)
}

// AcceptTripInvite handles POST /api/trips/invites/accept
func (s *Server) AcceptTripInvite(c *fiber.Ctx) error {
	return s.respondToTripInvite(c, true)
}

// DeclineTripInvite handles POST /api/trips/invites/decline
func (s *Server) DeclineTripInvite(c *fiber.Ctx) error {
	return s.respondToTripInvite(c, false)
}

func (s *Server) respondToTripInvite(c *fiber.Ctx, accept bool) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		TripID uint `json:"trip_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.TripID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("trip_id is required"))
	}

	// Resolve the owner before responding; a decline removes the membership
	// row the lookup depends on.
	var ownerID uint
	if trip, err := s.tripService.GetTrip(ctx, userID, req.TripID); err == nil {
		for _, m := range trip.Memberships {
			if m.Role == models.TripRoleOwner {
				ownerID = m.UserID
			}
		}
	}

	if err := s.tripService.RespondToInvite(ctx, userID, req.TripID, accept); err != nil {
		return respondServiceError(c, err)
	}

	eventType := EventTripInviteAccepted
	if !accept {
		eventType = EventTripInviteDeclined
	}
	if ownerID != 0 && ownerID != userID {
		s.publishUserEvent(ownerID, eventType, map[string]interface{}{
			"trip_id":      req.TripID,
			"user_id":      userID,
			"responded_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return c.JSON(fiber.Map{
		"trip_id":  req.TripID,
		"accepted": accept,
	})
}

// InviteToTrip handles POST /api/trips/:tripId/invite (owner only)
func (s *Server) InviteToTrip(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	var req struct {
		InviteeIDs []uint `json:"invitee_ids"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.InviteeIDs) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invitee_ids is required"))
	}

	trip, inviteErr := s.tripService.InviteMembers(ctx, userID, tripID, req.InviteeIDs)
	if inviteErr != nil {
		return respondServiceError(c, inviteErr)
	}

	s.notifyTripInvites(trip, userID, req.InviteeIDs)

	return c.JSON(trip)
}

// DeleteTrip handles DELETE /api/trips/:tripId (owner only, cascades)
func (s *Server) DeleteTrip(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	// Capture members before the cascade removes them.
	var memberIDs []uint
	if trip, getErr := s.tripService.GetTrip(ctx, userID, tripID); getErr == nil {
		for _, m := range trip.Memberships {
			if m.UserID != userID {
				memberIDs = append(memberIDs, m.UserID)
			}
		}
	}

	if deleteErr := s.tripService.DeleteTrip(ctx, userID, tripID); deleteErr != nil {
		return respondServiceError(c, deleteErr)
	}

	for _, memberID := range memberIDs {
		s.publishUserEvent(memberID, EventTripDeleted, map[string]interface{}{
			"trip_id":    tripID,
			"deleted_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) notifyTripInvites(trip *models.Trip, inviterID uint, inviteeIDs []uint) {
	for _, inviteeID := range inviteeIDs {
		if inviteeID == inviterID {
			continue
		}
		s.publishUserEvent(inviteeID, EventTripInviteReceived, map[string]interface{}{
			"trip_id":     trip.ID,
			"trip_name":   trip.Name,
			"destination": trip.Destination,
			"invited_by":  inviterID,
			"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

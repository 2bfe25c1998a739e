package service

import (
	"context"
	"testing"
	"time"

	"mex/internal/models"
)

func validTripInput() TripInput {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return TripInput{
		Name:            "Autumn escape",
		Destination:     "Marrakech",
		TravelStartDate: start,
		TravelEndDate:   start.AddDate(0, 0, 4),
	}
}

func TestTripServiceCreateTripValidation(t *testing.T) {
	svc := NewTripService(noopTripRepo(), noopFriendRepo(), noopUserRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*TripInput)
	}{
		{"missing name", func(in *TripInput) { in.Name = "  " }},
		{"missing destination", func(in *TripInput) { in.Destination = "" }},
		{"zero dates", func(in *TripInput) { in.TravelStartDate = time.Time{} }},
		{"end before start", func(in *TripInput) {
			in.TravelEndDate = in.TravelStartDate.AddDate(0, 0, -1)
		}},
		{"negative budget", func(in *TripInput) {
			negative := -10.0
			in.Budget = &negative
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validTripInput()
			tc.mutate(&input)
			_, err := svc.CreateTrip(ctx, 1, input)
			if !assertAppErrorCode(err, "VALIDATION_ERROR") {
				t.Fatalf("expected validation error, got %#v", err)
			}
		})
	}
}

func TestTripServiceCreateTripRejectsNonFriendInvitee(t *testing.T) {
	svc := NewTripService(noopTripRepo(), noopFriendRepo(), noopUserRepo())
	input := validTripInput()
	input.InviteeIDs = []uint{5}

	_, err := svc.CreateTrip(context.Background(), 1, input)
	if !assertAppErrorCode(err, "VALIDATION_ERROR") {
		t.Fatalf("expected validation error for non-friend invitee, got %#v", err)
	}
}

func TestTripServiceCreateTripSuccess(t *testing.T) {
	var gotOwner uint
	var gotInvitees []uint
	trips := noopTripRepo()
	trips.createWithMembersFn = func(_ context.Context, trip *models.Trip, ownerID uint, inviteeIDs []uint) error {
		trip.ID = 11
		gotOwner = ownerID
		gotInvitees = inviteeIDs
		return nil
	}
	friends := noopFriendRepo()
	friends.areFriendsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewTripService(trips, friends, noopUserRepo())
	input := validTripInput()
	input.InviteeIDs = []uint{2, 3}

	trip, err := svc.CreateTrip(context.Background(), 1, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID != 11 {
		t.Fatalf("expected reloaded trip 11, got %d", trip.ID)
	}
	if gotOwner != 1 || len(gotInvitees) != 2 {
		t.Fatalf("unexpected membership wiring: owner=%d invitees=%v", gotOwner, gotInvitees)
	}
}

func TestTripServiceGetTripRequiresMembership(t *testing.T) {
	svc := NewTripService(noopTripRepo(), noopFriendRepo(), noopUserRepo())
	_, err := svc.GetTrip(context.Background(), 1, 10)
	if !assertAppErrorCode(err, "FORBIDDEN") {
		t.Fatalf("expected forbidden error, got %#v", err)
	}
}

func TestTripServiceInviteMembersOwnerOnly(t *testing.T) {
	trips := noopTripRepo()
	trips.getMembershipFn = func(context.Context, uint, uint) (*models.TripMembership, error) {
		return &models.TripMembership{Role: models.TripRoleMember, Status: models.MembershipAccepted}, nil
	}
	svc := NewTripService(trips, noopFriendRepo(), noopUserRepo())

	_, err := svc.InviteMembers(context.Background(), 2, 10, []uint{3})
	if !assertAppErrorCode(err, "FORBIDDEN") {
		t.Fatalf("expected forbidden error, got %#v", err)
	}
}

func TestTripServiceInviteMembersFiltersSelf(t *testing.T) {
	var invited []uint
	trips := noopTripRepo()
	trips.getMembershipFn = func(context.Context, uint, uint) (*models.TripMembership, error) {
		return &models.TripMembership{Role: models.TripRoleOwner, Status: models.MembershipAccepted}, nil
	}
	trips.inviteMembersFn = func(_ context.Context, _ uint, userIDs []uint) error {
		invited = userIDs
		return nil
	}
	friends := noopFriendRepo()
	friends.areFriendsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewTripService(trips, friends, noopUserRepo())
	if _, err := svc.InviteMembers(context.Background(), 1, 10, []uint{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invited) != 1 || invited[0] != 2 {
		t.Fatalf("expected self to be filtered, got %v", invited)
	}
}

func TestTripServiceRespondToInvite(t *testing.T) {
	t.Run("no invitation", func(t *testing.T) {
		svc := NewTripService(noopTripRepo(), noopFriendRepo(), noopUserRepo())
		err := svc.RespondToInvite(context.Background(), 2, 10, true)
		if !assertAppErrorCode(err, "NOT_FOUND") {
			t.Fatalf("expected not found error, got %#v", err)
		}
	})

	t.Run("already answered", func(t *testing.T) {
		trips := noopTripRepo()
		trips.getMembershipFn = func(context.Context, uint, uint) (*models.TripMembership, error) {
			return &models.TripMembership{ID: 4, Status: models.MembershipAccepted}, nil
		}
		svc := NewTripService(trips, noopFriendRepo(), noopUserRepo())
		err := svc.RespondToInvite(context.Background(), 2, 10, true)
		if !assertAppErrorCode(err, "VALIDATION_ERROR") {
			t.Fatalf("expected validation error, got %#v", err)
		}
	})

	t.Run("accept", func(t *testing.T) {
		accepted := false
		trips := noopTripRepo()
		trips.getMembershipFn = func(context.Context, uint, uint) (*models.TripMembership, error) {
			return &models.TripMembership{ID: 4, Status: models.MembershipPending}, nil
		}
		trips.acceptInviteFn = func(_ context.Context, id uint) error {
			accepted = id == 4
			return nil
		}
		svc := NewTripService(trips, noopFriendRepo(), noopUserRepo())
		if err := svc.RespondToInvite(context.Background(), 2, 10, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !accepted {
			t.Fatal("accept was not forwarded to the repository")
		}
	})

	t.Run("decline deletes", func(t *testing.T) {
		declined := false
		trips := noopTripRepo()
		trips.getMembershipFn = func(context.Context, uint, uint) (*models.TripMembership, error) {
			return &models.TripMembership{ID: 4, Status: models.MembershipPending}, nil
		}
		trips.declineInviteFn = func(_ context.Context, id uint) error {
			declined = id == 4
			return nil
		}
		svc := NewTripService(trips, noopFriendRepo(), noopUserRepo())
		if err := svc.RespondToInvite(context.Background(), 2, 10, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !declined {
			t.Fatal("decline was not forwarded to the repository")
		}
	})
}

func TestTripServiceDeleteTripOwnerOnly(t *testing.T) {
	trips := noopTripRepo()
	trips.getMembershipFn = func(context.Context, uint, uint) (*models.TripMembership, error) {
		return &models.TripMembership{Role: models.TripRoleMember, Status: models.MembershipAccepted}, nil
	}
	svc := NewTripService(trips, noopFriendRepo(), noopUserRepo())

	err := svc.DeleteTrip(context.Background(), 2, 10)
	if !assertAppErrorCode(err, "FORBIDDEN") {
		t.Fatalf("expected forbidden error, got %#v", err)
	}
}

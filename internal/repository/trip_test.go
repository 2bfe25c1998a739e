package repository

import (
	"context"
	"testing"
	"time"

	"mex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrip(name string) *models.Trip {
	start := time.Now().AddDate(0, 1, 0)
	return &models.Trip{
		Name:            name,
		Destination:     "Marrakech",
		TravelStartDate: start,
		TravelEndDate:   start.AddDate(0, 0, 5),
	}
}

func TestTripRepository_CreateWithMembers(t *testing.T) {
	repo := NewTripRepository(testDB)
	ctx := context.Background()

	owner := createTestUser(t, "trip_owner")
	invitee := createTestUser(t, "trip_invitee")

	trip := newTestTrip("Group trip")
	err := repo.CreateWithMembers(ctx, trip, owner.ID, []uint{invitee.ID, owner.ID})
	require.NoError(t, err)
	require.NotZero(t, trip.ID)

	loaded, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Memberships, 2)

	byUser := make(map[uint]models.TripMembership)
	for _, m := range loaded.Memberships {
		byUser[m.UserID] = m
	}

	// Owner is ACCEPTED with the OWNER role; passing the owner in the
	// invitee list must not demote or duplicate them.
	assert.Equal(t, models.TripRoleOwner, byUser[owner.ID].Role)
	assert.Equal(t, models.MembershipAccepted, byUser[owner.ID].Status)

	assert.Equal(t, models.TripRoleMember, byUser[invitee.ID].Role)
	assert.Equal(t, models.MembershipPending, byUser[invitee.ID].Status)
}

func TestTripRepository_InviteMembersSkipsExisting(t *testing.T) {
	repo := NewTripRepository(testDB)
	ctx := context.Background()

	owner := createTestUser(t, "trip_inv_owner")
	member := createTestUser(t, "trip_inv_member")

	trip := newTestTrip("Invite test")
	require.NoError(t, repo.CreateWithMembers(ctx, trip, owner.ID, []uint{member.ID}))

	// Re-inviting an existing member and the owner is a no-op
	err := repo.InviteMembers(ctx, trip.ID, []uint{member.ID, owner.ID})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Memberships, 2)

	membership, err := repo.GetMembership(ctx, trip.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, membership)
	assert.Equal(t, models.TripRoleOwner, membership.Role)
}

func TestTripRepository_InviteResponses(t *testing.T) {
	repo := NewTripRepository(testDB)
	ctx := context.Background()

	owner := createTestUser(t, "trip_resp_owner")
	accepter := createTestUser(t, "trip_resp_accepter")
	decliner := createTestUser(t, "trip_resp_decliner")

	trip := newTestTrip("Response test")
	require.NoError(t, repo.CreateWithMembers(ctx, trip, owner.ID, []uint{accepter.ID, decliner.ID}))

	t.Run("AcceptInvite promotes to ACCEPTED", func(t *testing.T) {
		membership, err := repo.GetMembership(ctx, trip.ID, accepter.ID)
		require.NoError(t, err)
		require.NotNil(t, membership)

		require.NoError(t, repo.AcceptInvite(ctx, membership.ID))

		trips, err := repo.ListForUser(ctx, accepter.ID)
		assert.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, trip.ID, trips[0].ID)
	})

	t.Run("DeclineInvite removes the row", func(t *testing.T) {
		membership, err := repo.GetMembership(ctx, trip.ID, decliner.ID)
		require.NoError(t, err)
		require.NotNil(t, membership)

		require.NoError(t, repo.DeclineInvite(ctx, membership.ID))

		gone, err := repo.GetMembership(ctx, trip.ID, decliner.ID)
		assert.NoError(t, err)
		assert.Nil(t, gone)

		invites, err := repo.ListInvites(ctx, decliner.ID)
		assert.NoError(t, err)
		assert.Empty(t, invites)
	})

	t.Run("Pending invites are not listed as trips", func(t *testing.T) {
		// decliner already removed; check a fresh pending membership
		pending := createTestUser(t, "trip_resp_pending")
		require.NoError(t, repo.InviteMembers(ctx, trip.ID, []uint{pending.ID}))

		trips, err := repo.ListForUser(ctx, pending.ID)
		assert.NoError(t, err)
		assert.Empty(t, trips)

		invites, err := repo.ListInvites(ctx, pending.ID)
		assert.NoError(t, err)
		require.Len(t, invites, 1)
		assert.Equal(t, trip.ID, invites[0].TripID)
		assert.Equal(t, trip.Name, invites[0].Trip.Name)
	})
}

func TestTripRepository_DeleteCascades(t *testing.T) {
	tripRepo := NewTripRepository(testDB)
	suggestionRepo := NewSuggestionRepository(testDB)
	ctx := context.Background()

	owner := createTestUser(t, "trip_del_owner")
	member := createTestUser(t, "trip_del_member")

	trip := newTestTrip("Delete test")
	require.NoError(t, tripRepo.CreateWithMembers(ctx, trip, owner.ID, []uint{member.ID}))

	suggestions := []models.Suggestion{
		{TripID: trip.ID, Title: "Old town walk", Summary: "Souks and squares"},
		{TripID: trip.ID, Title: "Atlas day trip", Summary: "Mountains and valleys"},
	}
	require.NoError(t, suggestionRepo.CreateBatch(ctx, suggestions))

	require.NoError(t, tripRepo.Delete(ctx, trip.ID))

	_, err := tripRepo.GetByID(ctx, trip.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	var membershipCount int64
	testDB.Model(&models.TripMembership{}).Where("trip_id = ?", trip.ID).Count(&membershipCount)
	assert.Zero(t, membershipCount)

	remaining, err := suggestionRepo.ListForTrip(ctx, trip.ID)
	assert.NoError(t, err)
	assert.Empty(t, remaining)
}

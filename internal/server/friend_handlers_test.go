package server

import (
	"fmt"
	"net/http"
	"testing"

	"mex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestLifecycle(t *testing.T) {
	_, app := newTestServer(t)

	tokenA, idA := registerUser(t, app, "Amina", "amina@example.com")
	tokenB, idB := registerUser(t, app, "Karim", "karim@example.com")

	// A sends a request to B
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", idB), tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var request models.FriendRequest
	decodeBody(t, resp, &request)
	assert.Equal(t, idA, request.FromUserID)
	assert.Equal(t, idB, request.ToUserID)

	// A second request in either direction conflicts
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", idB), tokenA, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", idA), tokenB, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// B sees the request as incoming
	resp = doJSON(t, app, http.MethodGet, "/api/friends/requests", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var incoming []models.FriendRequest
	decodeBody(t, resp, &incoming)
	require.Len(t, incoming, 1)
	assert.Equal(t, request.ID, incoming[0].ID)

	// Only B can accept it
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", request.ID), tokenA, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/accept/%d", request.ID), tokenB, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Both friend lists now show the other user (symmetry)
	for _, tc := range []struct {
		token    string
		friendID uint
	}{
		{tokenA, idB},
		{tokenB, idA},
	} {
		resp = doJSON(t, app, http.MethodGet, "/api/friends/list", tc.token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var friends []models.User
		decodeBody(t, resp, &friends)
		require.Len(t, friends, 1)
		assert.Equal(t, tc.friendID, friends[0].ID)
	}

	// Status is now "friends" from both viewpoints
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", idB), tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &status)
	assert.Equal(t, models.FriendshipStatusFriends, status.Status)
}

func TestFriendRequestCannotTargetSelf(t *testing.T) {
	_, app := newTestServer(t)

	tokenA, idA := registerUser(t, app, "Amina", "amina@example.com")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", idA), tokenA, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRejectFriendRequestDeletesIt(t *testing.T) {
	_, app := newTestServer(t)

	tokenA, _ := registerUser(t, app, "Amina", "amina@example.com")
	tokenB, idB := registerUser(t, app, "Karim", "karim@example.com")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", idB), tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var request models.FriendRequest
	decodeBody(t, resp, &request)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/reject/%d", request.ID), tokenB, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// No friendship was created and the pair can try again
	resp = doJSON(t, app, http.MethodGet, "/api/friends/list", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []models.User
	decodeBody(t, resp, &friends)
	assert.Empty(t, friends)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/request/%d", idB), tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRemoveFriendClearsBothDirections(t *testing.T) {
	_, app := newTestServer(t)

	tokenA, idA := registerUser(t, app, "Amina", "amina@example.com")
	tokenB, idB := registerUser(t, app, "Karim", "karim@example.com")
	makeFriends(t, app, tokenA, idB, tokenB)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/remove/%d", idB), tokenA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	for _, token := range []string{tokenA, tokenB} {
		resp = doJSON(t, app, http.MethodGet, "/api/friends/list", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var friends []models.User
		decodeBody(t, resp, &friends)
		assert.Empty(t, friends)
	}

	// Removing a non-friend is a 404
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/remove/%d", idA), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestMutualFriends(t *testing.T) {
	_, app := newTestServer(t)

	tokenA, _ := registerUser(t, app, "Amina", "amina@example.com")
	tokenB, idB := registerUser(t, app, "Karim", "karim@example.com")
	tokenC, idC := registerUser(t, app, "Lina", "lina@example.com")

	// C is friends with both A and B
	makeFriends(t, app, tokenA, idC, tokenC)
	makeFriends(t, app, tokenB, idC, tokenC)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/friends/mutual/%d", idB), tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mutual []models.User
	decodeBody(t, resp, &mutual)
	require.Len(t, mutual, 1)
	assert.Equal(t, idC, mutual[0].ID)
}

package server

import (
	"net/http"
	"testing"

	"mex/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	_, app := newTestServer(t)

	token, userID := registerUser(t, app, "Amina", "amina@example.com")
	assert.NotEmpty(t, token)
	assert.NotZero(t, userID)

	// The token works against a protected route
	resp := doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	decodeBody(t, resp, &profile)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "amina@example.com", profile.Email)

	// Login with the right password
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "amina@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Wrong password is rejected without leaking which part was wrong
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "amina@example.com",
		"password": "WrongPassw0rd!!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Unknown email gets the same answer
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRegisterValidation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "missing fields",
			body:           map[string]string{"email": "a@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: map[string]string{
				"name":     "Karim",
				"email":    "karim@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: map[string]string{
				"name":     "Karim",
				"email":    "not-an-email",
				"password": testPassword,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, app := newTestServer(t)

	registerUser(t, app, "Amina", "dup@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Other",
		"email":    "dup@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	_, app := newTestServer(t)

	// No token at all
	resp := doJSON(t, app, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Garbage token
	resp = doJSON(t, app, http.MethodGet, "/api/profile", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// A token signed with another secret
	otherSrv := &Server{config: &config.Config{JWTSecret: "other_secret"}}
	token, err := otherSrv.generateToken(1)
	require.NoError(t, err)

	resp = doJSON(t, app, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

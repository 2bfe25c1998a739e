package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	email := fmt.Sprintf("create_%d@example.com", time.Now().UnixNano())
	user := &models.User{Email: email, Password: "hashed", Name: "Creator"}

	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)

	byEmail, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	email := fmt.Sprintf("dup_%d@example.com", time.Now().UnixNano())
	first := &models.User{Email: email, Password: "hashed", Name: "First"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Email: email, Password: "hashed", Name: "Second"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	repo := NewUserRepository(testDB)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Search(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	searcher := createTestUser(t, "searcher")
	target := &models.User{
		Email:    fmt.Sprintf("amina_%d@example.com", time.Now().UnixNano()),
		Password: "hashed",
		Name:     "Amina Zidane",
	}
	require.NoError(t, testDB.Create(target).Error)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		results, err := repo.Search(ctx, "amina zid", searcher.ID, 20)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, target.ID, results[0].ID)
	})

	t.Run("excludes the searcher", func(t *testing.T) {
		results, err := repo.Search(ctx, "searcher", searcher.ID, 20)
		require.NoError(t, err)
		for _, u := range results {
			assert.NotEqual(t, searcher.ID, u.ID)
		}
	})
}

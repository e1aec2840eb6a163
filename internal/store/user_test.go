package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luberoncellar/cellar-server/internal/domain"
	"github.com/luberoncellar/cellar-server/internal/store"
)

func testUser(id, email string) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hashed_password",
		DisplayName:  "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateUser(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("user-test123", "test@example.com")
	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	retrieved, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.DisplayName, retrieved.DisplayName)
}

func TestCreateUser_DuplicateID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-test123", "test@example.com")))

	err := s.CreateUser(ctx, testUser("user-test123", "different@example.com"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-test1", "test@example.com")))

	err := s.CreateUser(ctx, testUser("user-test2", "test@example.com"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateUser_EmailCaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-test1", "Test@Example.COM")))

	err := s.CreateUser(ctx, testUser("user-test2", "test@example.com"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetUser(context.Background(), "user-nonexistent")
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("user-test123", "Test@Example.COM")
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetUserByEmail(context.Background(), "nonexistent@example.com")
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateUser_Success(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("user-test123", "test@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	time.Sleep(10 * time.Millisecond)

	user.DisplayName = "Updated User"
	require.NoError(t, s.UpdateUser(ctx, user))

	updated, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated User", updated.DisplayName)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateUser_ChangeEmail(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	user := testUser("user-test123", "old@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	user.Email = "new@example.com"
	require.NoError(t, s.UpdateUser(ctx, user))

	_, err := s.GetUserByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	retrieved, err := s.GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
}

func TestUpdateUser_ChangeEmailConflict(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("user-test1", "user1@example.com")))

	user2 := testUser("user-test2", "user2@example.com")
	require.NoError(t, s.CreateUser(ctx, user2))

	user2.Email = "user1@example.com"
	err := s.UpdateUser(ctx, user2)
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdateUser_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.UpdateUser(context.Background(), testUser("user-nonexistent", "test@example.com"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/testutil"
)

func TestUserStore_CreateAndGet(t *testing.T) {
	s := NewUserStore(testutil.OpenTestDB(t))
	ctx := context.Background()

	u := &models.User{ID: "u-1", Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, s.Create(ctx, u))

	byEmail, err := s.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)
	assert.False(t, byEmail.CreatedAt.IsZero())

	byID, err := s.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = s.GetByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserStore_Uniqueness(t *testing.T) {
	s := NewUserStore(testutil.OpenTestDB(t))
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &models.User{ID: "u-1", Username: "alice", Email: "a@x.com", Password: "h"}))

	err := s.Create(ctx, &models.User{ID: "u-2", Username: "alice", Email: "other@x.com", Password: "h"})
	assert.ErrorIs(t, err, models.ErrConflict)

	err = s.Create(ctx, &models.User{ID: "u-3", Username: "other", Email: "a@x.com", Password: "h"})
	assert.ErrorIs(t, err, models.ErrConflict)

	exists, err := s.ExistsByEmailOrUsername(ctx, "a@x.com", "nobody")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByEmailOrUsername(ctx, "z@x.com", "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByEmailOrUsername(ctx, "z@x.com", "zed")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserStore_DeleteMissing(t *testing.T) {
	s := NewUserStore(testutil.OpenTestDB(t))
	assert.ErrorIs(t, s.Delete(context.Background(), "nope"), models.ErrNotFound)
}

func TestUserStore_EmailAndUsernameIgnoreCase(t *testing.T) {
	s := NewUserStore(testutil.OpenTestDB(t))
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &models.User{ID: "u-1", Username: "Alice", Email: "Alice@X.com", Password: "h"}))

	u, err := s.GetByEmail(ctx, "alice@x.COM")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "Alice@X.com", u.Email)

	exists, err := s.ExistsByEmailOrUsername(ctx, "a@x.com", "ALICE")
	require.NoError(t, err)
	assert.True(t, exists)

	err = s.Create(ctx, &models.User{ID: "u-2", Username: "bob", Email: "alice@x.com", Password: "h"})
	assert.ErrorIs(t, err, models.ErrConflict)

	err = s.Create(ctx, &models.User{ID: "u-3", Username: "aLiCe", Email: "other@x.com", Password: "h"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

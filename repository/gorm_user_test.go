package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/models"
)

func TestGormUser_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	user := models.NewUser("alice", "Alice@Example.com", "hashed")
	user.Profile.SocialLinks.GitHub.URL = "https://github.com/alice"
	require.NoError(t, repo.Create(ctx, user))

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "https://github.com/alice", byName.Profile.SocialLinks.GitHub.URL)
	assert.True(t, byName.Profile.SocialLinks.YouTube.Visible)
	assert.True(t, byName.Profile.IsActive)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUser_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, models.NewUser("alice", "a@example.com", "x")))
	assert.ErrorIs(t, repo.Create(ctx, models.NewUser("alice", "other@example.com", "x")), ErrDuplicate)
	assert.ErrorIs(t, repo.Create(ctx, models.NewUser("bob", "a@example.com", "x")), ErrDuplicate)
}

func TestGormUser_SaveKeepsFalseFlags(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	user := models.NewUser("alice", "a@example.com", "x")
	require.NoError(t, repo.Create(ctx, user))

	user.Profile.Bio = "writer"
	user.Profile.IsPublic = false
	user.Profile.IsActive = false
	user.Profile.SocialLinks.Gmail.Visible = false
	require.NoError(t, repo.Save(ctx, user))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "writer", got.Profile.Bio)
	assert.False(t, got.Profile.IsPublic)
	assert.False(t, got.Profile.IsActive)
	assert.False(t, got.Profile.SocialLinks.Gmail.Visible)
	assert.True(t, got.Profile.SocialLinks.GitHub.Visible)

	ghost := models.NewUser("ghost", "g@example.com", "x")
	assert.ErrorIs(t, repo.Save(ctx, ghost), ErrNotFound)
}

func TestGormUser_ActiveIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	ids, err := repo.ActiveIDs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	active := models.NewUser("alice", "a@example.com", "x")
	inactive := models.NewUser("bob", "b@example.com", "x")
	inactive.Profile.IsActive = false
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	ids, err = repo.ActiveIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{active.ID}, ids)
}

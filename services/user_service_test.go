package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/errs"
	"inkpost/models"
)

func TestUserService_GetPublicProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	got, err := env.user.GetPublicProfile(ctx, "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = env.user.GetPublicProfile(ctx, "nobody", nil)
	assert.True(t, errs.Is(err, errs.KindNotFound))

	_, err = env.user.UpdateProfile(ctx, alice.ID, models.ProfilePatch{IsPublic: boolPtr(false)})
	require.NoError(t, err)

	_, err = env.user.GetPublicProfile(ctx, "alice", &bob)
	assert.True(t, errs.Is(err, errs.KindForbidden))
	_, err = env.user.GetPublicProfile(ctx, "alice", nil)
	assert.True(t, errs.Is(err, errs.KindForbidden))

	got, err = env.user.GetPublicProfile(ctx, "alice", &alice)
	require.NoError(t, err)
	assert.False(t, got.Profile.IsPublic)
}

func TestUserService_InactiveProfileIsNotFoundEvenForSelf(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	require.NoError(t, env.user.Deactivate(ctx, alice.ID))

	_, err := env.user.GetPublicProfile(ctx, "alice", &alice)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	_, err = env.user.GetPublicProfile(ctx, "alice", nil)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestUserService_UpdateProfileMergesSocialLinks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	profile, err := env.user.UpdateProfile(ctx, alice.ID, models.ProfilePatch{
		Bio: strPtr("I write about Go."),
		SocialLinks: map[string]models.SocialLinkPatch{
			models.SocialGitHub: {URL: strPtr("https://github.com/alice")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "I write about Go.", profile.Bio)
	assert.Equal(t, "https://github.com/alice", profile.SocialLinks.GitHub.URL)
	assert.True(t, profile.SocialLinks.GitHub.Visible)

	profile, err = env.user.UpdateProfile(ctx, alice.ID, models.ProfilePatch{
		SocialLinks: map[string]models.SocialLinkPatch{
			models.SocialGitHub: {Visible: boolPtr(false)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/alice", profile.SocialLinks.GitHub.URL)
	assert.False(t, profile.SocialLinks.GitHub.Visible)
	assert.Equal(t, "I write about Go.", profile.Bio)

	stored, err := env.user.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, stored.Profile.SocialLinks.GitHub.Visible)
	assert.True(t, stored.Profile.SocialLinks.LinkedIn.Visible)

	_, err = env.user.UpdateProfile(ctx, alice.ID, models.ProfilePatch{
		SocialLinks: map[string]models.SocialLinkPatch{"myspace": {URL: strPtr("x")}},
	})
	assert.True(t, errs.Is(err, errs.KindBadRequest))

	_, err = env.user.UpdateProfile(ctx, "ghost", models.ProfilePatch{Bio: strPtr("x")})
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/errs"
	"inkpost/models"
	"inkpost/utils"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	auth := NewAuthService(env.users, jwt, zerolog.Nop())

	user, token, err := auth.Register(ctx, models.RegisterRequest{
		Username: "alice", Email: "Alice@Example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password)

	identity, err := jwt.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.Identity(), identity)

	_, _, err = auth.Register(ctx, models.RegisterRequest{
		Username: "alice", Email: "second@example.com", Password: "hunter22",
	})
	assert.True(t, errs.Is(err, errs.KindConflict))

	got, token, err := auth.Login(ctx, models.LoginRequest{Email: "ALICE@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, err = auth.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.True(t, errs.Is(err, errs.KindUnauthorized))

	_, _, err = auth.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.True(t, errs.Is(err, errs.KindUnauthorized))
}

func TestAuthService_LoginRefusesDeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	auth := NewAuthService(env.users, utils.NewJWTManager("test-secret", time.Hour), zerolog.Nop())

	user, _, err := auth.Register(ctx, models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	require.NoError(t, env.user.Deactivate(ctx, user.ID))

	_, _, err = auth.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "hunter22"})
	assert.True(t, errs.Is(err, errs.KindForbidden))
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/models"
)

func TestJWT_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateJWT(models.Identity{ID: "u-1", Username: "alice"})
	require.NoError(t, err)

	identity, err := m.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: "u-1", Username: "alice"}, identity)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateJWT(models.Identity{ID: "u-1"})
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateJWT(models.Identity{ID: "u-1"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateJWT(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_RejectsMissingUserID(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateJWT(models.Identity{})
	require.NoError(t, err)

	_, err = m.ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWTManager("test-secret", time.Hour).ValidateJWT("not-a-token")
	assert.Error(t, err)
}

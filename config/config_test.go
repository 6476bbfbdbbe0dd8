package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "JWT_TTL", "CORS_ALLOWED_ORIGINS", "COOKIE_SECURE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.CookieSecure)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()

	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")

	assert.Equal(t, 24*time.Hour, Load().JWTTTL)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.StoreDriver = "cassandra"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "require"}

	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", cfg.DatabaseURL())
}

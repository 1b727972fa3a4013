package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_SECRET_KEY", "access-secret")
	t.Setenv("REFRESH_SECRET_KEY", "refresh-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blog")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int64(10485760), cfg.MaxUploadSize)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	t.Setenv("ACCESS_SECRET_KEY", "")
	t.Setenv("REFRESH_SECRET_KEY", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blog")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsSharedSecret(t *testing.T) {
	t.Setenv("ACCESS_SECRET_KEY", "same-secret")
	t.Setenv("REFRESH_SECRET_KEY", "same-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blog")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("ACCESS_SECRET_KEY", "access-secret")
	t.Setenv("REFRESH_SECRET_KEY", "refresh-secret")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_RPM", "not-a-number")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.RateLimitRPM)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
}

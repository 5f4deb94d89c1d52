package config_test

import (
	"testing"

	"github.com/shahadathhs/blogman/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blogman")
	t.Setenv("JWT_SECRET", "test-jwt-secret-at-least-32-chars!!")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, 3600, cfg.SessionTTLSec)
	assert.Equal(t, "@every 10m", cfg.JanitorSchedule)
}

func TestLoad_MissingDatabaseURL_Fails(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret-at-least-32-chars!!")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ShortJWTSecret_Fails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blogman")
	t.Setenv("JWT_SECRET", "too-short")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProductionRequiresMailAndGoogle(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")

	_, err := config.Load()
	assert.Error(t, err, "production without RESEND/GOOGLE vars must fail validation")

	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("RESEND_FROM", "no-reply@blogman.app")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id.apps.googleusercontent.com")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
}

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "xrnode")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "r")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "XRNODE:", cfg.Event.QRPrefix)
	assert.Equal(t, 2*time.Second, cfg.Event.ScanDebounce)
	assert.Equal(t, "p003", cfg.Event.DefaultViewer)
	assert.Equal(t, 600*time.Second, cfg.Matching.CacheTTL)
	assert.Equal(t, 4, cfg.Directory.Workers)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("SCAN_DEBOUNCE", "500ms")
	t.Setenv("DIRECTORY_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Event.ScanDebounce)
	assert.Equal(t, 8, cfg.Directory.Workers)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("DIRECTORY_WORKERS", "many")

	_, err := Load()
	assert.ErrorContains(t, err, "DIRECTORY_WORKERS")
}

func TestLoad_DatabaseNeedsNameAndUser(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_USER", "")

	_, err := Load()
	assert.ErrorIs(t, err, errMissingRequiredEnv)
}

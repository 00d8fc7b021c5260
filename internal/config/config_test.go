package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvDefaults(t *testing.T) {
	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendNoAds, cfg.RecipeBackend)
	assert.Equal(t, "https://noadsrecipe.com", cfg.NoAdsBaseURL)
	assert.False(t, cfg.NoAdsInsecureTLS)
	assert.False(t, cfg.SingleTenant)
	assert.Equal(t, "1234", cfg.DefaultPin)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookie)
}

func TestNewFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RECIPE_BACKEND", BackendScrape)
	t.Setenv("SINGLE_TENANT", "true")
	t.Setenv("NOADS_INSECURE_TLS", "1")
	t.Setenv("SECURE_COOKIE", "false")
	t.Setenv("SESSION_TTL", "24h")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendScrape, cfg.RecipeBackend)
	assert.True(t, cfg.SingleTenant)
	assert.True(t, cfg.NoAdsInsecureTLS)
	assert.False(t, cfg.SecureCookie)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestNewFromEnvUnknownBackend(t *testing.T) {
	t.Setenv("RECIPE_BACKEND", "witchcraft")
	_, err := NewFromEnv()
	assert.Error(t, err)
}

func TestGetBoolBadValue(t *testing.T) {
	t.Setenv("SINGLE_TENANT", "banana")
	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.SingleTenant)
}

func TestGetDurationBadValue(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)

	t.Setenv("SESSION_TTL", "-1h")
	cfg, err = NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://api.spoonacular.com", cfg.Spoonacular.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Spoonacular.Timeout)
	assert.Equal(t, 8, cfg.Spoonacular.SearchNumber)
	assert.Equal(t, 5, cfg.Spoonacular.DetailLimit)
	assert.Equal(t, 2, cfg.Spoonacular.Ranking)
	assert.True(t, cfg.Spoonacular.IgnorePantry)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SPOONACULAR_API_KEY", "abc123def456")
	t.Setenv("SPOONACULAR_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("APP_SPOONACULAR_SEARCH_NUMBER", "6")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "abc123def456", cfg.Spoonacular.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Spoonacular.Timeout)
	assert.Equal(t, 6, cfg.Spoonacular.SearchNumber)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"detail limit above search number": {"SPOONACULAR_DETAIL_LIMIT": "9"},
		"zero detail limit":                {"SPOONACULAR_DETAIL_LIMIT": "0"},
		"unknown cache backend":            {"CACHE_ENABLED": "true", "CACHE_BACKEND": "memcached"},
		"zero rate limit":                  {"RATE_LIMIT_REQUESTS": "0"},
		"zero timeout":                     {"SPOONACULAR_TIMEOUT": "0s"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestRateLimitDisabledSkipsValidation(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey(""))
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}

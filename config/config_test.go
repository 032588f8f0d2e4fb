package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, ":8000", config.ListenAddr)
	assert.Equal(t, "https://gjirafa50.com", config.UpstreamBaseURL)
	assert.Equal(t, 30*time.Second, config.UpstreamTimeout)
	assert.Equal(t, "valid_api_keys.json", config.APIKeysFile)
	assert.Equal(t, time.Duration(0), config.CategoryRefreshInterval)
	assert.Equal(t, "", config.RedisAddr)
	assert.Equal(t, 1, config.RedisStreamCount)
	assert.NoError(t, config.Validate())

	// Test with environment variables
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("UPSTREAM_BASE_URL", "https://gjirafa50.mk")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")
	t.Setenv("CATEGORY_REFRESH_INTERVAL_SECONDS", "600")
	t.Setenv("REDIS_ADDR", "redis.example.com:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("GJIRAFA_ENVIRONMENT", "production")

	config = LoadConfig()
	assert.Equal(t, ":9090", config.ListenAddr)
	assert.Equal(t, "https://gjirafa50.mk", config.UpstreamBaseURL)
	assert.Equal(t, 5*time.Second, config.UpstreamTimeout)
	assert.Equal(t, 10*time.Minute, config.CategoryRefreshInterval)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 2, config.RedisDB)
	assert.True(t, config.IsProduction())
	assert.NoError(t, config.Validate())
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "soon")

	config := LoadConfig()
	assert.Equal(t, 30*time.Second, config.UpstreamTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty listen address", func(c *Config) { c.ListenAddr = "" }},
		{"relative upstream", func(c *Config) { c.UpstreamBaseURL = "gjirafa50.com" }},
		{"zero timeout", func(c *Config) { c.UpstreamTimeout = 0 }},
		{"empty keys file", func(c *Config) { c.APIKeysFile = "" }},
		{"negative refresh", func(c *Config) { c.CategoryRefreshInterval = -time.Second }},
		{"redis without stream", func(c *Config) { c.RedisAddr = "localhost:6379"; c.RedisStream = "" }},
		{"redis without streams", func(c *Config) { c.RedisAddr = "localhost:6379"; c.RedisStreamCount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := LoadConfig()
			tt.modify(config)
			assert.Error(t, config.Validate())
		})
	}
}

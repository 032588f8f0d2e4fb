package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// HTTP server configuration
	ListenAddr string

	// Upstream site configuration
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// API-key store
	APIKeysFile string

	// Category snapshot refresh, zero disables the refresh worker
	CategoryRefreshInterval time.Duration

	// Redis configuration, an empty address disables publishing
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Logging
	LogLevel string
	LogFile  string

	// Environment
	Environment string
}

// Load reads a .env file if present and then loads the configuration
func Load() *Config {
	_ = godotenv.Load()
	return LoadConfig()
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		ListenAddr:              getEnv("LISTEN_ADDR", ":8000"),
		UpstreamBaseURL:         getEnv("UPSTREAM_BASE_URL", "https://gjirafa50.com"),
		UpstreamTimeout:         time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		APIKeysFile:             getEnv("API_KEYS_FILE", "valid_api_keys.json"),
		CategoryRefreshInterval: time.Duration(getEnvInt("CATEGORY_REFRESH_INTERVAL_SECONDS", 0)) * time.Second,
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisDB:                 getEnvInt("REDIS_DB", 0),
		RedisStream:             getEnv("REDIS_STREAM", "gjirafa50"),
		RedisStreamCount:        getEnvInt("REDIS_STREAM_COUNT", 1),
		RedisStreamMaxLength:    getEnvInt("REDIS_STREAM_MAX_LENGTH", 100),
		LogLevel:                getEnv("LOG_LEVEL", ""),
		LogFile:                 getEnv("LOG_FILE", ""),
		Environment:             getEnv("GJIRAFA_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	u, err := url.Parse(c.UpstreamBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid upstream base url %q", c.UpstreamBaseURL)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.UpstreamTimeout)
	}
	if c.APIKeysFile == "" {
		return fmt.Errorf("api keys file must not be empty")
	}
	if c.CategoryRefreshInterval < 0 {
		return fmt.Errorf("category refresh interval must not be negative")
	}
	if c.RedisAddr != "" {
		if c.RedisStream == "" {
			return fmt.Errorf("redis stream must not be empty when redis is enabled")
		}
		if c.RedisStreamCount < 1 {
			return fmt.Errorf("redis stream count must be at least 1, got %d", c.RedisStreamCount)
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

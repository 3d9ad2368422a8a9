// Package config provides configuration loading and validation for the service.
// All configuration comes from environment variables read once at process start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the full service configuration.
type Config struct {
	// HTTP
	Port   int
	AppEnv string // "production" suppresses error detail in responses

	// Backend
	GeminiAPIKey      string
	GeminiModel       string
	GenerationTimeout time.Duration

	// Identity check
	PIN string // shared secret; empty disables the check

	// Quota
	RedisAddr     string // empty selects the in-memory counter
	RedisPassword string
	RedisDB       int
	DailyLimit    int64
	QuotaWindow   time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from the environment.
// GEMINI_API_KEY is required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		AppEnv:            getEnvString("APP_ENV", "development"),
		GeminiAPIKey:      getEnvString("GEMINI_API_KEY", ""),
		GeminiModel:       getEnvString("GEMINI_MODEL", "gemini-1.5-flash"),
		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", 55*time.Second),
		PIN:               getEnvString("RESUME_PIN", ""),
		RedisAddr:         getEnvString("REDIS_ADDR", ""),
		RedisPassword:     getEnvString("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		DailyLimit:        int64(getEnvInt("DAILY_LIMIT", 50)),
		QuotaWindow:       getEnvDuration("QUOTA_WINDOW", 24*time.Hour),
		LogLevel:          getEnvString("LOG_LEVEL", "info"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.DailyLimit <= 0 {
		return nil, fmt.Errorf("DAILY_LIMIT must be positive, got %d", cfg.DailyLimit)
	}
	if cfg.QuotaWindow <= 0 {
		return nil, fmt.Errorf("QUOTA_WINDOW must be positive, got %s", cfg.QuotaWindow)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

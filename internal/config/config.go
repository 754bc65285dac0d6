// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
)

// Config holds all runtime configuration for the matcher service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	DigestCron  string // cron spec for the daily digest build, e.g. "0 9 * * *"
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	port := os.Getenv("MATCHER_PORT")
	if port == "" {
		port = "8083"
	}

	cronSpec := os.Getenv("DIGEST_CRON")
	if cronSpec == "" {
		cronSpec = "0 9 * * *"
	}

	return &Config{
		Port:        port,
		DatabaseURL: dbURL,
		RedisURL:    redisURL,
		DigestCron:  cronSpec,
	}, nil
}

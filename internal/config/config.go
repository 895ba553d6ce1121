// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the listing service.
type Config struct {
	Port                   string
	BackendBaseURL         string // job-board REST API root, e.g. http://localhost:8080/api/v1
	BackendToken           string // optional bearer token for the backend
	DatabaseURL            string
	RedisURL               string
	PageSize               int // listing page size
	RefreshIntervalMinutes int // how often collections are re-fetched
	SnapshotTTLHours       int // Redis snapshot lifetime
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	backendURL := os.Getenv("BACKEND_BASE_URL")
	if backendURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	pageSize := 6
	if s := os.Getenv("PAGE_SIZE"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("PAGE_SIZE must be a positive integer, got %q", s)
		}
		pageSize = v
	}

	interval := 15
	if s := os.Getenv("REFRESH_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("REFRESH_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		interval = v
	}

	ttl := 24
	if s := os.Getenv("SNAPSHOT_TTL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SNAPSHOT_TTL_HOURS must be a positive integer, got %q", s)
		}
		ttl = v
	}

	port := os.Getenv("LISTING_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:                   port,
		BackendBaseURL:         backendURL,
		BackendToken:           os.Getenv("BACKEND_TOKEN"),
		DatabaseURL:            dbURL,
		RedisURL:               redisURL,
		PageSize:               pageSize,
		RefreshIntervalMinutes: interval,
		SnapshotTTLHours:       ttl,
	}, nil
}

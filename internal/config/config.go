// Package config reads service settings from environment variables, with a
// .env file honored in development via godotenv.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	DatabasePath    string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// AllowWrite gates the record-entry path. When false the registry is a
	// public read-only mirror: browsing, reports, export, and the map keep
	// working, but submissions are refused.
	AllowWrite bool

	// Mapbox geocoding configuration. Enrichment is optional and default-off.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// MapboxLocality is appended to forward-geocode queries so bare place
	// names resolve inside the municipality.
	MapboxLocality string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	allowWrite := true
	if v := os.Getenv("ALLOW_WRITE"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid ALLOW_WRITE")
		}
		allowWrite = parsed
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		DatabasePath:    envOrDefault("DATABASE_PATH", "./data/sucesos.db"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		AllowWrite:      allowWrite,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),
		MapboxLocality:  envOrDefault("MAPBOX_LOCALITY", "Torreón, Coahuila"),
	}

	if cfg.DatabasePath == "" {
		return nil, errors.New("DATABASE_PATH is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

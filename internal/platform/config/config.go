// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Engine) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/mediatrack/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the Mediatrack API server and
// the achievements operator tool.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Public key used to verify access tokens issued by the auth service.
	// Only the API server needs it; the operator tool never verifies tokens.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Achievement engine
	ActivityWindow     time.Duration `env:"ACTIVITY_WINDOW"          envDefault:"24h"`
	AchievementWorkers int           `env:"ACHIEVEMENT_WORKERS"      envDefault:"1"`
	InsertChunkSize    int           `env:"ACHIEVEMENT_INSERT_CHUNK" envDefault:"5000"`
	CalculationLockTTL time.Duration `env:"CALCULATION_LOCK_TTL"     envDefault:"30m"`

	// Observability
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values that would make the engine misbehave at runtime.
func (c *Config) validate() error {
	if c.AchievementWorkers < 1 {
		return fmt.Errorf("config: ACHIEVEMENT_WORKERS must be at least 1, got %d", c.AchievementWorkers)
	}
	if c.InsertChunkSize < 1 {
		return fmt.Errorf("config: ACHIEVEMENT_INSERT_CHUNK must be at least 1, got %d", c.InsertChunkSize)
	}
	if c.ActivityWindow <= 0 {
		return fmt.Errorf("config: ACTIVITY_WINDOW must be positive, got %s", c.ActivityWindow)
	}
	// Last-seen entries older than the retention are pruned, so a longer
	// window would silently miss users.
	if c.ActivityWindow > constants.ActivityRetention {
		return fmt.Errorf("config: ACTIVITY_WINDOW must not exceed the %s activity retention, got %s", constants.ActivityRetention, c.ActivityWindow)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits EXTRA_ORIGINS on commas, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

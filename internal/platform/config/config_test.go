// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/internal/platform/config"
	"github.com/taibuivan/mediatrack/internal/platform/constants"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mediatrack")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
}

/*
TestLoad_Defaults verifies engine defaults when only required keys are set.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.ActivityWindow)
	assert.Equal(t, 1, cfg.AchievementWorkers)
	assert.Equal(t, 5000, cfg.InsertChunkSize)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_MissingRequired verifies that a missing DSN is reported.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_InvalidEngineSettings checks the engine-specific guards.
*/
func TestLoad_InvalidEngineSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero_workers", "ACHIEVEMENT_WORKERS", "0"},
		{"zero_chunk", "ACHIEVEMENT_INSERT_CHUNK", "0"},
		{"negative_window", "ACTIVITY_WINDOW", "-1h"},
		{"window_beyond_retention", "ACTIVITY_WINDOW", "721h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_WindowAtRetention(t *testing.T) {
	setRequired(t)
	t.Setenv("ACTIVITY_WINDOW", constants.ActivityRetention.String())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, constants.ActivityRetention, cfg.ActivityWindow)
}

func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://staging.example.com, ,https://admin.example.com "}
	assert.Equal(t, []string{"https://staging.example.com", "https://admin.example.com"}, cfg.AllowedOrigins())

	assert.Empty(t, (&config.Config{}).AllowedOrigins())
}

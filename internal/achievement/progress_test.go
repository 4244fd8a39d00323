// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/internal/achievement"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		threshold float64
		want      float64
	}{
		{"partial", 150, 400, 37.5},
		{"exact", 400, 400, 100},
		{"overshoot_clamped", 900, 400, 100},
		{"negative_clamped", -5, 400, 0},
		{"zero_threshold", 10, 0, 0},
		{"negative_threshold", 10, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, achievement.ProgressPercent(tt.value, tt.threshold), 1e-9)
		})
	}
}

/*
TestEvaluate covers first observations, completion transitions and the
monotonic rule.
*/
func TestEvaluate(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)

	t.Run("new_incomplete", func(t *testing.T) {
		next := achievement.Evaluate(nil, 150, 400, first)
		assert.False(t, next.Completed)
		assert.Nil(t, next.CompletedAt)
		assert.Equal(t, 37.5, next.Progress)
		assert.Equal(t, float64(150), next.Count)
		assert.Equal(t, first, next.LastCalculatedAt)
	})

	t.Run("new_completed", func(t *testing.T) {
		next := achievement.Evaluate(nil, 150, 100, first)
		assert.True(t, next.Completed)
		require.NotNil(t, next.CompletedAt)
		assert.Equal(t, first, *next.CompletedAt)
		assert.Equal(t, float64(100), next.Progress)
	})

	t.Run("zero_threshold_completes", func(t *testing.T) {
		next := achievement.Evaluate(nil, 0, 0, first)
		assert.True(t, next.Completed)
		assert.Equal(t, float64(100), next.Progress)
	})

	t.Run("transition_sets_completed_at_once", func(t *testing.T) {
		previous := achievement.Evaluate(nil, 50, 100, first)
		next := achievement.Evaluate(&previous, 100, 100, later)
		require.NotNil(t, next.CompletedAt)
		assert.Equal(t, later, *next.CompletedAt)

		again := achievement.Evaluate(&next, 120, 100, later.Add(time.Hour))
		assert.Equal(t, later, *again.CompletedAt)
	})

	t.Run("drop_keeps_completion", func(t *testing.T) {
		previous := achievement.Evaluate(nil, 120, 100, first)
		next := achievement.Evaluate(&previous, 10, 100, later)
		assert.True(t, next.Completed)
		assert.Equal(t, first, *next.CompletedAt)
		assert.Equal(t, float64(100), next.Progress)
		assert.Equal(t, float64(10), next.Count)
		assert.Equal(t, later, next.LastCalculatedAt)
	})

	t.Run("near_threshold_stays_below_full", func(t *testing.T) {
		next := achievement.Evaluate(nil, 399.9999, 400, first)
		assert.False(t, next.Completed)
		assert.Nil(t, next.CompletedAt)
		assert.Equal(t, 99.99, next.Progress)
	})

	t.Run("incomplete_drop_lowers_progress", func(t *testing.T) {
		previous := achievement.Evaluate(nil, 80, 100, first)
		next := achievement.Evaluate(&previous, 40, 100, later)
		assert.False(t, next.Completed)
		assert.Equal(t, float64(40), next.Progress)
	})
}

func TestRarityPercent(t *testing.T) {
	assert.Equal(t, float64(0), achievement.RarityPercent(5, 0))
	assert.Equal(t, float64(0), achievement.RarityPercent(0, 10))
	assert.Equal(t, float64(25), achievement.RarityPercent(1, 4))
	assert.Equal(t, float64(100), achievement.RarityPercent(12, 10))
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		raw     string
		want    achievement.Difficulty
		wantErr bool
	}{
		{"bronze", achievement.DifficultyBronze, false},
		{" Gold ", achievement.DifficultyGold, false},
		{"4", achievement.DifficultyPlatinum, false},
		{"0", 0, true},
		{"diamond", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := achievement.ParseDifficulty(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, achievement.ErrUnknownTier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

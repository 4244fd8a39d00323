// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"math"
	"time"
)

// maxIncompleteProgress keeps an unfinished tier from displaying 100.
const maxIncompleteProgress = 99.99

// These functions are the reference semantics of the progress upsert. The
// Postgres store expresses the same rules in SQL (see store_postgres_progress.go).

// ProgressPercent returns value/threshold as a percentage clamped to [0, 100].
// A non-positive threshold yields 0.
func ProgressPercent(value, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	percent := value / threshold * 100
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return percent
	}
}

// Evaluate computes the next progress state of a tier for an observed value.
//
// Completion is monotonic: once completed, a row stays completed with its
// original CompletedAt and a progress of 100, even if value drops. Count
// always reflects the latest observation. Only completed rows reach 100.
func Evaluate(previous *UserProgress, value, threshold float64, now time.Time) UserProgress {
	next := UserProgress{Count: value, LastCalculatedAt: now}
	if previous != nil {
		next.ID = previous.ID
		next.UserID = previous.UserID
		next.AchievementID = previous.AchievementID
		next.TierID = previous.TierID
		next.CompletedAt = previous.CompletedAt
	}

	reached := value >= threshold
	wasCompleted := previous != nil && previous.Completed

	next.Completed = wasCompleted || reached
	if reached && !wasCompleted {
		completedAt := now
		next.CompletedAt = &completedAt
	}

	if next.Completed {
		next.Progress = 100
	} else {
		next.Progress = math.Min(ProgressPercent(value, threshold), maxIncompleteProgress)
	}

	return next
}

// RarityPercent returns the share of active users who completed a tier.
// Zero active users yields 0.
func RarityPercent(completed, active int64) float64 {
	if active <= 0 || completed <= 0 {
		return 0
	}
	percent := float64(completed) / float64(active) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

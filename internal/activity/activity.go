// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity records when authenticated users were last seen and answers
"who was active since t".

The achievement engine consumes [Tracker.ActiveSince] to resolve the
"active" user scope. Writes come from the HTTP middleware and are throttled
per user so a chatty client costs at most one write per interval.
*/
package activity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/mediatrack/internal/platform/constants"
)

// Store persists last-seen timestamps.
type Store interface {
	/*
		Record stores at as the last-seen time of userID.

		Returns:
		  - error: Storage failures
	*/
	Record(ctx context.Context, userID string, at time.Time) error

	/*
		Since lists the users last seen at or after since.

		Returns:
		  - []string: User ids, unordered
		  - error: Storage failures
	*/
	Since(ctx context.Context, since time.Time) ([]string, error)

	/*
		PruneBefore removes entries older than before.

		Returns:
		  - int64: Entries removed
		  - error: Storage failures
	*/
	PruneBefore(ctx context.Context, before time.Time) (int64, error)
}

// Options tunes a [Tracker]. Zero values fall back to the platform constants.
type Options struct {
	TouchInterval time.Duration
	Retention     time.Duration
	Clock         func() time.Time
}

// Tracker throttles writes to a [Store] and prunes stale entries on read.
type Tracker struct {
	store    Store
	logger   *slog.Logger
	interval time.Duration
	keep     time.Duration
	now      func() time.Time

	mu      sync.Mutex
	touched map[string]time.Time
}

// NewTracker constructs a [Tracker] over store.
func NewTracker(store Store, logger *slog.Logger, options Options) *Tracker {
	if options.TouchInterval <= 0 {
		options.TouchInterval = constants.ActivityTouchInterval
	}
	if options.Retention <= 0 {
		options.Retention = constants.ActivityRetention
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}

	return &Tracker{
		store:    store,
		logger:   logger,
		interval: options.TouchInterval,
		keep:     options.Retention,
		now:      options.Clock,
		touched:  make(map[string]time.Time),
	}
}

// # Writes

/*
Touch records userID as seen now, unless it was recorded within the touch
interval.

Returns:
  - error: Storage failures (the throttle entry is rolled back)
*/
func (tracker *Tracker) Touch(ctx context.Context, userID string) error {
	now := tracker.now()

	tracker.mu.Lock()
	last, seen := tracker.touched[userID]
	if seen && now.Sub(last) < tracker.interval {
		tracker.mu.Unlock()
		return nil
	}
	tracker.touched[userID] = now
	tracker.evictLocked(now)
	tracker.mu.Unlock()

	if err := tracker.store.Record(ctx, userID, now); err != nil {
		tracker.mu.Lock()
		if seen {
			tracker.touched[userID] = last
		} else {
			delete(tracker.touched, userID)
		}
		tracker.mu.Unlock()
		return err
	}
	return nil
}

// evictLocked drops throttle entries that can no longer suppress a write.
func (tracker *Tracker) evictLocked(now time.Time) {
	if len(tracker.touched) < 4096 {
		return
	}
	for userID, at := range tracker.touched {
		if now.Sub(at) >= tracker.interval {
			delete(tracker.touched, userID)
		}
	}
}

// # Reads

/*
ActiveSince lists the users seen at or after since.

Description: Entries older than the retention period are pruned first. A
prune failure is logged and does not fail the read.
*/
func (tracker *Tracker) ActiveSince(ctx context.Context, since time.Time) ([]string, error) {
	cutoff := tracker.now().Add(-tracker.keep)

	pruned, err := tracker.store.PruneBefore(ctx, cutoff)
	if err != nil {
		tracker.logger.Warn("activity_prune_failed", slog.Any("error", err))
	} else if pruned > 0 {
		tracker.logger.Debug("activity_pruned", slog.Int64("entries", pruned))
	}

	return tracker.store.Since(ctx, since)
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/internal/activity"
)

// memoryStore is an in-memory [activity.Store].
type memoryStore struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	records int
	failing error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{seen: make(map[string]time.Time)}
}

func (store *memoryStore) Record(_ context.Context, userID string, at time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failing != nil {
		return store.failing
	}
	store.records++
	if at.After(store.seen[userID]) {
		store.seen[userID] = at
	}
	return nil
}

func (store *memoryStore) Since(_ context.Context, since time.Time) ([]string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var ids []string
	for id, at := range store.seen {
		if !at.Before(since) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (store *memoryStore) PruneBefore(_ context.Context, before time.Time) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var removed int64
	for id, at := range store.seen {
		if at.Before(before) {
			delete(store.seen, id)
			removed++
		}
	}
	return removed, nil
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTracker(store activity.Store, c *clock) *activity.Tracker {
	return activity.NewTracker(store, slog.New(slog.NewTextHandler(io.Discard, nil)), activity.Options{
		TouchInterval: 5 * time.Minute,
		Retention:     48 * time.Hour,
		Clock:         c.Now,
	})
}

/*
TestTracker_Touch_Throttles verifies one write per user per interval.
*/
func TestTracker_Touch_Throttles(t *testing.T) {
	store := newMemoryStore()
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tracker := newTracker(store, c)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "user-a"))
	c.now = c.now.Add(time.Minute)
	require.NoError(t, tracker.Touch(ctx, "user-a"))
	assert.Equal(t, 1, store.records)

	c.now = c.now.Add(5 * time.Minute)
	require.NoError(t, tracker.Touch(ctx, "user-a"))
	require.NoError(t, tracker.Touch(ctx, "user-b"))
	assert.Equal(t, 3, store.records)
}

/*
TestTracker_Touch_FailureRetries verifies a failed write is not throttled.
*/
func TestTracker_Touch_FailureRetries(t *testing.T) {
	store := newMemoryStore()
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tracker := newTracker(store, c)
	ctx := context.Background()

	store.failing = errors.New("connection refused")
	assert.Error(t, tracker.Touch(ctx, "user-a"))

	store.failing = nil
	require.NoError(t, tracker.Touch(ctx, "user-a"))
	assert.Equal(t, 1, store.records)
}

/*
TestTracker_ActiveSince verifies the window and the retention pruning.
*/
func TestTracker_ActiveSince(t *testing.T) {
	store := newMemoryStore()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &clock{now: start}
	tracker := newTracker(store, c)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, "stale"))
	c.now = start.Add(60 * time.Hour)
	require.NoError(t, tracker.Touch(ctx, "yesterday"))
	c.now = start.Add(80 * time.Hour)
	require.NoError(t, tracker.Touch(ctx, "today"))

	active, err := tracker.ActiveSince(ctx, c.now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"yesterday", "today"}, active)

	// "stale" fell outside the 48h retention and was pruned.
	all, err := store.Since(ctx, time.Time{})
	require.NoError(t, err)
	assert.NotContains(t, all, "stale")
}

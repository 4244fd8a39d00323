// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/mediatrack/internal/platform/constants"
	"github.com/taibuivan/mediatrack/pkg/uuid"
)

// ErrLocked is returned by [Locker.Acquire] when another holder owns the key.
var ErrLocked = errors.New("redis: lock is held by another process")

// releaseScript deletes the key only if it still holds our token, so an
// expired-then-reacquired lock is never released by the previous owner.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out best-effort exclusive locks backed by SET NX PX.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocker creates a [Locker] whose locks expire after ttl.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Acquire takes the lock named name. The returned release function is safe
// to call more than once.
func (locker *Locker) Acquire(context stdctx.Context, name string) (func(), error) {
	key := constants.RedisPrefixCalculationLock + name
	token := uuid.New()

	acquired, err := locker.client.SetNX(context, key, token, locker.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquire lock %s: %w", name, err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	release := func() {
		// A fresh context: the caller's may already be cancelled by the time we release.
		releaseCtx, cancel := stdctx.WithTimeout(stdctx.Background(), ioTimeout)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, locker.client, []string{key}, token).Err()
	}

	return release, nil
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/mediatrack/internal/platform/constants"
)

// RedisStore implements [Store] as one sorted set: members are user ids,
// scores are unix seconds.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore creates a [RedisStore] on the shared last-seen key.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, key: constants.RedisKeyLastSeen}
}

/*
Record stores the last-seen time of userID.

Parameters:
  - ctx: context.Context
  - userID: string
  - at: time.Time

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Record(ctx context.Context, userID string, at time.Time) error {
	member := redis.Z{Score: float64(at.Unix()), Member: userID}

	// GT keeps the newest timestamp if two instances race.
	if err := store.client.ZAddGT(ctx, store.key, member).Err(); err != nil {
		return fmt.Errorf("redis_activity_record_failed: %w", err)
	}
	return nil
}

/*
Since lists the users whose score is at or after since.

Returns:
  - []string: User ids
  - error: Execution errors
*/
func (store *RedisStore) Since(ctx context.Context, since time.Time) ([]string, error) {
	userIDs, err := store.client.ZRangeByScore(ctx, store.key, &redis.ZRangeBy{
		Min: strconv.FormatInt(since.Unix(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_activity_since_failed: %w", err)
	}
	return userIDs, nil
}

/*
PruneBefore removes the users last seen strictly before before.

Returns:
  - int64: Members removed
  - error: Execution errors
*/
func (store *RedisStore) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	removed, err := store.client.ZRemRangeByScore(ctx, store.key, "-inf", "("+strconv.FormatInt(before.Unix(), 10)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_activity_prune_failed: %w", err)
	}
	return removed, nil
}

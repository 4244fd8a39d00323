// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("fills_unset", func(t *testing.T) {
		options, err := redis.ParseURL("redis://localhost:6379/1")
		require.NoError(t, err)

		applyDefaults(options)
		assert.Equal(t, defaultPoolSize, options.PoolSize)
		assert.Equal(t, minIdleConns, options.MinIdleConns)
		assert.Equal(t, dialTimeout, options.DialTimeout)
		assert.Equal(t, ioTimeout, options.ReadTimeout)
	})

	t.Run("url_wins", func(t *testing.T) {
		options, err := redis.ParseURL("redis://localhost:6379/1?pool_size=32")
		require.NoError(t, err)

		applyDefaults(options)
		assert.Equal(t, 32, options.PoolSize)
		assert.Equal(t, 1, options.DB)
	})
}

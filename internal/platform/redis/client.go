// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects to the Redis instance that backs two short-lived
concerns: the last-seen activity set used to resolve active users, and the
calculation lock that keeps one engine run at a time across API replicas
and the CLI. Losing either only costs a recalculation.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second

	// The engine issues a handful of commands per run, so a small pool is
	// enough unless the URL asks for more.
	defaultPoolSize = 10
	minIdleConns    = 2
)

/*
NewClient parses redisURL and returns a client that answered a ping.

Description: A pool_size query parameter in the URL overrides the default
pool size. The client is closed again when the ping fails.

Returns:
  - *redis.Client: Connected client
  - error: Malformed URL or unreachable server
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	applyDefaults(options)

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// applyDefaults fills the timeouts and pool bounds the URL left unset.
func applyDefaults(options *redis.Options) {
	if options.PoolSize == 0 {
		options.PoolSize = defaultPoolSize
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = minIdleConns
	}
	if options.DialTimeout == 0 {
		options.DialTimeout = dialTimeout
	}
	if options.ReadTimeout == 0 {
		options.ReadTimeout = ioTimeout
	}
	if options.WriteTimeout == 0 {
		options.WriteTimeout = ioTimeout
	}
}

// Ping backs the readiness check of the API server.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingContext).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

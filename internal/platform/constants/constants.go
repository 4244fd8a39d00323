// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and header names.
  - Achievements: Engine tunables that are not environment-driven.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "mediatrack-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Calculation requests run synchronously, so this is far longer than a CRUD API would use.
	DefaultWriteTimeout = 15 * time.Minute

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for ordinary request lifecycles.
	GlobalRequestTimeout = 30 * time.Second

	// CalculationRequestTimeout bounds an admin-triggered calculation.
	CalculationRequestTimeout = 15 * time.Minute

	// StatementTimeout is the per-connection Postgres statement_timeout.
	// Aggregates over every user can take a while, so it is not tied to the request timeout.
	StatementTimeout = 5 * time.Minute

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "mediatrack.app"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers       = "users"
	SchemaMedia       = "media"
	SchemaAchievement = "achievement"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisKeyLastSeen is the sorted set of user ids scored by last-seen unix time.
	RedisKeyLastSeen = "activity:lastseen"

	// RedisPrefixCalculationLock guards overlapping calculation runs.
	RedisPrefixCalculationLock = "achievement:lock:"
)

// # Activity Tracking

const (
	// ActivityRetention is how long last-seen entries are kept before pruning.
	ActivityRetention = 30 * 24 * time.Hour

	// ActivityTouchInterval throttles last-seen writes per user.
	ActivityTouchInterval = 5 * time.Minute
)

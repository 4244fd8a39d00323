// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys shared by middleware and handlers.
//
// The key type is unexported so values stored here cannot be read or
// overwritten through a plain string key from another package.
package ctxkey

// key is the unexported context key type.
type key string

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser carries the verified [sec.AuthClaims] of the caller.
	KeyUser key = "user"

	// KeyLogger carries the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"
)

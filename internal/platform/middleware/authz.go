// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/mediatrack/internal/platform/apperr"
	"github.com/taibuivan/mediatrack/internal/platform/ctxutil"
	"github.com/taibuivan/mediatrack/internal/platform/respond"
	"github.com/taibuivan/mediatrack/internal/platform/sec"
)

// TokenVerifier verifies bearer tokens. Satisfied by [*sec.TokenVerifier].
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// ActivityRecorder records that a user was seen. Implementations throttle
// their own writes; the middleware calls it on every authenticated request.
type ActivityRecorder interface {
	Touch(ctx context.Context, userID string) error
}

// # Authentication

/*
Authenticate verifies the bearer token when one is present.

Description: Requests without an Authorization header continue anonymously.
A malformed header or a token that fails verification is rejected with 401.
Verified claims are attached through [ctxutil.WithAuthUser].
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	}
}

// RequireAuth rejects anonymous requests. Mount after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole rejects callers whose role is below role. It implies
// [RequireAuth].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Activity

/*
TrackActivity records the authenticated caller as seen.

Description: Recording failures are logged and never fail the request. The
"active" user scope of a calculation run is built from these records.
*/
func TrackActivity(recorder ActivityRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
				if err := recorder.Touch(request.Context(), claims.UserID); err != nil {
					ctxutil.GetLogger(request.Context()).Warn("activity_touch_failed",
						slog.String("user_id", claims.UserID),
						slog.Any("error", err),
					)
				}
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, middleware chain and domain handlers into
a runnable [http.Server].

Architecture:

  - This package is the composition root for the HTTP transport (chi router).
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/mediatrack/internal/achievement"
	"github.com/taibuivan/mediatrack/internal/platform/config"
	"github.com/taibuivan/mediatrack/internal/platform/constants"
	"github.com/taibuivan/mediatrack/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the HTTP handler sets mounted by [NewServer].
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	// Metrics serves the Prometheus exposition; nil disables /metrics.
	Metrics http.Handler

	// Achievement serves definitions, user progress and calculation triggers.
	Achievement *achievement.Handler
}

// Guards are the identity-related middleware dependencies.
type Guards struct {
	Verifier middleware.TokenVerifier
	Activity middleware.ActivityRecorder
}

// # Server Initialization

// NewServer builds the router with the full middleware chain and registers
// every route group.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, guards Guards, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(guards.Verifier))
	if guards.Activity != nil {
		r.Use(middleware.TrackActivity(guards.Activity))
	}

	// # Infrastructure Endpoints
	r.Group(func(probes chi.Router) {
		probes.Use(chimw.Timeout(constants.GlobalRequestTimeout))
		probes.Get("/health", h.Liveness)
		probes.Get("/ready", h.Readiness)
		if h.Metrics != nil {
			probes.Method(http.MethodGet, "/metrics", h.Metrics)
		}
	})

	// # Application API
	// Calculation triggers run synchronously and bound themselves with
	// CalculationRequestTimeout, so this group skips the global timeout.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/achievements", h.Achievement.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

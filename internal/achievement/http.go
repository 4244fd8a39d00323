// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/internal/platform/apperr"
	"github.com/taibuivan/mediatrack/internal/platform/constants"
	"github.com/taibuivan/mediatrack/internal/platform/ctxutil"
	"github.com/taibuivan/mediatrack/internal/platform/middleware"
	platformredis "github.com/taibuivan/mediatrack/internal/platform/redis"
	requestutil "github.com/taibuivan/mediatrack/internal/platform/request"
	"github.com/taibuivan/mediatrack/internal/platform/respond"
	"github.com/taibuivan/mediatrack/internal/platform/sec"
	"github.com/taibuivan/mediatrack/internal/platform/validate"
)

// Lock names.
const (
	lockCalculate = "calculate"
	lockRarity    = "rarity"
)

// # Handler Implementation

/*
Handler implements the HTTP layer for achievement operations.

Routing Strategy:

  - Public (v1): Code name enumeration and a user's progress (GET).
  - Authenticated: The caller's own progress.
  - Restricted (admin): Definition edits, calculation and rarity triggers.

Calculation endpoints run synchronously under a distributed lock so two
operators cannot overlap the same run.
*/
type Handler struct {
	service *Service
	lock    CalculationLock
}

// NewHandler constructs a new achievement [Handler]. lock may be nil.
func NewHandler(service *Service, lock CalculationLock) *Handler {
	return &Handler{service: service, lock: lock}
}

// Routes returns a [chi.Router] configured with achievement endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public
	router.Get("/", handler.listCodeNames)
	router.Get("/users/{userID}", handler.listUserProgress)
	router.With(middleware.RequireAuth).Get("/me", handler.listOwnProgress)

	// ## Administrative
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/calculate", handler.calculate)
		admin.Post("/rarity", handler.calculateRarity)
		admin.Patch("/{codeName}", handler.updateAchievement)
		admin.Put("/{codeName}/tiers/{difficulty}", handler.updateTier)
	})

	return router
}

// # Request Payloads

type updateTierRequest struct {
	Count       float64 `json:"count"`
	Value       string  `json:"value"`
	Recalculate bool    `json:"recalculate"`
}

type updateTierResponse struct {
	Updated bool    `json:"updated"`
	Report  *Report `json:"report,omitempty"`
}

type rarityResponse struct {
	Tiers int64 `json:"tiers"`
}

// # Public Endpoints

/*
GET /api/v1/achievements.

Description: Enumerates the registered calculators.

Request:
  - domain: string (optional: series, anime, movies, books, games, all)

Response:
  - 200: []CodeName
  - 400: Unknown domain
*/
func (handler *Handler) listCodeNames(writer http.ResponseWriter, request *http.Request) {
	raw := strings.ToLower(request.URL.Query().Get("domain"))
	if raw != "" {
		validator := &validate.Validator{}
		validator.OneOf("domain", raw, domainNames()...)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.OK(writer, handler.service.ListCodeNames(media.Domain(raw)))
}

/*
GET /api/v1/achievements/users/{userID}.

Response:
  - 200: []ProgressView
  - 400: Invalid user id
*/
func (handler *Handler) listUserProgress(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.UserProgress(request.Context(), requestutil.ID(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, views)
}

/*
GET /api/v1/achievements/me.

Response:
  - 200: []ProgressView
  - 401: Anonymous caller
*/
func (handler *Handler) listOwnProgress(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.UserProgress(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, views)
}

// domainNames lists the accepted domain filters.
func domainNames() []string {
	names := make([]string, 0, len(media.Domains())+1)
	for _, domain := range media.Domains() {
		names = append(names, string(domain))
	}
	return append(names, string(media.DomainAll))
}

// # Administrative Endpoints

/*
PATCH /api/v1/achievements/{codeName}.

Request:
  - body: AchievementPatch

Response:
  - 204: Updated
  - 404: Unknown code name
*/
func (handler *Handler) updateAchievement(writer http.ResponseWriter, request *http.Request) {
	var patch AchievementPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateAchievement(request.Context(), requestutil.Param(request, "codeName"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !updated {
		respond.Error(writer, request, apperr.NotFound("Achievement"))
		return
	}
	respond.NoContent(writer)
}

/*
PUT /api/v1/achievements/{codeName}/tiers/{difficulty}.

Description: Replaces a tier's criteria. With "recalculate" the calculation
lock is held across the write and the evaluation of every user, so a 409
leaves the tier unchanged.

Request:
  - difficulty: bronze | silver | gold | platinum | 1-4
  - body: {count, value, recalculate}

Response:
  - 200: updateTierResponse
  - 404: Unknown achievement or tier
  - 409: A calculation is already running
*/
func (handler *Handler) updateTier(writer http.ResponseWriter, request *http.Request) {
	difficulty, err := ParseDifficulty(requestutil.Param(request, "difficulty"))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldDifficulty, "Must be one of: bronze, silver, gold, platinum"))
		return
	}

	var body updateTierRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	codeName := requestutil.Param(request, "codeName")
	criteria := Criteria{Count: body.Count, Value: body.Value}
	response := updateTierResponse{Updated: true}

	update := func(context context.Context) error {
		updated, err := handler.service.UpdateTier(context, codeName, difficulty, criteria)
		if err != nil {
			return err
		}
		if !updated {
			return apperr.NotFound("Achievement tier")
		}
		return nil
	}

	// With recalculation the lock is taken before the write, so a busy
	// engine rejects the request without changing the tier.
	if body.Recalculate {
		err = handler.locked(request, lockCalculate, func(context context.Context) error {
			if err := update(context); err != nil {
				return err
			}
			report, err := handler.service.Recalculate(context, codeName)
			response.Report = report
			return err
		})
	} else {
		err = update(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, response)
}

/*
POST /api/v1/achievements/calculate.

Request:
  - body: Scope ({"code_names": [...], "users": "all" | "active" | [ids]})

Response:
  - 200: Report
  - 409: A calculation is already running
*/
func (handler *Handler) calculate(writer http.ResponseWriter, request *http.Request) {
	var scope Scope
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &scope); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	var report *Report
	err := handler.locked(request, lockCalculate, func(context context.Context) error {
		var err error
		report, err = handler.service.Calculate(context, scope, nil)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

/*
POST /api/v1/achievements/rarity.

Response:
  - 200: rarityResponse
  - 409: A rarity run is already in progress
*/
func (handler *Handler) calculateRarity(writer http.ResponseWriter, request *http.Request) {
	var tiers int64
	err := handler.locked(request, lockRarity, func(context context.Context) error {
		var err error
		tiers, err = handler.service.CalculateRarity(context)
		return err
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rarityResponse{Tiers: tiers})
}

// locked runs fn under the named lock with a context that outlives a client
// disconnect but not the calculation timeout.
func (handler *Handler) locked(request *http.Request, name string, fn func(context context.Context) error) error {
	calculationContext, cancel := context.WithTimeout(context.WithoutCancel(request.Context()), constants.CalculationRequestTimeout)
	defer cancel()

	if handler.lock != nil {
		release, err := handler.lock.Acquire(calculationContext, name)
		if errors.Is(err, platformredis.ErrLocked) {
			return apperr.Conflict("A calculation is already running")
		}
		if err != nil {
			return apperr.ServiceUnavailable("Calculation lock unavailable")
		}
		defer release()
	}

	if err := fn(calculationContext); err != nil {
		if apperr.As(err) == nil {
			ctxutil.GetLogger(request.Context()).Error("achievement_request_failed",
				slog.String("lock", name),
				slog.Any("error", err),
			)
		}
		return err
	}
	return nil
}

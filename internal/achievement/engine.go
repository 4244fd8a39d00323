// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mediatrack/pkg/query"
	"github.com/taibuivan/mediatrack/pkg/uuid"
)

// # Scope

// UserMode selects which users a calculation covers.
type UserMode string

const (
	UsersAll    UserMode = "all"
	UsersActive UserMode = "active"
	UsersListed UserMode = "ids"
)

// UserSelector is "all", "active" or an explicit list of user ids.
type UserSelector struct {
	Mode UserMode
	IDs  []string
}

// AllUsers selects every user.
func AllUsers() UserSelector { return UserSelector{Mode: UsersAll} }

// ActiveUsersOnly selects the users seen within the activity window.
func ActiveUsersOnly() UserSelector { return UserSelector{Mode: UsersActive} }

// Users selects explicit user ids.
func Users(ids ...string) UserSelector { return UserSelector{Mode: UsersListed, IDs: ids} }

// ParseUserSelector accepts "" or "all", "active", or a comma separated list
// of user ids.
func ParseUserSelector(raw string) (UserSelector, error) {
	value := strings.TrimSpace(raw)
	switch strings.ToLower(value) {
	case "", string(UsersAll):
		return AllUsers(), nil
	case string(UsersActive):
		return ActiveUsersOnly(), nil
	}

	return usersFromIDs(query.List(value))
}

func usersFromIDs(ids []string) (UserSelector, error) {
	if len(ids) == 0 {
		return UserSelector{}, errors.New("achievement: empty user list")
	}
	normalized, err := uuid.Normalize(ids)
	if err != nil {
		return UserSelector{}, err
	}
	return Users(normalized...), nil
}

// UnmarshalJSON accepts either a selector string or an array of user ids.
func (selector *UserSelector) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		parsed, err := ParseUserSelector(raw)
		if err != nil {
			return err
		}
		*selector = parsed
		return nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return errors.New("achievement: users must be \"all\", \"active\" or a list of ids")
	}
	parsed, err := usersFromIDs(ids)
	if err != nil {
		return err
	}
	*selector = parsed
	return nil
}

// MarshalJSON renders the selector in the form UnmarshalJSON accepts.
func (selector UserSelector) MarshalJSON() ([]byte, error) {
	if selector.Mode == UsersListed {
		return json.Marshal(selector.IDs)
	}
	if selector.Mode == "" {
		return json.Marshal(string(UsersAll))
	}
	return json.Marshal(string(selector.Mode))
}

// Scope names what a calculation evaluates. Empty CodeNames means every
// achievement.
type Scope struct {
	CodeNames []string     `json:"code_names"`
	Users     UserSelector `json:"users"`
}

// # Report

// Result is the outcome of one achievement.
type Result struct {
	CodeName  string        `json:"code_name"`
	Succeeded bool          `json:"succeeded"`
	Error     string        `json:"error,omitempty"`
	Updated   int64         `json:"updated"`
	Inserted  int64         `json:"inserted"`
	Duration  time.Duration `json:"duration_ns"`
}

// Report summarises one calculation.
type Report struct {
	Total       int       `json:"total"`
	Succeeded   int       `json:"succeeded"`
	Failed      int       `json:"failed"`
	Users       int       `json:"users"`
	Results     []Result  `json:"results"`
	RarityTiers int64     `json:"rarity_tiers"`
	RarityError string    `json:"rarity_error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// ProgressFunc is told how many achievements are done out of total. It is
// advisory: a panic inside it is recovered and logged.
type ProgressFunc func(done, total int)

// # Engine

// EngineOptions tunes the [Engine].
type EngineOptions struct {
	// Workers bounds how many achievements are evaluated at once.
	Workers int
	// ActivityWindow is how far back "active" users are looked up.
	ActivityWindow time.Duration
	// Clock overrides time.Now.
	Clock func() time.Time
}

// Engine evaluates achievements and refreshes rarity.
//
// Each achievement is evaluated in its own transaction: a failure rolls back
// that achievement only and the others proceed.
type Engine struct {
	repository  Repository
	store       ProgressStore
	calculators *CalculatorRegistry
	activity    ActiveUsers
	logger      *slog.Logger

	workers int
	window  time.Duration
	clock   func() time.Time
}

// NewEngine constructs an [Engine]. activity may be nil when "active" scopes
// are never requested.
func NewEngine(repository Repository, store ProgressStore, calculators *CalculatorRegistry, activity ActiveUsers, logger *slog.Logger, options EngineOptions) *Engine {
	if options.Workers < 1 {
		options.Workers = 1
	}
	if options.ActivityWindow <= 0 {
		options.ActivityWindow = 24 * time.Hour
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}
	return &Engine{
		repository:  repository,
		store:       store,
		calculators: calculators,
		activity:    activity,
		logger:      logger,
		workers:     options.Workers,
		window:      options.ActivityWindow,
		clock:       options.Clock,
	}
}

/*
Calculate evaluates the achievements in scope, then recomputes rarity once.

Description: Per-achievement failures are logged and reported in the
[Report], never returned. The error is only set when the scope itself
cannot be resolved.

Parameters:
  - context: context.Context
  - scope: Scope
  - progress: ProgressFunc (optional)

Returns:
  - *Report: Per-achievement outcomes and the rarity result
  - error: Scope resolution failures
*/
func (engine *Engine) Calculate(context context.Context, scope Scope, progress ProgressFunc) (*Report, error) {
	report := &Report{StartedAt: engine.clock()}

	userIDs, err := engine.resolveUsers(context, scope.Users)
	if err != nil {
		return nil, err
	}

	achievements, missing, err := engine.resolveAchievements(context, scope.CodeNames)
	if err != nil {
		return nil, err
	}

	// "active" with nobody active evaluates nothing
	if userIDs != nil && len(userIDs) == 0 {
		engine.logger.Info("achievement_calculation_no_users", slog.String("users", string(scope.Users.Mode)))
		achievements = nil
	}
	report.Users = len(userIDs)

	for _, codeName := range missing {
		report.Results = append(report.Results, Result{CodeName: codeName, Error: ErrUnknownCodeName.Error()})
		engine.logger.Warn("achievement_unknown_code_name", slog.String("code_name", codeName))
	}

	results := make([]Result, len(achievements))
	total := len(achievements)
	notify, drain := engine.progressNotifier(progress, total)

	group := &errgroup.Group{}
	group.SetLimit(engine.workers)
	for i, achievement := range achievements {
		group.Go(func() error {
			results[i] = engine.evaluate(context, achievement, userIDs)
			notify()
			return nil
		})
	}
	_ = group.Wait()
	drain()

	report.Results = append(report.Results, results...)
	report.Total = len(report.Results)
	for _, result := range report.Results {
		if result.Succeeded {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	tiers, err := engine.CalculateRarity(context)
	report.RarityTiers = tiers
	if err != nil {
		report.RarityError = err.Error()
	}

	report.FinishedAt = engine.clock()
	engine.logger.Info("achievement_calculation_finished",
		slog.Int("total", report.Total),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report, nil
}

// CalculateRarity recomputes every tier's rarity.
func (engine *Engine) CalculateRarity(context context.Context) (int64, error) {
	tiers, err := engine.store.RecomputeRarity(context)
	RecordRarity(err)
	if err != nil {
		engine.logger.Error("achievement_rarity_failed", slog.Any("error", err))
		return 0, err
	}
	engine.logger.Info("achievement_rarity_recomputed", slog.Int64("tiers", tiers))
	return tiers, nil
}

// # Resolution

// resolveUsers returns nil for every user, or the selected ids.
func (engine *Engine) resolveUsers(context context.Context, selector UserSelector) ([]string, error) {
	switch selector.Mode {
	case "", UsersAll:
		return nil, nil
	case UsersListed:
		if len(selector.IDs) == 0 {
			return nil, errors.New("achievement: empty user list")
		}
		return selector.IDs, nil
	case UsersActive:
		if engine.activity == nil {
			return nil, errors.New("achievement: active users are not available")
		}
		ids, err := engine.activity.ActiveSince(context, engine.clock().Add(-engine.window))
		if err != nil {
			return nil, fmt.Errorf("achievement: resolve active users: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("achievement: unknown user mode %q", selector.Mode)
	}
}

// resolveAchievements loads the requested achievements and reports the
// requested code names that do not exist.
func (engine *Engine) resolveAchievements(context context.Context, codeNames []string) ([]*Achievement, []string, error) {
	achievements, err := engine.repository.ListAchievements(context, codeNames)
	if err != nil {
		return nil, nil, fmt.Errorf("achievement: list achievements: %w", err)
	}

	var missing []string
	if len(codeNames) > 0 {
		found := make(map[string]bool, len(achievements))
		for _, achievement := range achievements {
			found[achievement.CodeName] = true
		}
		for _, codeName := range codeNames {
			if !found[codeName] {
				missing = append(missing, codeName)
				found[codeName] = true
			}
		}
	}
	return achievements, missing, nil
}

// # Evaluation

// evaluate runs every tier of one achievement inside one transaction.
func (engine *Engine) evaluate(context context.Context, achievement *Achievement, userIDs []string) Result {
	started := engine.clock()
	result := Result{CodeName: achievement.CodeName}
	var applied ApplyResult

	err := engine.evaluateTiers(context, achievement, userIDs, &applied)

	result.Duration = engine.clock().Sub(started)
	result.Succeeded = err == nil
	RecordCalculation(achievement.CodeName, result.Succeeded, result.Duration, applied)

	if err != nil {
		result.Error = err.Error()
		engine.logger.Error("achievement_calculation_failed",
			slog.String("code_name", achievement.CodeName),
			slog.Any("error", err),
		)
		return result
	}

	result.Updated = applied.Updated
	result.Inserted = applied.Inserted
	engine.logger.Debug("achievement_calculated",
		slog.String("code_name", achievement.CodeName),
		slog.Int64("updated", applied.Updated),
		slog.Int64("inserted", applied.Inserted),
		slog.Duration("duration", result.Duration),
	)
	return result
}

func (engine *Engine) evaluateTiers(context context.Context, achievement *Achievement, userIDs []string, applied *ApplyResult) error {
	calculator, ok := engine.calculators.ByCodeName(achievement.CodeName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoCalculator, achievement.CodeName)
	}
	if calculator.Domain != achievement.Domain {
		return fmt.Errorf("%w: %s is registered for %s, not %s",
			ErrNoCalculator, achievement.CodeName, calculator.Domain, achievement.Domain)
	}

	tiers := make([]Tier, len(achievement.Tiers))
	copy(tiers, achievement.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Difficulty < tiers[j].Difficulty })

	now := engine.clock()

	return engine.store.WithinAchievement(context, func(writer ProgressWriter) error {
		staged := false
		for _, tier := range tiers {
			if !staged || calculator.TierScoped {
				builder := NewBuilder(userIDs)
				sql, err := calculator.Build(builder, tier)
				if err != nil {
					return fmt.Errorf("tier %s: %w", tier.Difficulty, err)
				}
				if err := writer.Stage(context, builder.Aggregate(sql)); err != nil {
					return fmt.Errorf("tier %s: %w", tier.Difficulty, err)
				}
				staged = true
			}

			result, err := writer.Apply(context, achievement, tier, now)
			if err != nil {
				return fmt.Errorf("tier %s: %w", tier.Difficulty, err)
			}
			applied.Updated += result.Updated
			applied.Inserted += result.Inserted
		}
		return nil
	})
}

// progressNotifier hands completions to a single goroutine that invokes the
// callback, so a slow callback never holds up a worker. The buffer fits every
// completion. drain waits for the callback to see the last one.
func (engine *Engine) progressNotifier(progress ProgressFunc, total int) (notify func(), drain func()) {
	if progress == nil || total == 0 {
		return func() {}, func() {}
	}

	completions := make(chan struct{}, total)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		done := 0
		for range completions {
			done++
			engine.callProgress(progress, done, total)
		}
	}()

	notify = func() { completions <- struct{}{} }
	drain = func() {
		close(completions)
		<-finished
	}
	return notify, drain
}

func (engine *Engine) callProgress(progress ProgressFunc, done, total int) {
	defer func() {
		if recovered := recover(); recovered != nil {
			engine.logger.Warn("achievement_progress_callback_panicked", slog.Any("panic", recovered))
		}
	}()
	progress(done, total)
}

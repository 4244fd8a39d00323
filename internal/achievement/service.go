// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/internal/platform/validate"
)

// Display text limits.
const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// # Service Layer

// Service exposes the administrative achievement operations.
type Service struct {
	repository  Repository
	engine      *Engine
	calculators *CalculatorRegistry
	logger      *slog.Logger
}

// NewService constructs a new achievement [Service].
func NewService(repository Repository, engine *Engine, calculators *CalculatorRegistry, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		engine:      engine,
		calculators: calculators,
		logger:      logger,
	}
}

// # Catalog

// ListCodeNames enumerates the registered calculators. An empty domain lists all.
func (service *Service) ListCodeNames(domain media.Domain) []CodeName {
	return service.calculators.CodeNames(domain)
}

/*
Seed reconciles the stored definitions with the built-in catalog.

Returns:
  - SeedReport: Row counts per action
  - error: Catalog validation or persistence failures
*/
func (service *Service) Seed(context context.Context) (SeedReport, error) {
	definitions := Catalog()
	if err := ValidateCatalog(definitions, service.calculators); err != nil {
		return SeedReport{}, fmt.Errorf("achievement: invalid catalog: %w", err)
	}

	report, err := service.repository.Reconcile(context, definitions)
	if err != nil {
		return SeedReport{}, err
	}

	service.logger.Info("achievement_catalog_seeded",
		slog.Int64("created", report.Created),
		slog.Int64("updated", report.Updated),
		slog.Int64("deleted", report.Deleted),
	)
	return report, nil
}

// # Definition Management

/*
UpdateAchievement edits an achievement's display text.

Parameters:
  - context: context.Context
  - codeName: string
  - patch: AchievementPatch (Nil fields are left unchanged, an empty patch is a no-op)

Returns:
  - bool: False when the code name is unknown
  - error: Validation or persistence failures
*/
func (service *Service) UpdateAchievement(context context.Context, codeName string, patch AchievementPatch) (bool, error) {
	validator := &validate.Validator{}
	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, maxNameLength)
	}
	if patch.Description != nil {
		validator.MaxLen(FieldDescription, *patch.Description, maxDescriptionLength)
	}
	if err := validator.Err(); err != nil {
		return false, err
	}

	updated, err := service.repository.UpdateAchievement(context, codeName, patch)
	if err != nil {
		return false, err
	}
	if !updated {
		service.logger.Warn("achievement_update_unknown_code_name", slog.String("code_name", codeName))
		return false, nil
	}

	if !patch.IsEmpty() {
		service.logger.Info("achievement_updated", slog.String("code_name", codeName))
	}
	return true, nil
}

/*
UpdateTier replaces the criteria of one tier.

Description: The criteria are dry-run against the registered calculator
before being stored, so a tier can never hold criteria its calculator
rejects. Callers are expected to recalculate the achievement afterwards.

Returns:
  - bool: False when the achievement or the difficulty does not exist
  - error: Validation or persistence failures
*/
func (service *Service) UpdateTier(context context.Context, codeName string, difficulty Difficulty, criteria Criteria) (bool, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldDifficulty, !difficulty.Valid(), "Must be one of: bronze, silver, gold, platinum")
	validator.Custom(FieldCount, criteria.Count < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return false, err
	}

	if calculator, ok := service.calculators.ByCodeName(codeName); ok {
		if err := checkCriteria(calculator, Tier{Difficulty: difficulty, Criteria: criteria}); err != nil {
			return false, validate.RequiredError(FieldValue, err.Error())
		}
	}

	updated, err := service.repository.UpdateTier(context, codeName, difficulty, criteria)
	if err != nil {
		return false, err
	}
	if !updated {
		service.logger.Warn("achievement_tier_update_unknown",
			slog.String("code_name", codeName),
			slog.String("difficulty", difficulty.String()),
		)
		return false, nil
	}

	service.logger.Info("achievement_tier_updated",
		slog.String("code_name", codeName),
		slog.String("difficulty", difficulty.String()),
		slog.Float64("count", criteria.Count),
	)
	return true, nil
}

// # Evaluation

// Calculate evaluates scope. See [Engine.Calculate].
func (service *Service) Calculate(context context.Context, scope Scope, progress ProgressFunc) (*Report, error) {
	return service.engine.Calculate(context, scope, progress)
}

// Recalculate evaluates one achievement for every user.
func (service *Service) Recalculate(context context.Context, codeName string) (*Report, error) {
	return service.engine.Calculate(context, Scope{CodeNames: []string{codeName}, Users: AllUsers()}, nil)
}

// CalculateRarity recomputes every tier's rarity.
func (service *Service) CalculateRarity(context context.Context) (int64, error) {
	return service.engine.CalculateRarity(context)
}

// # Read Model

/*
UserProgress lists one user's progress.

Parameters:
  - context: context.Context
  - userID: string (UUID)

Returns:
  - []*ProgressView: Progress rows with their definitions
  - error: Validation or retrieval failures
*/
func (service *Service) UserProgress(context context.Context, userID string) ([]*ProgressView, error) {
	validator := &validate.Validator{}
	validator.UUID("user_id", userID)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.repository.ListUserProgress(context, userID)
}

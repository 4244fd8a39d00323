// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"time"
)

// # Definition Data Access

// Repository defines the data access contract for achievement definitions
// and the progress read model.
type Repository interface {

	/*
		ListAchievements returns achievements with their tiers in ascending difficulty.

		Parameters:
		  - context: context.Context
		  - codeNames: []string (Empty lists every achievement)

		Returns:
		  - []*Achievement: Matching achievements, ordered by code name
		  - error: Database retrieval failures
	*/
	ListAchievements(context context.Context, codeNames []string) ([]*Achievement, error)

	/*
		FindByCodeName retrieves one achievement and its tiers.

		Returns:
		  - *Achievement: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByCodeName(context context.Context, codeName string) (*Achievement, error)

	/*
		UpdateAchievement applies a display-text patch.

		Returns:
		  - bool: False when no achievement carries codeName
		  - error: Persistence failures
	*/
	UpdateAchievement(context context.Context, codeName string, patch AchievementPatch) (bool, error)

	/*
		UpdateTier replaces the criteria of one tier.

		Returns:
		  - bool: False when the achievement or that difficulty does not exist
		  - error: Persistence failures
	*/
	UpdateTier(context context.Context, codeName string, difficulty Difficulty, criteria Criteria) (bool, error)

	/*
		ListUserProgress returns a user's progress rows joined with their definitions.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*ProgressView: Rows ordered by code name and difficulty
		  - error: Database retrieval failures
	*/
	ListUserProgress(context context.Context, userID string) ([]*ProgressView, error)

	/*
		Reconcile makes the stored definitions match the catalog: missing
		achievements and tiers are created, existing ones edited in place and
		those absent from the catalog deleted with their progress.

		Returns:
		  - SeedReport: Row counts per action
		  - error: Persistence failures (nothing is applied)
	*/
	Reconcile(context context.Context, definitions []Definition) (SeedReport, error)
}

// # Progress Data Access

// ApplyResult counts the progress rows one Apply touched.
type ApplyResult struct {
	Updated  int64
	Inserted int64
}

// ProgressWriter persists the progress of one achievement. It is bound to the
// transaction opened by [ProgressStore.WithinAchievement].
type ProgressWriter interface {

	// Stage materialises aggregate for the following Apply calls, replacing
	// any previously staged aggregate.
	Stage(context context.Context, aggregate Aggregate) error

	// Apply upserts the progress of tier for every staged user.
	Apply(context context.Context, achievement *Achievement, tier Tier, now time.Time) (ApplyResult, error)
}

// ProgressStore owns the progress and rarity writes.
type ProgressStore interface {

	// WithinAchievement runs fn in one transaction. An error from fn rolls
	// back every write made through the writer.
	WithinAchievement(context context.Context, fn func(writer ProgressWriter) error) error

	// RecomputeRarity refreshes the rarity of every tier and returns how many
	// tiers were written.
	RecomputeRarity(context context.Context) (int64, error)
}

// # Collaborators

// ActiveUsers resolves the users seen within a trailing window.
type ActiveUsers interface {
	ActiveSince(context context.Context, since time.Time) ([]string, error)
}

// CalculationLock prevents overlapping calculations for the same scope.
type CalculationLock interface {
	Acquire(context context.Context, name string) (release func(), err error)
}

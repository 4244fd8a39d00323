// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package achievement evaluates tiered achievements over the users' media lists.

# Architecture

  - Definitions: achievements and their four difficulty tiers, stored in
    Postgres and reconciled from a static catalog ([Seed]).
  - Calculators: a registry of named aggregate builders, one per achievement
    code name, that shape a per-user "(userid, value)" subquery. They never write.
  - Engine: resolves the achievements and users in scope, stages each
    calculator's aggregate and hands every tier to the progress store.
  - Progress store: a batched update-then-insert of progress rows, one
    transaction per achievement, followed by a single rarity refresh.
*/
package achievement

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/mediatrack/internal/media"
)

// # Errors

var (
	// ErrUnknownCodeName is reported when no achievement carries the code name.
	ErrUnknownCodeName = errors.New("achievement: unknown code name")

	// ErrUnknownTier is reported when the achievement has no tier at that difficulty.
	ErrUnknownTier = errors.New("achievement: unknown tier")

	// ErrNoCalculator is reported when an achievement has no registered calculator.
	ErrNoCalculator = errors.New("achievement: no calculator registered")

	// ErrInvalidCriteria is reported when a tier's criteria cannot drive its calculator.
	ErrInvalidCriteria = errors.New("achievement: invalid tier criteria")
)

// # Difficulty

// Difficulty ranks a tier. Ranks are strictly ordered, Bronze being the easiest.
type Difficulty int

const (
	DifficultyBronze   Difficulty = 1
	DifficultySilver   Difficulty = 2
	DifficultyGold     Difficulty = 3
	DifficultyPlatinum Difficulty = 4
)

// Difficulties lists every rank in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBronze, DifficultySilver, DifficultyGold, DifficultyPlatinum}
}

// String returns the lowercase rank name.
func (difficulty Difficulty) String() string {
	switch difficulty {
	case DifficultyBronze:
		return "bronze"
	case DifficultySilver:
		return "silver"
	case DifficultyGold:
		return "gold"
	case DifficultyPlatinum:
		return "platinum"
	default:
		return "difficulty(" + strconv.Itoa(int(difficulty)) + ")"
	}
}

// Valid reports whether the difficulty is one of the four known ranks.
func (difficulty Difficulty) Valid() bool {
	return difficulty >= DifficultyBronze && difficulty <= DifficultyPlatinum
}

// ParseDifficulty accepts a rank name ("gold") or its number ("3").
func ParseDifficulty(raw string) (Difficulty, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if number, err := strconv.Atoi(value); err == nil {
		if difficulty := Difficulty(number); difficulty.Valid() {
			return difficulty, nil
		}
	}
	for _, difficulty := range Difficulties() {
		if difficulty.String() == value {
			return difficulty, nil
		}
	}
	return 0, fmt.Errorf("%w: difficulty %q", ErrUnknownTier, raw)
}

// # Entities

// Criteria is the structured payload of a tier.
type Criteria struct {
	// Count is the threshold the user's aggregate value must reach.
	Count float64 `json:"count"`

	// Value parameterises the calculator (a genre, a runtime cutoff...).
	Value string `json:"value,omitempty"`
}

// Number parses Value as a numeric cutoff.
func (criteria Criteria) Number() (float64, error) {
	number, err := strconv.ParseFloat(strings.TrimSpace(criteria.Value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: value %q is not a number", ErrInvalidCriteria, criteria.Value)
	}
	return number, nil
}

// Achievement is a tiered goal owned by one media domain.
type Achievement struct {
	ID          string       `json:"id"`
	CodeName    string       `json:"code_name"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Domain      media.Domain `json:"domain"`
	Tiers       []Tier       `json:"tiers"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Tier is one difficulty rank of an achievement.
type Tier struct {
	ID            string     `json:"id"`
	AchievementID string     `json:"-"`
	Difficulty    Difficulty `json:"difficulty"`
	Criteria      Criteria   `json:"criteria"`

	// Rarity is the share of active users who completed the tier. Derived.
	Rarity    float64   `json:"rarity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProgress is the evaluated state of one (user, achievement, tier).
type UserProgress struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	AchievementID    string     `json:"achievement_id"`
	TierID           string     `json:"tier_id"`
	Count            float64    `json:"count"`
	Progress         float64    `json:"progress"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	LastCalculatedAt time.Time  `json:"last_calculated_at"`
}

// ProgressView joins a progress row with the definitions it refers to.
type ProgressView struct {
	UserProgress
	CodeName   string       `json:"code_name"`
	Name       string       `json:"name"`
	Domain     media.Domain `json:"domain"`
	Difficulty Difficulty   `json:"difficulty"`
	Threshold  float64      `json:"threshold"`
	Rarity     float64      `json:"rarity"`
}

// CodeName pairs a calculator code name with its owning domain.
type CodeName struct {
	CodeName string       `json:"code_name"`
	Domain   media.Domain `json:"domain"`
}

// AchievementPatch carries the editable display fields. Nil fields are left unchanged.
type AchievementPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// IsEmpty reports whether the patch changes nothing.
func (patch AchievementPatch) IsEmpty() bool {
	return patch.Name == nil && patch.Description == nil
}

// Field names used in validation errors.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCount       = "count"
	FieldValue       = "value"
	FieldUsers       = "users"
	FieldCodeNames   = "code_names"
	FieldDifficulty  = "difficulty"
)

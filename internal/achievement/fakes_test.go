// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/mediatrack/internal/media"
)

// In-memory collaborators. Calculators built by fixedCalculator emit
// "fixture:<key>" as their SQL; memoryProgressStore resolves that key against
// its per-user values and applies [Evaluate] the way the SQL upsert does.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// # Definitions

type memoryRepository struct {
	mu           sync.Mutex
	achievements map[string]*Achievement
	progress     []*ProgressView
	listErr      error
	reconciled   []Definition
}

func newMemoryRepository(achievements ...*Achievement) *memoryRepository {
	repository := &memoryRepository{achievements: make(map[string]*Achievement)}
	for _, achievement := range achievements {
		repository.achievements[achievement.CodeName] = achievement
	}
	return repository
}

func (repository *memoryRepository) ListAchievements(_ context.Context, codeNames []string) ([]*Achievement, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.listErr != nil {
		return nil, repository.listErr
	}

	var result []*Achievement
	for codeName, achievement := range repository.achievements {
		if len(codeNames) == 0 || slices.Contains(codeNames, codeName) {
			result = append(result, achievement)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CodeName < result[j].CodeName })
	return result, nil
}

func (repository *memoryRepository) FindByCodeName(_ context.Context, codeName string) (*Achievement, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	achievement, ok := repository.achievements[codeName]
	if !ok {
		return nil, ErrUnknownCodeName
	}
	return achievement, nil
}

func (repository *memoryRepository) UpdateAchievement(_ context.Context, codeName string, patch AchievementPatch) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	achievement, ok := repository.achievements[codeName]
	if !ok {
		return false, nil
	}
	if patch.Name != nil {
		achievement.Name = *patch.Name
	}
	if patch.Description != nil {
		achievement.Description = *patch.Description
	}
	return true, nil
}

func (repository *memoryRepository) UpdateTier(_ context.Context, codeName string, difficulty Difficulty, criteria Criteria) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	achievement, ok := repository.achievements[codeName]
	if !ok {
		return false, nil
	}
	for i := range achievement.Tiers {
		if achievement.Tiers[i].Difficulty == difficulty {
			achievement.Tiers[i].Criteria = criteria
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryRepository) ListUserProgress(_ context.Context, userID string) ([]*ProgressView, error) {
	var result []*ProgressView
	for _, view := range repository.progress {
		if view.UserID == userID {
			result = append(result, view)
		}
	}
	return result, nil
}

func (repository *memoryRepository) Reconcile(_ context.Context, definitions []Definition) (SeedReport, error) {
	repository.reconciled = definitions
	return SeedReport{Created: int64(len(definitions))}, nil
}

// # Progress

type progressKey struct {
	userID string
	tierID string
}

type memoryProgressStore struct {
	mu sync.Mutex

	// values maps a fixture key to per-user aggregate values.
	values map[string]map[string]float64
	// users known to the account table; others are dropped on Stage.
	users map[string]bool
	// active users counted by rarity.
	active []string

	rows    map[progressKey]UserProgress
	rarity  map[string]float64
	tiers   []Tier
	stages  int
	rarityN int

	rarityErr error
	applyErr  map[string]error
}

func newMemoryProgressStore(users ...string) *memoryProgressStore {
	known := make(map[string]bool, len(users))
	for _, user := range users {
		known[user] = true
	}
	return &memoryProgressStore{
		values:   make(map[string]map[string]float64),
		users:    known,
		rows:     make(map[progressKey]UserProgress),
		rarity:   make(map[string]float64),
		applyErr: make(map[string]error),
	}
}

func (store *memoryProgressStore) WithinAchievement(ctx context.Context, fn func(writer ProgressWriter) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	snapshot := make(map[progressKey]UserProgress, len(store.rows))
	for key, row := range store.rows {
		snapshot[key] = row
	}

	if err := fn(&memoryWriter{store: store}); err != nil {
		store.rows = snapshot
		return err
	}
	return nil
}

func (store *memoryProgressStore) RecomputeRarity(context.Context) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.rarityN++
	if store.rarityErr != nil {
		return 0, store.rarityErr
	}

	active := make(map[string]bool, len(store.active))
	for _, user := range store.active {
		active[user] = true
	}

	for _, tier := range store.tiers {
		var completed int64
		for key, row := range store.rows {
			if key.tierID == tier.ID && row.Completed && active[key.userID] {
				completed++
			}
		}
		store.rarity[tier.ID] = RarityPercent(completed, int64(len(active)))
	}
	return int64(len(store.tiers)), nil
}

func (store *memoryProgressStore) row(userID, tierID string) (UserProgress, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	row, ok := store.rows[progressKey{userID, tierID}]
	return row, ok
}

func (store *memoryProgressStore) rowCount() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.rows)
}

type memoryWriter struct {
	store  *memoryProgressStore
	staged map[string]float64
}

func (writer *memoryWriter) Stage(_ context.Context, aggregate Aggregate) error {
	writer.store.stages++
	key, ok := strings.CutPrefix(aggregate.SQL, "fixture:")
	if !ok {
		return errors.New("memory store: unexpected aggregate " + aggregate.SQL)
	}

	var filter map[string]bool
	if len(aggregate.Args) == 1 {
		filter = make(map[string]bool)
		for _, id := range aggregate.Args[0].([]string) {
			filter[id] = true
		}
	}

	writer.staged = make(map[string]float64)
	for user, value := range writer.store.values[key] {
		if !writer.store.users[user] {
			continue
		}
		if filter != nil && !filter[user] {
			continue
		}
		writer.staged[user] = value
	}
	return nil
}

func (writer *memoryWriter) Apply(_ context.Context, achievement *Achievement, tier Tier, now time.Time) (ApplyResult, error) {
	var result ApplyResult
	if err := writer.store.applyErr[tier.ID]; err != nil {
		return result, err
	}

	for user, value := range writer.staged {
		key := progressKey{user, tier.ID}
		previous, exists := writer.store.rows[key]

		var next UserProgress
		if exists {
			next = Evaluate(&previous, value, tier.Criteria.Count, now)
			result.Updated++
		} else {
			next = Evaluate(nil, value, tier.Criteria.Count, now)
			next.UserID = user
			next.AchievementID = achievement.ID
			next.TierID = tier.ID
			result.Inserted++
		}
		writer.store.rows[key] = next
	}
	return result, nil
}

// # Collaborators

type staticActivity struct {
	ids   []string
	err   error
	since time.Time
}

func (activity *staticActivity) ActiveSince(_ context.Context, since time.Time) ([]string, error) {
	activity.since = since
	return activity.ids, activity.err
}

// fixedCalculator emits "fixture:<key>". Tier-scoped calculators append the
// difficulty so each tier can see different values.
func fixedCalculator(codeName string, domain media.Domain, key string, tierScoped bool) Calculator {
	return Calculator{
		CodeName:   codeName,
		Domain:     domain,
		TierScoped: tierScoped,
		Build: func(builder *Builder, tier Tier) (string, error) {
			if builder.userIDs != nil {
				builder.bind(builder.userIDs)
			}
			if tierScoped {
				return "fixture:" + key + ":" + tier.Difficulty.String(), nil
			}
			return "fixture:" + key, nil
		},
	}
}

// tiered builds an achievement with four tiers named "<code>-<difficulty>".
func tiered(codeName string, domain media.Domain, thresholds ...float64) *Achievement {
	achievement := &Achievement{ID: "ach-" + codeName, CodeName: codeName, Name: codeName, Domain: domain}
	for i, threshold := range thresholds {
		difficulty := Difficulty(i + 1)
		achievement.Tiers = append(achievement.Tiers, Tier{
			ID:            codeName + "-" + difficulty.String(),
			AchievementID: achievement.ID,
			Difficulty:    difficulty,
			Criteria:      Criteria{Count: threshold},
		})
	}
	return achievement
}

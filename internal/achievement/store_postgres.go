// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/internal/platform/database/schema"
	"github.com/taibuivan/mediatrack/internal/platform/dberr"
	"github.com/taibuivan/mediatrack/internal/platform/postgres"
	"github.com/taibuivan/mediatrack/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed definition store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Definition Retrieval

var achievementSelect = fmt.Sprintf(`
	SELECT
		a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s,
		t.%s, t.%s, t.%s, t.%s, t.%s
	FROM %s a
	LEFT JOIN %s t ON t.%s = a.%s
`,
	schema.Achievement.ID,
	schema.Achievement.CodeName,
	schema.Achievement.Name,
	schema.Achievement.Description,
	schema.Achievement.Domain,
	schema.Achievement.CreatedAt,
	schema.Achievement.UpdatedAt,
	schema.AchievementTier.ID,
	schema.AchievementTier.Difficulty,
	schema.AchievementTier.Criteria,
	schema.AchievementTier.Rarity,
	schema.AchievementTier.UpdatedAt,
	schema.Achievement.Table,
	schema.AchievementTier.Table,
	schema.AchievementTier.AchievementID,
	schema.Achievement.ID,
)

var achievementOrder = fmt.Sprintf(" ORDER BY a.%s ASC, t.%s ASC",
	schema.Achievement.CodeName, schema.AchievementTier.Difficulty)

/*
ListAchievements returns achievements and their tiers.

Description: A single LEFT JOIN hydrates achievements and tiers; rows arrive
ordered by code name then difficulty, so tiers are appended in ascending order.

Parameters:
  - context: context.Context
  - codeNames: []string (Empty lists every achievement)

Returns:
  - []*Achievement: Matching achievements
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAchievements(context context.Context, codeNames []string) ([]*Achievement, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(achievementSelect)
	if len(codeNames) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE a.%s = ANY($1::text[])", schema.Achievement.CodeName))
		args = append(args, codeNames)
	}
	queryBuilder.WriteString(achievementOrder)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_achievements")
	}
	defer rows.Close()

	achievements, err := scanAchievements(rows)
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

/*
FindByCodeName retrieves a single achievement and its tiers.

Returns:
  - *Achievement: Hydrated entity
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) FindByCodeName(context context.Context, codeName string) (*Achievement, error) {
	query := achievementSelect + fmt.Sprintf(" WHERE a.%s = $1", schema.Achievement.CodeName) + achievementOrder

	rows, err := repository.pool.Query(context, query, codeName)
	if err != nil {
		return nil, dberr.Wrap(err, "find_achievement")
	}
	defer rows.Close()

	achievements, err := scanAchievements(rows)
	if err != nil {
		return nil, err
	}
	if len(achievements) == 0 {
		return nil, dberr.ErrNotFound
	}
	return achievements[0], nil
}

// scanAchievements folds joined achievement/tier rows into achievements.
func scanAchievements(rows pgx.Rows) ([]*Achievement, error) {
	var achievements []*Achievement
	var current *Achievement

	for rows.Next() {
		var (
			achievement Achievement
			domain      string
			tierID      *string
			difficulty  *int16
			criteria    []byte
			rarity      *float64
			tierUpdated *time.Time
		)

		err := rows.Scan(
			&achievement.ID, &achievement.CodeName, &achievement.Name, &achievement.Description,
			&domain, &achievement.CreatedAt, &achievement.UpdatedAt,
			&tierID, &difficulty, &criteria, &rarity, &tierUpdated,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_achievement")
		}

		if current == nil || current.ID != achievement.ID {
			achievement.Domain = media.Domain(domain)
			achievement.Tiers = []Tier{}
			current = &achievement
			achievements = append(achievements, current)
		}

		// Achievement without tiers
		if tierID == nil {
			continue
		}

		tier := Tier{ID: *tierID, AchievementID: current.ID, Difficulty: Difficulty(*difficulty)}
		if rarity != nil {
			tier.Rarity = *rarity
		}
		if tierUpdated != nil {
			tier.UpdatedAt = *tierUpdated
		}
		if err := json.Unmarshal(criteria, &tier.Criteria); err != nil {
			return nil, fmt.Errorf("%w: tier %s: %v", ErrInvalidCriteria, tier.ID, err)
		}
		current.Tiers = append(current.Tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_achievements")
	}
	return achievements, nil
}

// # Definition Mutation

/*
UpdateAchievement patches display text in place. An empty patch only
checks that the achievement exists and leaves its timestamp untouched.

Returns:
  - bool: False when no achievement carries codeName
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpdateAchievement(context context.Context, codeName string, patch AchievementPatch) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($2::text, %s),
			%s = COALESCE($3::text, %s),
			%s = CASE WHEN $2::text IS NULL AND $3::text IS NULL THEN %s ELSE NOW() END
		WHERE %s = $1
	`,
		schema.Achievement.Table,
		schema.Achievement.Name, schema.Achievement.Name,
		schema.Achievement.Description, schema.Achievement.Description,
		schema.Achievement.UpdatedAt, schema.Achievement.UpdatedAt,
		schema.Achievement.CodeName,
	)

	result, err := repository.pool.Exec(context, query, codeName, patch.Name, patch.Description)
	if err != nil {
		return false, dberr.Wrap(err, "update_achievement")
	}
	return result.RowsAffected() > 0, nil
}

/*
UpdateTier replaces one tier's criteria.

Returns:
  - bool: False when the achievement or the difficulty does not exist
  - error: Persistence failures
*/
func (repository *PostgresRepository) UpdateTier(context context.Context, codeName string, difficulty Difficulty, criteria Criteria) (bool, error) {
	payload, err := json.Marshal(criteria)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}

	query := fmt.Sprintf(`
		UPDATE %s t
		SET %s = $3::jsonb, %s = NOW()
		FROM %s a
		WHERE a.%s = t.%s AND a.%s = $1 AND t.%s = $2
	`,
		schema.AchievementTier.Table,
		schema.AchievementTier.Criteria, schema.AchievementTier.UpdatedAt,
		schema.Achievement.Table,
		schema.Achievement.ID, schema.AchievementTier.AchievementID,
		schema.Achievement.CodeName, schema.AchievementTier.Difficulty,
	)

	result, err := repository.pool.Exec(context, query, codeName, int16(difficulty), string(payload))
	if err != nil {
		return false, dberr.Wrap(err, "update_tier")
	}
	return result.RowsAffected() > 0, nil
}

// # Progress Read Model

/*
ListUserProgress returns a user's progress joined with achievement and tier
definitions.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*ProgressView: Rows ordered by code name and difficulty
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListUserProgress(context context.Context, userID string) ([]*ProgressView, error) {
	query := fmt.Sprintf(`
		SELECT
			p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
			a.%s, a.%s, a.%s, t.%s, t.%s, t.%s
		FROM %s p
		JOIN %s t ON t.%s = p.%s
		JOIN %s a ON a.%s = p.%s
		WHERE p.%s = $1
		ORDER BY a.%s ASC, t.%s ASC
	`,
		schema.UserProgress.ID, schema.UserProgress.UserID, schema.UserProgress.AchievementID,
		schema.UserProgress.TierID, schema.UserProgress.Count, schema.UserProgress.Progress,
		schema.UserProgress.Completed, schema.UserProgress.CompletedAt, schema.UserProgress.LastCalculatedAt,
		schema.Achievement.CodeName, schema.Achievement.Name, schema.Achievement.Domain,
		schema.AchievementTier.Difficulty, schema.AchievementTier.Criteria, schema.AchievementTier.Rarity,
		schema.UserProgress.Table,
		schema.AchievementTier.Table, schema.AchievementTier.ID, schema.UserProgress.TierID,
		schema.Achievement.Table, schema.Achievement.ID, schema.UserProgress.AchievementID,
		schema.UserProgress.UserID,
		schema.Achievement.CodeName, schema.AchievementTier.Difficulty,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_progress")
	}
	defer rows.Close()

	views := []*ProgressView{}
	for rows.Next() {
		var (
			view       ProgressView
			domain     string
			difficulty int16
			criteria   []byte
		)
		err := rows.Scan(
			&view.ID, &view.UserID, &view.AchievementID, &view.TierID, &view.Count, &view.Progress,
			&view.Completed, &view.CompletedAt, &view.LastCalculatedAt,
			&view.CodeName, &view.Name, &domain, &difficulty, &criteria, &view.Rarity,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user_progress")
		}

		var parsed Criteria
		if err := json.Unmarshal(criteria, &parsed); err != nil {
			return nil, fmt.Errorf("%w: tier %s: %v", ErrInvalidCriteria, view.TierID, err)
		}

		view.Domain = media.Domain(domain)
		view.Difficulty = Difficulty(difficulty)
		view.Threshold = parsed.Count
		views = append(views, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_user_progress")
	}
	return views, nil
}

// # Seeding

/*
Reconcile applies the catalog in one transaction.

Description: Achievements are upserted by code name and their tiers by
(achievement, difficulty) through a pgx.Batch. Tiers and achievements the
catalog no longer names are deleted; progress rows follow by cascade.

Returns:
  - SeedReport: Row counts per action
  - error: Persistence failures (the transaction is rolled back)
*/
func (repository *PostgresRepository) Reconcile(context context.Context, definitions []Definition) (SeedReport, error) {
	var report SeedReport

	upsertAchievement := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s, (xmax = 0) AS inserted
	`,
		schema.Achievement.Table,
		schema.Achievement.ID, schema.Achievement.CodeName, schema.Achievement.Name,
		schema.Achievement.Description, schema.Achievement.Domain,
		schema.Achievement.CodeName,
		schema.Achievement.Name, schema.Achievement.Name,
		schema.Achievement.Description, schema.Achievement.Description,
		schema.Achievement.Domain, schema.Achievement.Domain,
		schema.Achievement.UpdatedAt,
		schema.Achievement.ID,
	)

	upsertTier := fmt.Sprintf(`
		INSERT INTO %s AS t (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()
		WHERE t.%s IS DISTINCT FROM EXCLUDED.%s
	`,
		schema.AchievementTier.Table,
		schema.AchievementTier.ID, schema.AchievementTier.AchievementID,
		schema.AchievementTier.Difficulty, schema.AchievementTier.Criteria,
		schema.AchievementTier.AchievementID, schema.AchievementTier.Difficulty,
		schema.AchievementTier.Criteria, schema.AchievementTier.Criteria, schema.AchievementTier.UpdatedAt,
		schema.AchievementTier.Criteria, schema.AchievementTier.Criteria,
	)

	pruneTiers := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND NOT (%s = ANY($2::smallint[]))`,
		schema.AchievementTier.Table, schema.AchievementTier.AchievementID, schema.AchievementTier.Difficulty)

	pruneAchievements := fmt.Sprintf(`DELETE FROM %s WHERE NOT (%s = ANY($1::text[]))`,
		schema.Achievement.Table, schema.Achievement.CodeName)

	err := postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		codeNames := make([]string, 0, len(definitions))

		for _, definition := range definitions {
			codeNames = append(codeNames, definition.CodeName)

			var achievementID string
			var inserted bool
			err := transaction.QueryRow(context, upsertAchievement,
				uuid.New(), definition.CodeName, definition.Name, definition.Description, string(definition.Domain),
			).Scan(&achievementID, &inserted)
			if err != nil {
				return dberr.Wrap(err, "seed_achievement")
			}
			if inserted {
				report.Created++
			} else {
				report.Updated++
			}

			// Tier upserts are pipelined in one round-trip
			batch := &pgx.Batch{}
			difficulties := make([]int16, 0, len(definition.Tiers))
			for i, criteria := range definition.Tiers {
				payload, err := json.Marshal(criteria)
				if err != nil {
					return fmt.Errorf("%w: %s: %v", ErrInvalidCriteria, definition.CodeName, err)
				}
				difficulty := int16(i + 1)
				difficulties = append(difficulties, difficulty)
				batch.Queue(upsertTier, uuid.New(), achievementID, difficulty, string(payload))
			}
			batch.Queue(pruneTiers, achievementID, difficulties)

			if err := transaction.SendBatch(context, batch).Close(); err != nil {
				return dberr.Wrap(err, "seed_tiers")
			}
		}

		result, err := transaction.Exec(context, pruneAchievements, codeNames)
		if err != nil {
			return dberr.Wrap(err, "prune_achievements")
		}
		report.Deleted = result.RowsAffected()
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}

	return report, nil
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mediatrack/internal/platform/database/schema"
	"github.com/taibuivan/mediatrack/internal/platform/dberr"
	"github.com/taibuivan/mediatrack/internal/platform/postgres"
)

// stagingTable holds the staged aggregate for the current transaction.
const stagingTable = "achievementaggregate"

// defaultInsertChunk bounds one insert-branch statement.
const defaultInsertChunk = 5000

// PostgresProgressStore implements [ProgressStore] using pgx.
type PostgresProgressStore struct {
	pool      *pgxpool.Pool
	chunkSize int
}

// NewPostgresProgressStore constructs the progress store. chunkSize bounds the
// rows inserted per statement; values below 1 fall back to 5000.
func NewPostgresProgressStore(pool *pgxpool.Pool, chunkSize int) *PostgresProgressStore {
	if chunkSize < 1 {
		chunkSize = defaultInsertChunk
	}
	return &PostgresProgressStore{pool: pool, chunkSize: chunkSize}
}

// WithinAchievement runs fn inside one transaction.
func (store *PostgresProgressStore) WithinAchievement(context context.Context, fn func(writer ProgressWriter) error) error {
	return postgres.InTx(context, store.pool, func(transaction pgx.Tx) error {
		return fn(&progressWriter{transaction: transaction, chunkSize: store.chunkSize})
	})
}

// progressWriter is bound to one achievement transaction.
type progressWriter struct {
	transaction pgx.Tx
	chunkSize   int
}

// # Staging

/*
Stage materialises the aggregate into a transaction-scoped temp table.

Description: Users the account table does not know are dropped so that an
inconsistent aggregate row contributes nothing instead of failing the
foreign key on insert.
*/
func (writer *progressWriter) Stage(context context.Context, aggregate Aggregate) error {
	create := fmt.Sprintf(`
		CREATE TEMP TABLE IF NOT EXISTS %s (
			userid UUID PRIMARY KEY,
			value  NUMERIC NOT NULL
		) ON COMMIT DROP
	`, stagingTable)

	if _, err := writer.transaction.Exec(context, create); err != nil {
		return dberr.Wrap(err, "create_staging")
	}
	if _, err := writer.transaction.Exec(context, "TRUNCATE "+stagingTable); err != nil {
		return dberr.Wrap(err, "truncate_staging")
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (userid, value)
		SELECT agg.userid, MAX(agg.value)
		FROM (%s) agg
		JOIN %s u ON u.%s = agg.userid
		WHERE agg.value IS NOT NULL
		GROUP BY agg.userid
	`, stagingTable, aggregate.SQL, schema.UserAccount.Table, schema.UserAccount.ID)

	if _, err := writer.transaction.Exec(context, insert, aggregate.Args...); err != nil {
		return dberr.Wrap(err, "stage_aggregate")
	}
	return nil
}

// # Upsert

// progressExpression renders progress for value against threshold, given
// whether the row counts as completed. Incomplete rows are truncated and
// capped below 100 so only completed rows display as full.
func progressExpression(completed, value, threshold string) string {
	return fmt.Sprintf(`CASE
			WHEN %s THEN 100
			WHEN %s <= 0 THEN 0
			ELSE LEAST(GREATEST(TRUNC(%s / %s * 100, 2), 0), %v)
		END`, completed, threshold, value, threshold, maxIncompleteProgress)
}

/*
Apply upserts the tier's progress for every staged user.

Description: The update branch rewrites existing rows in one statement; the
insert branch then creates the missing rows in chunks. Completion never
regresses and completedat is only set on the first transition.

Returns:
  - ApplyResult: Rows updated and inserted
  - error: Persistence failures
*/
func (writer *progressWriter) Apply(context context.Context, achievement *Achievement, tier Tier, now time.Time) (ApplyResult, error) {
	var result ApplyResult
	threshold := tier.Criteria.Count

	// ## Update branch
	update := fmt.Sprintf(`
		UPDATE %[1]s p
		SET %[2]s = a.value,
			%[3]s = p.%[3]s OR a.value >= $2::numeric,
			%[4]s = CASE
				WHEN p.%[3]s THEN p.%[4]s
				WHEN a.value >= $2::numeric THEN $3::timestamptz
				ELSE p.%[4]s
			END,
			%[5]s = %[6]s,
			%[7]s = $3::timestamptz
		FROM %[8]s a
		WHERE p.%[9]s = $1 AND p.%[10]s = a.userid
	`,
		schema.UserProgress.Table,
		schema.UserProgress.Count,
		schema.UserProgress.Completed,
		schema.UserProgress.CompletedAt,
		schema.UserProgress.Progress,
		progressExpression("p."+schema.UserProgress.Completed+" OR a.value >= $2::numeric", "a.value", "$2::numeric"),
		schema.UserProgress.LastCalculatedAt,
		stagingTable,
		schema.UserProgress.TierID,
		schema.UserProgress.UserID,
	)

	updated, err := writer.transaction.Exec(context, update, tier.ID, threshold, now)
	if err != nil {
		return result, dberr.Wrap(err, "update_progress")
	}
	result.Updated = updated.RowsAffected()

	// ## Insert branch
	insert := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s, %[8]s, %[9]s, %[10]s)
		SELECT
			gen_random_uuid(), a.userid, $1::uuid, $2::uuid, a.value,
			%[11]s,
			a.value >= $3::numeric,
			CASE WHEN a.value >= $3::numeric THEN $4::timestamptz END,
			$4::timestamptz
		FROM %[12]s a
		WHERE NOT EXISTS (
			SELECT 1 FROM %[1]s p WHERE p.%[5]s = $2::uuid AND p.%[3]s = a.userid
		)
		ORDER BY a.userid
		LIMIT $5
		ON CONFLICT (%[3]s, %[5]s) DO NOTHING
	`,
		schema.UserProgress.Table,
		schema.UserProgress.ID,
		schema.UserProgress.UserID,
		schema.UserProgress.AchievementID,
		schema.UserProgress.TierID,
		schema.UserProgress.Count,
		schema.UserProgress.Progress,
		schema.UserProgress.Completed,
		schema.UserProgress.CompletedAt,
		schema.UserProgress.LastCalculatedAt,
		progressExpression("a.value >= $3::numeric", "a.value", "$3::numeric"),
		stagingTable,
	)

	// Each pass inserts at most chunkSize rows. ON CONFLICT DO NOTHING can
	// make a pass short while missing users remain, so only an empty pass
	// ends the loop.
	for {
		inserted, err := writer.transaction.Exec(context, insert, achievement.ID, tier.ID, threshold, now, writer.chunkSize)
		if err != nil {
			return result, dberr.Wrap(err, "insert_progress")
		}
		if inserted.RowsAffected() == 0 {
			break
		}
		result.Inserted += inserted.RowsAffected()
	}

	return result, nil
}

// # Rarity

/*
RecomputeRarity refreshes every tier's rarity in one statement.

Description: Active users are accounts flagged active and not deleted. Only
their completions count, so rarity stays within [0, 100]. With no active
users every tier gets 0.
*/
func (store *PostgresProgressStore) RecomputeRarity(context context.Context) (int64, error) {
	query := fmt.Sprintf(`
		WITH active AS (
			SELECT COUNT(*)::numeric AS total
			FROM %[1]s u
			WHERE u.%[2]s AND u.%[3]s IS NULL
		),
		completions AS (
			SELECT p.%[4]s AS tierid, COUNT(*)::numeric AS total
			FROM %[5]s p
			JOIN %[1]s u ON u.%[6]s = p.%[7]s AND u.%[2]s AND u.%[3]s IS NULL
			WHERE p.%[8]s
			GROUP BY p.%[4]s
		)
		UPDATE %[9]s t
		SET %[10]s = r.rarity
		FROM (
			SELECT tier.%[11]s AS tierid,
				CASE
					WHEN active.total = 0 THEN 0
					ELSE LEAST(ROUND(COALESCE(c.total, 0) * 100 / active.total, 2), 100)
				END AS rarity
			FROM %[9]s tier
			CROSS JOIN active
			LEFT JOIN completions c ON c.tierid = tier.%[11]s
		) r
		WHERE t.%[11]s = r.tierid
	`,
		schema.UserAccount.Table,
		schema.UserAccount.IsActive,
		schema.UserAccount.DeletedAt,
		schema.UserProgress.TierID,
		schema.UserProgress.Table,
		schema.UserAccount.ID,
		schema.UserProgress.UserID,
		schema.UserProgress.Completed,
		schema.AchievementTier.Table,
		schema.AchievementTier.Rarity,
		schema.AchievementTier.ID,
	)

	result, err := store.pool.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "recompute_rarity")
	}
	return result.RowsAffected(), nil
}

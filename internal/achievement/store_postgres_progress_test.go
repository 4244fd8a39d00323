// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTx answers Exec with scripted row counts. Updates report updated
// rows; inserts consume one entry of inserted per call.
type scriptedTx struct {
	pgx.Tx

	updated  int64
	inserted []int64
	inserts  []string
}

func (transaction *scriptedTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if strings.Contains(sql, "INSERT INTO") {
		transaction.inserts = append(transaction.inserts, sql)
		if len(transaction.inserted) == 0 {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		next := transaction.inserted[0]
		transaction.inserted = transaction.inserted[1:]
		return pgconn.NewCommandTag(fmt.Sprintf("INSERT 0 %d", next)), nil
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", transaction.updated)), nil
}

func TestProgressWriter_Apply(t *testing.T) {
	achievement := &Achievement{ID: "a1", CodeName: "completed_movies"}
	tier := Tier{ID: "t1", Difficulty: DifficultyBronze, Criteria: Criteria{Count: 10}}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("short_chunk_keeps_inserting", func(t *testing.T) {
		// A conflicting row makes the first pass short while rows remain.
		transaction := &scriptedTx{updated: 4, inserted: []int64{3, 1, 2}}
		writer := &progressWriter{transaction: transaction, chunkSize: 3}

		result, err := writer.Apply(context.Background(), achievement, tier, now)
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.Updated)
		assert.Equal(t, int64(6), result.Inserted)
		assert.Len(t, transaction.inserts, 4)
	})

	t.Run("empty_complement", func(t *testing.T) {
		transaction := &scriptedTx{}
		writer := &progressWriter{transaction: transaction, chunkSize: 3}

		result, err := writer.Apply(context.Background(), achievement, tier, now)
		require.NoError(t, err)
		assert.Zero(t, result.Inserted)
		assert.Len(t, transaction.inserts, 1)
	})
}

func TestProgressExpression(t *testing.T) {
	expression := progressExpression("done", "v", "t")
	assert.Contains(t, expression, "TRUNC(v / t * 100, 2)")
	assert.Contains(t, expression, "99.99")
	assert.NotContains(t, expression, "ROUND")
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package achievement_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/internal/achievement"
	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/internal/platform/migration"
	"github.com/taibuivan/mediatrack/internal/platform/postgres"
	"github.com/taibuivan/mediatrack/internal/platform/testinfra"
	"github.com/taibuivan/mediatrack/pkg/uuid"
)

type postgresFixture struct {
	pool    *pgxpool.Pool
	service *achievement.Service
	clock   time.Time
}

func newPostgresFixture(t *testing.T) *postgresFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	dsn := testinfra.StartPostgres(t)
	migrations, err := filepath.Abs("../../data/migrations")
	require.NoError(t, err)
	require.NoError(t, migration.RunUp(dsn, migrations, logger))

	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	calculators, err := achievement.NewCalculatorRegistry(media.NewRegistry())
	require.NoError(t, err)

	fixture := &postgresFixture{pool: pool, clock: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	repository := achievement.NewPostgresRepository(pool)

	// A chunk size of 1 forces the insert branch to loop.
	engine := achievement.NewEngine(repository, achievement.NewPostgresProgressStore(pool, 1), calculators, nil, logger, achievement.EngineOptions{
		Workers: 2,
		Clock:   func() time.Time { return fixture.clock },
	})
	fixture.service = achievement.NewService(repository, engine, calculators, logger)

	_, err = fixture.service.Seed(ctx)
	require.NoError(t, err)
	return fixture
}

func (fixture *postgresFixture) exec(t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := fixture.pool.Exec(context.Background(), sql, args...)
	require.NoError(t, err)
}

func (fixture *postgresFixture) user(t *testing.T, name string, active bool) string {
	t.Helper()
	id := uuid.New()
	fixture.exec(t, `INSERT INTO users.account (id, username, isactive) VALUES ($1, $2, $3)`, id, name, active)
	return id
}

// movie inserts a movie directed by director and returns its id.
func (fixture *postgresFixture) movie(t *testing.T, director string, runtime int) string {
	t.Helper()
	id := uuid.New()
	fixture.exec(t, `INSERT INTO media.movie (id, title, language, runtime) VALUES ($1, $2, 'en', $3)`, id, "movie "+id[:8], runtime)
	fixture.exec(t, `INSERT INTO media.moviedirector (movieid, personid, name) VALUES ($1, $2, 'director')`, id, director)
	return id
}

func (fixture *postgresFixture) watch(t *testing.T, userID, movieID, status string) {
	t.Helper()
	fixture.exec(t, `INSERT INTO media.movieentry (id, userid, movieid, status) VALUES ($1, $2, $3, $4)`, uuid.New(), userID, movieID, status)
}

// series inserts a series with one season per episode count.
func (fixture *postgresFixture) series(t *testing.T, episodes ...int) string {
	t.Helper()
	id := uuid.New()
	fixture.exec(t, `INSERT INTO media.series (id, title, language) VALUES ($1, $2, 'en')`, id, "series "+id[:8])
	for i, count := range episodes {
		fixture.exec(t, `INSERT INTO media.seriesseason (seriesid, seasonnumber, episodecount) VALUES ($1, $2, $3)`, id, i+1, count)
	}
	return id
}

func (fixture *postgresFixture) follow(t *testing.T, userID, seriesID, status string, watched int) {
	t.Helper()
	fixture.exec(t, `INSERT INTO media.seriesentry (id, userid, seriesid, status, episodeswatched) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), userID, seriesID, status, watched)
}

func progressOf(t *testing.T, views []*achievement.ProgressView, codeName string, difficulty achievement.Difficulty) *achievement.ProgressView {
	t.Helper()
	for _, view := range views {
		if view.CodeName == codeName && view.Difficulty == difficulty {
			return view
		}
	}
	t.Fatalf("no progress for %s/%s", codeName, difficulty)
	return nil
}

func TestPostgres_CalculateAndRarity(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	fixture := newPostgresFixture(t)
	ctx := context.Background()

	alice := fixture.user(t, "alice", true)
	bob := fixture.user(t, "bob", true)
	carol := fixture.user(t, "carol", false)

	director := uuid.New()
	var movies []string
	for range 3 {
		movies = append(movies, fixture.movie(t, director, 95))
	}
	for _, movie := range movies {
		fixture.watch(t, alice, movie, "completed")
		fixture.watch(t, carol, movie, "completed")
	}
	fixture.watch(t, bob, movies[0], "planned")

	_, err := fixture.service.UpdateTier(ctx, "completed_movies", achievement.DifficultyBronze, achievement.Criteria{Count: 2})
	require.NoError(t, err)

	scope := achievement.Scope{CodeNames: []string{"completed_movies", "director_movies"}, Users: achievement.AllUsers()}
	report, err := fixture.service.Calculate(ctx, scope, nil)
	require.NoError(t, err)
	require.Equal(t, 2, report.Succeeded, report.Results)
	assert.Empty(t, report.RarityError)

	views, err := fixture.service.UserProgress(ctx, alice)
	require.NoError(t, err)

	bronze := progressOf(t, views, "completed_movies", achievement.DifficultyBronze)
	assert.True(t, bronze.Completed)
	assert.Equal(t, float64(100), bronze.Progress)
	assert.Equal(t, float64(3), bronze.Count)
	require.NotNil(t, bronze.CompletedAt)
	// Alice and Bob are active, Carol is not.
	assert.Equal(t, float64(50), bronze.Rarity)

	silver := progressOf(t, views, "completed_movies", achievement.DifficultySilver)
	assert.False(t, silver.Completed)
	assert.InDelta(t, 0.75, silver.Progress, 0.001)

	directed := progressOf(t, views, "director_movies", achievement.DifficultyBronze)
	assert.Equal(t, float64(3), directed.Count)
	assert.InDelta(t, 60, directed.Progress, 0.001)

	// Bob has no completed movie and so no aggregate row.
	bobViews, err := fixture.service.UserProgress(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobViews)

	t.Run("idempotent", func(t *testing.T) {
		report, err := fixture.service.Calculate(ctx, scope, nil)
		require.NoError(t, err)
		for _, result := range report.Results {
			assert.Zero(t, result.Inserted, result.CodeName)
			assert.Positive(t, result.Updated, result.CodeName)
		}
	})

	t.Run("completion_survives_drop", func(t *testing.T) {
		completedAt := *bronze.CompletedAt
		fixture.clock = fixture.clock.Add(time.Hour)
		fixture.exec(t, `UPDATE media.movieentry SET status = 'dropped' WHERE userid = $1 AND movieid <> $2`, alice, movies[0])

		_, err := fixture.service.Recalculate(ctx, "completed_movies")
		require.NoError(t, err)

		views, err := fixture.service.UserProgress(ctx, alice)
		require.NoError(t, err)
		bronze := progressOf(t, views, "completed_movies", achievement.DifficultyBronze)
		assert.True(t, bronze.Completed)
		assert.Equal(t, float64(1), bronze.Count)
		assert.Equal(t, float64(100), bronze.Progress)
		assert.True(t, completedAt.Equal(*bronze.CompletedAt))
	})

	t.Run("listed_users_only", func(t *testing.T) {
		report, err := fixture.service.Calculate(ctx, achievement.Scope{
			CodeNames: []string{"completed_movies"},
			Users:     achievement.Users(bob),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Users)
		assert.Zero(t, report.Results[0].Inserted)
	})

	t.Run("rarity_without_active_users", func(t *testing.T) {
		fixture.exec(t, `UPDATE users.account SET isactive = false`)
		_, err := fixture.service.CalculateRarity(ctx)
		require.NoError(t, err)

		views, err := fixture.service.UserProgress(ctx, alice)
		require.NoError(t, err)
		for _, view := range views {
			assert.Zero(t, view.Rarity)
		}
	})
}

/*
TestPostgres_AggregateFamilies runs every aggregate family of the movie,
series and cross-domain catalog against real tables.
*/
func TestPostgres_AggregateFamilies(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	fixture := newPostgresFixture(t)
	ctx := context.Background()

	dana := fixture.user(t, "dana", true)

	// Five completed movies by one director and three by another.
	first, second := uuid.New(), uuid.New()
	var movies []string
	for i := range 8 {
		director := first
		if i >= 5 {
			director = second
		}
		movie := fixture.movie(t, director, 95)
		fixture.watch(t, dana, movie, "completed")
		movies = append(movies, movie)
	}
	fixture.exec(t, `UPDATE media.movie SET language = 'fr' WHERE id = $1`, movies[1])
	fixture.exec(t, `UPDATE media.movie SET language = 'ja' WHERE id = $1`, movies[2])
	fixture.exec(t, `UPDATE media.movie SET runtime = 80 WHERE id = $1`, movies[3])
	fixture.exec(t, `UPDATE media.movie SET runtime = 90 WHERE id = $1`, movies[4])
	fixture.exec(t, `UPDATE media.movieentry SET score = 8 WHERE movieid = ANY($1::uuid[])`, movies[:2])

	horror := uuid.New()
	for _, movie := range movies[:2] {
		fixture.exec(t, `INSERT INTO media.moviegenre (movieid, genreid, name, slug) VALUES ($1, $2, 'Horror', 'horror')`, movie, horror)
	}

	// A planned horror movie, a long one in progress and a long one dropped.
	planned := fixture.movie(t, uuid.New(), 85)
	fixture.exec(t, `INSERT INTO media.moviegenre (movieid, genreid, name, slug) VALUES ($1, $2, 'Horror', 'horror')`, planned, horror)
	fixture.watch(t, dana, planned, "planned")
	fixture.watch(t, dana, fixture.movie(t, uuid.New(), 170), "in_progress")
	fixture.watch(t, dana, fixture.movie(t, uuid.New(), 200), "dropped")

	// Seasons: 10 episodes completed, 110 in progress, 3 dropped.
	miniseries := fixture.series(t, 6, 4)
	fixture.follow(t, dana, miniseries, "completed", 10)
	fixture.exec(t, `UPDATE media.seriesentry SET score = 9 WHERE seriesid = $1`, miniseries)
	fixture.follow(t, dana, fixture.series(t, 60, 50), "in_progress", 70)
	fixture.follow(t, dana, fixture.series(t, 3), "dropped", 2)

	// "favorite" is used in both domains and counts once.
	fixture.exec(t, `INSERT INTO media.movielabel (userid, movieid, name) VALUES ($1, $2, 'favorite'), ($1, $3, 'favorite'), ($1, $2, 'rewatch')`,
		dana, movies[0], movies[1])
	fixture.exec(t, `INSERT INTO media.serieslabel (userid, seriesid, name) VALUES ($1, $2, 'favorite')`, dana, miniseries)

	// 740 completed minutes are 12.3333 hours, just under this threshold.
	_, err := fixture.service.UpdateTier(ctx, "watchtime_movies", achievement.DifficultyBronze, achievement.Criteria{Count: 12.3334})
	require.NoError(t, err)

	codeNames := []string{
		"director_movies", "language_movies", "genre_horror_movies", "short_movies", "long_movies",
		"watchtime_movies", "completed_series", "short_series", "long_series", "episodes_series",
		"completed_all", "rated_all", "labels_all",
	}
	report, err := fixture.service.Calculate(ctx, achievement.Scope{CodeNames: codeNames, Users: achievement.AllUsers()}, nil)
	require.NoError(t, err)
	require.Equal(t, len(codeNames), report.Succeeded, report.Results)

	views, err := fixture.service.UserProgress(ctx, dana)
	require.NoError(t, err)

	tests := []struct {
		codeName  string
		count     float64
		progress  float64
		completed bool
	}{
		{"director_movies", 5, 100, true},
		{"language_movies", 3, 100, true},
		{"genre_horror_movies", 2, 20, false},
		{"short_movies", 2, 20, false},
		{"long_movies", 1, 20, false},
		{"watchtime_movies", 12.33, 99.99, false},
		{"completed_series", 1, 10, false},
		{"short_series", 1, 20, false},
		{"long_series", 1, 100, true},
		{"episodes_series", 82, 82, false},
		{"completed_all", 9, 18, false},
		{"rated_all", 3, 6, false},
		{"labels_all", 2, 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.codeName, func(t *testing.T) {
			bronze := progressOf(t, views, tt.codeName, achievement.DifficultyBronze)
			assert.InDelta(t, tt.count, bronze.Count, 0.001)
			assert.InDelta(t, tt.progress, bronze.Progress, 0.001)
			assert.Equal(t, tt.completed, bronze.Completed)
		})
	}

	silver := progressOf(t, views, "director_movies", achievement.DifficultySilver)
	assert.InDelta(t, 50, silver.Progress, 0.001)
	assert.False(t, silver.Completed)
}

func TestPostgres_SeedIsIdempotent(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	fixture := newPostgresFixture(t)

	report, err := fixture.service.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Created)
	assert.Zero(t, report.Deleted)
}

func TestPostgres_UpdateAchievement(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	fixture := newPostgresFixture(t)
	ctx := context.Background()

	updatedAt := func() time.Time {
		var at time.Time
		err := fixture.pool.QueryRow(ctx, `SELECT updatedat FROM achievement.achievement WHERE codename = 'completed_movies'`).Scan(&at)
		require.NoError(t, err)
		return at
	}
	before := updatedAt()

	updated, err := fixture.service.UpdateAchievement(ctx, "completed_movies", achievement.AchievementPatch{})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.True(t, before.Equal(updatedAt()))

	updated, err = fixture.service.UpdateAchievement(ctx, "missing", achievement.AchievementPatch{})
	require.NoError(t, err)
	assert.False(t, updated)

	name := "Movie Buff"
	updated, err = fixture.service.UpdateAchievement(ctx, "completed_movies", achievement.AchievementPatch{Name: &name})
	require.NoError(t, err)
	assert.True(t, updated)
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/internal/media"
)

func TestCalculatorRegistry_CoversCatalog(t *testing.T) {
	calculators, err := NewCalculatorRegistry(media.NewRegistry())
	require.NoError(t, err)

	for _, definition := range Catalog() {
		calculator, ok := calculators.ByCodeName(definition.CodeName)
		if assert.True(t, ok, definition.CodeName) {
			assert.Equal(t, definition.Domain, calculator.Domain, definition.CodeName)
		}
	}

	require.NoError(t, ValidateCatalog(Catalog(), calculators))
}

func TestCalculatorRegistry_CodeNames(t *testing.T) {
	calculators, err := NewCalculatorRegistry(media.NewRegistry())
	require.NoError(t, err)

	all := calculators.CodeNames("")
	assert.Len(t, all, len(Catalog()))
	assert.IsNonDecreasing(t, domainsOf(all))

	movies := calculators.CodeNames(media.DomainMovies)
	require.NotEmpty(t, movies)
	for i, codeName := range movies {
		assert.Equal(t, media.DomainMovies, codeName.Domain)
		if i > 0 {
			assert.Less(t, movies[i-1].CodeName, codeName.CodeName)
		}
	}

	assert.Empty(t, calculators.ByDomain("unknown"))
}

func domainsOf(codeNames []CodeName) []string {
	domains := make([]string, len(codeNames))
	for i, codeName := range codeNames {
		domains[i] = string(codeName.Domain)
	}
	return domains
}

func TestNewCalculatorRegistryFrom_Rejects(t *testing.T) {
	build := func(*Builder, Tier) (string, error) { return "SELECT 1", nil }

	_, err := NewCalculatorRegistryFrom(
		Calculator{CodeName: "twice", Domain: media.DomainMovies, Build: build},
		Calculator{CodeName: "twice", Domain: media.DomainBooks, Build: build},
	)
	assert.ErrorContains(t, err, "registered twice")

	_, err = NewCalculatorRegistryFrom(Calculator{CodeName: "no_build"})
	assert.ErrorContains(t, err, "incomplete")
}

/*
TestNewCalculatorRegistry_MissingRoles verifies a domain lacking a role simply
loses the calculators that need it.
*/
func TestNewCalculatorRegistry_MissingRoles(t *testing.T) {
	full := media.NewRegistry()
	list, ok := full.Resolve(media.DomainMovies, media.RoleList)
	require.True(t, ok)

	calculators, err := NewCalculatorRegistry(media.NewRegistryFrom(map[media.Domain][]media.Handle{
		media.DomainMovies: {list},
	}))
	require.NoError(t, err)

	_, ok = calculators.ByCodeName("completed_movies")
	assert.True(t, ok)
	_, ok = calculators.ByCodeName("director_movies")
	assert.False(t, ok)
	_, ok = calculators.ByCodeName("genre_horror_movies")
	assert.False(t, ok)
	_, ok = calculators.ByCodeName("completed_books")
	assert.False(t, ok)

	// Cross-domain calculators only union the domains present.
	completedAll, ok := calculators.ByCodeName("completed_all")
	require.True(t, ok)
	sql, err := completedAll.Build(NewBuilder(nil), Tier{})
	require.NoError(t, err)
	assert.Contains(t, sql, "media.movieentry")
	assert.NotContains(t, sql, "UNION ALL")

	_, ok = calculators.ByCodeName("labels_all")
	assert.False(t, ok)
}

func TestCalculator_LabelsAcrossDomains(t *testing.T) {
	calculators, err := NewCalculatorRegistry(media.NewRegistry())
	require.NoError(t, err)

	labels, ok := calculators.ByCodeName("labels_all")
	require.True(t, ok)
	sql, err := labels.Build(NewBuilder(nil), Tier{})
	require.NoError(t, err)
	assert.Contains(t, sql, "media.movielabel")
	assert.Contains(t, sql, "media.serieslabel")
	assert.Contains(t, sql, "COUNT(DISTINCT u.value)")
	assert.NotContains(t, sql, "SUM(u.value)")

	completed, ok := calculators.ByCodeName("completed_all")
	require.True(t, ok)
	sql, err = completed.Build(NewBuilder(nil), Tier{})
	require.NoError(t, err)
	assert.Contains(t, sql, "SUM(u.value)")
}

func TestCalculator_TierCriteria(t *testing.T) {
	calculators, err := NewCalculatorRegistry(media.NewRegistry())
	require.NoError(t, err)

	t.Run("value_required", func(t *testing.T) {
		horror, ok := calculators.ByCodeName("genre_horror_movies")
		require.True(t, ok)
		assert.True(t, horror.TierScoped)

		_, err := horror.Build(NewBuilder(nil), Tier{Criteria: Criteria{Count: 10, Value: "  "}})
		assert.ErrorIs(t, err, ErrInvalidCriteria)

		builder := NewBuilder(nil)
		_, err = horror.Build(builder, Tier{Criteria: Criteria{Count: 10, Value: "Horror"}})
		require.NoError(t, err)
		assert.Contains(t, builder.args, any("horror"))
	})

	t.Run("cutoff_must_be_numeric", func(t *testing.T) {
		short, ok := calculators.ByCodeName("short_movies")
		require.True(t, ok)

		_, err := short.Build(NewBuilder(nil), Tier{Criteria: Criteria{Count: 10, Value: "ninety"}})
		assert.ErrorIs(t, err, ErrInvalidCriteria)
	})

	t.Run("count_only_is_not_tier_scoped", func(t *testing.T) {
		completed, ok := calculators.ByCodeName("completed_movies")
		require.True(t, ok)
		assert.False(t, completed.TierScoped)
	})
}

func TestValidateCatalog_Problems(t *testing.T) {
	calculators, err := NewCalculatorRegistryFrom(
		fixedCalculator("completed_movies", media.DomainMovies, "movies", false),
	)
	require.NoError(t, err)

	definitions := []Definition{
		{CodeName: "completed_movies", Domain: media.DomainMovies, Tiers: counts(1, 2, 3, 4)},
		{CodeName: "completed_movies", Domain: media.DomainMovies, Tiers: counts(1, 2, 3, 4)},
		{CodeName: "unregistered", Domain: media.DomainBooks, Tiers: counts(1, 2, 3, 4)},
	}
	err = ValidateCatalog(definitions, calculators)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCalculator)
	assert.ErrorContains(t, err, "duplicate code name")

	err = ValidateCatalog([]Definition{
		{CodeName: "completed_movies", Domain: media.DomainBooks, Tiers: counts(1, 2, 3, 4)},
	}, calculators)
	assert.ErrorContains(t, err, "calculator domain movies")

	err = ValidateCatalog([]Definition{
		{CodeName: "completed_movies", Domain: media.DomainMovies, Tiers: counts(-1, 2, 3, 4)},
	}, calculators)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

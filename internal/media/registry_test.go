// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mediatrack/internal/media"
)

/*
TestRegistry_Resolve checks that every domain exposes its media item and list.
*/
func TestRegistry_Resolve(t *testing.T) {
	registry := media.NewRegistry()

	for _, domain := range media.Domains() {
		t.Run(string(domain), func(t *testing.T) {
			item, ok := registry.Resolve(domain, media.RoleMedia)
			require.True(t, ok)
			assert.Equal(t, domain, item.Domain)
			assert.Equal(t, item.ID, item.Media)

			list, ok := registry.Resolve(domain, media.RoleList)
			require.True(t, ok)
			assert.NotEmpty(t, list.User)
			assert.NotEmpty(t, list.Status)
			assert.NotEmpty(t, list.Media)

			genre, ok := registry.Resolve(domain, media.RoleGenre)
			require.True(t, ok)
			assert.NotEmpty(t, genre.Slug)
		})
	}
}

/*
TestRegistry_AbsentRole verifies that missing roles are "not applicable".
*/
func TestRegistry_AbsentRole(t *testing.T) {
	registry := media.NewRegistry()

	tests := []struct {
		domain media.Domain
		role   media.Role
	}{
		{media.DomainMovies, media.RoleNetwork},
		{media.DomainBooks, media.RoleEpisodesPerSeason},
		{media.DomainGames, media.RoleActors},
		{media.DomainSeries, media.RoleAuthors},
		{media.DomainAll, media.RoleList},
	}

	for _, tt := range tests {
		t.Run(string(tt.domain)+"/"+string(tt.role), func(t *testing.T) {
			handle, ok := registry.Resolve(tt.domain, tt.role)
			assert.False(t, ok)
			assert.True(t, handle.IsZero())
		})
	}
}

func TestRegistry_ResolveSet(t *testing.T) {
	registry := media.NewRegistry()

	handles := registry.ResolveSet(media.DomainSeries, media.RoleList, media.RoleNetwork, media.RoleAuthors)
	assert.Len(t, handles, 2)
	assert.Contains(t, handles, media.RoleList)
	assert.Contains(t, handles, media.RoleNetwork)
	assert.NotContains(t, handles, media.RoleAuthors)
}

func TestRegistry_ResolveAll(t *testing.T) {
	registry := media.NewRegistry()

	lists := registry.ResolveAll(media.RoleList)
	assert.Len(t, lists, len(media.Domains()))

	seasons := registry.ResolveAll(media.RoleEpisodesPerSeason)
	assert.Len(t, seasons, 2)
	assert.Contains(t, seasons, media.DomainSeries)
	assert.Contains(t, seasons, media.DomainAnime)
}

func TestHandle_Measures(t *testing.T) {
	registry := media.NewRegistry()

	movie, _ := registry.Resolve(media.DomainMovies, media.RoleMedia)
	column, ok := movie.Measure(media.MeasureRuntime)
	assert.True(t, ok)
	assert.Equal(t, "runtime", column)

	_, ok = movie.Measure(media.MeasurePages)
	assert.False(t, ok)

	games, _ := registry.Resolve(media.DomainGames, media.RoleList)
	platform, ok := games.Attribute(media.AttributePlatform)
	assert.True(t, ok)
	assert.Equal(t, "platform", platform)

	movies, _ := registry.Resolve(media.DomainMovies, media.RoleList)
	_, ok = movies.Attribute(media.AttributePlatform)
	assert.False(t, ok, "empty columns must not be reported")
}

func TestParseDomain(t *testing.T) {
	domain, err := media.ParseDomain(" Movies ")
	require.NoError(t, err)
	assert.Equal(t, media.DomainMovies, domain)

	domain, err = media.ParseDomain("all")
	require.NoError(t, err)
	assert.Equal(t, media.DomainAll, domain)

	_, err = media.ParseDomain("podcasts")
	assert.ErrorIs(t, err, media.ErrUnknownDomain)
}

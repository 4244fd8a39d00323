// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"github.com/taibuivan/mediatrack/internal/platform/database/schema"
)

// # Registry

// Registry resolves (domain, role) pairs to table handles.
//
// It is immutable once built and safe for concurrent use.
type Registry struct {
	handles map[Domain]map[Role]Handle
}

// NewRegistry builds the registry for the Postgres media schema.
func NewRegistry() *Registry {
	return NewRegistryFrom(map[Domain][]Handle{
		DomainMovies: {
			itemHandle(DomainMovies, schema.Movie).
				WithMeasure(MeasureRuntime, schema.Movie.Runtime),
			entryHandle(DomainMovies, schema.MovieEntry),
			associationHandle(DomainMovies, RoleGenre, schema.MovieGenre),
			associationHandle(DomainMovies, RoleActors, schema.MovieActor),
			associationHandle(DomainMovies, RoleDirectors, schema.MovieDirector),
			associationHandle(DomainMovies, RoleCompanies, schema.MovieStudio),
			labelHandle(DomainMovies, schema.MovieLabel),
		},
		DomainSeries: {
			itemHandle(DomainSeries, schema.Series),
			entryHandle(DomainSeries, schema.SeriesEntry),
			associationHandle(DomainSeries, RoleGenre, schema.SeriesGenre),
			associationHandle(DomainSeries, RoleActors, schema.SeriesActor),
			associationHandle(DomainSeries, RoleNetwork, schema.SeriesNetwork),
			seasonHandle(DomainSeries, schema.SeriesSeason),
			labelHandle(DomainSeries, schema.SeriesLabel),
		},
		DomainAnime: {
			itemHandle(DomainAnime, schema.Anime),
			entryHandle(DomainAnime, schema.AnimeEntry),
			associationHandle(DomainAnime, RoleGenre, schema.AnimeGenre),
			associationHandle(DomainAnime, RoleCompanies, schema.AnimeStudio),
			seasonHandle(DomainAnime, schema.AnimeSeason),
			labelHandle(DomainAnime, schema.AnimeLabel),
		},
		DomainBooks: {
			itemHandle(DomainBooks, schema.Book).
				WithMeasure(MeasurePages, schema.Book.PageCount),
			entryHandle(DomainBooks, schema.BookEntry),
			associationHandle(DomainBooks, RoleGenre, schema.BookGenre),
			associationHandle(DomainBooks, RoleAuthors, schema.BookAuthor),
			associationHandle(DomainBooks, RoleCompanies, schema.BookPublisher),
			labelHandle(DomainBooks, schema.BookLabel),
		},
		DomainGames: {
			itemHandle(DomainGames, schema.Game),
			entryHandle(DomainGames, schema.GameEntry),
			associationHandle(DomainGames, RoleGenre, schema.GameGenre),
			associationHandle(DomainGames, RoleCompanies, schema.GameDeveloper),
			associationHandle(DomainGames, RolePerspectives, schema.GamePerspective),
			labelHandle(DomainGames, schema.GameLabel),
		},
	})
}

// NewRegistryFrom builds a registry from explicit handles. Each handle is
// filed under its own Domain and Role. Tests use it to assemble fakes.
func NewRegistryFrom(definitions map[Domain][]Handle) *Registry {
	handles := make(map[Domain]map[Role]Handle, len(definitions))
	for domain, list := range definitions {
		roles := make(map[Role]Handle, len(list))
		for _, handle := range list {
			handle.Domain = domain
			roles[handle.Role] = handle
		}
		handles[domain] = roles
	}
	return &Registry{handles: handles}
}

// # Resolution

// Resolve returns the handle playing role for domain. The boolean is false
// when the domain does not provide that role.
func (registry *Registry) Resolve(domain Domain, role Role) (Handle, bool) {
	handle, ok := registry.handles[domain][role]
	return handle, ok
}

// ResolveSet resolves several roles at once. Absent roles are omitted from
// the result rather than reported.
func (registry *Registry) ResolveSet(domain Domain, roles ...Role) map[Role]Handle {
	result := make(map[Role]Handle, len(roles))
	for _, role := range roles {
		if handle, ok := registry.Resolve(domain, role); ok {
			result[role] = handle
		}
	}
	return result
}

// ResolveAll resolves role for every concrete domain that provides it.
func (registry *Registry) ResolveAll(role Role) map[Domain]Handle {
	result := make(map[Domain]Handle, len(registry.handles))
	for _, domain := range Domains() {
		if handle, ok := registry.Resolve(domain, role); ok {
			result[domain] = handle
		}
	}
	return result
}

// Has reports whether the registry knows domain at all.
func (registry *Registry) Has(domain Domain) bool {
	_, ok := registry.handles[domain]
	return ok
}

// # Handle constructors

func itemHandle(domain Domain, table schema.MediaItemTable) Handle {
	return Handle{
		Domain: domain,
		Role:   RoleMedia,
		Table:  table.Table,
		ID:     table.ID,
		Media:  table.ID,
		Name:   table.Title,
	}.WithAttribute(AttributeLanguage, table.Language)
}

func entryHandle(domain Domain, table schema.MediaEntryTable) Handle {
	return Handle{
		Domain: domain,
		Role:   RoleList,
		Table:  table.Table,
		ID:     table.ID,
		Media:  table.MediaID,
		User:   table.UserID,
		Status: table.Status,
		Score:  table.Score,
	}.
		WithMeasure(MeasureEpisodesWatched, table.EpisodesWatched).
		WithMeasure(MeasurePagesRead, table.PagesRead).
		WithMeasure(MeasurePlaytime, table.Playtime).
		WithAttribute(AttributePlatform, table.Platform)
}

func associationHandle(domain Domain, role Role, table schema.MediaAssociationTable) Handle {
	return Handle{
		Domain: domain,
		Role:   role,
		Table:  table.Table,
		Media:  table.MediaID,
		Value:  table.ValueID,
		Slug:   table.Slug,
		Name:   table.Name,
	}
}

func labelHandle(domain Domain, table schema.MediaLabelTable) Handle {
	return Handle{
		Domain: domain,
		Role:   RoleLabels,
		Table:  table.Table,
		Media:  table.MediaID,
		User:   table.UserID,
		Value:  table.Name,
		Name:   table.Name,
	}
}

func seasonHandle(domain Domain, table schema.MediaSeasonTable) Handle {
	return Handle{
		Domain: domain,
		Role:   RoleEpisodesPerSeason,
		Table:  table.Table,
		Media:  table.MediaID,
		Value:  table.SeasonNumber,
	}.WithMeasure(MeasureEpisodes, table.EpisodeCount)
}

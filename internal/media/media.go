// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media describes the five tracked media domains (series, anime, movies,
books, games) to the rest of the application without exposing their schemas.

Consumers never hard-code a domain's table or column names. They ask the
[Registry] for a [Handle] playing a given [Role] (the media item, the user's
list entry, genres, people, companies, labels...) and build their queries from
the handle's column names.

A role that does not exist for a domain (genres for a domain without genres)
resolves to "absent". Callers treat that as "feature not applicable", never as
an error.
*/
package media

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDomain is returned when a domain tag is not recognised.
var ErrUnknownDomain = errors.New("media: unknown domain")

// # Domains

// Domain identifies a media vertical.
type Domain string

const (
	DomainSeries Domain = "series"
	DomainAnime  Domain = "anime"
	DomainMovies Domain = "movies"
	DomainBooks  Domain = "books"
	DomainGames  Domain = "games"

	// DomainAll spans every domain. It owns cross-domain achievements and
	// resolves to a mapping keyed by every concrete domain.
	DomainAll Domain = "all"
)

// Domains lists the concrete domains in a stable order.
func Domains() []Domain {
	return []Domain{DomainSeries, DomainAnime, DomainMovies, DomainBooks, DomainGames}
}

// ParseDomain converts a user supplied tag into a [Domain].
func ParseDomain(raw string) (Domain, error) {
	domain := Domain(strings.ToLower(strings.TrimSpace(raw)))
	if domain == DomainAll {
		return domain, nil
	}
	for _, known := range Domains() {
		if domain == known {
			return domain, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, raw)
}

// # Roles

// Role names an entity a domain may provide.
type Role string

const (
	RoleMedia             Role = "media"
	RoleList              Role = "list"
	RoleGenre             Role = "genre"
	RoleActors            Role = "actors"
	RoleDirectors         Role = "directors"
	RoleAuthors           Role = "authors"
	RoleCompanies         Role = "companies"
	RoleNetwork           Role = "network"
	RoleLabels            Role = "labels"
	RolePerspectives      Role = "perspectives"
	RoleEpisodesPerSeason Role = "episodes_per_season"
)

// # Measures & Attributes

// Measure names a numeric per-entry quantity a calculator can bound or sum.
type Measure string

const (
	// MeasureRuntime is a movie's runtime in minutes.
	MeasureRuntime Measure = "runtime"
	// MeasurePages is a book's page count.
	MeasurePages Measure = "pages"
	// MeasurePagesRead is how many pages the user read.
	MeasurePagesRead Measure = "pages_read"
	// MeasurePlaytime is the user's playtime in minutes.
	MeasurePlaytime Measure = "playtime"
	// MeasureEpisodes is the number of episodes in one season.
	MeasureEpisodes Measure = "episodes"
	// MeasureEpisodesWatched is how many episodes the user watched.
	MeasureEpisodesWatched Measure = "episodes_watched"
)

// Attribute names a scalar, non-numeric dimension.
type Attribute string

const (
	AttributeLanguage Attribute = "language"
	AttributePlatform Attribute = "platform"
)

// # List Statuses

// Status is the state of a user's list entry.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRepeating  Status = "repeating"
	StatusPaused     Status = "paused"
	StatusDropped    Status = "dropped"
)

var (
	// StatusesCompleted only counts finished entries.
	StatusesCompleted = []Status{StatusCompleted, StatusRepeating}

	// StatusesOngoing also counts entries the user is still working through.
	StatusesOngoing = []Status{StatusCompleted, StatusRepeating, StatusInProgress, StatusPaused}

	// StatusesTracked is every status except the plan-to list.
	StatusesTracked = []Status{StatusCompleted, StatusRepeating, StatusInProgress, StatusPaused, StatusDropped}
)

// # Handles

// Handle names a table playing a [Role] for one domain and the columns the
// achievement calculators need from it. Columns a table does not carry are
// empty.
type Handle struct {
	Domain Domain
	Role   Role
	Table  string

	// ID is the primary key (media item, list entry).
	ID string
	// Media is the column referencing the media item. For RoleMedia it equals ID.
	Media string
	// User is the owning user column (list entries, labels).
	User string
	// Status and Score are list-entry columns.
	Status string
	Score  string
	// Value is the dimension a calculator groups or filters by.
	Value string
	// Slug is a normalised text form of Value used for literal matches.
	Slug string
	// Name is the human readable form of Value.
	Name string

	measures   map[Measure]string
	attributes map[Attribute]string
}

// IsZero reports whether the handle is absent.
func (handle Handle) IsZero() bool {
	return handle.Table == ""
}

// Measure returns the column holding m, if the table carries it.
func (handle Handle) Measure(m Measure) (string, bool) {
	column, ok := handle.measures[m]
	return column, ok && column != ""
}

// Attribute returns the column holding a, if the table carries it.
func (handle Handle) Attribute(a Attribute) (string, bool) {
	column, ok := handle.attributes[a]
	return column, ok && column != ""
}

// WithMeasure returns a copy of the handle carrying m in column.
func (handle Handle) WithMeasure(m Measure, column string) Handle {
	measures := make(map[Measure]string, len(handle.measures)+1)
	for key, value := range handle.measures {
		measures[key] = value
	}
	if column != "" {
		measures[m] = column
	}
	handle.measures = measures
	return handle
}

// WithAttribute returns a copy of the handle carrying a in column.
func (handle Handle) WithAttribute(a Attribute, column string) Handle {
	attributes := make(map[Attribute]string, len(handle.attributes)+1)
	for key, value := range handle.attributes {
		attributes[key] = value
	}
	if column != "" {
		attributes[a] = column
	}
	handle.attributes = attributes
	return handle
}

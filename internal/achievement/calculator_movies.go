// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "github.com/taibuivan/mediatrack/internal/media"

// minutesPerHour rescales runtimes and playtimes stored in minutes.
const minutesPerHour = 60

func movieCalculators(registry *media.Registry) []Calculator {
	g := newGroup(registry, media.DomainMovies)
	completed := Filter{Statuses: media.StatusesCompleted}

	g.add("completed_movies", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		return countOf(h[media.RoleList], completed)
	})
	g.add("rated_movies", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		return countOf(h[media.RoleList], Filter{Statuses: media.StatusesTracked, Rated: true})
	})

	// "Same X" achievements.
	for codeName, role := range map[string]media.Role{
		"director_movies": media.RoleDirectors,
		"actor_movies":    media.RoleActors,
		"studio_movies":   media.RoleCompanies,
	} {
		g.add(codeName, []media.Role{media.RoleList, role}, func(h map[media.Role]media.Handle) Calculator {
			return maxGroupOf(h[media.RoleList], on(h[role]), completed)
		})
	}

	g.add("language_movies", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		language, _ := attributeOf(h[media.RoleMedia], media.AttributeLanguage)
		return distinctOf(h[media.RoleList], language, completed)
	})
	g.add("genre_horror_movies", []media.Role{media.RoleList, media.RoleGenre}, func(h map[media.Role]media.Handle) Calculator {
		return valueOf(h[media.RoleList], h[media.RoleGenre], completed)
	})

	// Runtime cutoffs are in minutes.
	g.add("short_movies", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		runtime, _ := quantityOf(h[media.RoleMedia], media.MeasureRuntime)
		return boundedOf(h[media.RoleList], runtime, AtMost)
	})
	g.add("long_movies", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		runtime, _ := quantityOf(h[media.RoleMedia], media.MeasureRuntime)
		return boundedOf(h[media.RoleList], runtime, AtLeast)
	})

	g.add("watchtime_movies", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		runtime, _ := quantityOf(h[media.RoleMedia], media.MeasureRuntime)
		runtime.Divisor = minutesPerHour
		return sumOf(h[media.RoleList], runtime, completed)
	})

	return g.calculators
}

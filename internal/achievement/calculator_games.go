// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "github.com/taibuivan/mediatrack/internal/media"

func gameCalculators(registry *media.Registry) []Calculator {
	g := newGroup(registry, media.DomainGames)
	completed := Filter{Statuses: media.StatusesCompleted}

	g.add("completed_games", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		return countOf(h[media.RoleList], completed)
	})
	g.add("developer_games", []media.Role{media.RoleList, media.RoleCompanies}, func(h map[media.Role]media.Handle) Calculator {
		return maxGroupOf(h[media.RoleList], on(h[media.RoleCompanies]), completed)
	})
	g.add("platform_games", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		platform, _ := attributeOf(h[media.RoleList], media.AttributePlatform)
		return distinctOf(h[media.RoleList], platform, Filter{Statuses: media.StatusesTracked})
	})
	g.add("perspective_first_person_games", []media.Role{media.RoleList, media.RolePerspectives}, func(h map[media.Role]media.Handle) Calculator {
		return valueOf(h[media.RoleList], h[media.RolePerspectives], completed)
	})
	g.add("genre_rpg_games", []media.Role{media.RoleList, media.RoleGenre}, func(h map[media.Role]media.Handle) Calculator {
		return valueOf(h[media.RoleList], h[media.RoleGenre], completed)
	})

	// Playtime is stored in minutes; cutoffs and totals are in hours.
	g.add("long_games", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		playtime, _ := quantityOf(h[media.RoleList], media.MeasurePlaytime)
		playtime.Divisor = minutesPerHour
		return boundedOf(h[media.RoleList], playtime, AtLeast)
	})
	g.add("playtime_games", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		playtime, _ := quantityOf(h[media.RoleList], media.MeasurePlaytime)
		playtime.Divisor = minutesPerHour
		return sumOf(h[media.RoleList], playtime, Filter{Statuses: media.StatusesTracked})
	})

	return g.calculators
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "github.com/taibuivan/mediatrack/internal/media"

// # TV Calculators
//
// Series and anime share the episodic calculators. Length cutoffs are
// measured in total episodes, summed over the title's seasons.

func seriesCalculators(registry *media.Registry) []Calculator {
	g := tvGroup(registry, media.DomainSeries)

	g.add("network_series", []media.Role{media.RoleList, media.RoleNetwork}, func(h map[media.Role]media.Handle) Calculator {
		return distinctOf(h[media.RoleList], on(h[media.RoleNetwork]), Filter{Statuses: media.StatusesTracked})
	})
	g.add("actor_series", []media.Role{media.RoleList, media.RoleActors}, func(h map[media.Role]media.Handle) Calculator {
		return maxGroupOf(h[media.RoleList], on(h[media.RoleActors]), Filter{Statuses: media.StatusesOngoing})
	})
	g.add("genre_drama_series", []media.Role{media.RoleList, media.RoleGenre}, func(h map[media.Role]media.Handle) Calculator {
		return valueOf(h[media.RoleList], h[media.RoleGenre], Filter{Statuses: media.StatusesCompleted})
	})
	g.add("language_series", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		language, _ := attributeOf(h[media.RoleMedia], media.AttributeLanguage)
		return distinctOf(h[media.RoleList], language, Filter{Statuses: media.StatusesTracked})
	})

	return g.calculators
}

func animeCalculators(registry *media.Registry) []Calculator {
	g := tvGroup(registry, media.DomainAnime)

	g.add("studio_anime", []media.Role{media.RoleList, media.RoleCompanies}, func(h map[media.Role]media.Handle) Calculator {
		return maxGroupOf(h[media.RoleList], on(h[media.RoleCompanies]), Filter{Statuses: media.StatusesOngoing})
	})
	g.add("genre_action_anime", []media.Role{media.RoleList, media.RoleGenre}, func(h map[media.Role]media.Handle) Calculator {
		return valueOf(h[media.RoleList], h[media.RoleGenre], Filter{Statuses: media.StatusesCompleted})
	})

	return g.calculators
}

// tvGroup registers the calculators every episodic domain shares.
func tvGroup(registry *media.Registry, domain media.Domain) *group {
	g := newGroup(registry, domain)
	suffix := string(domain)

	g.add("completed_"+suffix, []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		return countOf(h[media.RoleList], Filter{Statuses: media.StatusesCompleted})
	})
	g.add("short_"+suffix, []media.Role{media.RoleList, media.RoleEpisodesPerSeason}, func(h map[media.Role]media.Handle) Calculator {
		return boundedOf(h[media.RoleList], totalEpisodes(h[media.RoleEpisodesPerSeason]), AtMost)
	})
	g.add("long_"+suffix, []media.Role{media.RoleList, media.RoleEpisodesPerSeason}, func(h map[media.Role]media.Handle) Calculator {
		return boundedOf(h[media.RoleList], totalEpisodes(h[media.RoleEpisodesPerSeason]), AtLeast)
	})
	g.add("episodes_"+suffix, []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		watched, _ := quantityOf(h[media.RoleList], media.MeasureEpisodesWatched)
		return sumOf(h[media.RoleList], watched, Filter{Statuses: media.StatusesTracked})
	})

	return g
}

func totalEpisodes(seasons media.Handle) Quantity {
	quantity, _ := quantityOf(seasons, media.MeasureEpisodes)
	quantity.Summed = true
	return quantity
}

// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "github.com/taibuivan/mediatrack/internal/media"

func bookCalculators(registry *media.Registry) []Calculator {
	g := newGroup(registry, media.DomainBooks)
	completed := Filter{Statuses: media.StatusesCompleted}

	g.add("completed_books", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		return countOf(h[media.RoleList], completed)
	})
	g.add("author_books", []media.Role{media.RoleList, media.RoleAuthors}, func(h map[media.Role]media.Handle) Calculator {
		return maxGroupOf(h[media.RoleList], on(h[media.RoleAuthors]), completed)
	})
	g.add("publisher_books", []media.Role{media.RoleList, media.RoleCompanies}, func(h map[media.Role]media.Handle) Calculator {
		return maxGroupOf(h[media.RoleList], on(h[media.RoleCompanies]), completed)
	})
	g.add("language_books", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		language, _ := attributeOf(h[media.RoleMedia], media.AttributeLanguage)
		return distinctOf(h[media.RoleList], language, completed)
	})
	g.add("genre_fantasy_books", []media.Role{media.RoleList, media.RoleGenre}, func(h map[media.Role]media.Handle) Calculator {
		return valueOf(h[media.RoleList], h[media.RoleGenre], completed)
	})

	// Page cutoffs.
	g.add("short_books", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		pages, _ := quantityOf(h[media.RoleMedia], media.MeasurePages)
		return boundedOf(h[media.RoleList], pages, AtMost)
	})
	g.add("long_books", []media.Role{media.RoleList, media.RoleMedia}, func(h map[media.Role]media.Handle) Calculator {
		pages, _ := quantityOf(h[media.RoleMedia], media.MeasurePages)
		return boundedOf(h[media.RoleList], pages, AtLeast)
	})

	g.add("pages_books", []media.Role{media.RoleList}, func(h map[media.Role]media.Handle) Calculator {
		read, _ := quantityOf(h[media.RoleList], media.MeasurePagesRead)
		return sumOf(h[media.RoleList], read, Filter{Statuses: media.StatusesTracked})
	})

	return g.calculators
}

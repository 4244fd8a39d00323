// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"github.com/taibuivan/mediatrack/internal/media"
)

// # Cross-domain Calculators
//
// Domain "all" achievements combine one part per concrete domain. Counts are
// summed; label names are pooled so a name used in two domains counts once.

func crossDomainCalculators(registry *media.Registry) []Calculator {
	lists := registry.ResolveAll(media.RoleList)
	if len(lists) == 0 {
		return nil
	}
	labels := registry.ResolveAll(media.RoleLabels)

	calculators := []Calculator{
		union("completed_all", lists, (*Builder).Union, func(builder *Builder, list media.Handle) string {
			return builder.CountEntries(list, Filter{Statuses: media.StatusesCompleted})
		}),
		union("rated_all", lists, (*Builder).Union, func(builder *Builder, list media.Handle) string {
			return builder.CountEntries(list, Filter{Statuses: media.StatusesTracked, Rated: true})
		}),
	}

	if len(labels) > 0 {
		calculators = append(calculators, union("labels_all", lists, (*Builder).DistinctUnion, func(builder *Builder, list media.Handle) string {
			label, ok := labels[list.Domain]
			if !ok {
				return ""
			}
			return builder.DimensionValues(list, on(label), Filter{})
		}))
	}

	return calculators
}

// union builds part for every domain in a stable order and merges the parts
// with combine. Domains for which part returns "" contribute nothing.
func union(codeName string, lists map[media.Domain]media.Handle, combine func(builder *Builder, parts ...string) string, part func(builder *Builder, list media.Handle) string) Calculator {
	return Calculator{
		CodeName: codeName,
		Domain:   media.DomainAll,
		Build: func(builder *Builder, _ Tier) (string, error) {
			var parts []string
			for _, domain := range media.Domains() {
				list, ok := lists[domain]
				if !ok {
					continue
				}
				if sql := part(builder, list); sql != "" {
					parts = append(parts, sql)
				}
			}
			return combine(builder, parts...), nil
		},
	}
}

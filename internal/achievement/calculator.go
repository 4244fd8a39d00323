// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"fmt"
	"sort"

	"github.com/taibuivan/mediatrack/internal/media"
	"github.com/taibuivan/mediatrack/pkg/slug"
)

// # Calculators

// BuildFunc shapes the per-user aggregate of one tier. It must only read.
type BuildFunc func(builder *Builder, tier Tier) (string, error)

// Calculator computes the metric behind one achievement code name.
type Calculator struct {
	CodeName string
	Domain   media.Domain

	// TierScoped is set when the aggregate depends on the tier criteria
	// (a cutoff, a genre). Otherwise one aggregate serves every tier.
	TierScoped bool

	Build BuildFunc
}

// # Registry

// CalculatorRegistry maps code names to calculators. It is built once at
// startup and read-only afterwards.
type CalculatorRegistry struct {
	byCodeName map[string]Calculator
	byDomain   map[media.Domain][]Calculator
}

// NewCalculatorRegistry registers every domain's calculators against the
// handles the media registry provides. Calculators needing a role the domain
// lacks are skipped.
func NewCalculatorRegistry(registry *media.Registry) (*CalculatorRegistry, error) {
	groups := [][]Calculator{
		seriesCalculators(registry),
		animeCalculators(registry),
		movieCalculators(registry),
		bookCalculators(registry),
		gameCalculators(registry),
		crossDomainCalculators(registry),
	}

	var calculators []Calculator
	for _, group := range groups {
		calculators = append(calculators, group...)
	}
	return NewCalculatorRegistryFrom(calculators...)
}

// NewCalculatorRegistryFrom registers explicit calculators. Duplicate code
// names are rejected.
func NewCalculatorRegistryFrom(calculators ...Calculator) (*CalculatorRegistry, error) {
	registry := &CalculatorRegistry{
		byCodeName: make(map[string]Calculator, len(calculators)),
		byDomain:   make(map[media.Domain][]Calculator),
	}

	for _, calculator := range calculators {
		if calculator.CodeName == "" || calculator.Build == nil {
			return nil, fmt.Errorf("achievement: calculator %q is incomplete", calculator.CodeName)
		}
		if _, exists := registry.byCodeName[calculator.CodeName]; exists {
			return nil, fmt.Errorf("achievement: calculator %q registered twice", calculator.CodeName)
		}
		registry.byCodeName[calculator.CodeName] = calculator
		registry.byDomain[calculator.Domain] = append(registry.byDomain[calculator.Domain], calculator)
	}

	for domain := range registry.byDomain {
		list := registry.byDomain[domain]
		sort.Slice(list, func(i, j int) bool { return list[i].CodeName < list[j].CodeName })
	}

	return registry, nil
}

// ByCodeName returns the calculator registered under codeName.
func (registry *CalculatorRegistry) ByCodeName(codeName string) (Calculator, bool) {
	calculator, ok := registry.byCodeName[codeName]
	return calculator, ok
}

// ByDomain returns the calculators owned by domain, sorted by code name.
func (registry *CalculatorRegistry) ByDomain(domain media.Domain) []Calculator {
	list := registry.byDomain[domain]
	result := make([]Calculator, len(list))
	copy(result, list)
	return result
}

// CodeNames enumerates (code name, domain) pairs. An empty domain lists all.
func (registry *CalculatorRegistry) CodeNames(domain media.Domain) []CodeName {
	result := make([]CodeName, 0, len(registry.byCodeName))
	for _, calculator := range registry.byCodeName {
		if domain != "" && calculator.Domain != domain {
			continue
		}
		result = append(result, CodeName{CodeName: calculator.CodeName, Domain: calculator.Domain})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Domain != result[j].Domain {
			return result[i].Domain < result[j].Domain
		}
		return result[i].CodeName < result[j].CodeName
	})
	return result
}

// # Registration helpers

// group collects a domain's calculators, skipping those whose roles are absent.
type group struct {
	domain      media.Domain
	handles     map[media.Role]media.Handle
	calculators []Calculator
}

func newGroup(registry *media.Registry, domain media.Domain) *group {
	roles := []media.Role{
		media.RoleMedia, media.RoleList, media.RoleGenre, media.RoleActors,
		media.RoleDirectors, media.RoleAuthors, media.RoleCompanies,
		media.RoleNetwork, media.RoleLabels, media.RolePerspectives,
		media.RoleEpisodesPerSeason,
	}
	return &group{domain: domain, handles: registry.ResolveSet(domain, roles...)}
}

// add registers the calculator build returns when every role in needs resolves.
func (g *group) add(codeName string, needs []media.Role, build func(h map[media.Role]media.Handle) Calculator) {
	for _, role := range needs {
		if _, ok := g.handles[role]; !ok {
			return
		}
	}
	calculator := build(g.handles)
	calculator.CodeName = codeName
	calculator.Domain = g.domain
	g.calculators = append(g.calculators, calculator)
}

// # Families

// countOf counts list entries matching filter.
func countOf(list media.Handle, filter Filter) Calculator {
	return Calculator{
		Build: func(builder *Builder, _ Tier) (string, error) {
			return builder.CountEntries(list, filter), nil
		},
	}
}

// distinctOf counts distinct dimension values.
func distinctOf(list media.Handle, dimension Dimension, filter Filter) Calculator {
	return Calculator{
		Build: func(builder *Builder, _ Tier) (string, error) {
			return builder.DistinctCount(list, dimension, filter), nil
		},
	}
}

// maxGroupOf keeps each user's largest (user, dimension) group.
func maxGroupOf(list media.Handle, dimension Dimension, filter Filter) Calculator {
	return Calculator{
		Build: func(builder *Builder, _ Tier) (string, error) {
			return builder.MaxGroupCount(list, dimension, filter), nil
		},
	}
}

// sumOf adds up a quantity.
func sumOf(list media.Handle, quantity Quantity, filter Filter) Calculator {
	return Calculator{
		Build: func(builder *Builder, _ Tier) (string, error) {
			return builder.SumQuantity(list, quantity, filter), nil
		},
	}
}

// boundedOf counts entries on one side of the tier's numeric cutoff. "Short"
// bounds only count completed entries; "long" bounds also count ongoing ones.
func boundedOf(list media.Handle, quantity Quantity, comparison Comparison) Calculator {
	filter := Filter{Statuses: media.StatusesCompleted}
	if comparison == AtLeast {
		filter = Filter{Statuses: media.StatusesOngoing}
	}
	return Calculator{
		TierScoped: true,
		Build: func(builder *Builder, tier Tier) (string, error) {
			cutoff, err := tier.Criteria.Number()
			if err != nil {
				return "", err
			}
			return builder.BoundedCount(list, quantity, comparison, cutoff, filter), nil
		},
	}
}

// valueOf counts entries tagged with the tier's literal value (a genre, a
// perspective). Values are compared in slug form.
func valueOf(list media.Handle, association media.Handle, filter Filter) Calculator {
	column := association.Slug
	if column == "" {
		column = association.Value
	}
	return Calculator{
		TierScoped: true,
		Build: func(builder *Builder, tier Tier) (string, error) {
			value := slug.From(tier.Criteria.Value)
			if value == "" {
				return "", fmt.Errorf("%w: empty value", ErrInvalidCriteria)
			}
			return builder.ValueCount(list, Dimension{Handle: association, Column: column}, value, filter), nil
		},
	}
}

// # Shared dimension helpers

func on(handle media.Handle) Dimension {
	return Dimension{Handle: handle, Column: handle.Value}
}

func attributeOf(handle media.Handle, attribute media.Attribute) (Dimension, bool) {
	column, ok := handle.Attribute(attribute)
	return Dimension{Handle: handle, Column: column}, ok
}

func quantityOf(handle media.Handle, measure media.Measure) (Quantity, bool) {
	column, ok := handle.Measure(measure)
	return Quantity{Handle: handle, Column: column}, ok
}

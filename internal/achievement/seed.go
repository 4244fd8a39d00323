// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"errors"
	"fmt"
)

// SeedReport counts what a catalog reconciliation changed.
type SeedReport struct {
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`
	Deleted int64 `json:"deleted"`
}

// ValidateCatalog checks that every definition can be evaluated: a
// calculator is registered under its code name and domain, thresholds are
// non-negative and each tier builds an aggregate.
func ValidateCatalog(definitions []Definition, calculators *CalculatorRegistry) error {
	var problems []error
	seen := make(map[string]bool, len(definitions))

	for _, definition := range definitions {
		if seen[definition.CodeName] {
			problems = append(problems, fmt.Errorf("%s: duplicate code name", definition.CodeName))
			continue
		}
		seen[definition.CodeName] = true

		calculator, ok := calculators.ByCodeName(definition.CodeName)
		if !ok {
			problems = append(problems, fmt.Errorf("%w: %s", ErrNoCalculator, definition.CodeName))
			continue
		}
		if calculator.Domain != definition.Domain {
			problems = append(problems, fmt.Errorf("%s: catalog domain %s, calculator domain %s",
				definition.CodeName, definition.Domain, calculator.Domain))
			continue
		}

		for i, criteria := range definition.Tiers {
			tier := Tier{Difficulty: Difficulty(i + 1), Criteria: criteria}
			if err := checkCriteria(calculator, tier); err != nil {
				problems = append(problems, fmt.Errorf("%s/%s: %w", definition.CodeName, tier.Difficulty, err))
			}
		}
	}

	return errors.Join(problems...)
}

// checkCriteria dry-runs the calculator against tier.
func checkCriteria(calculator Calculator, tier Tier) error {
	if tier.Criteria.Count < 0 {
		return fmt.Errorf("%w: negative count", ErrInvalidCriteria)
	}
	if _, err := calculator.Build(NewBuilder(nil), tier); err != nil {
		return err
	}
	return nil
}

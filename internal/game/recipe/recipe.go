// Package recipe defines breeding recipes: declarative overrides that fix the
// offspring species and grant bonuses in exchange for specific parents and
// consumed materials.
package recipe

import (
	"errors"
	"fmt"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// AnySpecies matches any parent species.
const AnySpecies = "*"

// Material is a required material and its quantity.
type Material struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

// Bonuses are the guaranteed offspring bonuses a recipe grants.
type Bonuses struct {
	// StatMultiplier scales inherited stats; 0 means no multiplier.
	StatMultiplier float64 `yaml:"stat_multiplier"`
	// MinimumRarity, when set, floors the offspring rarity.
	MinimumRarity *creature.Rarity `yaml:"minimum_rarity"`
	// GuaranteedAbilities are appended after inherited abilities.
	GuaranteedAbilities []string `yaml:"guaranteed_abilities"`
	// ExtraGenerationBonus is an additional stat bonus fraction on top of the
	// per-generation bonus.
	ExtraGenerationBonus float64 `yaml:"extra_generation_bonus"`
}

// Recipe is an immutable breeding recipe definition.
type Recipe struct {
	ID               string     `yaml:"id"`
	Name             string     `yaml:"name"`
	ParentSpecies    [2]string  `yaml:"parent_species"`
	Materials        []Material `yaml:"materials"`
	OffspringSpecies string     `yaml:"offspring_species"`
	Bonuses          Bonuses    `yaml:"bonuses"`
}

// Matches reports whether the two parent species satisfy the recipe.
// The comparison is order-insensitive and an empty or "*" requirement
// matches any species.
func (r Recipe) Matches(speciesA, speciesB string) bool {
	req1, req2 := r.ParentSpecies[0], r.ParentSpecies[1]
	return (speciesMatches(req1, speciesA) && speciesMatches(req2, speciesB)) ||
		(speciesMatches(req1, speciesB) && speciesMatches(req2, speciesA))
}

func speciesMatches(required, actual string) bool {
	return required == "" || required == AnySpecies || required == actual
}

// Validate checks the recipe definition.
//
// Postcondition: Returns nil iff the recipe is well formed, or an error naming every violation.
func (r Recipe) Validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if r.OffspringSpecies == "" {
		errs = append(errs, errors.New("offspring_species must not be empty"))
	}
	seen := make(map[string]bool, len(r.Materials))
	for i, m := range r.Materials {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("materials[%d] must have a non-empty id", i))
		}
		if m.Quantity < 1 {
			errs = append(errs, fmt.Errorf("materials[%d] quantity must be >= 1, got %d", i, m.Quantity))
		}
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("materials[%d] duplicates material %q", i, m.ID))
		}
		seen[m.ID] = true
	}
	b := r.Bonuses
	if b.StatMultiplier < 0 {
		errs = append(errs, fmt.Errorf("bonuses.stat_multiplier must be >= 0, got %v", b.StatMultiplier))
	}
	if b.ExtraGenerationBonus < 0 {
		errs = append(errs, fmt.Errorf("bonuses.extra_generation_bonus must be >= 0, got %v", b.ExtraGenerationBonus))
	}
	if b.MinimumRarity != nil && !b.MinimumRarity.Valid() {
		errs = append(errs, fmt.Errorf("bonuses.minimum_rarity %d is not a valid tier", int(*b.MinimumRarity)))
	}
	for i, a := range b.GuaranteedAbilities {
		if a == "" {
			errs = append(errs, fmt.Errorf("bonuses.guaranteed_abilities[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("recipe %q: %w", r.ID, errors.Join(errs...))
	}
	return nil
}

// MaterialList returns a copy of the required materials.
func (r Recipe) MaterialList() []Material {
	return append([]Material{}, r.Materials...)
}

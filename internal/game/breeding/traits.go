package breeding

import (
	"slices"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
)

// TraitMutator proposes a brand-new passive trait when the mutation roll succeeds.
type TraitMutator interface {
	// Mutate returns a new trait id for an offspring of generation that
	// already carries traits, or ok=false when no trait is proposed.
	Mutate(generation int, traits []string) (trait string, ok bool)
}

// NoMutation is the default TraitMutator; no mutation trait pool exists yet
// so it never proposes a trait.
type NoMutation struct{}

// Mutate always returns ok=false.
func (NoMutation) Mutate(int, []string) (string, bool) { return "", false }

// InheritTraits selects the offspring passive traits.
//
// Below TraitUnlockGeneration no draws are taken and the result is empty.
// Otherwise every parent-1 trait then every parent-2 trait is rolled, one
// mutation roll consults mutator, and the list is truncated to TraitSlots.
//
// Precondition: mutator must be non-nil.
// Postcondition: no duplicates; len(result) <= TraitSlots(generation).
func InheritTraits(t1, t2 []string, generation int, src dice.Source, mutator TraitMutator) []string {
	slots := TraitSlots(generation)
	if generation < TraitUnlockGeneration || slots == 0 {
		return []string{}
	}
	var picked orderedSet
	picked.rollEach(t1, TraitInheritChance, src)
	picked.rollEach(t2, TraitInheritChance, src)
	if dice.Chance(src, TraitMutationChance) {
		if trait, ok := mutator.Mutate(generation, slices.Clone(picked.items)); ok && trait != "" {
			picked.add(trait)
		}
	}
	return picked.truncate(slots)
}

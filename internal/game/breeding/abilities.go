package breeding

import (
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

// InheritAbilities selects the offspring abilities.
//
// Every parent-1 ability is rolled, then every parent-2 ability, then recipe
// guarantees are appended; the list is truncated to MaxAbilities in that
// insertion order. Guarantees are dropped when random inheritance already
// filled every slot.
//
// Postcondition: no duplicates; len(result) <= MaxAbilities; exactly
// len(a1)+len(a2) draws are taken from src.
func InheritAbilities(a1, a2 []string, rec recipe.Option, src dice.Source) []string {
	var picked orderedSet
	picked.rollEach(a1, AbilityInheritChance, src)
	picked.rollEach(a2, AbilityInheritChance, src)
	if r, ok := rec.Get(); ok {
		for _, id := range r.Bonuses.GuaranteedAbilities {
			picked.add(id)
		}
	}
	return picked.truncate(MaxAbilities)
}

// orderedSet is an insertion-ordered set of identifiers.
type orderedSet struct {
	items []string
	seen  map[string]bool
}

func (s *orderedSet) add(id string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[id] {
		return
	}
	s.seen[id] = true
	s.items = append(s.items, id)
}

// rollEach draws once per id, including ids already present, so the number
// of draws depends only on the input length.
func (s *orderedSet) rollEach(ids []string, chance float64, src dice.Source) {
	for _, id := range ids {
		if dice.Chance(src, chance) {
			s.add(id)
		}
	}
}

func (s *orderedSet) truncate(n int) []string {
	out := make([]string, 0, min(len(s.items), n))
	for i := 0; i < len(s.items) && i < n; i++ {
		out = append(out, s.items[i])
	}
	return out
}

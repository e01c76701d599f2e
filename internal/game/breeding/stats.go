package breeding

import (
	"math"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
)

// InheritStats derives a child stat block from two parent blocks.
//
// Each stat is rolled independently in canonical order with two draws: a
// fraction in [0.70, 0.90] applied to the parent average, then a dominant
// gene check that replaces the result with the stronger parent's value.
// The generation bonus is applied last.
//
// Precondition: generation in [0, creature.MaxGeneration].
// Postcondition: every field is a whole number >= 0; exactly 12 draws are taken from src.
func InheritStats(p1, p2 creature.Stats, generation int, src dice.Source) creature.Stats {
	bonus := 1 + float64(generation)*GenerationStatBonus
	return p1.Zip(p2, func(_ string, a, b float64) float64 {
		base := (a + b) / 2 * dice.Between(src, StatFloorFraction, StatCeilFraction)
		if dice.Chance(src, DominantGeneChance) {
			base = math.Max(a, b)
		}
		return nonNegative(math.Round(base * bonus))
	})
}

// applyRecipeStatBonus scales stats by a recipe's stat multiplier and extra
// generation bonus. A zero multiplier leaves stats unscaled.
func applyRecipeStatBonus(s creature.Stats, multiplier, extraBonus float64) creature.Stats {
	if multiplier == 0 {
		multiplier = 1
	}
	factor := multiplier * (1 + extraBonus)
	if factor == 1 {
		return s
	}
	return s.Map(func(_ string, v float64) float64 {
		return nonNegative(math.Round(v * factor))
	})
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

package breeding

import (
	"math"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

// CostBreakdown itemises how a gold amount was derived.
type CostBreakdown struct {
	BaseCost                int
	RarityMultiplier        float64
	GenerationMultiplier    float64
	BreedingCountMultiplier float64
	Total                   int
}

// Cost is the gold and material price of one breeding. It is computed fresh
// for every request and never mutated.
type Cost struct {
	GoldAmount int
	Breakdown  CostBreakdown
	Materials  []recipe.Material
}

// CalculateCost prices breeding p1 with p2 under an optional recipe.
//
// Postcondition: GoldAmount == round(100×(L1+L2) × 2^rarity(max) ×
// 1.5^max(G1,G2) × 1.2^B1 × 1.2^B2); Materials is the recipe's material list
// or empty. Never fails; affordability is the Validator's concern.
func CalculateCost(p1, p2 creature.Creature, rec recipe.Option) Cost {
	base := BaseCostPerLevel * (p1.Level + p2.Level)
	rarityMult := creature.MaxRarity(p1.Rarity, p2.Rarity).Multiplier()
	genMult := math.Pow(GenerationCostBase, float64(max(p1.Generation, p2.Generation)))
	countMult := math.Pow(BreedingCountCostBase, float64(p1.BreedingCount)) *
		math.Pow(BreedingCountCostBase, float64(p2.BreedingCount))

	total := int(math.Round(float64(base) * rarityMult * genMult * countMult))

	materials := []recipe.Material{}
	if r, ok := rec.Get(); ok {
		materials = r.MaterialList()
	}

	return Cost{
		GoldAmount: total,
		Breakdown: CostBreakdown{
			BaseCost:                base,
			RarityMultiplier:        rarityMult,
			GenerationMultiplier:    genMult,
			BreedingCountMultiplier: countMult,
			Total:                   total,
		},
		Materials: materials,
	}
}

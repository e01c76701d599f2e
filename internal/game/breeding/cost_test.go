package breeding_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

func TestCalculateCost_BaseCase(t *testing.T) {
	cost := breeding.CalculateCost(
		parent("a", 5, creature.Common, 0, 0),
		parent("b", 5, creature.Common, 0, 0),
		recipe.None(),
	)
	assert.Equal(t, 1000, cost.GoldAmount)
	assert.Equal(t, 1000, cost.Breakdown.BaseCost)
	assert.Equal(t, 1.0, cost.Breakdown.RarityMultiplier)
	assert.Equal(t, 1.0, cost.Breakdown.GenerationMultiplier)
	assert.Equal(t, 1.0, cost.Breakdown.BreedingCountMultiplier)
	assert.Equal(t, 1000, cost.Breakdown.Total)
	assert.NotNil(t, cost.Materials)
	assert.Empty(t, cost.Materials)
}

func TestCalculateCost_RarityMultiplierUsesHigherParent(t *testing.T) {
	cases := []struct {
		r1, r2 creature.Rarity
		want   float64
	}{
		{creature.Uncommon, creature.Common, 2},
		{creature.Legendary, creature.Rare, 16},
		{creature.Common, creature.Mythical, 32},
		{creature.Epic, creature.Epic, 8},
	}
	for _, tc := range cases {
		cost := breeding.CalculateCost(parent("a", 1, tc.r1, 0, 0), parent("b", 1, tc.r2, 0, 0), recipe.None())
		assert.Equal(t, tc.want, cost.Breakdown.RarityMultiplier, "%s + %s", tc.r1, tc.r2)
	}
}

func TestCalculateCost_GenerationMultiplier(t *testing.T) {
	cost := breeding.CalculateCost(parent("a", 1, creature.Common, 2, 0), parent("b", 1, creature.Common, 1, 0), recipe.None())
	assert.Equal(t, 2.25, cost.Breakdown.GenerationMultiplier)
}

func TestCalculateCost_EndToEndScenario(t *testing.T) {
	a := parent("a", 10, creature.Rare, 1, 1)
	b := parent("b", 10, creature.Common, 0, 0)
	cost := breeding.CalculateCost(a, b, recipe.None())
	assert.Equal(t, 2000, cost.Breakdown.BaseCost)
	assert.Equal(t, 4.0, cost.Breakdown.RarityMultiplier)
	assert.Equal(t, 1.5, cost.Breakdown.GenerationMultiplier)
	assert.InDelta(t, 1.2, cost.Breakdown.BreedingCountMultiplier, 1e-9)
	assert.Equal(t, 14400, cost.GoldAmount)
}

func TestCalculateCost_RecipeMaterialsVerbatim(t *testing.T) {
	r := testRecipe()
	cost := breeding.CalculateCost(parent("a", 1, creature.Common, 0, 0), parent("b", 1, creature.Common, 0, 0), recipe.Some(r))
	assert.Equal(t, r.Materials, cost.Materials)

	cost.Materials[0].Quantity = 99
	assert.Equal(t, 2, r.Materials[0].Quantity, "cost must not alias recipe materials")
}

func TestCalculateCost_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p1 := creatureGen("a").Draw(rt, "p1")
		p2 := creatureGen("b").Draw(rt, "p2")
		cost := breeding.CalculateCost(p1, p2, recipe.None())

		want := float64(100*(p1.Level+p2.Level)) *
			math.Pow(2, float64(creature.MaxRarity(p1.Rarity, p2.Rarity).Index())) *
			math.Pow(1.5, float64(max(p1.Generation, p2.Generation))) *
			math.Pow(1.2, float64(p1.BreedingCount+p2.BreedingCount))
		assert.InDelta(rt, want, float64(cost.GoldAmount), 0.5+want*1e-12)
		assert.Equal(rt, cost.GoldAmount, cost.Breakdown.Total)

		again := breeding.CalculateCost(p1, p2, recipe.None())
		assert.Equal(rt, cost, again, "cost must be a pure function of its inputs")
	})
}

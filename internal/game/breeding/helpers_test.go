package breeding_test

import (
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
	"pgregory.net/rapid"
)

func parent(id string, level int, r creature.Rarity, gen, count int) creature.Creature {
	return creature.Creature{
		ID:            id,
		Species:       "species_" + id,
		Name:          "Name " + id,
		Level:         level,
		Rarity:        r,
		Generation:    gen,
		BreedingCount: count,
		Stats:         creature.UniformStats(100),
	}
}

func rarityGen() *rapid.Generator[creature.Rarity] {
	return rapid.Custom(func(t *rapid.T) creature.Rarity {
		return creature.Rarity(rapid.IntRange(0, 5).Draw(t, "rarity"))
	})
}

func statsGen() *rapid.Generator[creature.Stats] {
	return rapid.Custom(func(t *rapid.T) creature.Stats {
		var v [6]float64
		for i := range v {
			v[i] = float64(rapid.IntRange(0, 1000).Draw(t, creature.StatNames[i]))
		}
		return creature.StatsFromValues(v)
	})
}

func creatureGen(id string) *rapid.Generator[creature.Creature] {
	return rapid.Custom(func(t *rapid.T) creature.Creature {
		return creature.Creature{
			ID:              id,
			Species:         rapid.SampledFrom([]string{"drake", "slime", "emberfox"}).Draw(t, "species"),
			Level:           rapid.IntRange(1, 50).Draw(t, "level"),
			Rarity:          rarityGen().Draw(t, "rarity"),
			Generation:      rapid.IntRange(0, creature.MaxGeneration).Draw(t, "generation"),
			BreedingCount:   rapid.IntRange(0, 5).Draw(t, "breeding_count"),
			ExhaustionLevel: rapid.IntRange(0, 3).Draw(t, "exhaustion"),
			Stats:           statsGen().Draw(t, "stats"),
			Abilities:       rapid.SliceOfDistinct(rapid.SampledFrom([]string{"bite", "claw", "roar", "heal", "dash", "shield"}), rapid.ID[string]).Draw(t, "abilities"),
			PassiveTraits:   rapid.SliceOfDistinct(rapid.SampledFrom([]string{"tough", "swift", "keen", "lucky"}), rapid.ID[string]).Draw(t, "traits"),
		}
	})
}

func rarityPtr(r creature.Rarity) *creature.Rarity { return &r }

func testRecipe() recipe.Recipe {
	return recipe.Recipe{
		ID:               "storm_drake",
		Name:             "Storm Drake",
		ParentSpecies:    [2]string{recipe.AnySpecies, recipe.AnySpecies},
		Materials:        []recipe.Material{{ID: "thunder_shard", Quantity: 2}, {ID: "feather", Quantity: 1}},
		OffspringSpecies: "storm_drake",
	}
}

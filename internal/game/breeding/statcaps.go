package breeding

import (
	"math"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// statCapTable holds the per-stat cap for each generation, built once.
var statCapTable = func() [creature.MaxGeneration + 1]float64 {
	var t [creature.MaxGeneration + 1]float64
	for g := range t {
		t[g] = math.Round(StatCapBase * (1 + float64(g)*StatCapGenerationBonus))
	}
	return t
}()

// CalculateStatCaps returns the per-stat ceiling for generation.
//
// Generations outside [0, creature.MaxGeneration] are clamped into range.
// Postcondition: every field == round(100 × (1 + generation×0.10)).
func CalculateStatCaps(generation int) creature.Stats {
	g := min(max(generation, 0), creature.MaxGeneration)
	return creature.UniformStats(statCapTable[g])
}

// Package breeding implements the creature breeding rules: cost, stat,
// rarity, ability and trait inheritance, exhaustion, and eligibility
// validation, plus the Generator that composes them into one transaction.
//
// Every probabilistic rule takes its dice.Source as an explicit argument.
// Nothing in this package performs I/O or mutates its inputs.
package breeding

import "github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"

const (
	// BaseCostPerLevel is the gold charged per combined parent level.
	BaseCostPerLevel = 100
	// GenerationCostBase is raised to the highest parent generation.
	GenerationCostBase = 1.5
	// BreedingCountCostBase is raised to each parent's breeding count.
	BreedingCountCostBase = 1.2

	// StatFloorFraction and StatCeilFraction bound the averaged stat roll.
	StatFloorFraction = 0.70
	StatCeilFraction  = 0.90
	// DominantGeneChance replaces the averaged roll with the stronger parent.
	DominantGeneChance = 0.40
	// GenerationStatBonus is the stat bonus per generation.
	GenerationStatBonus = 0.05

	// RarityUpgradeChance promotes the offspring one tier.
	RarityUpgradeChance = 0.10

	// AbilityInheritChance is rolled per parent ability.
	AbilityInheritChance = 0.30
	// MaxAbilities is the ability slot count of any offspring.
	MaxAbilities = 4

	// TraitInheritChance is rolled per parent passive trait.
	TraitInheritChance = 0.25
	// TraitMutationChance is rolled once per offspring at trait-eligible generations.
	TraitMutationChance = 0.05
	// TraitUnlockGeneration is the first generation that carries passive traits.
	TraitUnlockGeneration = 3
	// MaxTraits bounds the trait slot table.
	MaxTraits = 3

	// StatCapBase is the per-stat ceiling at generation 0.
	StatCapBase = 100
	// StatCapGenerationBonus is the cap increase per generation.
	StatCapGenerationBonus = 0.10

	// ExhaustionPenaltyPerLevel is the stat penalty per exhaustion level.
	ExhaustionPenaltyPerLevel = 0.20
	// RecoveryCostPerLevel is the gold cost to remove one exhaustion level.
	RecoveryCostPerLevel = 100
	// DefaultMaxExhaustion is the exhaustion level at which breeding is refused.
	DefaultMaxExhaustion = 5
)

// traitSlots maps generation to passive trait slot count.
var traitSlots = [creature.MaxGeneration + 1]int{0, 0, 0, 1, 2, 3}

// TraitSlots returns the passive trait slot count for generation, capped at MaxTraits.
//
// Postcondition: 0 for generations below TraitUnlockGeneration or outside [0, MaxGeneration].
func TraitSlots(generation int) int {
	if generation < 0 || generation > creature.MaxGeneration {
		return 0
	}
	return min(traitSlots[generation], MaxTraits)
}

// OffspringGeneration returns the generation of a child of parents at g1 and g2.
//
// Postcondition: min(max(g1, g2)+1, creature.MaxGeneration).
func OffspringGeneration(g1, g2 int) int {
	return min(max(g1, g2)+1, creature.MaxGeneration)
}

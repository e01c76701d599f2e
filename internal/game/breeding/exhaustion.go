package breeding

import (
	"math"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// exhaustionMultiplier returns the stat multiplier for an exhaustion level,
// floored at zero so a deeply exhausted creature never has negative stats.
func exhaustionMultiplier(level int) float64 {
	return math.Max(0, 1-float64(level)*ExhaustionPenaltyPerLevel)
}

// ApplyExhaustion returns c after one more use as a breeding parent.
//
// BreedingCount and ExhaustionLevel each grow by one, and every stat becomes
// round(stat × (1 − newLevel×0.20)) computed from the stats as stored on c.
// Penalties therefore compound across repeated applications.
//
// Postcondition: c is not modified; no stat is below 0.
func ApplyExhaustion(c creature.Creature) creature.Creature {
	out := c.Clone()
	out.BreedingCount++
	out.ExhaustionLevel++
	mult := exhaustionMultiplier(out.ExhaustionLevel)
	out.Stats = c.Stats.Map(func(_ string, v float64) float64 {
		return nonNegative(math.Round(v * mult))
	})
	return out
}

// RemoveExhaustion returns c with up to levels exhaustion removed.
//
// Stats are rebuilt by dividing out the current exhaustion multiplier and
// applying the multiplier for the new level, so removing every level restores
// the pre-penalty stats within integer rounding. When the current multiplier
// is zero the original stats cannot be recovered and are kept as stored.
//
// Precondition: levels >= 0.
// Postcondition: c is not modified; result ExhaustionLevel == max(0, c.ExhaustionLevel-levels).
func RemoveExhaustion(c creature.Creature, levels int) creature.Creature {
	out := c.Clone()
	if levels <= 0 || c.ExhaustionLevel <= 0 {
		return out
	}
	out.ExhaustionLevel = max(0, c.ExhaustionLevel-levels)
	current := exhaustionMultiplier(c.ExhaustionLevel)
	if current == 0 {
		return out
	}
	next := exhaustionMultiplier(out.ExhaustionLevel)
	out.Stats = c.Stats.Map(func(_ string, v float64) float64 {
		return nonNegative(math.Round(v / current * next))
	})
	return out
}

// CalculateRecoveryCost returns the gold needed to remove exhaustionLevel levels.
//
// Postcondition: 100 × exhaustionLevel, or 0 when exhaustionLevel <= 0.
func CalculateRecoveryCost(exhaustionLevel int) int {
	if exhaustionLevel <= 0 {
		return 0
	}
	return RecoveryCostPerLevel * exhaustionLevel
}

// CanBreed reports whether c may be used as a parent.
//
// Postcondition: false when c is at creature.MaxGeneration or its exhaustion
// has reached maxExhaustion; true otherwise.
func CanBreed(c creature.Creature, maxExhaustion int) bool {
	return ineligibility(c, maxExhaustion) == ""
}

// ineligibility describes why c cannot breed, or returns "" when it can.
func ineligibility(c creature.Creature, maxExhaustion int) string {
	switch {
	case c.Generation >= creature.MaxGeneration:
		return "has reached the maximum generation"
	case c.ExhaustionLevel >= maxExhaustion:
		return "is too exhausted to breed"
	default:
		return ""
	}
}

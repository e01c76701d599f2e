package observability

import (
	"go.uber.org/zap"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// CreatureFields returns the log fields identifying a creature record.
func CreatureFields(prefix string, c creature.Creature) []zap.Field {
	return []zap.Field{
		zap.String(prefix+"_id", c.ID),
		zap.String(prefix+"_species", c.Species),
		zap.Stringer(prefix+"_rarity", c.Rarity),
		zap.Int(prefix+"_generation", c.Generation),
		zap.Int(prefix+"_exhaustion", c.ExhaustionLevel),
	}
}

// CostFields returns the log fields describing a breeding cost.
func CostFields(cost breeding.Cost) []zap.Field {
	return []zap.Field{
		zap.Int("gold", cost.GoldAmount),
		zap.Int("base_cost", cost.Breakdown.BaseCost),
		zap.Float64("rarity_multiplier", cost.Breakdown.RarityMultiplier),
		zap.Float64("generation_multiplier", cost.Breakdown.GenerationMultiplier),
		zap.Float64("breeding_count_multiplier", cost.Breakdown.BreedingCountMultiplier),
		zap.Int("materials", len(cost.Materials)),
	}
}

// ValidationFields returns the log fields summarising a validation outcome.
func ValidationFields(v breeding.Validation) []zap.Field {
	return []zap.Field{
		zap.Bool("valid", v.Valid),
		zap.Strings("errors", v.Errors),
		zap.Strings("warnings", v.Warnings),
	}
}

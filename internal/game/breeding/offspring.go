package breeding

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

// Result is the one-shot record of a breeding transaction.
type Result struct {
	Success            bool
	Offspring          creature.OffspringDraft
	Messages           []string
	InheritedAbilities []string
	RarityUpgraded     bool
	Generation         int
	Species            string
	Cost               Cost
	Recipe             recipe.Option
}

// Generator composes the inheritance rules into a single breeding pipeline.
// It holds no per-transaction state and is safe for concurrent use when each
// call receives its own dice.Source.
type Generator struct {
	logger  *zap.Logger
	mutator TraitMutator
}

// NewGenerator returns a Generator.
//
// Precondition: logger must be non-nil. A nil mutator selects NoMutation.
func NewGenerator(logger *zap.Logger, mutator TraitMutator) *Generator {
	if logger == nil {
		panic("breeding: NewGenerator precondition violated: logger must be non-nil")
	}
	if mutator == nil {
		mutator = NoMutation{}
	}
	return &Generator{logger: logger, mutator: mutator}
}

// Generate breeds p1 with p2.
//
// Eligibility and affordability must be checked with Validate beforehand;
// Generate always succeeds. Draws are taken from src in this order: species
// coin flip (only without a recipe), stats, rarity, abilities, traits.
//
// Postcondition: Success is true; the offspring is level 1 with zero breeding
// count and exhaustion; Generation == OffspringGeneration(p1.Generation, p2.Generation);
// rarity >= the higher parent rarity; p1 and p2 are not modified.
func (g *Generator) Generate(p1, p2 creature.Creature, rec recipe.Option, src dice.Source) Result {
	r, hasRecipe := rec.Get()

	var species string
	switch {
	case hasRecipe:
		species = r.OffspringSpecies
	case dice.Chance(src, 0.5):
		species = p1.Species
	default:
		species = p2.Species
	}

	generation := OffspringGeneration(p1.Generation, p2.Generation)

	stats := InheritStats(p1.Stats, p2.Stats, generation, src)
	if hasRecipe {
		stats = applyRecipeStatBonus(stats, r.Bonuses.StatMultiplier, r.Bonuses.ExtraGenerationBonus)
	}

	parentRarity := creature.MaxRarity(p1.Rarity, p2.Rarity)
	upgraded, rarity := RollRarityUpgrade(parentRarity, rec, src)

	abilities := InheritAbilities(p1.Abilities, p2.Abilities, rec, src)
	traits := InheritTraits(p1.PassiveTraits, p2.PassiveTraits, generation, src, g.mutator)
	caps := CalculateStatCaps(generation)

	draft := creature.OffspringDraft{
		Species:         species,
		Level:           1,
		Rarity:          rarity,
		Generation:      generation,
		BreedingCount:   0,
		ExhaustionLevel: 0,
		Stats:           stats,
		Abilities:       abilities,
		PassiveTraits:   traits,
		ParentIDs:       []string{p1.ID, p2.ID},
		StatCaps:        caps,
	}

	cost := CalculateCost(p1, p2, rec)

	messages := []string{fmt.Sprintf("A new %s %s was born (generation %d)!", rarity, species, generation)}
	if hasRecipe {
		messages = append(messages, fmt.Sprintf("Recipe %q guided the breeding", recipeName(r)))
	}
	if upgraded {
		messages = append(messages, fmt.Sprintf("Rarity upgraded from %s to %s!", parentRarity, rarity))
	} else if rarity > parentRarity {
		messages = append(messages, fmt.Sprintf("Recipe guaranteed %s rarity", rarity))
	}
	if len(abilities) > 0 {
		messages = append(messages, "Inherited abilities: "+strings.Join(abilities, ", "))
	}
	if len(traits) > 0 {
		messages = append(messages, "Inherited passive traits: "+strings.Join(traits, ", "))
	}

	g.logger.Debug("offspring generated",
		zap.String("parent1", p1.ID),
		zap.String("parent2", p2.ID),
		zap.String("species", species),
		zap.Int("generation", generation),
		zap.Stringer("rarity", rarity),
		zap.Bool("rarity_upgraded", upgraded),
		zap.Strings("abilities", abilities),
		zap.Strings("traits", traits),
		zap.Int("gold", cost.GoldAmount),
	)

	return Result{
		Success:            true,
		Offspring:          draft,
		Messages:           messages,
		InheritedAbilities: slices.Clone(abilities),
		RarityUpgraded:     upgraded,
		Generation:         generation,
		Species:            species,
		Cost:               cost,
		Recipe:             rec,
	}
}

func recipeName(r recipe.Recipe) string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

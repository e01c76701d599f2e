package breeding

import (
	"fmt"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// ValidationInput is everything the Validator inspects. Gold, Materials and
// Cost are optional snapshots; a nil value skips the matching check.
type ValidationInput struct {
	Parent1 creature.Creature
	Parent2 creature.Creature
	// Gold is the player's gold balance.
	Gold *int
	// Materials maps material id to the quantity the player holds.
	Materials map[string]int
	// Cost is the precomputed price of the breeding.
	Cost *Cost
	// MaxExhaustion overrides DefaultMaxExhaustion when > 0.
	MaxExhaustion int
}

// Validation is the outcome of Validate. Errors block breeding; warnings do not.
type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// MaterialShortfall describes one material the player lacks.
type MaterialShortfall struct {
	ID        string
	Required  int
	Available int
	Missing   int
}

// Affordability is the outcome of ValidateBreedingCost.
type Affordability struct {
	CanAfford        bool
	GoldShortfall    int
	MissingMaterials []MaterialShortfall
}

// Validate checks that two parents may breed and that the player can pay.
//
// Every check runs; nothing short-circuits, so the caller sees every problem
// at once.
//
// Postcondition: Valid == (len(Errors) == 0); Errors and Warnings are non-nil.
func Validate(in ValidationInput) Validation {
	v := Validation{Errors: []string{}, Warnings: []string{}}
	maxExhaustion := in.MaxExhaustion
	if maxExhaustion <= 0 {
		maxExhaustion = DefaultMaxExhaustion
	}

	present1, present2 := in.Parent1.ID != "", in.Parent2.ID != ""
	if !present1 || !present2 {
		v.Errors = append(v.Errors, "Two parent creatures are required for breeding")
	}
	if present1 && present2 && in.Parent1.ID == in.Parent2.ID {
		v.Errors = append(v.Errors, fmt.Sprintf("Self-breeding is not allowed: %s cannot breed with itself", displayName(in.Parent1)))
	}

	for _, p := range []struct {
		c       creature.Creature
		present bool
	}{{in.Parent1, present1}, {in.Parent2, present2}} {
		if !p.present {
			continue
		}
		if reason := ineligibility(p.c, maxExhaustion); reason != "" {
			v.Errors = append(v.Errors, eligibilityMessage(p.c, reason, maxExhaustion))
		}
		if p.c.ExhaustionLevel > 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf(
				"%s is exhausted (level %d) and its stats will drop further after breeding",
				displayName(p.c), p.c.ExhaustionLevel))
		}
	}

	if in.Cost != nil {
		if in.Gold != nil && *in.Gold < in.Cost.GoldAmount {
			v.Errors = append(v.Errors, fmt.Sprintf(
				"Insufficient gold: need %d, have %d (short by %d)",
				in.Cost.GoldAmount, *in.Gold, in.Cost.GoldAmount-*in.Gold))
		}
		if in.Materials != nil {
			for _, m := range materialShortfalls(*in.Cost, in.Materials) {
				v.Errors = append(v.Errors, fmt.Sprintf(
					"Insufficient %s: need %d, have %d (missing %d)",
					m.ID, m.Required, m.Available, m.Missing))
			}
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// ValidateBreedingCost checks only whether gold and materials cover cost.
//
// Postcondition: CanAfford == (GoldShortfall == 0 && len(MissingMaterials) == 0).
func ValidateBreedingCost(cost Cost, gold int, materials map[string]int) Affordability {
	a := Affordability{
		GoldShortfall:    max(0, cost.GoldAmount-gold),
		MissingMaterials: materialShortfalls(cost, materials),
	}
	a.CanAfford = a.GoldShortfall == 0 && len(a.MissingMaterials) == 0
	return a
}

// materialShortfalls lists required materials not covered by held, in recipe order.
func materialShortfalls(cost Cost, held map[string]int) []MaterialShortfall {
	out := []MaterialShortfall{}
	for _, m := range cost.Materials {
		have := held[m.ID]
		if have < m.Quantity {
			out = append(out, MaterialShortfall{
				ID:        m.ID,
				Required:  m.Quantity,
				Available: have,
				Missing:   m.Quantity - have,
			})
		}
	}
	return out
}

func eligibilityMessage(c creature.Creature, reason string, maxExhaustion int) string {
	if c.Generation >= creature.MaxGeneration {
		return fmt.Sprintf("%s %s (generation %d) and cannot breed", displayName(c), reason, c.Generation)
	}
	return fmt.Sprintf("%s %s (exhaustion %d/%d)", displayName(c), reason, c.ExhaustionLevel, maxExhaustion)
}

func displayName(c creature.Creature) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Package hatchery is the host-side breeding transaction. It loads parents,
// validates the request, runs the offspring generator and persists the
// outcome atomically through a Store. The breeding engine itself never
// persists anything.
package hatchery

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/observability"
)

// ErrNotExhausted is returned by Recover when there is no exhaustion to remove.
var ErrNotExhausted = errors.New("creature is not exhausted")

// Store is the persistence collaborator of the hatchery.
type Store interface {
	// GetCreature returns the creature with id or an error wrapping creature.ErrNotFound.
	GetCreature(ctx context.Context, id string) (creature.Creature, error)
	// UpdateCreature stores the mutable breeding state of c.
	UpdateCreature(ctx context.Context, c creature.Creature) error
	// SaveBreeding inserts offspring and updates both parents in one transaction.
	SaveBreeding(ctx context.Context, offspring, parent1, parent2 creature.Creature, recipeID string, goldSpent int) error
}

// Wallet is the player's spendable balance at request time.
type Wallet struct {
	Gold      int
	Materials map[string]int
}

// Request asks the hatchery to breed two stored creatures.
type Request struct {
	Parent1ID string
	Parent2ID string
	// RecipeID selects a recipe; empty breeds without one.
	RecipeID string
	// Name is the offspring name; empty defaults to the species.
	Name   string
	Wallet Wallet
}

// Outcome is a committed breeding.
type Outcome struct {
	Offspring creature.Creature
	// Parent1 and Parent2 are the parents after exhaustion was applied.
	Parent1 creature.Creature
	Parent2 creature.Creature
	Result  breeding.Result
	// Warnings are the non-blocking validation warnings.
	Warnings []string
	// Wallet is the balance left after paying the cost.
	Wallet Wallet
}

// RecoveryOutcome is a committed exhaustion recovery.
type RecoveryOutcome struct {
	Creature      creature.Creature
	LevelsRemoved int
	Cost          int
	GoldRemaining int
}

// ValidationError reports a request rejected by the breeding validator.
type ValidationError struct {
	Validation breeding.Validation
}

// Error joins every validation error message.
func (e *ValidationError) Error() string {
	return "breeding rejected: " + strings.Join(e.Validation.Errors, "; ")
}

// Service runs breeding transactions against a Store.
//
// Service is safe for concurrent use; draws from its dice.Source are serialized.
type Service struct {
	store         Store
	recipes       *recipe.Registry
	generator     *breeding.Generator
	logger        *zap.Logger
	maxExhaustion int
	now           func() time.Time

	mu  sync.Mutex
	src dice.Source
}

// NewService creates a Service.
//
// Precondition: store, recipes, generator, src and logger must be non-nil.
// maxExhaustion <= 0 selects breeding.DefaultMaxExhaustion.
func NewService(store Store, recipes *recipe.Registry, generator *breeding.Generator, src dice.Source, maxExhaustion int, logger *zap.Logger) *Service {
	if store == nil || recipes == nil || generator == nil || src == nil || logger == nil {
		panic("hatchery: NewService precondition violated: nil dependency")
	}
	if maxExhaustion <= 0 {
		maxExhaustion = breeding.DefaultMaxExhaustion
	}
	return &Service{
		store:         store,
		recipes:       recipes,
		generator:     generator,
		src:           src,
		logger:        logger,
		maxExhaustion: maxExhaustion,
		now:           time.Now,
	}
}

// SetClock replaces the timestamp source used for new offspring.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Breed runs one breeding transaction.
//
// Postcondition: On success the offspring and both exhausted parents have been
// saved atomically. A rejected request returns *ValidationError; an unknown
// recipe returns an error wrapping recipe.ErrRecipeNotFound; a missing parent
// returns an error wrapping creature.ErrNotFound. Nothing is stored on error.
func (s *Service) Breed(ctx context.Context, req Request) (Outcome, error) {
	p1, err := s.load(ctx, req.Parent1ID)
	if err != nil {
		return Outcome{}, err
	}
	p2, err := s.load(ctx, req.Parent2ID)
	if err != nil {
		return Outcome{}, err
	}

	rec, err := s.recipes.Lookup(req.RecipeID)
	if err != nil {
		return Outcome{}, fmt.Errorf("hatchery: %w", err)
	}

	cost := breeding.CalculateCost(p1, p2, rec)
	materials := req.Wallet.Materials
	if materials == nil {
		materials = map[string]int{}
	}
	gold := req.Wallet.Gold
	v := breeding.Validate(breeding.ValidationInput{
		Parent1:       p1,
		Parent2:       p2,
		Gold:          &gold,
		Materials:     materials,
		Cost:          &cost,
		MaxExhaustion: s.maxExhaustion,
	})
	if r, ok := rec.Get(); ok && p1.ID != "" && p2.ID != "" && !r.Matches(p1.Species, p2.Species) {
		v.Errors = append(v.Errors, fmt.Sprintf("Recipe %q does not accept %s and %s", r.ID, p1.Species, p2.Species))
		v.Valid = false
	}
	if !v.Valid {
		s.logger.Info("breeding rejected", observability.ValidationFields(v)...)
		return Outcome{}, &ValidationError{Validation: v}
	}

	s.mu.Lock()
	result := s.generator.Generate(p1, p2, rec, s.src)
	s.mu.Unlock()

	offspring, err := creature.Finalize(result.Offspring, creature.NewIdentity(req.Name, s.now().UTC()))
	if err != nil {
		return Outcome{}, fmt.Errorf("hatchery: %w", err)
	}
	ex1, ex2 := breeding.ApplyExhaustion(p1), breeding.ApplyExhaustion(p2)

	if err := s.store.SaveBreeding(ctx, offspring, ex1, ex2, req.RecipeID, cost.GoldAmount); err != nil {
		return Outcome{}, fmt.Errorf("hatchery: saving breeding: %w", err)
	}

	fields := append(observability.CreatureFields("offspring", offspring), observability.CostFields(cost)...)
	fields = append(fields, zap.Bool("rarity_upgraded", result.RarityUpgraded))
	s.logger.Info("creature bred", fields...)

	return Outcome{
		Offspring: offspring,
		Parent1:   ex1,
		Parent2:   ex2,
		Result:    result,
		Warnings:  v.Warnings,
		Wallet:    pay(req.Wallet, cost),
	}, nil
}

// Recover removes up to levels of exhaustion from the creature with id,
// charging breeding.CalculateRecoveryCost for the levels actually removed.
//
// Postcondition: Returns ErrNotExhausted when nothing can be removed and
// *ValidationError when gold does not cover the cost.
func (s *Service) Recover(ctx context.Context, id string, levels, gold int) (RecoveryOutcome, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return RecoveryOutcome{}, err
	}
	levels = min(levels, c.ExhaustionLevel)
	if levels <= 0 {
		return RecoveryOutcome{}, fmt.Errorf("hatchery: %s: %w", id, ErrNotExhausted)
	}

	cost := breeding.CalculateRecoveryCost(levels)
	if gold < cost {
		v := breeding.Validation{
			Errors:   []string{fmt.Sprintf("Insufficient gold: need %d, have %d (short by %d)", cost, gold, cost-gold)},
			Warnings: []string{},
		}
		return RecoveryOutcome{}, &ValidationError{Validation: v}
	}

	rested := breeding.RemoveExhaustion(c, levels)
	if err := s.store.UpdateCreature(ctx, rested); err != nil {
		return RecoveryOutcome{}, fmt.Errorf("hatchery: saving recovery: %w", err)
	}
	s.logger.Info("exhaustion recovered",
		zap.String("creature_id", id),
		zap.Int("levels", levels),
		zap.Int("gold", cost),
	)
	return RecoveryOutcome{
		Creature:      rested,
		LevelsRemoved: levels,
		Cost:          cost,
		GoldRemaining: gold - cost,
	}, nil
}

// load fetches id, leaving an empty id as an absent creature for the validator.
func (s *Service) load(ctx context.Context, id string) (creature.Creature, error) {
	if id == "" {
		return creature.Creature{}, nil
	}
	c, err := s.store.GetCreature(ctx, id)
	if err != nil {
		return creature.Creature{}, fmt.Errorf("hatchery: loading %s: %w", id, err)
	}
	return c, nil
}

func pay(w Wallet, cost breeding.Cost) Wallet {
	out := Wallet{Gold: w.Gold - cost.GoldAmount, Materials: maps.Clone(w.Materials)}
	if out.Materials == nil {
		out.Materials = map[string]int{}
	}
	for _, m := range cost.Materials {
		out.Materials[m.ID] -= m.Quantity
		if out.Materials[m.ID] == 0 {
			delete(out.Materials, m.ID)
		}
	}
	return out
}

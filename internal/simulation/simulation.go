// Package simulation runs Monte-Carlo breeding trials to estimate the
// distribution of offspring for a fixed pair of parents.
package simulation

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

// seedStride separates the per-worker PCG streams derived from Params.Seed.
const seedStride = 0x9e3779b97f4a7c15

// Params describes one simulation run.
type Params struct {
	Parent1 creature.Creature
	Parent2 creature.Creature
	Recipe  recipe.Option
	// Trials is the number of offspring to generate.
	Trials int
	// Workers is the number of concurrent goroutines; <= 0 means 1.
	Workers int
	// Seed fixes every worker's source so equal Params yield equal Reports.
	Seed uint64
}

// trial is the sampled outcome of one breeding.
type trial struct {
	species   string
	rarity    creature.Rarity
	upgraded  bool
	power     float64
	abilities int
	traits    int
}

// Run generates p.Trials offspring across p.Workers goroutines and summarises them.
//
// Trials are split into contiguous chunks, one per worker, and each worker
// draws from its own seeded source, so the report depends only on p.
//
// Precondition: gen must be non-nil.
// Postcondition: Returns ctx.Err() wrapped if ctx is cancelled before all
// trials complete; otherwise Report.Trials == max(p.Trials, 0).
func Run(ctx context.Context, gen *breeding.Generator, p Params) (Report, error) {
	if gen == nil {
		panic("simulation: Run precondition violated: generator is nil")
	}
	if p.Trials <= 0 {
		return newReport(p, nil), nil
	}
	workers := max(1, min(p.Workers, p.Trials))

	results := make([]trial, p.Trials)
	chunk := (p.Trials + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, p.Trials)
		if lo >= hi {
			break
		}
		src := dice.NewSeededSource(p.Seed + uint64(w)*seedStride)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				res := gen.Generate(p.Parent1, p.Parent2, p.Recipe, src)
				results[i] = trial{
					species:   res.Species,
					rarity:    res.Offspring.Rarity,
					upgraded:  res.RarityUpgraded,
					power:     res.Offspring.Stats.Total(),
					abilities: len(res.Offspring.Abilities),
					traits:    len(res.Offspring.PassiveTraits),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Report{}, fmt.Errorf("simulation: %w", err)
		}
		return Report{}, err
	}
	return newReport(p, results), nil
}

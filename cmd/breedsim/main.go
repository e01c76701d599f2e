// Package main provides the breeding simulator, which breeds two synthetic
// parents many times and reports the offspring distribution.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/config"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/engine"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/observability"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/simulation"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	parent1 := flag.String("parent1", "wolf:common:0:5", "first parent as species:rarity:generation:level")
	parent2 := flag.String("parent2", "fox:common:0:5", "second parent as species:rarity:generation:level")
	abilities1 := flag.String("abilities1", "", "comma-separated abilities of the first parent")
	abilities2 := flag.String("abilities2", "", "comma-separated abilities of the second parent")
	traits1 := flag.String("traits1", "", "comma-separated passive traits of the first parent")
	traits2 := flag.String("traits2", "", "comma-separated passive traits of the second parent")
	stat := flag.Float64("stat", 100, "value of every stat on both parents")
	recipeID := flag.String("recipe", "", "recipe id to apply; empty breeds without one")
	trials := flag.Int("trials", 0, "number of trials; 0 uses simulation.trials")
	workers := flag.Int("workers", 0, "number of workers; 0 uses simulation.workers")
	seed := flag.Uint64("seed", 0, "simulation seed; 0 uses breeding.seed, then the clock")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "breedsim")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	eng, err := engine.New(cfg, logger)
	if err != nil {
		logger.Fatal("building engine", zap.Error(err))
	}
	defer eng.Close()

	p1, err := parseParent("p1", *parent1, *stat, *abilities1, *traits1)
	if err != nil {
		logger.Fatal("parsing -parent1", zap.Error(err))
	}
	p2, err := parseParent("p2", *parent2, *stat, *abilities2, *traits2)
	if err != nil {
		logger.Fatal("parsing -parent2", zap.Error(err))
	}

	rec, err := eng.Recipes.Lookup(*recipeID)
	if err != nil {
		logger.Fatal("resolving recipe", zap.Error(err))
	}
	if r, ok := rec.Get(); ok && !r.Matches(p1.Species, p2.Species) {
		logger.Fatal("recipe does not accept these parents",
			zap.String("recipe", r.ID),
			zap.String("species1", p1.Species),
			zap.String("species2", p2.Species),
		)
	}

	v := breeding.Validate(breeding.ValidationInput{Parent1: p1, Parent2: p2, MaxExhaustion: cfg.Breeding.MaxExhaustion})
	if !v.Valid {
		logger.Fatal("parents cannot breed", observability.ValidationFields(v)...)
	}

	params := simulation.Params{
		Parent1: p1,
		Parent2: p2,
		Recipe:  rec,
		Trials:  pick(*trials, cfg.Simulation.Trials),
		Workers: pick(*workers, cfg.Simulation.Workers),
		Seed:    pickSeed(*seed, cfg.Breeding.Seed),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulation starting",
		zap.Int("trials", params.Trials),
		zap.Int("workers", params.Workers),
		zap.Uint64("seed", params.Seed),
	)
	report, err := simulation.Run(ctx, eng.Generator, params)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	logger.Info("simulation complete",
		zap.Float64("upgrade_rate", report.UpgradeRate),
		zap.Float64("power_mean", report.Power.Mean),
		zap.Float64("power_p90", report.Power.P90),
		zap.Duration("elapsed", time.Since(start)),
	)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}
	_ = enc.Close()
}

// parseParent builds a synthetic parent from species:rarity:generation:level.
func parseParent(id, desc string, stat float64, abilities, traits string) (creature.Creature, error) {
	parts := strings.Split(desc, ":")
	if len(parts) != 4 {
		return creature.Creature{}, fmt.Errorf("want species:rarity:generation:level, got %q", desc)
	}
	rarity, err := creature.ParseRarity(parts[1])
	if err != nil {
		return creature.Creature{}, err
	}
	gen, err := strconv.Atoi(parts[2])
	if err != nil {
		return creature.Creature{}, fmt.Errorf("generation: %w", err)
	}
	level, err := strconv.Atoi(parts[3])
	if err != nil {
		return creature.Creature{}, fmt.Errorf("level: %w", err)
	}
	c := creature.Creature{
		ID:            id,
		Species:       parts[0],
		Name:          id,
		Level:         level,
		Rarity:        rarity,
		Generation:    gen,
		Stats:         creature.UniformStats(stat),
		Abilities:     splitList(abilities),
		PassiveTraits: splitList(traits),
		StatCaps:      breeding.CalculateStatCaps(gen),
	}
	if err := c.Validate(); err != nil {
		return creature.Creature{}, err
	}
	return c, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func pick(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func pickSeed(flagSeed, configSeed uint64) uint64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case configSeed != 0:
		return configSeed
	default:
		return uint64(time.Now().UnixNano())
	}
}

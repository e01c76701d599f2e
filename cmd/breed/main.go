// Package main provides the breeding command, which runs one breeding or
// exhaustion recovery against creatures stored in PostgreSQL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/config"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/engine"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/hatchery"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/observability"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/storage/postgres"
)

// seedCreature is the YAML shape accepted by -import.
type seedCreature struct {
	ID            string          `yaml:"id"`
	Species       string          `yaml:"species"`
	Name          string          `yaml:"name"`
	Level         int             `yaml:"level"`
	Rarity        creature.Rarity `yaml:"rarity"`
	Generation    int             `yaml:"generation"`
	Stats         creature.Stats  `yaml:"stats"`
	Abilities     []string        `yaml:"abilities"`
	PassiveTraits []string        `yaml:"passive_traits"`
}

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	importPath := flag.String("import", "", "YAML file of creatures to insert before anything else")
	parent1 := flag.String("parent1", "", "id of the first parent")
	parent2 := flag.String("parent2", "", "id of the second parent")
	recipeID := flag.String("recipe", "", "recipe id; empty breeds without one")
	name := flag.String("name", "", "offspring name; empty uses the species")
	gold := flag.Int("gold", 0, "gold available to pay for the breeding or recovery")
	materials := flag.String("materials", "", "held materials as id=qty,id=qty")
	recoverID := flag.String("recover", "", "id of a creature to remove exhaustion from")
	levels := flag.Int("levels", 1, "exhaustion levels to remove with -recover")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "breed")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)
	repo := postgres.NewCreatureRepository(pool.DB())

	if *importPath != "" {
		n, err := importCreatures(ctx, repo, *importPath)
		if err != nil {
			logger.Fatal("importing creatures", zap.Error(err))
		}
		logger.Info("creatures imported", zap.Int("count", n))
	}

	eng, err := engine.New(cfg, logger)
	if err != nil {
		logger.Fatal("building engine", zap.Error(err))
	}
	defer eng.Close()

	svc := hatchery.NewService(repo, eng.Recipes, eng.Generator, eng.Source, cfg.Breeding.MaxExhaustion, logger)

	switch {
	case *recoverID != "":
		out, err := svc.Recover(ctx, *recoverID, *levels, *gold)
		if err != nil {
			fail(logger, err)
		}
		fmt.Printf("%s recovered %d level(s) for %d gold; %d gold left\n",
			out.Creature.Name, out.LevelsRemoved, out.Cost, out.GoldRemaining)

	case *parent1 != "" || *parent2 != "":
		held, err := parseMaterials(*materials)
		if err != nil {
			logger.Fatal("parsing -materials", zap.Error(err))
		}
		out, err := svc.Breed(ctx, hatchery.Request{
			Parent1ID: *parent1,
			Parent2ID: *parent2,
			RecipeID:  *recipeID,
			Name:      *name,
			Wallet:    hatchery.Wallet{Gold: *gold, Materials: held},
		})
		if err != nil {
			fail(logger, err)
		}
		for _, w := range out.Warnings {
			fmt.Println("warning:", w)
		}
		for _, m := range out.Result.Messages {
			fmt.Println(m)
		}
		fmt.Printf("offspring %s saved; %d gold left\n", out.Offspring.ID, out.Wallet.Gold)

	case *importPath == "":
		flag.Usage()
		os.Exit(2)
	}
}

// fail prints validation errors one per line, or logs any other error, and exits.
func fail(logger *zap.Logger, err error) {
	var verr *hatchery.ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Validation.Errors {
			fmt.Fprintln(os.Stderr, "error:", msg)
		}
		os.Exit(1)
	}
	logger.Fatal("breeding failed", zap.Error(err))
}

func importCreatures(ctx context.Context, repo *postgres.CreatureRepository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	var seeds []seedCreature
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, s := range seeds {
		c := s.toCreature()
		if _, err := repo.Create(ctx, c); err != nil {
			return 0, fmt.Errorf("creating %s: %w", s.ID, err)
		}
	}
	return len(seeds), nil
}

func (s seedCreature) toCreature() creature.Creature {
	level := s.Level
	if level == 0 {
		level = 1
	}
	name := s.Name
	if name == "" {
		name = s.Species
	}
	abilities := s.Abilities
	if abilities == nil {
		abilities = []string{}
	}
	traits := s.PassiveTraits
	if traits == nil {
		traits = []string{}
	}
	return creature.Creature{
		ID:            s.ID,
		Species:       s.Species,
		Name:          name,
		Level:         level,
		Rarity:        s.Rarity,
		Generation:    s.Generation,
		Stats:         s.Stats,
		Abilities:     abilities,
		PassiveTraits: traits,
		ParentIDs:     []string{},
		StatCaps:      breeding.CalculateStatCaps(s.Generation),
	}
}

// parseMaterials parses "id=qty,id=qty" into a held-materials map.
func parseMaterials(s string) (map[string]int, error) {
	held := map[string]int{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, qty, ok := strings.Cut(pair, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("want id=qty, got %q", pair)
		}
		n, err := strconv.Atoi(qty)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("quantity for %s must be a non-negative integer, got %q", id, qty)
		}
		held[id] += n
	}
	return held, nil
}

package hatchery_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/breeding"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/dice"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/hatchery"
)

// memStore is an in-memory hatchery.Store.
type memStore struct {
	mu        sync.Mutex
	creatures map[string]creature.Creature
	saves     int
	failSave  error
}

func newMemStore(cs ...creature.Creature) *memStore {
	s := &memStore{creatures: make(map[string]creature.Creature)}
	for _, c := range cs {
		s.creatures[c.ID] = c
	}
	return s
}

func (s *memStore) GetCreature(_ context.Context, id string) (creature.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creatures[id]
	if !ok {
		return creature.Creature{}, creature.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *memStore) UpdateCreature(_ context.Context, c creature.Creature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creatures[c.ID]; !ok {
		return creature.ErrNotFound
	}
	s.creatures[c.ID] = c
	return nil
}

func (s *memStore) SaveBreeding(_ context.Context, offspring, p1, p2 creature.Creature, _ string, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.creatures[offspring.ID] = offspring
	s.creatures[p1.ID] = p1
	s.creatures[p2.ID] = p2
	s.saves++
	return nil
}

func (s *memStore) get(id string) creature.Creature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creatures[id]
}

func stored(id, species string) creature.Creature {
	return creature.Creature{
		ID:            id,
		Species:       species,
		Name:          "Name " + id,
		Level:         5,
		Rarity:        creature.Common,
		Stats:         creature.UniformStats(100),
		Abilities:     []string{},
		PassiveTraits: []string{},
	}
}

func stormRecipe() recipe.Recipe {
	return recipe.Recipe{
		ID:               "storm_drake",
		Name:             "Storm Drake",
		ParentSpecies:    [2]string{"drake", "eagle"},
		Materials:        []recipe.Material{{ID: "thunder_shard", Quantity: 2}},
		OffspringSpecies: "storm_drake",
	}
}

func newService(t *testing.T, store hatchery.Store, src dice.Source) *hatchery.Service {
	t.Helper()
	reg, err := recipe.NewRegistry([]recipe.Recipe{stormRecipe()})
	require.NoError(t, err)
	gen := breeding.NewGenerator(zap.NewNop(), nil)
	svc := hatchery.NewService(store, reg, gen, src, 0, zap.NewNop())
	svc.SetClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })
	return svc
}

func TestBreed_CommitsOffspringAndExhaustsParents(t *testing.T) {
	store := newMemStore(stored("a", "wolf"), stored("b", "fox"))
	svc := newService(t, store, dice.NewSeededSource(7))

	out, err := svc.Breed(context.Background(), hatchery.Request{
		Parent1ID: "a",
		Parent2ID: "b",
		Name:      "Pup",
		Wallet:    hatchery.Wallet{Gold: 1500},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Offspring.ID)
	assert.Equal(t, "Pup", out.Offspring.Name)
	assert.Equal(t, 1, out.Offspring.Level)
	assert.Equal(t, 1, out.Offspring.Generation)
	assert.Equal(t, []string{"a", "b"}, out.Offspring.ParentIDs)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), out.Offspring.CreatedAt)
	assert.Contains(t, []string{"wolf", "fox"}, out.Offspring.Species)
	assert.True(t, out.Result.Success)

	assert.Equal(t, 1000, out.Result.Cost.GoldAmount)
	assert.Equal(t, 500, out.Wallet.Gold)

	for _, id := range []string{"a", "b"} {
		p := store.get(id)
		assert.Equal(t, 1, p.ExhaustionLevel)
		assert.Equal(t, 1, p.BreedingCount)
		assert.Equal(t, creature.UniformStats(80), p.Stats)
	}
	assert.Equal(t, out.Offspring, store.get(out.Offspring.ID))
	assert.Equal(t, 1, store.saves)
}

func TestBreed_NameDefaultsToSpecies(t *testing.T) {
	store := newMemStore(stored("a", "wolf"), stored("b", "wolf"))
	svc := newService(t, store, dice.NewSeededSource(1))
	out, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Parent2ID: "b", Wallet: hatchery.Wallet{Gold: 1000}})
	require.NoError(t, err)
	assert.Equal(t, "wolf", out.Offspring.Name)
}

func TestBreed_WithRecipeSpendsMaterials(t *testing.T) {
	store := newMemStore(stored("a", "eagle"), stored("b", "drake"))
	svc := newService(t, store, dice.NewSeededSource(3))

	out, err := svc.Breed(context.Background(), hatchery.Request{
		Parent1ID: "a",
		Parent2ID: "b",
		RecipeID:  "storm_drake",
		Wallet:    hatchery.Wallet{Gold: 1000, Materials: map[string]int{"thunder_shard": 3, "feather": 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "storm_drake", out.Offspring.Species)
	assert.Equal(t, map[string]int{"thunder_shard": 1, "feather": 1}, out.Wallet.Materials)
	assert.Equal(t, 0, out.Wallet.Gold)
	assert.Contains(t, out.Result.Messages, `Recipe "Storm Drake" guided the breeding`)
}

func TestBreed_RejectsWithEveryError(t *testing.T) {
	tired := stored("a", "eagle")
	tired.ExhaustionLevel = 5
	store := newMemStore(tired, stored("b", "drake"))
	svc := newService(t, store, dice.NewSeededSource(3))

	_, err := svc.Breed(context.Background(), hatchery.Request{
		Parent1ID: "a",
		Parent2ID: "b",
		RecipeID:  "storm_drake",
		Wallet:    hatchery.Wallet{Gold: 10},
	})
	var verr *hatchery.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.Validation.Valid)
	assert.Len(t, verr.Validation.Errors, 3, "exhaustion, gold and material errors")
	assert.Contains(t, verr.Validation.Errors, "Insufficient thunder_shard: need 2, have 0 (missing 2)")
	assert.Contains(t, err.Error(), "breeding rejected")
	assert.Equal(t, 0, store.saves)
}

func TestBreed_RecipeSpeciesMismatch(t *testing.T) {
	store := newMemStore(stored("a", "wolf"), stored("b", "fox"))
	svc := newService(t, store, dice.NewSeededSource(3))

	_, err := svc.Breed(context.Background(), hatchery.Request{
		Parent1ID: "a",
		Parent2ID: "b",
		RecipeID:  "storm_drake",
		Wallet:    hatchery.Wallet{Gold: 5000, Materials: map[string]int{"thunder_shard": 2}},
	})
	var verr *hatchery.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{`Recipe "storm_drake" does not accept wolf and fox`}, verr.Validation.Errors)
}

func TestBreed_SelfBreedingRejected(t *testing.T) {
	store := newMemStore(stored("a", "wolf"))
	svc := newService(t, store, dice.NewSeededSource(3))
	_, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Parent2ID: "a", Wallet: hatchery.Wallet{Gold: 5000}})
	var verr *hatchery.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Validation.Errors, "Self-breeding is not allowed: Name a cannot breed with itself")
}

func TestBreed_MissingParentID(t *testing.T) {
	store := newMemStore(stored("a", "wolf"))
	svc := newService(t, store, dice.NewSeededSource(3))
	_, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Wallet: hatchery.Wallet{Gold: 5000}})
	var verr *hatchery.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Validation.Errors, "Two parent creatures are required for breeding")
}

func TestBreed_UnknownParent(t *testing.T) {
	svc := newService(t, newMemStore(stored("a", "wolf")), dice.NewSeededSource(3))
	_, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Parent2ID: "zzz"})
	assert.ErrorIs(t, err, creature.ErrNotFound)
}

func TestBreed_UnknownRecipe(t *testing.T) {
	svc := newService(t, newMemStore(stored("a", "wolf"), stored("b", "fox")), dice.NewSeededSource(3))
	_, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Parent2ID: "b", RecipeID: "nope"})
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestBreed_SaveFailureLeavesParentsUntouched(t *testing.T) {
	store := newMemStore(stored("a", "wolf"), stored("b", "fox"))
	store.failSave = errors.New("disk full")
	svc := newService(t, store, dice.NewSeededSource(3))

	_, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Parent2ID: "b", Wallet: hatchery.Wallet{Gold: 5000}})
	require.Error(t, err)
	assert.Equal(t, 0, store.get("a").ExhaustionLevel)
	assert.Len(t, store.creatures, 2)
}

func TestBreed_ExhaustedParentWarns(t *testing.T) {
	tired := stored("a", "wolf")
	tired.ExhaustionLevel = 2
	store := newMemStore(tired, stored("b", "fox"))
	svc := newService(t, store, dice.NewSeededSource(3))

	out, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: "a", Parent2ID: "b", Wallet: hatchery.Wallet{Gold: 5000}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name a is exhausted (level 2) and its stats will drop further after breeding"}, out.Warnings)
	assert.Equal(t, 3, store.get("a").ExhaustionLevel)
}

func TestRecover_RemovesExhaustionForGold(t *testing.T) {
	c := breeding.ApplyExhaustion(breeding.ApplyExhaustion(stored("a", "wolf")))
	store := newMemStore(c)
	svc := newService(t, store, dice.NewSeededSource(3))

	out, err := svc.Recover(context.Background(), "a", 5, 250)
	require.NoError(t, err)
	assert.Equal(t, 2, out.LevelsRemoved, "levels are capped at the current exhaustion")
	assert.Equal(t, 200, out.Cost)
	assert.Equal(t, 50, out.GoldRemaining)
	assert.Equal(t, 0, store.get("a").ExhaustionLevel)
	assert.Equal(t, 2, store.get("a").BreedingCount)
}

func TestRecover_InsufficientGold(t *testing.T) {
	c := stored("a", "wolf")
	c.ExhaustionLevel = 3
	svc := newService(t, newMemStore(c), dice.NewSeededSource(3))

	_, err := svc.Recover(context.Background(), "a", 3, 250)
	var verr *hatchery.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Insufficient gold: need 300, have 250 (short by 50)"}, verr.Validation.Errors)
}

func TestRecover_NotExhausted(t *testing.T) {
	svc := newService(t, newMemStore(stored("a", "wolf")), dice.NewSeededSource(3))
	_, err := svc.Recover(context.Background(), "a", 1, 1000)
	assert.ErrorIs(t, err, hatchery.ErrNotExhausted)
}

func TestNewService_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() {
		hatchery.NewService(nil, nil, nil, nil, 0, nil)
	})
}

func TestBreed_ConcurrentRequests(t *testing.T) {
	var parents []creature.Creature
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		parents = append(parents, stored(id, "wolf"))
	}
	store := newMemStore(parents...)
	svc := newService(t, store, dice.NewSeededSource(11))

	var wg sync.WaitGroup
	for i := 0; i < len(parents); i += 2 {
		wg.Add(1)
		go func(p1, p2 string) {
			defer wg.Done()
			_, err := svc.Breed(context.Background(), hatchery.Request{Parent1ID: p1, Parent2ID: p2, Wallet: hatchery.Wallet{Gold: 1000}})
			assert.NoError(t, err)
		}(parents[i].ID, parents[i+1].ID)
	}
	wg.Wait()
	assert.Equal(t, 4, store.saves)
	assert.Len(t, store.creatures, 12)
}

func TestProperty_BreedNeverMutatesWallet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := newMemStore(stored("a", "eagle"), stored("b", "drake"))
		reg, _ := recipe.NewRegistry([]recipe.Recipe{stormRecipe()})
		svc := hatchery.NewService(store, reg, breeding.NewGenerator(zap.NewNop(), nil),
			dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), 0, zap.NewNop())

		shards := rapid.IntRange(0, 5).Draw(rt, "shards")
		gold := rapid.IntRange(0, 3000).Draw(rt, "gold")
		held := map[string]int{"thunder_shard": shards}
		out, err := svc.Breed(context.Background(), hatchery.Request{
			Parent1ID: "a", Parent2ID: "b", RecipeID: "storm_drake",
			Wallet: hatchery.Wallet{Gold: gold, Materials: held},
		})
		if held["thunder_shard"] != shards {
			rt.Fatalf("request wallet was mutated")
		}
		affordable := gold >= 1000 && shards >= 2
		if affordable != (err == nil) {
			rt.Fatalf("gold=%d shards=%d: err=%v", gold, shards, err)
		}
		if err == nil && (out.Wallet.Gold < 0 || out.Wallet.Materials["thunder_shard"] != shards-2) {
			rt.Fatalf("unexpected remaining wallet %+v", out.Wallet)
		}
	})
}

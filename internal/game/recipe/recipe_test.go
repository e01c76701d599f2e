package recipe_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/recipe"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func validRecipe() recipe.Recipe {
	return recipe.Recipe{
		ID:               "storm_drake",
		Name:             "Storm Drake",
		ParentSpecies:    [2]string{"drake", "stormbird"},
		Materials:        []recipe.Material{{ID: "thunder_shard", Quantity: 2}},
		OffspringSpecies: "storm_drake",
	}
}

func TestRecipe_Matches_OrderInsensitive(t *testing.T) {
	r := validRecipe()
	assert.True(t, r.Matches("drake", "stormbird"))
	assert.True(t, r.Matches("stormbird", "drake"))
	assert.False(t, r.Matches("drake", "drake"))
	assert.False(t, r.Matches("slime", "stormbird"))
}

func TestRecipe_Matches_Wildcard(t *testing.T) {
	r := validRecipe()
	r.ParentSpecies = [2]string{"drake", recipe.AnySpecies}
	assert.True(t, r.Matches("slime", "drake"))
	assert.True(t, r.Matches("drake", "drake"))
	assert.False(t, r.Matches("slime", "slime"))
}

func TestRecipe_Matches_FullWildcardProperty(t *testing.T) {
	r := validRecipe()
	r.ParentSpecies = [2]string{recipe.AnySpecies, ""}
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.String().Draw(rt, "a")
		b := rapid.String().Draw(rt, "b")
		assert.True(rt, r.Matches(a, b))
	})
}

func TestRecipe_Validate(t *testing.T) {
	assert.NoError(t, validRecipe().Validate())

	bad := creature.Rarity(42)
	r := recipe.Recipe{
		Materials: []recipe.Material{{ID: "", Quantity: 0}, {ID: "a", Quantity: 1}, {ID: "a", Quantity: 1}},
		Bonuses: recipe.Bonuses{
			StatMultiplier:       -1,
			MinimumRarity:        &bad,
			GuaranteedAbilities:  []string{""},
			ExtraGenerationBonus: -0.5,
		},
	}
	err := r.Validate()
	require.Error(t, err)
	for _, want := range []string{"id must not be empty", "offspring_species", "quantity", "duplicates", "stat_multiplier", "minimum_rarity", "guaranteed_abilities", "extra_generation_bonus"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestOption(t *testing.T) {
	none := recipe.None()
	_, ok := none.Get()
	assert.False(t, ok)
	assert.False(t, none.Present())

	var zero recipe.Option
	assert.False(t, zero.Present())

	some := recipe.Some(validRecipe())
	got, ok := some.Get()
	require.True(t, ok)
	assert.Equal(t, "storm_drake", got.ID)
}

func TestLoadDir_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "storm_drake.yaml"), `
id: storm_drake
name: "Storm Drake"
parent_species: [drake, stormbird]
offspring_species: storm_drake
materials:
  - id: thunder_shard
    quantity: 2
bonuses:
  stat_multiplier: 1.1
  minimum_rarity: rare
  guaranteed_abilities: [lightning_breath]
  extra_generation_bonus: 0.05
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	recipes, err := recipe.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	r := recipes[0]
	assert.Equal(t, [2]string{"drake", "stormbird"}, r.ParentSpecies)
	assert.Equal(t, []recipe.Material{{ID: "thunder_shard", Quantity: 2}}, r.Materials)
	require.NotNil(t, r.Bonuses.MinimumRarity)
	assert.Equal(t, creature.Rare, *r.Bonuses.MinimumRarity)
	assert.Equal(t, 1.1, r.Bonuses.StatMultiplier)
	assert.Equal(t, []string{"lightning_breath"}, r.Bonuses.GuaranteedAbilities)
}

func TestLoadDir_RejectsInvalidRecipe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "id: bad\n")
	_, err := recipe.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := recipe.LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := recipe.NewRegistry([]recipe.Recipe{validRecipe()})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	opt, err := reg.Lookup("")
	require.NoError(t, err)
	assert.False(t, opt.Present())

	opt, err = reg.Lookup("storm_drake")
	require.NoError(t, err)
	assert.True(t, opt.Present())

	_, err = reg.Lookup("nope")
	assert.True(t, errors.Is(err, recipe.ErrRecipeNotFound))
}

func TestRegistry_DuplicateID(t *testing.T) {
	_, err := recipe.NewRegistry([]recipe.Recipe{validRecipe(), validRecipe()})
	assert.Error(t, err)
}

func TestRegistry_ForParents(t *testing.T) {
	wild := validRecipe()
	wild.ID = "any_drake"
	wild.ParentSpecies = [2]string{"drake", recipe.AnySpecies}
	reg, err := recipe.NewRegistry([]recipe.Recipe{validRecipe(), wild})
	require.NoError(t, err)

	got := reg.ForParents("stormbird", "drake")
	require.Len(t, got, 2)
	assert.Equal(t, "any_drake", got[0].ID)
	assert.Equal(t, "storm_drake", got[1].ID)

	assert.Len(t, reg.ForParents("slime", "drake"), 1)
	assert.Empty(t, reg.ForParents("slime", "slime"))
}

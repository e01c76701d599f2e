package recipe

import (
	"errors"
	"fmt"
	"sort"
)

// ErrRecipeNotFound is returned when a recipe lookup yields no result.
var ErrRecipeNotFound = errors.New("recipe not found")

// Registry holds loaded recipes indexed by ID. It is built once at startup
// and only read afterwards.
type Registry struct {
	recipes map[string]Recipe
}

// NewRegistry builds a Registry from recipes.
//
// Postcondition: Returns an error if any two recipes share an ID.
func NewRegistry(recipes []Recipe) (*Registry, error) {
	r := &Registry{recipes: make(map[string]Recipe, len(recipes))}
	for _, rec := range recipes {
		if _, exists := r.recipes[rec.ID]; exists {
			return nil, fmt.Errorf("recipe: Registry: recipe ID %q already registered", rec.ID)
		}
		r.recipes[rec.ID] = rec
	}
	return r, nil
}

// Lookup resolves id into an Option. An empty id resolves to None.
//
// Postcondition: Returns ErrRecipeNotFound when a non-empty id is unknown.
func (r *Registry) Lookup(id string) (Option, error) {
	if id == "" {
		return None(), nil
	}
	rec, ok := r.recipes[id]
	if !ok {
		return None(), fmt.Errorf("%w: %q", ErrRecipeNotFound, id)
	}
	return Some(rec), nil
}

// ForParents returns every recipe whose parent species match, ordered by ID.
func (r *Registry) ForParents(speciesA, speciesB string) []Recipe {
	var out []Recipe
	for _, rec := range r.recipes {
		if rec.Matches(speciesA, speciesB) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered recipes.
func (r *Registry) Len() int {
	return len(r.recipes)
}

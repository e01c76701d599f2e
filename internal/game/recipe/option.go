package recipe

// Option is either no recipe or exactly one recipe. The zero value is None.
type Option struct {
	recipe  Recipe
	present bool
}

// None returns an Option holding no recipe.
func None() Option {
	return Option{}
}

// Some returns an Option holding r.
func Some(r Recipe) Option {
	return Option{recipe: r, present: true}
}

// Get returns the recipe and true, or the zero Recipe and false for None.
func (o Option) Get() (Recipe, bool) {
	return o.recipe, o.present
}

// Present reports whether a recipe is held.
func (o Option) Present() bool {
	return o.present
}

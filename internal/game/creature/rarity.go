package creature

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rarity is an ordered rarity tier. The zero value is Common.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	Mythical
)

// rarityNames is the immutable tier progression, lowest first.
var rarityNames = [...]string{"common", "uncommon", "rare", "epic", "legendary", "mythical"}

// Rarities returns every tier in ascending order.
func Rarities() []Rarity {
	return []Rarity{Common, Uncommon, Rare, Epic, Legendary, Mythical}
}

// Valid reports whether r is one of the six defined tiers.
func (r Rarity) Valid() bool {
	return r >= Common && r <= Mythical
}

// Index returns the 0-based ordinal of r in the progression.
func (r Rarity) Index() int {
	return int(r)
}

// Multiplier returns the cost multiplier for r: 2^Index().
//
// Precondition: r.Valid().
// Postcondition: Common → 1, Uncommon → 2, ... Mythical → 32.
func (r Rarity) Multiplier() float64 {
	return float64(int(1) << r.Index())
}

// Next returns the tier directly above r.
//
// Postcondition: ok is false and r is returned unchanged when r is Mythical.
func (r Rarity) Next() (Rarity, bool) {
	if r >= Mythical {
		return r, false
	}
	return r + 1, true
}

// String returns the lower-case tier name.
func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity converts a tier name into a Rarity. Matching is case-insensitive.
//
// Postcondition: Returns a valid Rarity or a non-nil error.
func ParseRarity(s string) (Rarity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("creature: unknown rarity %q", s)
}

// MaxRarity returns the higher of a and b.
func MaxRarity(a, b Rarity) Rarity {
	if a > b {
		return a
	}
	return b
}

// MarshalYAML encodes r by name.
func (r Rarity) MarshalYAML() (interface{}, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("creature: cannot marshal invalid rarity %d", int(r))
	}
	return r.String(), nil
}

// UnmarshalYAML decodes a tier name.
func (r *Rarity) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRarity(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Package creature defines the creature domain model shared by the breeding
// engine and its host application.
package creature

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxGeneration is the highest generation a creature can reach.
const MaxGeneration = 5

// ErrNotFound is returned by creature stores when no record matches an ID.
var ErrNotFound = errors.New("creature not found")

// Creature is a fully identified creature record owned by the host application.
//
// The engine only reads Creature values; it returns new values rather than
// mutating them.
type Creature struct {
	ID      string
	Species string
	Name    string

	Level           int
	Rarity          Rarity
	Generation      int
	BreedingCount   int
	ExhaustionLevel int

	Stats         Stats
	Abilities     []string
	PassiveTraits []string
	ParentIDs     []string
	// StatCaps is derived from Generation and is recomputed, never authoritative.
	StatCaps Stats

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of c so callers can derive new values without
// sharing slices with the original.
func (c Creature) Clone() Creature {
	out := c
	out.Abilities = cloneStrings(c.Abilities)
	out.PassiveTraits = cloneStrings(c.PassiveTraits)
	out.ParentIDs = cloneStrings(c.ParentIDs)
	return out
}

// Validate checks the record invariants.
//
// Postcondition: Returns nil iff every invariant holds, or an error naming all violations.
func (c Creature) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.Species == "" {
		errs = append(errs, errors.New("species must not be empty"))
	}
	if c.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1, got %d", c.Level))
	}
	if !c.Rarity.Valid() {
		errs = append(errs, fmt.Errorf("rarity %d is not a valid tier", int(c.Rarity)))
	}
	if c.Generation < 0 || c.Generation > MaxGeneration {
		errs = append(errs, fmt.Errorf("generation must be 0-%d, got %d", MaxGeneration, c.Generation))
	}
	if c.BreedingCount < 0 {
		errs = append(errs, fmt.Errorf("breeding count must be >= 0, got %d", c.BreedingCount))
	}
	if c.ExhaustionLevel < 0 {
		errs = append(errs, fmt.Errorf("exhaustion level must be >= 0, got %d", c.ExhaustionLevel))
	}
	if len(c.ParentIDs) > 2 {
		errs = append(errs, fmt.Errorf("at most two parent ids allowed, got %d", len(c.ParentIDs)))
	}
	for i, v := range c.Stats.Values() {
		if v < 0 {
			errs = append(errs, fmt.Errorf("stat %s must be >= 0, got %v", StatNames[i], v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("creature %q: %w", c.ID, errors.Join(errs...))
	}
	return nil
}

// OffspringDraft is the identity-less offspring payload produced by breeding.
// The host turns it into a Creature with Finalize.
type OffspringDraft struct {
	Species         string
	Level           int
	Rarity          Rarity
	Generation      int
	BreedingCount   int
	ExhaustionLevel int
	Stats           Stats
	Abilities       []string
	PassiveTraits   []string
	ParentIDs       []string
	StatCaps        Stats
}

// Identity is the runtime metadata a host attaches to a draft.
type Identity struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewIdentity returns an Identity with a fresh random UUID.
//
// Postcondition: ID is a non-empty UUID string; an empty name is kept empty so
// Finalize can fall back to the species.
func NewIdentity(name string, now time.Time) Identity {
	return Identity{ID: uuid.NewString(), Name: name, CreatedAt: now}
}

// Finalize assembles a Creature from a draft and host identity.
//
// Precondition: id.ID must be non-empty.
// Postcondition: Returns a Creature carrying every draft field; Name defaults
// to the draft species when id.Name is empty.
func Finalize(d OffspringDraft, id Identity) (Creature, error) {
	if id.ID == "" {
		return Creature{}, errors.New("creature: finalize requires a non-empty id")
	}
	name := id.Name
	if name == "" {
		name = d.Species
	}
	c := Creature{
		ID:              id.ID,
		Species:         d.Species,
		Name:            name,
		Level:           d.Level,
		Rarity:          d.Rarity,
		Generation:      d.Generation,
		BreedingCount:   d.BreedingCount,
		ExhaustionLevel: d.ExhaustionLevel,
		Stats:           d.Stats,
		Abilities:       cloneStrings(d.Abilities),
		PassiveTraits:   cloneStrings(d.PassiveTraits),
		ParentIDs:       cloneStrings(d.ParentIDs),
		StatCaps:        d.StatCaps,
		CreatedAt:       id.CreatedAt,
		UpdatedAt:       id.CreatedAt,
	}
	return c, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cplax14/sawyers-rpg-game-sub003/internal/game/creature"
)

// ErrCreatureExists is returned when inserting a creature whose ID is already stored.
var ErrCreatureExists = errors.New("creature already exists")

const creatureColumns = `
	id, species, name, level, rarity, generation, breeding_count, exhaustion_level,
	attack, defense, magic_attack, magic_defense, speed, accuracy,
	abilities, passive_traits, parent_ids,
	cap_attack, cap_defense, cap_magic_attack, cap_magic_defense, cap_speed, cap_accuracy,
	created_at, updated_at`

const insertCreatureSQL = `
	INSERT INTO creatures (
		id, species, name, level, rarity, generation, breeding_count, exhaustion_level,
		attack, defense, magic_attack, magic_defense, speed, accuracy,
		abilities, passive_traits, parent_ids,
		cap_attack, cap_defense, cap_magic_attack, cap_magic_defense, cap_speed, cap_accuracy,
		created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$24)
	RETURNING ` + creatureColumns

// updateCreatureSQL rewrites the mutable breeding state of a creature.
const updateCreatureSQL = `
	UPDATE creatures SET
		name = $2, level = $3, rarity = $4, breeding_count = $5, exhaustion_level = $6,
		attack = $7, defense = $8, magic_attack = $9, magic_defense = $10, speed = $11, accuracy = $12,
		abilities = $13, passive_traits = $14,
		updated_at = NOW()
	WHERE id = $1`

// CreatureRepository persists creatures and breeding outcomes.
type CreatureRepository struct {
	db *pgxpool.Pool
}

// NewCreatureRepository creates a CreatureRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCreatureRepository(db *pgxpool.Pool) *CreatureRepository {
	return &CreatureRepository{db: db}
}

// Create inserts c and returns the stored record with timestamps set.
//
// Precondition: c must pass creature.Validate.
// Postcondition: Returns the stored creature, or ErrCreatureExists on a duplicate ID.
func (r *CreatureRepository) Create(ctx context.Context, c creature.Creature) (creature.Creature, error) {
	if err := c.Validate(); err != nil {
		return creature.Creature{}, err
	}
	out, err := insertCreature(ctx, r.db, c)
	if err != nil {
		return creature.Creature{}, err
	}
	return out, nil
}

// GetCreature retrieves a creature by ID.
//
// Postcondition: Returns the creature, or an error wrapping creature.ErrNotFound.
func (r *CreatureRepository) GetCreature(ctx context.Context, id string) (creature.Creature, error) {
	c, err := scanCreature(r.db.QueryRow(ctx, `SELECT `+creatureColumns+` FROM creatures WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return creature.Creature{}, fmt.Errorf("creature %q: %w", id, creature.ErrNotFound)
		}
		return creature.Creature{}, fmt.Errorf("querying creature: %w", err)
	}
	return c, nil
}

// ListBySpecies returns every stored creature of the given species ordered by creation time.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CreatureRepository) ListBySpecies(ctx context.Context, species string) ([]creature.Creature, error) {
	rows, err := r.db.Query(ctx, `SELECT `+creatureColumns+` FROM creatures WHERE species = $1 ORDER BY created_at ASC, id ASC`, species)
	if err != nil {
		return nil, fmt.Errorf("listing creatures: %w", err)
	}
	defer rows.Close()

	out := make([]creature.Creature, 0)
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning creature row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCreature stores the mutable breeding state of c.
//
// Postcondition: Returns nil on success, or an error wrapping creature.ErrNotFound
// if no row matched.
func (r *CreatureRepository) UpdateCreature(ctx context.Context, c creature.Creature) error {
	return updateCreature(ctx, r.db, c)
}

// SaveBreeding stores a breeding outcome in one transaction: the offspring is
// inserted, both parents are updated and the event is appended to breeding_log.
//
// Precondition: offspring must pass creature.Validate; both parents must exist.
// Postcondition: Either every write is committed or none is.
func (r *CreatureRepository) SaveBreeding(ctx context.Context, offspring, parent1, parent2 creature.Creature, recipeID string, goldSpent int) error {
	if err := offspring.Validate(); err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := insertCreature(ctx, tx, offspring); err != nil {
			return err
		}
		for _, p := range []creature.Creature{parent1, parent2} {
			if err := updateCreature(ctx, tx, p); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO breeding_log (offspring_id, parent1_id, parent2_id, recipe_id, gold_spent)
			VALUES ($1, $2, $3, $4, $5)`,
			offspring.ID, parent1.ID, parent2.ID, recipeID, goldSpent,
		); err != nil {
			return fmt.Errorf("recording breeding: %w", err)
		}
		return nil
	})
}

// BreedingCount returns how many logged breedings produced offspring from the given parent.
func (r *CreatureRepository) BreedingCount(ctx context.Context, parentID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM breeding_log WHERE parent1_id = $1 OR parent2_id = $1`,
		parentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting breedings: %w", err)
	}
	return n, nil
}

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type execer interface {
	dbtx
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertCreature(ctx context.Context, db dbtx, c creature.Creature) (creature.Creature, error) {
	s, caps := c.Stats, c.StatCaps
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	out, err := scanCreature(db.QueryRow(ctx, insertCreatureSQL,
		c.ID, c.Species, c.Name, c.Level, c.Rarity.String(), c.Generation, c.BreedingCount, c.ExhaustionLevel,
		s.Attack, s.Defense, s.MagicAttack, s.MagicDefense, s.Speed, s.Accuracy,
		nonNil(c.Abilities), nonNil(c.PassiveTraits), nonNil(c.ParentIDs),
		caps.Attack, caps.Defense, caps.MagicAttack, caps.MagicDefense, caps.Speed, caps.Accuracy,
		created,
	))
	if err != nil {
		if isDuplicateKeyError(err) {
			return creature.Creature{}, ErrCreatureExists
		}
		return creature.Creature{}, fmt.Errorf("inserting creature: %w", err)
	}
	return out, nil
}

func updateCreature(ctx context.Context, db execer, c creature.Creature) error {
	s := c.Stats
	tag, err := db.Exec(ctx, updateCreatureSQL,
		c.ID, c.Name, c.Level, c.Rarity.String(), c.BreedingCount, c.ExhaustionLevel,
		s.Attack, s.Defense, s.MagicAttack, s.MagicDefense, s.Speed, s.Accuracy,
		nonNil(c.Abilities), nonNil(c.PassiveTraits),
	)
	if err != nil {
		return fmt.Errorf("updating creature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("creature %q: %w", c.ID, creature.ErrNotFound)
	}
	return nil
}

func scanCreature(row pgx.Row) (creature.Creature, error) {
	var (
		c      creature.Creature
		rarity string
	)
	s, caps := &c.Stats, &c.StatCaps
	err := row.Scan(
		&c.ID, &c.Species, &c.Name, &c.Level, &rarity, &c.Generation, &c.BreedingCount, &c.ExhaustionLevel,
		&s.Attack, &s.Defense, &s.MagicAttack, &s.MagicDefense, &s.Speed, &s.Accuracy,
		&c.Abilities, &c.PassiveTraits, &c.ParentIDs,
		&caps.Attack, &caps.Defense, &caps.MagicAttack, &caps.MagicDefense, &caps.Speed, &caps.Accuracy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return creature.Creature{}, err
	}
	if c.Rarity, err = creature.ParseRarity(rarity); err != nil {
		return creature.Creature{}, fmt.Errorf("creature %q: %w", c.ID, err)
	}
	return c, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// SQLSTATE 23505 is unique_violation.
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

// Package store persists creature records in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-pet/internal/pet"
)

// ErrNotFound is returned when a pet id has no stored record.
var ErrNotFound = errors.New("pet not found")

// DB wraps a SQLite connection for pet state storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		hunger INTEGER NOT NULL,
		happiness INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		cleanliness INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		age_days INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pets_alive ON pets(alive);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// petRow is the flat keyed record a State round-trips through.
type petRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
	Hunger      int    `db:"hunger"`
	Happiness   int    `db:"happiness"`
	Energy      int    `db:"energy"`
	Cleanliness int    `db:"cleanliness"`
	Alive       bool   `db:"alive"`
	AgeDays     int    `db:"age_days"`
}

func toRow(st pet.State) petRow {
	return petRow{
		ID:          st.ID.String(),
		Name:        st.Name,
		CreatedAt:   st.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   st.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Hunger:      st.Needs.Hunger,
		Happiness:   st.Needs.Happiness,
		Energy:      st.Needs.Energy,
		Cleanliness: st.Needs.Cleanliness,
		Alive:       st.Alive,
		AgeDays:     st.AgeDays,
	}
}

func (r petRow) toState() (pet.State, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return pet.State{}, fmt.Errorf("pet id %q: %w", r.ID, err)
	}
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return pet.State{}, fmt.Errorf("pet %s created_at: %w", r.ID, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		return pet.State{}, fmt.Errorf("pet %s updated_at: %w", r.ID, err)
	}

	return pet.State{
		ID:        id,
		Name:      r.Name,
		CreatedAt: created,
		UpdatedAt: updated,
		Needs: pet.Needs{
			Hunger:      r.Hunger,
			Happiness:   r.Happiness,
			Energy:      r.Energy,
			Cleanliness: r.Cleanliness,
		},
		Alive:   r.Alive,
		AgeDays: r.AgeDays,
	}, nil
}

// SavePet upserts a creature state.
func (db *DB) SavePet(st pet.State) error {
	row := toRow(st)
	_, err := db.conn.NamedExec(`
		INSERT INTO pets (id, name, created_at, updated_at,
			hunger, happiness, energy, cleanliness, alive, age_days)
		VALUES (:id, :name, :created_at, :updated_at,
			:hunger, :happiness, :energy, :cleanliness, :alive, :age_days)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at,
			hunger = excluded.hunger,
			happiness = excluded.happiness,
			energy = excluded.energy,
			cleanliness = excluded.cleanliness,
			alive = excluded.alive,
			age_days = excluded.age_days`,
		row)
	if err != nil {
		return fmt.Errorf("save pet %s: %w", st.ID, err)
	}
	return nil
}

// LoadPet fetches one creature state by id.
func (db *DB) LoadPet(id uuid.UUID) (pet.State, error) {
	var row petRow
	err := db.conn.Get(&row, `SELECT * FROM pets WHERE id = ?`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return pet.State{}, ErrNotFound
	}
	if err != nil {
		return pet.State{}, fmt.Errorf("load pet %s: %w", id, err)
	}
	return row.toState()
}

// ListPets returns all stored creature states.
func (db *DB) ListPets() ([]pet.State, error) {
	var rows []petRow
	if err := db.conn.Select(&rows, `SELECT * FROM pets ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	states := make([]pet.State, 0, len(rows))
	for _, r := range rows {
		st, err := r.toState()
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

// DeletePet removes one creature record.
func (db *DB) DeletePet(id uuid.UUID) error {
	res, err := db.conn.Exec(`DELETE FROM pets WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete pet %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMeta stores a key/value pair in the meta table.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// GetMeta reads a value from the meta table.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, `SELECT value FROM meta WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

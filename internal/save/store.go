// Package save persists game state as versioned JSON blobs behind a
// SQLite or PostgreSQL store.
package save

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/towerclimb/internal/engine"
)

// DefaultSlot is the save slot used by the single-player binary.
const DefaultSlot = "default"

// Store reads and writes save slots.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the configured backend and creates the schema.
func Open(cfg Config) (*Store, error) {
	d := dialectFor(cfg.Driver)

	if d.DriverName() == "sqlite" {
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create save directory: %w", err)
		}
	}

	db, err := sql.Open(d.DriverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open save store: %w", err)
	}

	for _, stmt := range d.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize save store: %w", err)
		}
	}

	s := &Store{db: db, dialect: d}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run save migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// Save serializes the state into a slot, replacing any previous blob.
func (s *Store) Save(slot string, state *engine.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize save: %w", err)
	}

	query := s.dialect.Rewrite(`INSERT INTO saves (slot, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`)
	if _, err := s.db.Exec(query, slot, string(data)); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Load reads a slot and returns a normalized state. A missing slot or an
// unreadable blob yields a fresh initial state, never an error state: a
// broken save must not block the game from starting.
func (s *Store) Load(slot string) (*engine.GameState, error) {
	var data string
	query := s.dialect.Rewrite(`SELECT data FROM saves WHERE slot = ?`)
	err := s.db.QueryRow(query, slot).Scan(&data)
	if err == sql.ErrNoRows {
		return engine.NewGameState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	return Decode([]byte(data)), nil
}

// Decode parses a save blob. Unparseable data falls back to a fresh state;
// parseable data is normalized so missing fields get defaults.
func Decode(data []byte) *engine.GameState {
	var state engine.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return engine.NewGameState()
	}
	Normalize(&state)
	return &state
}

// Package storage provides SQLite-based persistence for replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only inputs are stored. Results are recomputed by re-running a replay
// through the engine, so a stored run can never disagree with the rules.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Input is one recorded lane input.
type Input struct {
	Frame   int  `json:"f"` // Step index since the session started
	Lane    int  `json:"l"`
	Release bool `json:"r,omitempty"`
}

// Replay is everything needed to re-simulate a run deterministically.
type Replay struct {
	ID        int64
	ChartID   string
	ChartHash string
	Seed      uint64
	Preset    string
	Frames    int // Number of steps the run lasted
	Inputs    []Input
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chart_id TEXT NOT NULL,
			chart_hash TEXT NOT NULL,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			frames INTEGER NOT NULL DEFAULT 0,
			inputs TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_chart_hash ON replays(chart_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay records a run. Returns the ID of the inserted record.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	if r.ChartHash == "" {
		return 0, errors.New("storage: replay has no chart hash")
	}
	inputs, err := json.Marshal(r.Inputs)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inputs: %w", err)
	}
	preset := r.Preset
	if preset == "" {
		preset = "normal"
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (chart_id, chart_hash, seed, preset, frames, inputs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ChartID, r.ChartHash, int64(r.Seed), preset, r.Frames, string(inputs),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Replays retrieves the most recent replays of a chart, newest first.
func (s *Store) Replays(chartHash string, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, chart_id, chart_hash, seed, preset, frames, inputs, created_at
		 FROM replays
		 WHERE chart_hash = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		chartHash, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, err
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// ReplayByID retrieves a single replay. Returns nil if it does not exist.
func (s *Store) ReplayByID(id int64) (*Replay, error) {
	row := s.db.QueryRow(
		`SELECT id, chart_id, chart_hash, seed, preset, frames, inputs, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	)
	r, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReplays deletes all replays of a chart and reports how many were removed.
func (s *Store) DeleteReplays(chartHash string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM replays WHERE chart_hash = ?", chartHash)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete replays: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted replays: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var r Replay
	var seed int64
	var inputs string
	var createdAt any

	err := row.Scan(&r.ID, &r.ChartID, &r.ChartHash, &seed, &r.Preset, &r.Frames, &inputs, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, err
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.Seed = uint64(seed)

	if err := json.Unmarshal([]byte(inputs), &r.Inputs); err != nil {
		return Replay{}, fmt.Errorf("storage: corrupt inputs for replay %d: %w", r.ID, err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}

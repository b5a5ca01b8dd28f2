// Package storage provides SQLite-based persistence for game recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/replay"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// ReplaySummary describes a stored recording without its inputs.
type ReplaySummary struct {
	ID        int64
	Player    string
	Seed      int64
	Frames    uint64
	Inputs    int
	CreatedAt time.Time
}

// Duration returns how long the recorded session ran at its tick interval.
func (r ReplaySummary) Duration(tick time.Duration) time.Duration {
	return time.Duration(r.Frames) * tick
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
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			inputs_yaml TEXT NOT NULL,
			input_count INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL,
			digest TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_replays_player ON replays(player);
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

// SaveReplay stores a recording and returns its ID.
func (s *Store) SaveReplay(rec replay.Recording) (int64, error) {
	cfgYAML, err := config.Marshal(rec.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}
	inputs, err := yaml.Marshal(rec.Events)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inputs: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (player, seed, config_yaml, inputs_yaml, input_count, frames, digest, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Player, rec.Seed, string(cfgYAML), string(inputs), len(rec.Events),
		int64(rec.Frames), rec.Digest, createdAt.UTC().Format(timeLayout),
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

// Replay loads a full recording by ID.
func (s *Store) Replay(id int64) (replay.Recording, error) {
	var (
		rec       replay.Recording
		cfgYAML   string
		inputs    string
		frames    int64
		createdAt any
	)

	err := s.db.QueryRow(
		`SELECT id, player, seed, config_yaml, inputs_yaml, frames, digest, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Player, &rec.Seed, &cfgYAML, &inputs, &frames, &rec.Digest, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rec.Config, err = config.Parse([]byte(cfgYAML))
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: replay %d: %w", id, err)
	}
	if err := yaml.Unmarshal([]byte(inputs), &rec.Events); err != nil {
		return replay.Recording{}, fmt.Errorf("storage: replay %d: cannot decode inputs: %w", id, err)
	}
	rec.Frames = uint64(frames)
	rec.CreatedAt = parseTime(createdAt)

	return rec, nil
}

// ListReplays returns the most recent recordings first. A limit of zero or
// less returns all of them.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT id, player, seed, frames, input_count, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var summaries []ReplaySummary
	for rows.Next() {
		var (
			r         ReplaySummary
			frames    int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Player, &r.Seed, &frames, &r.Inputs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Frames = uint64(frames)
		r.CreatedAt = parseTime(createdAt)
		summaries = append(summaries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// DeleteReplay removes a recording.
func (s *Store) DeleteReplay(id int64) error {
	result, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string values, depending on how the
// driver hands back DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

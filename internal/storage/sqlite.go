// Package storage persists traversal checkpoints and per-page outcomes in
// SQLite, so an interrupted run can resume from its last fetch resolution.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/linkscope/linkscope/internal/frontier"
	"github.com/linkscope/linkscope/internal/traversal"

	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

const stateKey = "traversal_state"

// SQLiteStore holds checkpoints and results. SaveState satisfies the
// engine's OnStateChange callback signature and is safe to hand to it
// directly.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and prepares the
// schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection prevents lock conflicts under WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveState replaces the stored checkpoint with the given snapshot.
func (s *SQLiteStore) SaveState(state *frontier.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO traversal_meta (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, stateKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// LoadState returns the stored checkpoint, or (nil, nil) when none exists.
func (s *SQLiteStore) LoadState() (*frontier.State, error) {
	var payload string
	err := s.db.QueryRow(`SELECT value FROM traversal_meta WHERE key = ?`, stateKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	var state frontier.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return &state, nil
}

// RecordOutcome writes one resolved page. Re-recording a URL overwrites the
// earlier row, so replayed resolutions after a resume stay idempotent.
func (s *SQLiteStore) RecordOutcome(o traversal.PageOutcome) error {
	var title, metaDesc, contentType string
	if o.Head != nil {
		title = o.Head.Title
		metaDesc = o.Head.MetaDescription
		contentType = o.Head.ContentType
	}

	_, err := s.db.Exec(`
		INSERT INTO page_outcomes
			(url, parent_url, depth, score, scored, success, error, title, meta_description, content_type, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(url) DO UPDATE SET
			parent_url = excluded.parent_url,
			depth = excluded.depth,
			score = excluded.score,
			scored = excluded.scored,
			success = excluded.success,
			error = excluded.error,
			title = excluded.title,
			meta_description = excluded.meta_description,
			content_type = excluded.content_type,
			visited_at = excluded.visited_at
	`, o.URL, o.ParentURL, o.Depth, o.Score, o.Scored, o.Success, o.Error, title, metaDesc, contentType)
	if err != nil {
		return fmt.Errorf("failed to record outcome for %s: %w", o.URL, err)
	}
	return nil
}

// OutcomeCount returns the number of recorded pages.
func (s *SQLiteStore) OutcomeCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM page_outcomes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count outcomes: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package store persists finalized input profiles for the history
// command. It is a host collaborator: the analysis core never touches
// it.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"inputlens/internal/profile"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id               TEXT PRIMARY KEY,
    analyzed_at_ms   INTEGER NOT NULL,
    mode             TEXT NOT NULL,
    paste_likelihood REAL NOT NULL,
    length_class     TEXT NOT NULL,
    tags             TEXT NOT NULL,
    profile_json     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_profiles_analyzed_at ON profiles(analyzed_at_ms);
`

// Store is a SQLite-backed profile history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a finalized profile.
func (s *Store) Save(p *profile.InputProfile) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("store: marshal tags: %w", err)
	}
	full, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: marshal profile: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO profiles (id, analyzed_at_ms, mode, paste_likelihood, length_class, tags, profile_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.AnalyzedAt.UnixMilli(),
		string(p.Behavior.Mode),
		p.Behavior.PasteLikelihood,
		string(p.Structure.LengthClass),
		string(tags),
		string(full),
	)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", p.ID, err)
	}
	return nil
}

// Recent returns up to n profiles, newest first.
func (s *Store) Recent(n int) ([]*profile.InputProfile, error) {
	rows, err := s.db.Query(`
		SELECT profile_json FROM profiles
		ORDER BY analyzed_at_ms DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("store: query recent: %w", err)
	}
	defer rows.Close()

	var out []*profile.InputProfile
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		var p profile.InputProfile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("store: decode profile: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Count returns the number of stored profiles.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Prune removes profiles older than the cutoff, returning the number
// deleted.
func (s *Store) Prune(olderThan time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM profiles WHERE analyzed_at_ms < ?`, olderThan.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("store: prune: %w", err)
	}
	return res.RowsAffected()
}

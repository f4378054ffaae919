// Package cache is the on-disk response cache: decoded API responses keyed
// by (data_type, cache_key), where the key is usually a date. Data for the
// current day is still changing on the vendor side, so callers never cache
// "today".
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed response cache.
type Store struct {
	db *sql.DB
}

// Open opens the cache database at the given path, creating parent
// directories and the schema as needed. ":memory:" opens an in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS cached_responses (
		data_type  TEXT NOT NULL,
		cache_key  TEXT NOT NULL,
		payload    TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (data_type, cache_key)
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating cached_responses: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached payload for (dataType, key). The second return is
// false on a miss.
func (s *Store) Get(ctx context.Context, dataType, key string) ([]byte, bool, error) {
	query := `SELECT payload FROM cached_responses WHERE data_type = ? AND cache_key = ?`
	var payload []byte
	err := s.db.QueryRowContext(ctx, query, dataType, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s/%s: %w", dataType, key, err)
	}
	return payload, true, nil
}

// Put stores a payload for (dataType, key), replacing any previous entry.
func (s *Store) Put(ctx context.Context, dataType, key string, payload []byte) error {
	query := `INSERT INTO cached_responses (data_type, cache_key, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (data_type, cache_key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`
	_, err := s.db.ExecContext(ctx, query, dataType, key, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache entry %s/%s: %w", dataType, key, err)
	}
	return nil
}

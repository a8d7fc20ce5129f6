// Package sqlite keeps the account snapshot in a single-row SQLite
// table, so the service state can live in a db file alongside other
// tooling.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"moneypots/internal/pots"
)

// Store is a SQLite-backed implementation of the persistence gateway.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the database and ensures the snapshot table
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers (e.g. ad-hoc queries) don't block saves.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS account_snapshot (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ready pings the database to verify it is usable.
func (s *Store) Ready(ctx context.Context) error { return s.db.PingContext(ctx) }

// LoadSnapshot reads the snapshot row. No row yet means the default
// state; an unreadable payload decodes to the default state as well.
func (s *Store) LoadSnapshot(ctx context.Context) (pots.AccountState, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM account_snapshot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return pots.DefaultState(), nil
	}
	if err != nil {
		return pots.DefaultState(), fmt.Errorf("load snapshot: %w", err)
	}
	return pots.DecodeSnapshot(payload), nil
}

// SaveSnapshot upserts the single snapshot row.
func (s *Store) SaveSnapshot(ctx context.Context, st pots.AccountState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO account_snapshot (id, payload, updated_at)
		VALUES (1, ?, strftime('%s','now'))
		ON CONFLICT(id) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		string(pots.EncodeSnapshot(st)))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

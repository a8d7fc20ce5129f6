// Package postgres provides a pgx-backed persistence gateway. The
// snapshot is a single keyed row; the table is created on open so the
// service stays self-contained.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneypots/internal/pots"
)

// Store holds a pgx connection pool. All methods are safe for concurrent
// use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string and
// ensures the snapshot table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, `create table if not exists account_snapshot (
		id         int primary key check (id = 1),
		payload    jsonb not null,
		updated_at timestamptz not null default now()
	)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// LoadSnapshot reads the snapshot row. No row means the default state;
// an unreadable payload decodes to the default state as well.
func (s *Store) LoadSnapshot(ctx context.Context) (pots.AccountState, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `select payload from account_snapshot where id = 1`).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return pots.DefaultState(), nil
	}
	if err != nil {
		return pots.DefaultState(), fmt.Errorf("load snapshot: %w", err)
	}
	return pots.DecodeSnapshot(payload), nil
}

// SaveSnapshot upserts the single snapshot row.
func (s *Store) SaveSnapshot(ctx context.Context, st pots.AccountState) error {
	_, err := s.pool.Exec(ctx, `
		insert into account_snapshot (id, payload, updated_at)
		values (1, $1, now())
		on conflict (id) do update set payload = excluded.payload, updated_at = excluded.updated_at
	`, pots.EncodeSnapshot(st))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

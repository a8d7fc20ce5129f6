// Package memory provides an in-memory snapshot gateway used for
// development and tests. It round-trips through the snapshot codec so it
// exercises the same encode/decode path as the durable backends.
package memory

import (
	"context"
	"sync"

	"moneypots/internal/pots"
)

// Store is an in-memory implementation of the persistence gateway.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

// New constructs an empty in-memory gateway.
func New() *Store { return &Store{} }

// Seed stores a raw payload as if it had been persisted earlier.
func (s *Store) Seed(data []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.mu.Unlock()
}

// Reset drops any stored snapshot.
func (s *Store) Reset() {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
}

// LoadSnapshot returns the stored snapshot, or the default state when
// nothing has been saved yet.
func (s *Store) LoadSnapshot(_ context.Context) (pots.AccountState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return pots.DefaultState(), nil
	}
	return pots.DecodeSnapshot(s.data), nil
}

// SaveSnapshot stores the encoded snapshot.
func (s *Store) SaveSnapshot(_ context.Context, st pots.AccountState) error {
	data := pots.EncodeSnapshot(st)
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

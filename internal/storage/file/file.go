// Package file persists the account snapshot as an indented JSON file,
// the moral successor of the original browser-storage record.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"moneypots/internal/pots"
)

// Store reads and writes the snapshot file. Writes are serialized; the
// file is replaced whole on every save.
type Store struct {
	mu   sync.Mutex
	path string
}

// New constructs a file gateway for the given path. The file does not
// need to exist yet.
func New(path string) *Store { return &Store{path: path} }

// LoadSnapshot reads the snapshot file. A missing file or an unreadable
// payload yields the default state; only I/O failures on an existing
// file are reported.
func (s *Store) LoadSnapshot(_ context.Context) (pots.AccountState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return pots.DefaultState(), nil
		}
		return pots.DefaultState(), fmt.Errorf("read snapshot: %w", err)
	}
	return pots.DecodeSnapshot(data), nil
}

// SaveSnapshot writes the snapshot, creating parent directories as
// needed.
func (s *Store) SaveSnapshot(_ context.Context, st pots.AccountState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, pots.EncodeSnapshot(st), 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"moneypots/internal/pots"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pots.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadEmptyReturnsDefault(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SetupComplete || len(got.Pots) != 0 {
		t.Fatalf("expected default state, got %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := pots.DefaultState()
	want.TotalBalance = 900
	want.InterestRate = 3.5
	want.SetupComplete = true

	if err := s.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalBalance != 900 || got.InterestRate != 3.5 || !got.SetupComplete {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSaveOverwritesSingleRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := pots.DefaultState()
	first.TotalBalance = 100
	second := pots.DefaultState()
	second.TotalBalance = 200

	if err := s.SaveSnapshot(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}
	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalBalance != 200 {
		t.Fatalf("latest save should win, got %v", got.TotalBalance)
	}
}

func TestReady(t *testing.T) {
	s := openTestStore(t)
	if err := s.Ready(context.Background()); err != nil {
		t.Fatalf("ready: %v", err)
	}
}

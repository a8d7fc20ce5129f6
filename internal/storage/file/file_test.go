package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"moneypots/internal/pots"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))
	got, err := s.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SetupComplete || len(got.Pots) != 0 {
		t.Fatalf("expected default state, got %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pots.json")
	s := New(path)
	ctx := context.Background()

	want := pots.DefaultState()
	want.TotalBalance = 1234.5
	want.SetupComplete = true
	want.Pots = []pots.Pot{{ID: "p1", Name: "Bills", Balance: 200, History: []pots.HistoryEntry{}}}

	if err := s.SaveSnapshot(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalBalance != want.TotalBalance || !got.SetupComplete || len(got.Pots) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadCorruptFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pots.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := New(path).LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SetupComplete || len(got.Pots) != 0 {
		t.Fatalf("corrupt payload should decode to default state, got %+v", got)
	}
}

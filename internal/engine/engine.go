// Package engine implements the pure state transitions of the pots
// ledger: setup, pot management, the monthly transfer with interest
// accrual, and scheduled withdrawals.
//
// Every function takes a snapshot value plus an explicit execution
// instant and returns the next snapshot. None of them can fail: unknown
// ids and dangling references degrade to a no-op, so callers never need
// an error path. The caller owns the clock; entries produced by one
// logical operation all carry the instant it was invoked with.
package engine

import (
	"time"

	"github.com/google/uuid"

	"moneypots/internal/pots"
)

func newEntry(now time.Time, kind pots.EntryKind, amount float64, description string) pots.HistoryEntry {
	return pots.HistoryEntry{
		ID:          uuid.NewString(),
		Date:        now,
		Kind:        kind,
		Amount:      amount,
		Description: description,
	}
}

func potIndex(list []pots.Pot, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

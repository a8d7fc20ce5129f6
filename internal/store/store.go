// Package store owns the single live account snapshot and serializes
// every intent against it. Each intent applies an engine transition to
// the current snapshot, swaps the result in whole, and then hands the
// new snapshot to the persistence gateway. Persistence is fire and
// forget: a failed save is logged and never surfaces to the caller.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"moneypots/internal/engine"
	"moneypots/internal/pots"
)

// Gateway is the persistence collaborator. LoadSnapshot returns the
// default state when nothing usable is stored; errors are reserved for
// infrastructure failures, which the store also degrades to defaults.
type Gateway interface {
	LoadSnapshot(ctx context.Context) (pots.AccountState, error)
	SaveSnapshot(ctx context.Context, s pots.AccountState) error
}

// Store is the orchestrator behind the HTTP and scheduler surfaces.
// The mutex is the Go rendition of the single-writer assumption: one
// intent at a time, each a whole-snapshot replacement.
type Store struct {
	mu    sync.Mutex
	state pots.AccountState
	gw    Gateway
	log   *slog.Logger
	now   func() time.Time
}

// New loads the last saved snapshot through the gateway, falling back to
// the default state when the gateway cannot deliver one.
func New(ctx context.Context, gw Gateway, logger *slog.Logger) *Store {
	st, err := gw.LoadSnapshot(ctx)
	if err != nil {
		logger.Warn("load snapshot failed, starting from defaults", "err", err)
		st = pots.DefaultState()
	}
	return &Store{state: st, gw: gw, log: logger, now: time.Now}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() pots.AccountState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Allocated returns the sum of pot balances.
func (s *Store) Allocated() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Allocated()
}

// Unallocated returns the total balance not assigned to any pot.
func (s *Store) Unallocated() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Unallocated()
}

// DueWithdrawals lists the withdrawals actionable at now.
func (s *Store) DueWithdrawals(now time.Time) []pots.ScheduledWithdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DueWithdrawals(now)
}

// apply runs one transition under the lock, replaces the snapshot and
// persists the result best-effort.
func (s *Store) apply(ctx context.Context, fn func(cur pots.AccountState, now time.Time) pots.AccountState) {
	s.mu.Lock()
	s.state = fn(s.state, s.now())
	snap := s.state.Clone()
	s.mu.Unlock()

	if err := s.gw.SaveSnapshot(ctx, snap); err != nil {
		s.log.Warn("save snapshot failed", "err", err)
	}
}

// CompleteSetup builds the initial snapshot from user-entered totals and
// pot seeds and marks setup as done.
func (s *Store) CompleteSetup(ctx context.Context, totalBalance, interestRate float64, seeds []engine.PotSeed, interestDate time.Time) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.CompleteSetup(totalBalance, interestRate, seeds, interestDate, now)
	})
}

// UpdateAccount replaces the total balance and interest rate.
func (s *Store) UpdateAccount(ctx context.Context, totalBalance, interestRate float64) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.UpdateAccount(cur, totalBalance, interestRate)
	})
}

// ResetAll discards the entire state, pots, history and schedules
// included, and persists the default state.
func (s *Store) ResetAll(ctx context.Context) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.ResetAll()
	})
}

// AddPot creates a new pot with a starting balance.
func (s *Store) AddPot(ctx context.Context, name string, balance float64) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.AddPot(cur, name, balance, now)
	})
}

// UpdatePot renames and/or resizes a pot.
func (s *Store) UpdatePot(ctx context.Context, potID, name string, balance float64) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.UpdatePot(cur, potID, name, balance, now)
	})
}

// DeletePot removes a pot and everything referencing it.
func (s *Store) DeletePot(ctx context.Context, potID string) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.DeletePot(cur, potID)
	})
}

// SetMonthlyTransfer replaces the monthly transfer configuration.
func (s *Store) SetMonthlyTransfer(ctx context.Context, totalAmount float64, splits []pots.SplitRule) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.SetMonthlyTransfer(cur, totalAmount, splits)
	})
}

// ProcessMonthlyTransfer executes the configured transfer and accrues
// interest.
func (s *Store) ProcessMonthlyTransfer(ctx context.Context) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.ProcessMonthlyTransfer(cur, now)
	})
}

// AddWithdrawal schedules a withdrawal with the given first due date.
func (s *Store) AddWithdrawal(ctx context.Context, potID string, amount float64, dayOfMonth int, description string, recurring bool, nextDate time.Time) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.AddWithdrawal(cur, potID, amount, dayOfMonth, description, recurring, nextDate)
	})
}

// DeleteWithdrawal removes a scheduled withdrawal.
func (s *Store) DeleteWithdrawal(ctx context.Context, id string) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.DeleteWithdrawal(cur, id)
	})
}

// ProcessWithdrawal executes one scheduled withdrawal by id.
func (s *Store) ProcessWithdrawal(ctx context.Context, id string) {
	s.apply(ctx, func(cur pots.AccountState, now time.Time) pots.AccountState {
		return engine.ProcessWithdrawal(cur, id, now)
	})
}

package engine

import (
	"time"

	"github.com/google/uuid"

	"moneypots/internal/pots"
)

// PotSeed is the name and starting balance a pot is created with during
// setup.
type PotSeed struct {
	Name    string
	Balance float64
}

// CompleteSetup builds the initial snapshot from user-entered totals.
// Each seed becomes a pot with a single manual entry for its starting
// balance. Seeds are taken as given; filtering blank names or negative
// balances is the caller's job, and unfiltered seeds still just become
// pots. A non-zero interestDate seeds the last accrual marker.
func CompleteSetup(totalBalance, interestRate float64, seeds []PotSeed, interestDate, now time.Time) pots.AccountState {
	next := pots.DefaultState()
	next.TotalBalance = totalBalance
	next.InterestRate = interestRate
	next.SetupComplete = true
	if !interestDate.IsZero() {
		d := interestDate
		next.LastInterestDate = &d
	}
	for _, seed := range seeds {
		next.Pots = append(next.Pots, pots.Pot{
			ID:      uuid.NewString(),
			Name:    seed.Name,
			Balance: seed.Balance,
			History: []pots.HistoryEntry{newEntry(now, pots.EntryManual, seed.Balance, "Initial balance")},
		})
	}
	return next
}

// UpdateAccount replaces the total balance and interest rate. Pots and
// their histories are untouched.
func UpdateAccount(s pots.AccountState, totalBalance, interestRate float64) pots.AccountState {
	next := s.Clone()
	next.TotalBalance = totalBalance
	next.InterestRate = interestRate
	return next
}

// ResetAll discards everything and returns the default pre-setup state.
func ResetAll() pots.AccountState {
	return pots.DefaultState()
}

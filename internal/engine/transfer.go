package engine

import (
	"fmt"
	"time"

	"moneypots/internal/pots"
)

// SetMonthlyTransfer replaces the transfer configuration outright.
// Rules are deduplicated by pot id, later rules overwriting earlier ones
// while the first occurrence keeps its position.
func SetMonthlyTransfer(s pots.AccountState, totalAmount float64, splits []pots.SplitRule) pots.AccountState {
	next := s.Clone()
	dedup := make([]pots.SplitRule, 0, len(splits))
	seen := make(map[string]int, len(splits))
	for _, r := range splits {
		if i, ok := seen[r.PotID]; ok {
			dedup[i] = r
			continue
		}
		seen[r.PotID] = len(dedup)
		dedup = append(dedup, r)
	}
	next.MonthlyTransfer = pots.TransferConfig{TotalAmount: totalAmount, Splits: dedup}
	return next
}

// ProcessMonthlyTransfer applies the configured splits in stored order
// and then accrues one month of interest on every pot. All entries
// produced by one call share the same timestamp so they read as a single
// batch. Splits are independent shares of the configured total: they are
// not sequential deductions and their sum is not validated against it.
// A non-positive configured total makes the whole call a no-op.
func ProcessMonthlyTransfer(s pots.AccountState, now time.Time) pots.AccountState {
	if s.MonthlyTransfer.TotalAmount <= 0 {
		return s
	}
	next := s.Clone()
	for _, split := range next.MonthlyTransfer.Splits {
		i := potIndex(next.Pots, split.PotID)
		if i < 0 {
			continue
		}
		amount := split.Value
		if split.Type == pots.SplitPercentage {
			amount = next.MonthlyTransfer.TotalAmount * (split.Value / 100)
		}
		next.Pots[i].Balance += amount
		next.Pots[i].History = append(next.Pots[i].History, newEntry(now, pots.EntryDeposit, amount, "Monthly transfer"))
	}

	interest := accrueInterest(&next, now)
	next.TotalBalance += next.MonthlyTransfer.TotalAmount + interest
	t := now
	next.LastInterestDate = &t
	return next
}

// accrueInterest credits one month of the annual rate to every pot,
// compounding on balances that already include this run's transfer
// splits. Zero or negative computed interest produces no entry. Returns
// the total interest credited.
func accrueInterest(s *pots.AccountState, now time.Time) float64 {
	monthlyRate := s.InterestRate / 100 / 12
	var total float64
	for i := range s.Pots {
		interest := s.Pots[i].Balance * monthlyRate
		if interest <= 0 {
			continue
		}
		s.Pots[i].Balance += interest
		s.Pots[i].History = append(s.Pots[i].History,
			newEntry(now, pots.EntryInterest, interest, fmt.Sprintf("Interest (%g%% p.a.)", s.InterestRate)))
		total += interest
	}
	return total
}

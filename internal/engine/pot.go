package engine

import (
	"time"

	"github.com/google/uuid"

	"moneypots/internal/pots"
)

// AddPot appends a new pot seeded with the given balance. The starting
// balance counts as newly allocated money, so the total balance grows by
// the same amount.
func AddPot(s pots.AccountState, name string, balance float64, now time.Time) pots.AccountState {
	next := s.Clone()
	next.TotalBalance += balance
	next.Pots = append(next.Pots, pots.Pot{
		ID:      uuid.NewString(),
		Name:    name,
		Balance: balance,
		History: []pots.HistoryEntry{newEntry(now, pots.EntryManual, balance, "Initial balance")},
	})
	return next
}

// UpdatePot renames and/or resizes a pot. A resize is recorded as a
// manual history entry holding the signed difference, and the total
// balance moves by the same delta. Unknown ids leave the snapshot
// untouched.
func UpdatePot(s pots.AccountState, potID, name string, balance float64, now time.Time) pots.AccountState {
	next := s.Clone()
	i := potIndex(next.Pots, potID)
	if i < 0 {
		return s
	}
	diff := balance - next.Pots[i].Balance
	next.Pots[i].Name = name
	next.Pots[i].Balance = balance
	if diff != 0 {
		next.Pots[i].History = append(next.Pots[i].History, newEntry(now, pots.EntryManual, diff, "Balance adjusted"))
	}
	next.TotalBalance += diff
	return next
}

// DeletePot removes a pot together with every split rule and scheduled
// withdrawal that references it. The total balance is deliberately left
// alone: the money stays in the account, just unallocated.
func DeletePot(s pots.AccountState, potID string) pots.AccountState {
	next := s.Clone()
	kept := next.Pots[:0]
	for _, p := range next.Pots {
		if p.ID != potID {
			kept = append(kept, p)
		}
	}
	next.Pots = kept

	splits := next.MonthlyTransfer.Splits[:0]
	for _, r := range next.MonthlyTransfer.Splits {
		if r.PotID != potID {
			splits = append(splits, r)
		}
	}
	next.MonthlyTransfer.Splits = splits

	withdrawals := next.ScheduledWithdrawals[:0]
	for _, w := range next.ScheduledWithdrawals {
		if w.PotID != potID {
			withdrawals = append(withdrawals, w)
		}
	}
	next.ScheduledWithdrawals = withdrawals
	return next
}

package engine

import (
	"time"

	"github.com/google/uuid"

	"moneypots/internal/pots"
)

// AddWithdrawal appends a scheduled withdrawal with a fresh id. The
// caller supplies the first due date, normally pots.NextOccurrence of
// the requested day of month.
func AddWithdrawal(s pots.AccountState, potID string, amount float64, dayOfMonth int, description string, recurring bool, nextDate time.Time) pots.AccountState {
	next := s.Clone()
	next.ScheduledWithdrawals = append(next.ScheduledWithdrawals, pots.ScheduledWithdrawal{
		ID:          uuid.NewString(),
		PotID:       potID,
		Amount:      amount,
		DayOfMonth:  dayOfMonth,
		Description: description,
		Recurring:   recurring,
		NextDate:    nextDate,
	})
	return next
}

// DeleteWithdrawal removes a scheduled withdrawal unconditionally.
// Unknown ids leave the snapshot untouched.
func DeleteWithdrawal(s pots.AccountState, id string) pots.AccountState {
	next := s.Clone()
	kept := next.ScheduledWithdrawals[:0]
	for _, w := range next.ScheduledWithdrawals {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(s.ScheduledWithdrawals) {
		return s
	}
	next.ScheduledWithdrawals = kept
	return next
}

// ProcessWithdrawal executes a scheduled withdrawal: the amount leaves
// both the referenced pot and the total balance, and a negative
// withdrawal entry lands in the pot's history. Recurring withdrawals
// advance to the next clamped occurrence; one-time withdrawals are
// marked completed and never run again. Unknown ids, and withdrawals
// whose pot no longer exists, leave the snapshot untouched.
func ProcessWithdrawal(s pots.AccountState, id string, now time.Time) pots.AccountState {
	next := s.Clone()
	for i := range next.ScheduledWithdrawals {
		w := &next.ScheduledWithdrawals[i]
		if w.ID != id {
			continue
		}
		j := potIndex(next.Pots, w.PotID)
		if j < 0 {
			return s
		}
		next.Pots[j].Balance -= w.Amount
		next.Pots[j].History = append(next.Pots[j].History, newEntry(now, pots.EntryWithdrawal, -w.Amount, w.Description))
		next.TotalBalance -= w.Amount
		if w.Recurring {
			w.NextDate = pots.NextRollover(now, w.DayOfMonth)
		} else {
			w.Completed = true
		}
		return next
	}
	return s
}

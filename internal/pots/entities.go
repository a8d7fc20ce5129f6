package pots

import (
	"sort"
	"time"
)

// EntryKind classifies a balance-affecting event in a pot's history.
type EntryKind string

const (
	// EntryDeposit records money flowing into a pot, e.g. a transfer split.
	EntryDeposit EntryKind = "deposit"
	// EntryWithdrawal records money leaving a pot; its amount is negative.
	EntryWithdrawal EntryKind = "withdrawal"
	// EntryInterest records a monthly interest credit.
	EntryInterest EntryKind = "interest"
	// EntryManual records a user-driven adjustment (initial balance, resize).
	EntryManual EntryKind = "manual"
)

// HistoryEntry is one immutable record in a pot's append-only log.
// Entries are never edited or removed; a correction shows up as a new
// entry carrying the signed delta.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Kind        EntryKind `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

// Pot is a named sub-balance of the account. History is kept in
// insertion order, which is also chronological order.
type Pot struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Balance float64        `json:"balance"`
	History []HistoryEntry `json:"history"`
}

// SplitType selects how a split rule's value is interpreted.
type SplitType string

const (
	// SplitFixed treats Value as a plain amount.
	SplitFixed SplitType = "fixed"
	// SplitPercentage treats Value as a 0-100 share of the transfer's
	// configured total amount, never of the account balance.
	SplitPercentage SplitType = "percentage"
)

// SplitRule assigns one pot its share of the monthly transfer.
// A transfer config holds at most one rule per pot.
type SplitRule struct {
	PotID string    `json:"potId"`
	Type  SplitType `json:"type"`
	Value float64   `json:"value"`
}

// TransferConfig describes the monthly transfer: a total amount
// distributed across pots by independent split rules.
type TransferConfig struct {
	TotalAmount float64     `json:"totalAmount"`
	Splits      []SplitRule `json:"splits"`
}

// ScheduledWithdrawal is a one-time or recurring withdrawal plan against
// a single pot. Completed is terminal and only ever set on non-recurring
// withdrawals after execution.
type ScheduledWithdrawal struct {
	ID          string    `json:"id"`
	PotID       string    `json:"potId"`
	Amount      float64   `json:"amount"`
	DayOfMonth  int       `json:"dayOfMonth"`
	Description string    `json:"description"`
	Recurring   bool      `json:"recurring"`
	NextDate    time.Time `json:"nextDate"`
	Completed   bool      `json:"completed"`
}

// Due reports whether the withdrawal is actionable at the given instant.
func (w ScheduledWithdrawal) Due(now time.Time) bool {
	return !w.Completed && !w.NextDate.After(now)
}

// AccountState is the full ledger snapshot. TotalBalance is the real,
// physical account balance; it is adjusted in lock-step with pot
// mutations rather than re-derived from them, so TotalBalance minus
// Allocated() is the money not yet assigned to any pot.
type AccountState struct {
	TotalBalance         float64               `json:"totalBalance"`
	InterestRate         float64               `json:"interestRate"`
	Pots                 []Pot                 `json:"pots"`
	MonthlyTransfer      TransferConfig        `json:"monthlyTransfer"`
	ScheduledWithdrawals []ScheduledWithdrawal `json:"scheduledWithdrawals"`
	SetupComplete        bool                  `json:"setupComplete"`
	LastInterestDate     *time.Time            `json:"lastInterestDate,omitempty"`
}

// DefaultState returns the empty pre-setup snapshot.
func DefaultState() AccountState {
	return AccountState{
		Pots:                 []Pot{},
		MonthlyTransfer:      TransferConfig{Splits: []SplitRule{}},
		ScheduledWithdrawals: []ScheduledWithdrawal{},
	}
}

// Clone returns a deep copy of the snapshot. Transitions operate on the
// copy so the previous snapshot is never observed half-mutated.
func (s AccountState) Clone() AccountState {
	out := s
	out.Pots = make([]Pot, len(s.Pots))
	for i, p := range s.Pots {
		cp := p
		cp.History = make([]HistoryEntry, len(p.History))
		copy(cp.History, p.History)
		out.Pots[i] = cp
	}
	out.MonthlyTransfer.Splits = make([]SplitRule, len(s.MonthlyTransfer.Splits))
	copy(out.MonthlyTransfer.Splits, s.MonthlyTransfer.Splits)
	out.ScheduledWithdrawals = make([]ScheduledWithdrawal, len(s.ScheduledWithdrawals))
	copy(out.ScheduledWithdrawals, s.ScheduledWithdrawals)
	if s.LastInterestDate != nil {
		t := *s.LastInterestDate
		out.LastInterestDate = &t
	}
	return out
}

// Allocated returns the sum of all pot balances.
func (s AccountState) Allocated() float64 {
	var sum float64
	for _, p := range s.Pots {
		sum += p.Balance
	}
	return sum
}

// Unallocated returns the slice of the total balance not assigned to any
// pot. It may legitimately be non-zero.
func (s AccountState) Unallocated() float64 {
	return s.TotalBalance - s.Allocated()
}

// FindPot returns the pot with the given id.
func (s AccountState) FindPot(id string) (Pot, bool) {
	for _, p := range s.Pots {
		if p.ID == id {
			return p, true
		}
	}
	return Pot{}, false
}

// FindWithdrawal returns the scheduled withdrawal with the given id.
func (s AccountState) FindWithdrawal(id string) (ScheduledWithdrawal, bool) {
	for _, w := range s.ScheduledWithdrawals {
		if w.ID == id {
			return w, true
		}
	}
	return ScheduledWithdrawal{}, false
}

// UpcomingWithdrawals returns the not-yet-completed withdrawals ordered
// by next due date.
func (s AccountState) UpcomingWithdrawals() []ScheduledWithdrawal {
	out := make([]ScheduledWithdrawal, 0, len(s.ScheduledWithdrawals))
	for _, w := range s.ScheduledWithdrawals {
		if !w.Completed {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NextDate.Before(out[j].NextDate) })
	return out
}

// DueWithdrawals returns the withdrawals actionable at now, ordered by
// next due date. Completed withdrawals never appear.
func (s AccountState) DueWithdrawals(now time.Time) []ScheduledWithdrawal {
	out := make([]ScheduledWithdrawal, 0)
	for _, w := range s.UpcomingWithdrawals() {
		if w.Due(now) {
			out = append(out, w)
		}
	}
	return out
}

package httpapi

import (
	"time"

	"moneypots/internal/pots"
)

// Request DTOs. The wire format uses snake_case and is decoupled from
// the persisted snapshot schema.

type setupPotRequest struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type setupRequest struct {
	TotalBalance float64           `json:"total_balance"`
	InterestRate float64           `json:"interest_rate"`
	InterestDate *time.Time        `json:"interest_date,omitempty"`
	Pots         []setupPotRequest `json:"pots"`
}

type accountUpdateRequest struct {
	TotalBalance *float64 `json:"total_balance,omitempty"`
	InterestRate *float64 `json:"interest_rate,omitempty"`
}

type addPotRequest struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type updatePotRequest struct {
	Name    *string  `json:"name,omitempty"`
	Balance *float64 `json:"balance,omitempty"`
}

type splitRequest struct {
	PotID string  `json:"pot_id"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type setTransferRequest struct {
	TotalAmount float64        `json:"total_amount"`
	Splits      []splitRequest `json:"splits"`
}

type addWithdrawalRequest struct {
	PotID       string  `json:"pot_id"`
	Amount      float64 `json:"amount"`
	DayOfMonth  int     `json:"day_of_month"`
	Description string  `json:"description"`
	Recurring   bool    `json:"recurring"`
}

// Response DTOs.

type entryResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

type potResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance float64         `json:"balance"`
	History []entryResponse `json:"history"`
}

type splitResponse struct {
	PotID string  `json:"pot_id"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type transferResponse struct {
	TotalAmount float64         `json:"total_amount"`
	Splits      []splitResponse `json:"splits"`
}

type withdrawalResponse struct {
	ID          string    `json:"id"`
	PotID       string    `json:"pot_id"`
	Amount      float64   `json:"amount"`
	DayOfMonth  int       `json:"day_of_month"`
	Description string    `json:"description"`
	Recurring   bool      `json:"recurring"`
	NextDate    time.Time `json:"next_date"`
	Completed   bool      `json:"completed"`
}

type accountResponse struct {
	TotalBalance         float64              `json:"total_balance"`
	InterestRate         float64              `json:"interest_rate"`
	SetupComplete        bool                 `json:"setup_complete"`
	LastInterestDate     *time.Time           `json:"last_interest_date,omitempty"`
	Pots                 []potResponse        `json:"pots"`
	MonthlyTransfer      transferResponse     `json:"monthly_transfer"`
	ScheduledWithdrawals []withdrawalResponse `json:"scheduled_withdrawals"`
}

type summaryResponse struct {
	TotalBalance        float64              `json:"total_balance"`
	Allocated           float64              `json:"allocated"`
	Unallocated         float64              `json:"unallocated"`
	PotCount            int                  `json:"pot_count"`
	SetupComplete       bool                 `json:"setup_complete"`
	UpcomingWithdrawals []withdrawalResponse `json:"upcoming_withdrawals"`
}

func toEntryResponse(e pots.HistoryEntry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Type:        string(e.Kind),
		Amount:      e.Amount,
		Description: e.Description,
	}
}

func toPotResponse(p pots.Pot) potResponse {
	history := make([]entryResponse, 0, len(p.History))
	for _, e := range p.History {
		history = append(history, toEntryResponse(e))
	}
	return potResponse{ID: p.ID, Name: p.Name, Balance: p.Balance, History: history}
}

func toTransferResponse(t pots.TransferConfig) transferResponse {
	splits := make([]splitResponse, 0, len(t.Splits))
	for _, sp := range t.Splits {
		splits = append(splits, splitResponse{PotID: sp.PotID, Type: string(sp.Type), Value: sp.Value})
	}
	return transferResponse{TotalAmount: t.TotalAmount, Splits: splits}
}

func toWithdrawalResponse(w pots.ScheduledWithdrawal) withdrawalResponse {
	return withdrawalResponse{
		ID:          w.ID,
		PotID:       w.PotID,
		Amount:      w.Amount,
		DayOfMonth:  w.DayOfMonth,
		Description: w.Description,
		Recurring:   w.Recurring,
		NextDate:    w.NextDate,
		Completed:   w.Completed,
	}
}

func toWithdrawalResponses(ws []pots.ScheduledWithdrawal) []withdrawalResponse {
	out := make([]withdrawalResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWithdrawalResponse(w))
	}
	return out
}

func toAccountResponse(s pots.AccountState) accountResponse {
	ps := make([]potResponse, 0, len(s.Pots))
	for _, p := range s.Pots {
		ps = append(ps, toPotResponse(p))
	}
	return accountResponse{
		TotalBalance:         s.TotalBalance,
		InterestRate:         s.InterestRate,
		SetupComplete:        s.SetupComplete,
		LastInterestDate:     s.LastInterestDate,
		Pots:                 ps,
		MonthlyTransfer:      toTransferResponse(s.MonthlyTransfer),
		ScheduledWithdrawals: toWithdrawalResponses(s.ScheduledWithdrawals),
	}
}

func toSummaryResponse(s pots.AccountState) summaryResponse {
	return summaryResponse{
		TotalBalance:        s.TotalBalance,
		Allocated:           s.Allocated(),
		Unallocated:         s.Unallocated(),
		PotCount:            len(s.Pots),
		SetupComplete:       s.SetupComplete,
		UpcomingWithdrawals: toWithdrawalResponses(s.UpcomingWithdrawals()),
	}
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"moneypots/internal/pots"
)

func (s *Server) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	snap := s.st.Snapshot()
	if r.URL.Query().Get("due") == "true" {
		toJSON(w, http.StatusOK, toWithdrawalResponses(snap.DueWithdrawals(time.Now())))
		return
	}
	toJSON(w, http.StatusOK, toWithdrawalResponses(snap.UpcomingWithdrawals()))
}

func (s *Server) addWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req addWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Amount <= 0 {
		badRequest(w, "amount must be positive")
		return
	}
	if _, ok := s.st.Snapshot().FindPot(req.PotID); !ok {
		notFound(w)
		return
	}

	day := req.DayOfMonth
	if day < 1 {
		day = 1
	}
	if day > 31 {
		day = 31
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "Withdrawal"
	}

	nextDate := pots.NextOccurrence(time.Now(), day)
	s.st.AddWithdrawal(r.Context(), req.PotID, req.Amount, day, description, req.Recurring, nextDate)

	// Withdrawals are appended in creation order, so the new one is last.
	snap := s.st.Snapshot()
	toJSON(w, http.StatusCreated, toWithdrawalResponse(snap.ScheduledWithdrawals[len(snap.ScheduledWithdrawals)-1]))
}

func (s *Server) deleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	s.st.DeleteWithdrawal(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) processWithdrawal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.st.Snapshot().FindWithdrawal(id); !ok {
		notFound(w)
		return
	}
	s.st.ProcessWithdrawal(r.Context(), id)
	toJSON(w, http.StatusOK, toAccountResponse(s.st.Snapshot()))
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"moneypots/internal/engine"
)

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, toAccountResponse(s.st.Snapshot()))
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, toSummaryResponse(s.st.Snapshot()))
}

func (s *Server) completeSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	// Blank names and non-positive balances are dropped rather than
	// rejected, so a half-filled setup form still produces a usable
	// account.
	seeds := make([]engine.PotSeed, 0, len(req.Pots))
	for _, p := range req.Pots {
		name := strings.TrimSpace(p.Name)
		if name == "" || p.Balance <= 0 {
			continue
		}
		seeds = append(seeds, engine.PotSeed{Name: name, Balance: p.Balance})
	}

	var interestDate time.Time
	if req.InterestDate != nil {
		interestDate = *req.InterestDate
	}

	s.st.CompleteSetup(r.Context(), req.TotalBalance, req.InterestRate, seeds, interestDate)
	toJSON(w, http.StatusOK, toAccountResponse(s.st.Snapshot()))
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	cur := s.st.Snapshot()
	total := cur.TotalBalance
	rate := cur.InterestRate
	if req.TotalBalance != nil {
		total = *req.TotalBalance
	}
	if req.InterestRate != nil {
		rate = *req.InterestRate
	}

	s.st.UpdateAccount(r.Context(), total, rate)
	toJSON(w, http.StatusOK, toAccountResponse(s.st.Snapshot()))
}

func (s *Server) resetAccount(w http.ResponseWriter, r *http.Request) {
	s.st.ResetAll(r.Context())
	toJSON(w, http.StatusOK, toAccountResponse(s.st.Snapshot()))
}

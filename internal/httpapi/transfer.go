package httpapi

import (
	"encoding/json"
	"net/http"

	"moneypots/internal/pots"
)

func (s *Server) getTransfer(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, toTransferResponse(s.st.Snapshot().MonthlyTransfer))
}

func (s *Server) setTransfer(w http.ResponseWriter, r *http.Request) {
	var req setTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.TotalAmount < 0 {
		badRequest(w, "total_amount must not be negative")
		return
	}

	splits := make([]pots.SplitRule, 0, len(req.Splits))
	for _, sp := range req.Splits {
		t := pots.SplitType(sp.Type)
		if t != pots.SplitFixed && t != pots.SplitPercentage {
			badRequest(w, "split type must be fixed or percentage")
			return
		}
		if sp.Value < 0 {
			badRequest(w, "split value must not be negative")
			return
		}
		splits = append(splits, pots.SplitRule{PotID: sp.PotID, Type: t, Value: sp.Value})
	}

	s.st.SetMonthlyTransfer(r.Context(), req.TotalAmount, splits)
	toJSON(w, http.StatusOK, toTransferResponse(s.st.Snapshot().MonthlyTransfer))
}

func (s *Server) processTransfer(w http.ResponseWriter, r *http.Request) {
	s.st.ProcessMonthlyTransfer(r.Context())
	toJSON(w, http.StatusOK, toAccountResponse(s.st.Snapshot()))
}

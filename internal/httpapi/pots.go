package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
)

func (s *Server) addPot(w http.ResponseWriter, r *http.Request) {
	var req addPotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		badRequest(w, "name is required")
		return
	}
	if req.Balance < 0 {
		badRequest(w, "balance must not be negative")
		return
	}

	s.st.AddPot(r.Context(), name, req.Balance)

	// Pots are appended in creation order, so the new pot is last.
	snap := s.st.Snapshot()
	toJSON(w, http.StatusCreated, toPotResponse(snap.Pots[len(snap.Pots)-1]))
}

func (s *Server) getPot(w http.ResponseWriter, r *http.Request) {
	p, ok := s.st.Snapshot().FindPot(chi.URLParam(r, "id"))
	if !ok {
		notFound(w)
		return
	}
	toJSON(w, http.StatusOK, toPotResponse(p))
}

func (s *Server) updatePot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, ok := s.st.Snapshot().FindPot(id)
	if !ok {
		notFound(w)
		return
	}

	var req updatePotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	name := cur.Name
	balance := cur.Balance
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			badRequest(w, "name must not be blank")
			return
		}
		name = trimmed
	}
	if req.Balance != nil {
		balance = *req.Balance
	}

	s.st.UpdatePot(r.Context(), id, name, balance)

	p, _ := s.st.Snapshot().FindPot(id)
	toJSON(w, http.StatusOK, toPotResponse(p))
}

func (s *Server) deletePot(w http.ResponseWriter, r *http.Request) {
	s.st.DeletePot(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

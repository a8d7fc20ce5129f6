// Package httpapi wires the HTTP surface of the pots service. Handlers
// stay thin: they parse and sanitize input, forward one intent to the
// account store, and reply with the resulting snapshot. The engine
// itself never fails, so errors here are strictly about malformed
// requests and unknown resources.
package httpapi

import (
	"context"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"moneypots/internal/store"
)

// ReadyChecker is optionally implemented by storage backends to signal
// readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Server wires handlers and middleware using Chi.
type Server struct {
	st    *store.Store
	ready ReadyChecker
	log   *slog.Logger
	rt    *chi.Mux
}

// New constructs the HTTP server with routes and middleware. ready may
// be nil for backends without a health probe.
func New(st *store.Store, ready ReadyChecker, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{st: st, ready: ready, log: logger, rt: r}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Account
	s.rt.Get("/v1/account", s.getAccount)
	s.rt.Get("/v1/account/summary", s.getSummary)
	s.rt.Post("/v1/account/setup", s.completeSetup)
	s.rt.Patch("/v1/account", s.updateAccount)
	s.rt.Post("/v1/account/reset", s.resetAccount)
	// Pots
	s.rt.Post("/v1/pots", s.addPot)
	s.rt.Get("/v1/pots/{id}", s.getPot)
	s.rt.Patch("/v1/pots/{id}", s.updatePot)
	s.rt.Delete("/v1/pots/{id}", s.deletePot)
	// Monthly transfer
	s.rt.Get("/v1/transfer", s.getTransfer)
	s.rt.Put("/v1/transfer", s.setTransfer)
	s.rt.Post("/v1/transfer/process", s.processTransfer)
	// Scheduled withdrawals
	s.rt.Get("/v1/withdrawals", s.listWithdrawals)
	s.rt.Post("/v1/withdrawals", s.addWithdrawal)
	s.rt.Delete("/v1/withdrawals/{id}", s.deleteWithdrawal)
	s.rt.Post("/v1/withdrawals/{id}/process", s.processWithdrawal)
	// Ops (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready.Ready(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

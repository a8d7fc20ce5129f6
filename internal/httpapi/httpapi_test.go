package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"moneypots/internal/storage/memory"
	"moneypots/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.New(context.Background(), memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(st, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d, want 200", rec.Code)
	}
}

func TestReadyzWithoutChecker(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d, want 200", rec.Code)
	}
}

func TestSetupFiltersInvalidSeeds(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/account/setup", setupRequest{
		TotalBalance: 1000,
		InterestRate: 5,
		Pots: []setupPotRequest{
			{Name: "Bills", Balance: 300},
			{Name: "   ", Balance: 50},
			{Name: "Empty", Balance: 0},
			{Name: "Broken", Balance: -5},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("setup = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	acc := decode[accountResponse](t, rec)
	if !acc.SetupComplete || acc.TotalBalance != 1000 {
		t.Fatalf("unexpected account %+v", acc)
	}
	if len(acc.Pots) != 1 || acc.Pots[0].Name != "Bills" {
		t.Fatalf("blank and non-positive seeds should be dropped, got %+v", acc.Pots)
	}
}

func TestAccountUpdateAndSummary(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/v1/account/setup", setupRequest{
		TotalBalance: 1000,
		Pots:         []setupPotRequest{{Name: "Bills", Balance: 400}},
	})

	rate := 3.5
	rec := doJSON(t, h, http.MethodPatch, "/v1/account", accountUpdateRequest{InterestRate: &rate})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch = %d, want 200", rec.Code)
	}
	acc := decode[accountResponse](t, rec)
	if acc.InterestRate != 3.5 || acc.TotalBalance != 1000 {
		t.Fatalf("partial update should keep the other field, got %+v", acc)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/account/summary", nil)
	sum := decode[summaryResponse](t, rec)
	if sum.Allocated != 400 || sum.Unallocated != 600 || sum.PotCount != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestPotLifecycle(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/pots", addPotRequest{Name: "Travel", Balance: 150})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add pot = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	created := decode[potResponse](t, rec)
	if created.ID == "" || created.Balance != 150 {
		t.Fatalf("unexpected pot %+v", created)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/pots/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get pot = %d, want 200", rec.Code)
	}

	newBalance := 250.0
	rec = doJSON(t, h, http.MethodPatch, "/v1/pots/"+created.ID, updatePotRequest{Balance: &newBalance})
	updated := decode[potResponse](t, rec)
	if updated.Balance != 250 || updated.Name != "Travel" {
		t.Fatalf("unexpected updated pot %+v", updated)
	}
	if len(updated.History) != 2 {
		t.Fatalf("resize should append one entry, got %+v", updated.History)
	}

	rec = doJSON(t, h, http.MethodDelete, "/v1/pots/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete pot = %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/v1/pots/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted pot = %d, want 404", rec.Code)
	}
}

func TestPotValidation(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	if rec := doJSON(t, h, http.MethodPost, "/v1/pots", addPotRequest{Name: "  "}); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/v1/pots", addPotRequest{Name: "X", Balance: -1}); rec.Code != http.StatusBadRequest {
		t.Fatalf("negative balance = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/pots", bytes.NewBufferString("{{{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad JSON = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPatch, "/v1/pots/nope", updatePotRequest{}); rec.Code != http.StatusNotFound {
		t.Fatalf("patch unknown pot = %d, want 404", rec.Code)
	}
}

func TestTransferEndpoints(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/pots", addPotRequest{Name: "Savings"})
	pot := decode[potResponse](t, rec)

	rec = doJSON(t, h, http.MethodPut, "/v1/transfer", setTransferRequest{
		TotalAmount: 500,
		Splits: []splitRequest{
			{PotID: pot.ID, Type: "percentage", Value: 40},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set transfer = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	tr := decode[transferResponse](t, rec)
	if tr.TotalAmount != 500 || len(tr.Splits) != 1 {
		t.Fatalf("unexpected transfer %+v", tr)
	}

	rec = doJSON(t, h, http.MethodPut, "/v1/transfer", setTransferRequest{
		TotalAmount: 500,
		Splits:      []splitRequest{{PotID: pot.ID, Type: "weekly", Value: 1}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad split type = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/v1/transfer/process", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("process = %d, want 200", rec.Code)
	}
	acc := decode[accountResponse](t, rec)
	if acc.TotalBalance != 500 {
		t.Fatalf("total balance = %v, want 500", acc.TotalBalance)
	}
	if acc.Pots[0].Balance != 200 {
		t.Fatalf("pot balance = %v, want 200", acc.Pots[0].Balance)
	}
	if acc.LastInterestDate == nil {
		t.Fatal("processing should stamp the last interest date")
	}
}

func TestWithdrawalEndpoints(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/pots", addPotRequest{Name: "Bills", Balance: 300})
	pot := decode[potResponse](t, rec)

	if rec := doJSON(t, h, http.MethodPost, "/v1/withdrawals", addWithdrawalRequest{
		PotID: "nope", Amount: 10, DayOfMonth: 5,
	}); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown pot = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/v1/withdrawals", addWithdrawalRequest{
		PotID: pot.ID, Amount: 0, DayOfMonth: 5,
	}); rec.Code != http.StatusBadRequest {
		t.Fatalf("zero amount = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/v1/withdrawals", addWithdrawalRequest{
		PotID: pot.ID, Amount: 45, DayOfMonth: 99, Recurring: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add withdrawal = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	created := decode[withdrawalResponse](t, rec)
	if created.DayOfMonth != 31 {
		t.Fatalf("day of month should clamp to 31, got %d", created.DayOfMonth)
	}
	if created.Description != "Withdrawal" {
		t.Fatalf("description should default, got %q", created.Description)
	}
	if created.NextDate.IsZero() {
		t.Fatal("next date should be scheduled")
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/withdrawals", nil)
	list := decode[[]withdrawalResponse](t, rec)
	if len(list) != 1 {
		t.Fatalf("expected 1 withdrawal, got %d", len(list))
	}

	// Nothing is due yet: the first occurrence is always in the future.
	rec = doJSON(t, h, http.MethodGet, "/v1/withdrawals?due=true", nil)
	if due := decode[[]withdrawalResponse](t, rec); len(due) != 0 {
		t.Fatalf("expected no due withdrawals, got %+v", due)
	}

	rec = doJSON(t, h, http.MethodPost, "/v1/withdrawals/"+created.ID+"/process", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("process = %d, want 200", rec.Code)
	}
	acc := decode[accountResponse](t, rec)
	if acc.Pots[0].Balance != 255 {
		t.Fatalf("pot balance = %v, want 255", acc.Pots[0].Balance)
	}

	if rec := doJSON(t, h, http.MethodPost, "/v1/withdrawals/nope/process", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("process unknown = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodDelete, "/v1/withdrawals/"+created.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d, want 204", rec.Code)
	}
}

func TestResetClearsEverything(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/v1/account/setup", setupRequest{
		TotalBalance: 1000,
		Pots:         []setupPotRequest{{Name: "Bills", Balance: 400}},
	})
	rec := doJSON(t, h, http.MethodPost, "/v1/account/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset = %d, want 200", rec.Code)
	}
	acc := decode[accountResponse](t, rec)
	if acc.SetupComplete || acc.TotalBalance != 0 || len(acc.Pots) != 0 {
		t.Fatalf("expected empty account after reset, got %+v", acc)
	}
}

package credits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juridia/juridia-platform/pkg/logging"
)

func TestDebitSuccess(t *testing.T) {
	var got debitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/decrease-credit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected auth header %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(debitResponse{Success: true})
	}))
	defer srv.Close()

	ledger := NewHTTPLedger(srv.URL, "secret", logging.Default())
	if err := ledger.Debit(context.Background(), "user-1", KindConsultation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" || got.Type != "consultoria" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestDebitDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(debitResponse{Success: false, Error: "saldo insuficiente"})
	}))
	defer srv.Close()

	ledger := NewHTTPLedger(srv.URL, "", logging.Default())
	err := ledger.Debit(context.Background(), "user-1", KindConsultation)
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestDebitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ledger := NewHTTPLedger(srv.URL, "", logging.Default())
	err := ledger.Debit(context.Background(), "user-1", KindAIQuery)
	if !errors.Is(err, ErrLedgerUnavailable) {
		t.Fatalf("expected ErrLedgerUnavailable, got %v", err)
	}
}

func TestNewHTTPLedgerWithoutURL(t *testing.T) {
	if ledger := NewHTTPLedger("", "", nil); ledger != nil {
		t.Fatal("expected nil ledger when unconfigured")
	}
}

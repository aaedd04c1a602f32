// Package credits talks to the external credit-ledger service. The ledger
// owns all balance accounting; this client only requests conditional debits
// and relays the outcome.
package credits

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/juridia/juridia-platform/pkg/logging"
)

// DebitKind labels what a debit pays for.
const (
	KindConsultation = "consultoria"
	KindAIQuery      = "pergunta"
)

var (
	// ErrInsufficientCredits is returned when the ledger declines the debit.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrLedgerUnavailable is returned on transport or server failures.
	ErrLedgerUnavailable = errors.New("credit ledger unavailable")
)

// Ledger debits one credit of the given kind from a user.
type Ledger interface {
	Debit(ctx context.Context, userID, kind string) error
}

// HTTPLedger calls the external ledger service.
type HTTPLedger struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *logging.Logger
}

// NewHTTPLedger creates a ledger client. Returns nil when baseURL is empty
// so callers can treat the ledger as absent in dev environments.
func NewHTTPLedger(baseURL, token string, logger *logging.Logger) *HTTPLedger {
	if baseURL == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPLedger{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

type debitRequest struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
}

type debitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Debit requests a conditional one-credit decrement. The ledger guarantees
// the balance never goes negative; a declined debit surfaces
// ErrInsufficientCredits.
func (l *HTTPLedger) Debit(ctx context.Context, userID, kind string) error {
	payload, err := json.Marshal(debitRequest{UserID: userID, Type: kind})
	if err != nil {
		return fmt.Errorf("credits: encode debit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/decrease-credit", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("credits: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrLedgerUnavailable, resp.StatusCode)
	}

	var body debitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrLedgerUnavailable, err)
	}
	if !body.Success {
		l.logger.Warn("credit debit declined", "user_id", userID, "kind", kind, "reason", body.Error)
		return fmt.Errorf("%w: %s", ErrInsufficientCredits, body.Error)
	}
	return nil
}

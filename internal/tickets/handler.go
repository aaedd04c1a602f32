package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/juridia/juridia-platform/internal/appointments"
	"github.com/juridia/juridia-platform/internal/credits"
	"github.com/juridia/juridia-platform/internal/lawyers"
	"github.com/juridia/juridia-platform/pkg/logging"
)

// Records is the read/update surface the handler needs beyond creation.
type Records interface {
	ListByLawyer(ctx context.Context, lawyerID string) ([]Ticket, error)
	UpdateStatus(ctx context.Context, ticketID, status string) error
}

// Handler exposes the ticket endpoints.
type Handler struct {
	bridge  *Bridge
	records Records
	logger  *logging.Logger
}

func NewHandler(bridge *Bridge, records Records, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{bridge: bridge, records: records, logger: logger}
}

type createTicketRequest struct {
	UserID      string `json:"userId"`
	Text        string `json:"text"`
	Area        string `json:"area"`
	Summary     string `json:"summary"`
	Explanation string `json:"explanation"`
	AnswerAI    string `json:"answerIA"`
	Day         string `json:"day"`
	Hour        string `json:"hour"`
}

// CreateTicket handles POST /api/create-ticket.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.bridge.CreateTicket(r.Context(), CreateTicketParams{
		UserID:      req.UserID,
		Text:        req.Text,
		Area:        req.Area,
		Summary:     req.Summary,
		Explanation: req.Explanation,
		AnswerAI:    req.AnswerAI,
		Day:         strings.ToLower(req.Day),
		Hour:        req.Hour,
	})
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, appointments.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, ErrInvalidInput.Error())
		return
	case errors.Is(err, lawyers.ErrNoLawyerAvailable):
		writeError(w, http.StatusNotFound, "no lawyer available for the requested slot")
		return
	case errors.Is(err, appointments.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot already booked")
		return
	case errors.Is(err, credits.ErrInsufficientCredits), errors.Is(err, credits.ErrLedgerUnavailable):
		// The ticket and appointment were created; only the debit failed.
		h.logger.Error("ticket created but credit debit failed", "error", err, "ticket_id", created.TicketID)
		writeError(w, http.StatusInternalServerError, "ticket created but credit debit failed")
		return
	case err != nil:
		h.logger.Error("failed to create ticket", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create ticket")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"id":            created.TicketID,
		"lawyerId":      created.LawyerID,
		"lawyerName":    created.LawyerName,
		"appointmentId": created.AppointmentID,
		"meetingLink":   created.MeetingLink,
	})
}

// ListByLawyer handles GET /api/tickets/{lawyerID}.
func (h *Handler) ListByLawyer(w http.ResponseWriter, r *http.Request) {
	lawyerID := chi.URLParam(r, "lawyerID")
	if lawyerID == "" {
		writeError(w, http.StatusBadRequest, "lawyerID is required")
		return
	}

	tickets, err := h.records.ListByLawyer(r.Context(), lawyerID)
	if err != nil {
		h.logger.Error("failed to list tickets", "error", err, "lawyer_id", lawyerID)
		writeError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "tickets": tickets})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/tickets/{ticketID}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Status {
	case StatusNew, StatusInProgress, StatusClosed:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	err := h.records.UpdateStatus(r.Context(), ticketID, req.Status)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "ticket not found")
		return
	case err != nil:
		h.logger.Error("failed to update ticket status", "error", err, "ticket_id", ticketID)
		writeError(w, http.StatusInternalServerError, "failed to update ticket status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

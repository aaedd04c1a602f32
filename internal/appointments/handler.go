package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/juridia/juridia-platform/pkg/logging"
)

// Handler exposes the appointment-creation endpoint.
type Handler struct {
	scheduler *Scheduler
	location  *time.Location
	logger    *logging.Logger
}

// NewHandler creates the appointments handler. loc interprets bare dateTime
// requests; nil falls back to UTC.
func NewHandler(scheduler *Scheduler, loc *time.Location, logger *logging.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{scheduler: scheduler, location: loc, logger: logger}
}

type createAppointmentRequest struct {
	LawyerID   string `json:"lawyerId"`
	ClientID   string `json:"clientId"`
	LawyerName string `json:"lawyerName"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	DateTime   string `json:"dateTime"`
}

// params normalizes the two accepted request shapes: split date+time fields,
// or a single ISO-8601 dateTime converted into the configured location.
func (req createAppointmentRequest) params(loc *time.Location) (CreateParams, error) {
	p := CreateParams{
		LawyerID:   req.LawyerID,
		ClientID:   req.ClientID,
		LawyerName: req.LawyerName,
		Date:       req.Date,
		Time:       req.Time,
	}
	if req.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateTime)
		if err != nil {
			return CreateParams{}, ErrInvalidInput
		}
		local := parsed.In(loc)
		p.Date = local.Format("2006-01-02")
		p.Time = local.Format("15:04")
	}
	if p.Date == "" || p.Time == "" {
		return CreateParams{}, ErrInvalidInput
	}
	return p, nil
}

// CreateAppointment handles POST /api/create-appointment.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := req.params(h.location)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidInput.Error())
		return
	}

	created, err := h.scheduler.Create(r.Context(), params)
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot already booked")
		return
	case errors.Is(err, ErrReminderRegistration):
		// Appointment persisted without a reminder; surface the failure.
		h.logger.Error("appointment created without reminder", "error", err)
		writeError(w, http.StatusInternalServerError, "appointment created but reminder registration failed")
		return
	case err != nil:
		h.logger.Error("failed to create appointment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create appointment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"appointmentId": created.AppointmentID,
		"meetingLink":   created.MeetingLink,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

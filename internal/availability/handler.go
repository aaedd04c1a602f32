package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/juridia/juridia-platform/pkg/logging"
)

// Handler exposes availability endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the availability handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type setAvailabilityRequest struct {
	LawyerID       string         `json:"lawyerId"`
	WeeklySchedule WeeklySchedule `json:"weeklySchedule"`
}

// SetAvailability handles POST /api/set-availability.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req setAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LawyerID == "" || req.WeeklySchedule == nil {
		writeError(w, http.StatusBadRequest, "missing or invalid required fields")
		return
	}

	if err := h.service.SetSchedule(r.Context(), req.LawyerID, req.WeeklySchedule); err != nil {
		if errors.Is(err, ErrInvalidSchedule) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to store availability", "error", err, "lawyer_id", req.LawyerID)
		writeError(w, http.StatusInternalServerError, "failed to store availability")
		return
	}

	h.logger.Info("availability stored", "lawyer_id", req.LawyerID, "days", len(req.WeeklySchedule))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// GetAvailability handles GET /api/get-availability?lawyerId=.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.URL.Query().Get("lawyerId")
	if lawyerID == "" {
		writeError(w, http.StatusBadRequest, "lawyerId is required")
		return
	}

	schedule, err := h.service.Schedule(r.Context(), lawyerID)
	if err != nil {
		h.logger.Error("failed to load availability", "error", err, "lawyer_id", lawyerID)
		writeError(w, http.StatusInternalServerError, "failed to load availability")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"weeklySchedule": schedule,
	})
}

// GetAvailableSlots handles GET /api/get-available-slots?lawyerId=&days=.
func (h *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	lawyerID := r.URL.Query().Get("lawyerId")
	if lawyerID == "" {
		writeError(w, http.StatusBadRequest, "lawyerId is required")
		return
	}

	days := 0
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	slots, err := h.service.FreeSlots(r.Context(), lawyerID, days)
	if err != nil {
		h.logger.Error("failed to compute free slots", "error", err, "lawyer_id", lawyerID)
		writeError(w, http.StatusInternalServerError, "failed to compute available slots")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"availableSlots": slots,
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

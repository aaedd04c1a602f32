package lawyers

import (
	"encoding/json"
	"net/http"

	"github.com/juridia/juridia-platform/pkg/logging"
)

// Handler exposes the lawyer-directory endpoint.
type Handler struct {
	matcher *Matcher
	logger  *logging.Logger
}

// NewHandler creates the lawyers handler.
func NewHandler(matcher *Matcher, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{matcher: matcher, logger: logger}
}

type getAvailableLawyersRequest struct {
	Area string `json:"area"`
}

// GetAvailableLawyers handles POST /api/get-available-lawyers.
func (h *Handler) GetAvailableLawyers(w http.ResponseWriter, r *http.Request) {
	var req getAvailableLawyersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Area == "" {
		writeError(w, http.StatusBadRequest, ErrMissingArea.Error())
		return
	}

	found, err := h.matcher.FindAvailable(r.Context(), req.Area)
	if err != nil {
		h.logger.Error("failed to list lawyers", "error", err, "area", req.Area)
		writeError(w, http.StatusInternalServerError, "failed to list lawyers")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lawyers": found,
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

// Package router assembles the HTTP surface of the scheduling API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/juridia/juridia-platform/internal/appointments"
	"github.com/juridia/juridia-platform/internal/availability"
	httpmiddleware "github.com/juridia/juridia-platform/internal/http/middleware"
	"github.com/juridia/juridia-platform/internal/lawyers"
	"github.com/juridia/juridia-platform/internal/tickets"
	"github.com/juridia/juridia-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	AvailabilityHandler *availability.Handler
	LawyersHandler      *lawyers.Handler
	TicketsHandler      *tickets.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// RateLimit caps requests/sec per IP on the API routes; zero disables it.
	RateLimit      float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimit > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimit, cfg.RateLimitBurst))
		}

		api.Post("/create-appointment", cfg.AppointmentsHandler.CreateAppointment)
		api.Post("/get-available-lawyers", cfg.LawyersHandler.GetAvailableLawyers)
		api.Get("/get-available-slots", cfg.AvailabilityHandler.GetAvailableSlots)
		api.Post("/set-availability", cfg.AvailabilityHandler.SetAvailability)
		api.Get("/get-availability", cfg.AvailabilityHandler.GetAvailability)

		if cfg.TicketsHandler != nil {
			api.Post("/create-ticket", cfg.TicketsHandler.CreateTicket)
			api.Get("/tickets/{lawyerID}", cfg.TicketsHandler.ListByLawyer)
			api.Patch("/tickets/{ticketID}/status", cfg.TicketsHandler.UpdateStatus)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juridia/juridia-platform/internal/appointments"
	"github.com/juridia/juridia-platform/internal/availability"
	"github.com/juridia/juridia-platform/internal/lawyers"
	"github.com/juridia/juridia-platform/internal/tickets"
)

func testRouter() http.Handler {
	reg := prometheus.NewRegistry()
	return New(&Config{
		AppointmentsHandler: appointments.NewHandler(nil, nil, nil),
		AvailabilityHandler: availability.NewHandler(nil, nil),
		LawyersHandler:      lawyers.NewHandler(nil, nil),
		TicketsHandler:      tickets.NewHandler(nil, nil, nil),
		MetricsHandler:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  []string{"https://app.juridia.com"},
	})
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateAppointmentRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/create-appointment", nil)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestCORSPreflightOnAPIRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/create-ticket", nil)
	req.Header.Set("Origin", "https://app.juridia.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
}

package httpapi

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

type indexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var endpoints = map[string]string{
	"GET /":                   "This index",
	"GET /health":             "Database connectivity check",
	"GET /metrics":            "Prometheus metrics",
	"POST /signup":            "Register a user",
	"POST /login":             "Log in and receive tokens",
	"POST /token/refresh":     "Exchange a refresh token for a new token pair",
	"GET /accidents/":         "List accident reports",
	"GET /accidents/{id}":     "Get an accident report",
	"POST /accidents/":        "Report an accident (auth required)",
	"GET /alerts/":            "List prevention alerts",
	"GET /alerts/{id}":        "Get a prevention alert",
	"POST /alerts/":           "Create a prevention alert",
	"POST /test/alert":        "Create a canned test alert",
	"POST /sensor-data/":      "Store a sensor sample (auth required)",
	"GET /sensor-data/latest": "Latest sensor sample of the caller (auth required)",
	"POST /system-status/":    "Update the caller's system status (auth required)",
	"GET /system-status/":     "Get the caller's system status (auth required)",
	"GET /system-status/all":  "List active systems (admin only)",
}

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message:   "Welcome to Accident Detection and Prevention API",
		Endpoints: endpoints,
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := s.svc.DB.PingContext(ctx); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

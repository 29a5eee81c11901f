package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// Handler builds the routing tree.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Post("/token/refresh", s.handleRefreshToken)

	r.Route("/accidents", func(r chi.Router) {
		r.Get("/", s.handleListAccidents)
		r.Get("/{id}", s.handleGetAccident)
		r.With(s.authenticate).Post("/", s.handleCreateAccident)
	})

	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", s.handleListAlerts)
		r.Get("/{id}", s.handleGetAlert)
		r.Post("/", s.handleCreateAlert)
	})
	r.Post("/test/alert", s.handleCreateTestAlert)

	r.Route("/sensor-data", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/", s.handleRecordSensorData)
		r.Get("/latest", s.handleLatestSensorData)
	})

	r.Route("/system-status", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/", s.handleUpdateSystemStatus)
		r.Get("/", s.handleGetSystemStatus)
		r.With(requireRole(common.RoleAdmin)).Get("/all", s.handleListActiveSystems)
	})

	return r
}

// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadwatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roadwatch_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roadwatch_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Domain metrics
	AccidentReportsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadwatch_accident_reports_created_total",
			Help: "Accident reports filed, by severity",
		},
		[]string{"severity"},
	)

	SensorSamplesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roadwatch_sensor_samples_total",
			Help: "Sensor samples stored",
		},
	)

	AlertsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadwatch_alerts_created_total",
			Help: "Prevention alerts created, by alert type",
		},
		[]string{"alert_type"},
	)

	SystemStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadwatch_system_status_updates_total",
			Help: "System status upserts, by resulting active flag",
		},
		[]string{"active"},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadwatch_auth_attempts_total",
			Help: "Authentication attempts by operation and result",
		},
		[]string{"operation", "result"}, // operation: signup, login, refresh
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// Label values outside these sets are recorded as otherLabel so that
// client-supplied strings cannot grow the number of series.
var (
	knownSeverities = map[string]struct{}{
		"low": {}, "medium": {}, "high": {}, "critical": {},
		"minor": {}, "moderate": {}, "major": {}, "severe": {}, "fatal": {},
	}
	knownAlertTypes = map[string]struct{}{
		"speed": {}, "pedestrian": {}, "weather": {}, "traffic": {},
		"construction": {}, "accident": {}, "test": {},
	}
)

const (
	unspecifiedLabel = "unspecified"
	otherLabel       = "other"
)

func boundedLabel(v string, known map[string]struct{}) string {
	if v == "" {
		return unspecifiedLabel
	}
	v = strings.ToLower(v)
	if _, ok := known[v]; ok {
		return v
	}
	return otherLabel
}

// RecordAccidentReport counts a stored report. An empty severity is
// recorded as "unspecified", an unrecognised one as "other".
func RecordAccidentReport(severity string) {
	AccidentReportsCreated.WithLabelValues(boundedLabel(severity, knownSeverities)).Inc()
}

func RecordSensorSample() {
	SensorSamplesStored.Inc()
}

func RecordAlert(alertType string) {
	AlertsCreated.WithLabelValues(boundedLabel(alertType, knownAlertTypes)).Inc()
}

func RecordSystemStatusUpdate(active bool) {
	label := "false"
	if active {
		label = "true"
	}
	SystemStatusUpdates.WithLabelValues(label).Inc()
}

// RecordAuthAttempt records the outcome of a signup, login or refresh.
func RecordAuthAttempt(operation string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttempts.WithLabelValues(operation, result).Inc()
}

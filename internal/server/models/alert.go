package models

import "time"

// AlertStatusActive is the only status a new alert can have.
const AlertStatusActive = "active"

// PreventionAlert is a public advisory, e.g. a speeding hot spot.
type PreventionAlert struct {
	ID          int64     `json:"id"`
	Location    *string   `json:"location"`
	AlertType   *string   `json:"alert_type"`
	Timestamp   time.Time `json:"timestamp"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
}

package models

import "time"

// DefaultAccidentStatus is assigned to reports created without a status.
const DefaultAccidentStatus = "pending"

// AccidentReport is a single accident account filed by a user.
type AccidentReport struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Location          string    `json:"location"`
	Description       *string   `json:"description"`
	Severity          *string   `json:"severity"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	WeatherConditions *string   `json:"weather_conditions"`
	RoadConditions    *string   `json:"road_conditions"`
	NumberOfVehicles  *int      `json:"number_of_vehicles"`
	InjuriesReported  bool      `json:"injuries_reported"`
}

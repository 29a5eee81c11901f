package models

import (
	"encoding/json"
	"time"
)

// SensorData is one telemetry sample. Every measurement is optional;
// OtherData holds an arbitrary JSON document (nil means SQL NULL).
type SensorData struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Timestamp         time.Time       `json:"timestamp"`
	Latitude          *float64        `json:"latitude"`
	Longitude         *float64        `json:"longitude"`
	Max30102HeartRate *float64        `json:"max30102_heart_rate"`
	Max30102SpO2      *float64        `json:"max30102_spo2"`
	AlcoholLevel      *float64        `json:"alcohol_level"`
	OtherData         json.RawMessage `json:"other_data"`
}

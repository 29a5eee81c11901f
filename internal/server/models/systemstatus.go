package models

import (
	"encoding/json"
	"time"
)

// SystemStatus tells whether a user's monitoring device is active.
// There is at most one row per user.
type SystemStatus struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	IsActive    bool            `json:"is_active"`
	LastUpdated time.Time       `json:"last_updated"`
	DeviceID    *string         `json:"device_id"`
	DeviceInfo  json.RawMessage `json:"device_info"`
}

// SystemStatusUpdate is the input of an upsert. The Set flags mark which
// optional columns were supplied and must be written on update.
type SystemStatusUpdate struct {
	UserID        int64
	IsActive      bool
	DeviceID      *string
	SetDeviceID   bool
	DeviceInfo    json.RawMessage
	SetDeviceInfo bool
}

package models

import "time"

// User is an account that owns accident reports, sensor readings and a
// system status row. PasswordHash is a bcrypt digest and never leaves the server.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

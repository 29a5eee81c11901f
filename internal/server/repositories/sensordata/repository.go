// Package sensordata stores driver telemetry samples.
package sensordata

import (
	"context"

	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

type Repository interface {
	// Create inserts the sample and fills in its ID.
	Create(ctx context.Context, data *models.SensorData) (*models.SensorData, error)
	// Latest returns the user's sample with the greatest timestamp or
	// common.ErrorNotFound when the user has none.
	Latest(ctx context.Context, userID int64) (*models.SensorData, error)
}

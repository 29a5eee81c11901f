// Package alerts stores prevention alerts.
package alerts

import (
	"context"

	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

type Repository interface {
	// Create inserts the alert and fills in the database-assigned ID.
	Create(ctx context.Context, alert *models.PreventionAlert) (*models.PreventionAlert, error)
	// GetByID returns common.ErrorNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*models.PreventionAlert, error)
	// List returns all alerts in creation order.
	List(ctx context.Context) ([]*models.PreventionAlert, error)
}

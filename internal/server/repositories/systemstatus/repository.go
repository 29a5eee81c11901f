// Package systemstatus stores the per-user monitoring device status.
package systemstatus

import (
	"context"

	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

type Repository interface {
	// Upsert creates the user's status row or updates the existing one in a
	// single statement. Optional columns are written only when their Set
	// flag is true; last_updated is always refreshed.
	Upsert(ctx context.Context, update *models.SystemStatusUpdate) (*models.SystemStatus, error)
	// GetByUserID returns common.ErrorNotFound when the user has no row.
	GetByUserID(ctx context.Context, userID int64) (*models.SystemStatus, error)
	// ListActive returns every row with is_active set, ordered by id.
	ListActive(ctx context.Context) ([]*models.SystemStatus, error)
}

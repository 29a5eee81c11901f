// Package accidents stores accident reports.
package accidents

import (
	"context"

	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

type Repository interface {
	// Create inserts the report and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, report *models.AccidentReport) (*models.AccidentReport, error)
	// GetByID returns common.ErrorNotFound when no report has the given id.
	GetByID(ctx context.Context, id int64) (*models.AccidentReport, error)
	// List returns every report ordered by id.
	List(ctx context.Context) ([]*models.AccidentReport, error)
}

package alerts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/dbx"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, alert *models.PreventionAlert) (*models.PreventionAlert, error) {

	query :=
		`INSERT INTO prevention_alerts (location, alert_type, timestamp, description, status)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, timestamp
		 `

	err := r.db.QueryRowContext(ctx, query,
		alert.Location, alert.AlertType, alert.Timestamp, alert.Description, alert.Status).Scan(&alert.ID, &alert.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return alert, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.PreventionAlert, error) {
	query :=
		`SELECT id, location, alert_type, timestamp, description, status
		 FROM prevention_alerts
		 WHERE id = $1
		 `

	a := &models.PreventionAlert{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Location, &a.AlertType, &a.Timestamp, &a.Description, &a.Status)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.PreventionAlert, error) {
	query :=
		`SELECT id, location, alert_type, timestamp, description, status
		 FROM prevention_alerts
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.PreventionAlert, 0)
	for rows.Next() {
		a := &models.PreventionAlert{}
		if err := rows.Scan(&a.ID, &a.Location, &a.AlertType, &a.Timestamp, &a.Description, &a.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return alerts, nil
}

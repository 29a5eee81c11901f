package accidents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/dbx"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
)

const selectColumns = `id, user_id, location, description, severity, status, created_at, updated_at,
		        weather_conditions, road_conditions, number_of_vehicles, injuries_reported`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*models.AccidentReport, error) {
	r := &models.AccidentReport{}
	err := s.Scan(&r.ID, &r.UserID, &r.Location, &r.Description, &r.Severity, &r.Status,
		&r.CreatedAt, &r.UpdatedAt, &r.WeatherConditions, &r.RoadConditions,
		&r.NumberOfVehicles, &r.InjuriesReported)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PostgresRepository) Create(ctx context.Context, report *models.AccidentReport) (*models.AccidentReport, error) {

	query :=
		`INSERT INTO accident_reports (user_id, location, description, severity, status,
		        weather_conditions, road_conditions, number_of_vehicles, injuries_reported)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		report.UserID, report.Location, report.Description, report.Severity, report.Status,
		report.WeatherConditions, report.RoadConditions, report.NumberOfVehicles, report.InjuriesReported,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return report, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.AccidentReport, error) {
	query := `SELECT ` + selectColumns + `
		 FROM accident_reports
		 WHERE id = $1
		 `

	report, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return report, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.AccidentReport, error) {
	query := `SELECT ` + selectColumns + `
		 FROM accident_reports
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.AccidentReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reports, nil
}

package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/roadwatch/internal/metrics"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/repomanager"
)

// NewAccident is the caller-supplied part of an accident report. Nil
// optional fields take their defaults.
type NewAccident struct {
	Location          string
	Description       *string
	Severity          *string
	Status            *string
	WeatherConditions *string
	RoadConditions    *string
	NumberOfVehicles  *int
	InjuriesReported  *bool
}

type AccidentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccidentService(db *sql.DB, m repomanager.RepositoryManager) *AccidentService {
	return &AccidentService{db: db, repomanager: m}
}

// Create files a report owned by userID, whatever the request body claims.
func (s *AccidentService) Create(ctx context.Context, userID int64, in NewAccident) (*models.AccidentReport, error) {
	report := &models.AccidentReport{
		UserID:            userID,
		Location:          in.Location,
		Description:       in.Description,
		Severity:          in.Severity,
		Status:            models.DefaultAccidentStatus,
		WeatherConditions: in.WeatherConditions,
		RoadConditions:    in.RoadConditions,
		NumberOfVehicles:  in.NumberOfVehicles,
	}
	if in.Status != nil {
		report.Status = *in.Status
	}
	if in.InjuriesReported != nil {
		report.InjuriesReported = *in.InjuriesReported
	}

	report, err := s.repomanager.Accidents(s.db).Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("error creating accident report: %w", err)
	}

	severity := ""
	if report.Severity != nil {
		severity = *report.Severity
	}
	metrics.RecordAccidentReport(severity)

	return report, nil
}

func (s *AccidentService) Get(ctx context.Context, id int64) (*models.AccidentReport, error) {
	report, err := s.repomanager.Accidents(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting accident report %d: %w", id, err)
	}
	return report, nil
}

func (s *AccidentService) List(ctx context.Context) ([]*models.AccidentReport, error) {
	reports, err := s.repomanager.Accidents(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accident reports: %w", err)
	}
	return reports, nil
}

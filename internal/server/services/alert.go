package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/metrics"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/repomanager"
)

// Canned alert stored by CreateTestAlert.
const (
	testAlertLocation    = "Test Location"
	testAlertType        = "test"
	testAlertDescription = "Test alert"
)

// NewAlert carries the optional fields of a prevention alert.
type NewAlert struct {
	Location    *string
	AlertType   *string
	Description *string
}

type AlertService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAlertService(db *sql.DB, m repomanager.RepositoryManager) *AlertService {
	return &AlertService{db: db, repomanager: m, now: time.Now}
}

// Create stores an alert. Its status is always active and its timestamp is
// the time of the call.
func (s *AlertService) Create(ctx context.Context, in NewAlert) (*models.PreventionAlert, error) {
	alert := &models.PreventionAlert{
		Location:    in.Location,
		AlertType:   in.AlertType,
		Description: in.Description,
		Timestamp:   s.now().UTC(),
		Status:      models.AlertStatusActive,
	}

	alert, err := s.repomanager.Alerts(s.db).Create(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("error creating alert: %w", err)
	}

	alertType := ""
	if alert.AlertType != nil {
		alertType = *alert.AlertType
	}
	metrics.RecordAlert(alertType)

	return alert, nil
}

// CreateTestAlert stores a fixed diagnostic alert.
func (s *AlertService) CreateTestAlert(ctx context.Context) (*models.PreventionAlert, error) {
	location, alertType, description := testAlertLocation, testAlertType, testAlertDescription
	return s.Create(ctx, NewAlert{
		Location:    &location,
		AlertType:   &alertType,
		Description: &description,
	})
}

func (s *AlertService) Get(ctx context.Context, id int64) (*models.PreventionAlert, error) {
	alert, err := s.repomanager.Alerts(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting alert %d: %w", id, err)
	}
	return alert, nil
}

func (s *AlertService) List(ctx context.Context) ([]*models.PreventionAlert, error) {
	alerts, err := s.repomanager.Alerts(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	return alerts, nil
}

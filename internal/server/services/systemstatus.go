package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/roadwatch/internal/metrics"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/repomanager"
)

type SystemStatusService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSystemStatusService(db *sql.DB, m repomanager.RepositoryManager) *SystemStatusService {
	return &SystemStatusService{db: db, repomanager: m}
}

// Update upserts the status row of update.UserID.
func (s *SystemStatusService) Update(ctx context.Context, update *models.SystemStatusUpdate) (*models.SystemStatus, error) {
	if update.SetDeviceInfo {
		update.DeviceInfo = normalizeJSON(update.DeviceInfo)
	}

	status, err := s.repomanager.SystemStatus(s.db).Upsert(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("error updating system status: %w", err)
	}
	metrics.RecordSystemStatusUpdate(status.IsActive)

	return status, nil
}

func (s *SystemStatusService) Get(ctx context.Context, userID int64) (*models.SystemStatus, error) {
	status, err := s.repomanager.SystemStatus(s.db).GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting system status: %w", err)
	}
	return status, nil
}

// ListActive returns the status rows of every active device.
func (s *SystemStatusService) ListActive(ctx context.Context) ([]*models.SystemStatus, error) {
	statuses, err := s.repomanager.SystemStatus(s.db).ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing active systems: %w", err)
	}
	return statuses, nil
}

package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/metrics"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/repomanager"
)

// NewSensorSample holds the measurements of one sample; all are optional.
type NewSensorSample struct {
	Latitude          *float64
	Longitude         *float64
	Max30102HeartRate *float64
	Max30102SpO2      *float64
	AlcoholLevel      *float64
	OtherData         json.RawMessage
}

type SensorDataService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSensorDataService(db *sql.DB, m repomanager.RepositoryManager) *SensorDataService {
	return &SensorDataService{db: db, repomanager: m, now: time.Now}
}

// Record stores a sample for userID stamped with the current server time.
func (s *SensorDataService) Record(ctx context.Context, userID int64, in NewSensorSample) (*models.SensorData, error) {
	data := &models.SensorData{
		UserID:            userID,
		Timestamp:         s.now().UTC(),
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		Max30102HeartRate: in.Max30102HeartRate,
		Max30102SpO2:      in.Max30102SpO2,
		AlcoholLevel:      in.AlcoholLevel,
		OtherData:         normalizeJSON(in.OtherData),
	}

	data, err := s.repomanager.SensorData(s.db).Create(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("error saving sensor data: %w", err)
	}
	metrics.RecordSensorSample()

	return data, nil
}

// Latest returns the caller's most recent sample.
func (s *SensorDataService) Latest(ctx context.Context, userID int64) (*models.SensorData, error) {
	data, err := s.repomanager.SensorData(s.db).Latest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting latest sensor data: %w", err)
	}
	return data, nil
}

// normalizeJSON maps an absent or literal null document to nil.
func normalizeJSON(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

package sensordata

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PostgresRepository) Create(ctx context.Context, data *models.SensorData) (*models.SensorData, error) {

	query :=
		`INSERT INTO sensor_data (user_id, timestamp, latitude, longitude,
		        max30102_heart_rate, max30102_spo2, alcohol_level, other_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, timestamp, other_data
		 `

	// timestamp and other_data come back as stored: microsecond precision,
	// normalised JSONB.
	var other []byte
	err := r.db.QueryRowContext(ctx, query,
		data.UserID, data.Timestamp, data.Latitude, data.Longitude,
		data.Max30102HeartRate, data.Max30102SpO2, data.AlcoholLevel, jsonArg(data.OtherData),
	).Scan(&data.ID, &data.Timestamp, &other)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	data.OtherData = nil
	if other != nil {
		data.OtherData = json.RawMessage(other)
	}

	return data, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, userID int64) (*models.SensorData, error) {
	query :=
		`SELECT id, user_id, timestamp, latitude, longitude,
		        max30102_heart_rate, max30102_spo2, alcohol_level, other_data
		 FROM sensor_data
		 WHERE user_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT 1
		 `

	d := &models.SensorData{}
	var other []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&d.ID, &d.UserID, &d.Timestamp, &d.Latitude, &d.Longitude,
		&d.Max30102HeartRate, &d.Max30102SpO2, &d.AlcoholLevel, &other)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if other != nil {
		d.OtherData = json.RawMessage(other)
	}

	return d, nil
}

// jsonArg maps an empty document to SQL NULL.
func jsonArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

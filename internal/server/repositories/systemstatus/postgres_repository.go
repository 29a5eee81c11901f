package systemstatus

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

type scanner interface {
	Scan(dest ...any) error
}

func scanStatus(s scanner) (*models.SystemStatus, error) {
	st := &models.SystemStatus{}
	var info []byte
	if err := s.Scan(&st.ID, &st.UserID, &st.IsActive, &st.LastUpdated, &st.DeviceID, &info); err != nil {
		return nil, err
	}
	if info != nil {
		st.DeviceInfo = json.RawMessage(info)
	}
	return st, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, u *models.SystemStatusUpdate) (*models.SystemStatus, error) {

	query :=
		`INSERT INTO system_status (user_id, is_active, last_updated, device_id, device_info)
		 VALUES ($1, $2, now(), $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		        is_active    = EXCLUDED.is_active,
		        last_updated = now(),
		        device_id    = CASE WHEN $5::boolean THEN EXCLUDED.device_id ELSE system_status.device_id END,
		        device_info  = CASE WHEN $6::boolean THEN EXCLUDED.device_info ELSE system_status.device_info END
		 RETURNING id, user_id, is_active, last_updated, device_id, device_info
		 `

	var info any
	if len(u.DeviceInfo) > 0 {
		info = []byte(u.DeviceInfo)
	}

	st, err := scanStatus(r.db.QueryRowContext(ctx, query,
		u.UserID, u.IsActive, u.DeviceID, info, u.SetDeviceID, u.SetDeviceInfo))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return st, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.SystemStatus, error) {
	query :=
		`SELECT id, user_id, is_active, last_updated, device_id, device_info
		 FROM system_status
		 WHERE user_id = $1
		 `

	st, err := scanStatus(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return st, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*models.SystemStatus, error) {
	query :=
		`SELECT id, user_id, is_active, last_updated, device_id, device_info
		 FROM system_status
		 WHERE is_active
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.SystemStatus, 0)
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

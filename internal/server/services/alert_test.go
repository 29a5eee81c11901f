package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertCreate_ForcesActiveAndServerTime(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{al: &fakeAlertsRepo{}}
	s := NewAlertService(db, rm)
	fixed := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	got, err := s.Create(context.Background(), NewAlert{Location: ptr("Tunnel"), AlertType: ptr("speed")})
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, models.AlertStatusActive, got.Status)
	assert.Equal(t, fixed, got.Timestamp)
	assert.Equal(t, "Tunnel", *got.Location)
	assert.Nil(t, got.Description)
}

func TestAlertCreate_AllFieldsAbsent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{al: &fakeAlertsRepo{}}
	s := NewAlertService(db, rm)

	got, err := s.Create(context.Background(), NewAlert{})
	require.NoError(t, err)
	assert.Nil(t, got.Location)
	assert.Nil(t, got.AlertType)
	assert.Equal(t, models.AlertStatusActive, got.Status)
}

func TestAlertCreateTestAlert(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{al: &fakeAlertsRepo{}}
	s := NewAlertService(db, rm)

	got, err := s.CreateTestAlert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test Location", *got.Location)
	assert.Equal(t, "test", *got.AlertType)
	assert.Equal(t, "Test alert", *got.Description)
	assert.Equal(t, "active", got.Status)
}

func TestAlertCreate_StoreError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewAlertService(db, &fakeRepoManager{al: &fakeAlertsRepo{createErr: errBoom}})

	_, err := s.Create(context.Background(), NewAlert{})
	assert.ErrorIs(t, err, errBoom)
}

func TestAlertGetAndList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	alert := &models.PreventionAlert{ID: 1, Status: "active"}

	s := NewAlertService(db, &fakeRepoManager{al: &fakeAlertsRepo{
		getOut:  alert,
		listOut: []*models.PreventionAlert{alert},
	}})

	got, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, alert, got)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	s = NewAlertService(db, &fakeRepoManager{al: &fakeAlertsRepo{getErr: common.ErrorNotFound}})
	_, err = s.Get(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorRecord_ServerTimestamp(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{sd: &fakeSensorRepo{}}
	s := NewSensorDataService(db, rm)
	fixed := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	got, err := s.Record(context.Background(), 4, NewSensorSample{
		Latitude:  ptr(56.95),
		OtherData: json.RawMessage(` {"battery": 80} `),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), got.ID)
	assert.Equal(t, int64(4), got.UserID)
	assert.Equal(t, fixed, got.Timestamp)
	assert.Equal(t, 56.95, *got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.JSONEq(t, `{"battery": 80}`, string(got.OtherData))
}

func TestSensorRecord_NullPayload(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{sd: &fakeSensorRepo{}}
	s := NewSensorDataService(db, rm)

	got, err := s.Record(context.Background(), 4, NewSensorSample{OtherData: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Nil(t, got.OtherData)
}

func TestSensorRecord_StoreError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewSensorDataService(db, &fakeRepoManager{sd: &fakeSensorRepo{createErr: errBoom}})

	_, err := s.Record(context.Background(), 4, NewSensorSample{})
	assert.ErrorIs(t, err, errBoom)
}

func TestSensorLatest(t *testing.T) {
	db, _ := newSQLMockDB(t)
	sample := &models.SensorData{ID: 2, UserID: 4}

	s := NewSensorDataService(db, &fakeRepoManager{sd: &fakeSensorRepo{latestOut: sample}})
	got, err := s.Latest(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	s = NewSensorDataService(db, &fakeRepoManager{sd: &fakeSensorRepo{latestErr: common.ErrorNotFound}})
	_, err = s.Latest(context.Background(), 4)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	s = NewSensorDataService(db, &fakeRepoManager{sd: &fakeSensorRepo{latestErr: errBoom}})
	_, err = s.Latest(context.Background(), 4)
	assert.Equal(t, common.KindInternal, common.KindOf(err))
}

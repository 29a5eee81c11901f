package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/roadwatch/internal/dbx"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/accidents"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/alerts"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/sensordata"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/systemstatus"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	existsOut bool
	existsErr error

	createErr error
	created   *models.User

	getOut *models.User
	getErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	u.CreatedAt = time.Now()
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) GetByID(context.Context, int64) (*models.User, error) {
	return f.byIDOut, f.byIDErr
}

func (f *fakeUsersRepo) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return f.existsOut, f.existsErr
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr  error
	deleted []string

	createErr error
	created   []string
}

func (f *fakeRefreshRepo) Create(_ context.Context, _ int64, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	return f.findOut, f.findErr
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeAccidentsRepo struct {
	created   *models.AccidentReport
	createErr error

	getOut *models.AccidentReport
	getErr error

	listOut []*models.AccidentReport
	listErr error
}

func (f *fakeAccidentsRepo) Create(_ context.Context, r *models.AccidentReport) (*models.AccidentReport, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = 10
	f.created = r
	return r, nil
}

func (f *fakeAccidentsRepo) GetByID(context.Context, int64) (*models.AccidentReport, error) {
	return f.getOut, f.getErr
}

func (f *fakeAccidentsRepo) List(context.Context) ([]*models.AccidentReport, error) {
	return f.listOut, f.listErr
}

type fakeSensorRepo struct {
	created   *models.SensorData
	createErr error

	latestOut *models.SensorData
	latestErr error
}

func (f *fakeSensorRepo) Create(_ context.Context, d *models.SensorData) (*models.SensorData, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	d.ID = 20
	f.created = d
	return d, nil
}

func (f *fakeSensorRepo) Latest(context.Context, int64) (*models.SensorData, error) {
	return f.latestOut, f.latestErr
}

type fakeStatusRepo struct {
	upserted  *models.SystemStatusUpdate
	upsertErr error

	getOut *models.SystemStatus
	getErr error

	activeOut []*models.SystemStatus
	activeErr error
}

func (f *fakeStatusRepo) Upsert(_ context.Context, u *models.SystemStatusUpdate) (*models.SystemStatus, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = u
	return &models.SystemStatus{
		ID:          1,
		UserID:      u.UserID,
		IsActive:    u.IsActive,
		LastUpdated: time.Now(),
		DeviceID:    u.DeviceID,
		DeviceInfo:  u.DeviceInfo,
	}, nil
}

func (f *fakeStatusRepo) GetByUserID(context.Context, int64) (*models.SystemStatus, error) {
	return f.getOut, f.getErr
}

func (f *fakeStatusRepo) ListActive(context.Context) ([]*models.SystemStatus, error) {
	return f.activeOut, f.activeErr
}

type fakeAlertsRepo struct {
	created   *models.PreventionAlert
	createErr error

	getOut *models.PreventionAlert
	getErr error

	listOut []*models.PreventionAlert
	listErr error
}

func (f *fakeAlertsRepo) Create(_ context.Context, a *models.PreventionAlert) (*models.PreventionAlert, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = 3
	f.created = a
	return a, nil
}

func (f *fakeAlertsRepo) GetByID(context.Context, int64) (*models.PreventionAlert, error) {
	return f.getOut, f.getErr
}

func (f *fakeAlertsRepo) List(context.Context) ([]*models.PreventionAlert, error) {
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	a  *fakeAccidentsRepo
	sd *fakeSensorRepo
	st *fakeStatusRepo
	al *fakeAlertsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Accidents(dbx.DBTX) accidents.Repository         { return m.a }
func (m *fakeRepoManager) SensorData(dbx.DBTX) sensordata.Repository       { return m.sd }
func (m *fakeRepoManager) SystemStatus(dbx.DBTX) systemstatus.Repository   { return m.st }
func (m *fakeRepoManager) Alerts(dbx.DBTX) alerts.Repository               { return m.al }

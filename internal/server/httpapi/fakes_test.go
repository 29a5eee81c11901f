package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/logging"
	"github.com/dmitrijs2005/roadwatch/internal/server/auth"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var errBoom = errors.New("boom")

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUsers struct {
	register func(ctx context.Context, username, email, password string) (*models.User, error)
	login    func(ctx context.Context, username, password string) (*services.TokenPair, error)
	refresh  func(ctx context.Context, token string) (*services.TokenPair, error)
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return f.register(ctx, username, email, password)
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*services.TokenPair, error) {
	return f.login(ctx, username, password)
}

func (f *fakeUsers) RefreshToken(ctx context.Context, token string) (*services.TokenPair, error) {
	return f.refresh(ctx, token)
}

type fakeAccidents struct {
	created *services.NewAccident
	userID  int64
	byID    map[int64]*models.AccidentReport
	list    []*models.AccidentReport
	err     error
}

func (f *fakeAccidents) Create(_ context.Context, userID int64, in services.NewAccident) (*models.AccidentReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created, f.userID = &in, userID
	return &models.AccidentReport{ID: 1, UserID: userID, Location: in.Location, Severity: in.Severity,
		Description: in.Description, Status: models.DefaultAccidentStatus}, nil
}

func (f *fakeAccidents) Get(_ context.Context, id int64) (*models.AccidentReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccidents) List(context.Context) ([]*models.AccidentReport, error) {
	return f.list, f.err
}

type fakeAlerts struct {
	created *services.NewAlert
	test    bool
	byID    map[int64]*models.PreventionAlert
	list    []*models.PreventionAlert
	err     error
}

func (f *fakeAlerts) Create(_ context.Context, in services.NewAlert) (*models.PreventionAlert, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &in
	return &models.PreventionAlert{ID: 5, Location: in.Location, AlertType: in.AlertType,
		Description: in.Description, Status: models.AlertStatusActive}, nil
}

func (f *fakeAlerts) CreateTestAlert(context.Context) (*models.PreventionAlert, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.test = true
	loc, typ := "Test Location", "test"
	return &models.PreventionAlert{ID: 6, Location: &loc, AlertType: &typ, Status: models.AlertStatusActive}, nil
}

func (f *fakeAlerts) Get(_ context.Context, id int64) (*models.PreventionAlert, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAlerts) List(context.Context) ([]*models.PreventionAlert, error) {
	return f.list, f.err
}

type fakeSensor struct {
	recorded *services.NewSensorSample
	userID   int64
	latest   *models.SensorData
	err      error
}

func (f *fakeSensor) Record(_ context.Context, userID int64, in services.NewSensorSample) (*models.SensorData, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.recorded, f.userID = &in, userID
	return &models.SensorData{ID: 9, UserID: userID, Latitude: in.Latitude, OtherData: in.OtherData}, nil
}

func (f *fakeSensor) Latest(_ context.Context, userID int64) (*models.SensorData, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.latest == nil || f.latest.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return f.latest, nil
}

type fakeStatus struct {
	update *models.SystemStatusUpdate
	byUser map[int64]*models.SystemStatus
	active []*models.SystemStatus
	err    error
}

func (f *fakeStatus) Update(_ context.Context, u *models.SystemStatusUpdate) (*models.SystemStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.update = u
	return &models.SystemStatus{ID: 1, UserID: u.UserID, IsActive: u.IsActive, DeviceID: u.DeviceID}, nil
}

func (f *fakeStatus) Get(_ context.Context, userID int64) (*models.SystemStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	if st, ok := f.byUser[userID]; ok {
		return st, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStatus) ListActive(context.Context) ([]*models.SystemStatus, error) {
	return f.active, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func newServices() Services {
	return Services{
		Users:        &fakeUsers{},
		Accidents:    &fakeAccidents{},
		Alerts:       &fakeAlerts{},
		SensorData:   &fakeSensor{},
		SystemStatus: &fakeStatus{},
		DB:           fakePinger{},
	}
}

func newTestHandler(svc Services) http.Handler {
	return NewHTTPServer("127.0.0.1:0", nopLogger{}, svc, testSecret, []string{"*"}).Handler()
}

func tokenFor(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, role, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return tok
}

func doRequest(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

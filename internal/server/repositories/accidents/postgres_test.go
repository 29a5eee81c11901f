package accidents

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+accident_reports\s*\(user_id,.*injuries_reported\)\s*VALUES\s*\(\$1,.*\$9\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	byIDQuery   = `(?s)^SELECT\s+id,\s*user_id,.*injuries_reported\s+FROM\s+accident_reports\s+WHERE\s+id\s*=\s*\$1\s*$`
	listQuery   = `(?s)^SELECT\s+id,\s*user_id,.*injuries_reported\s+FROM\s+accident_reports\s+ORDER\s+BY\s+id\s*$`
)

var columns = []string{"id", "user_id", "location", "description", "severity", "status",
	"created_at", "updated_at", "weather_conditions", "road_conditions", "number_of_vehicles", "injuries_reported"}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 3, 20, 10, 5, 0, 0, time.UTC)
	vehicles := 2
	in := &models.AccidentReport{
		UserID:           1,
		Location:         "Main St",
		Description:      strPtr("rear-end collision"),
		Severity:         strPtr("minor"),
		Status:           models.DefaultAccidentStatus,
		NumberOfVehicles: &vehicles,
	}

	mock.ExpectQuery(insertQuery).
		WithArgs(int64(1), "Main St", in.Description, in.Severity, "pending",
			(*string)(nil), (*string)(nil), in.NumberOfVehicles, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.True(t, got.UpdatedAt.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.AccidentReport{UserID: 99, Location: "x"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*fk violation`), err.Error())
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(byIDQuery).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), int64(1), "Main St", "desc", "minor", "pending", now, now, nil, "wet", nil, true))

	got, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Main St", got.Location)
	assert.Equal(t, "desc", *got.Description)
	assert.Nil(t, got.WeatherConditions)
	assert.Equal(t, "wet", *got.RoadConditions)
	assert.Nil(t, got.NumberOfVehicles)
	assert.True(t, got.InjuriesReported)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(byIDQuery).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(listQuery).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(1), "A", nil, nil, "pending", now, now, nil, nil, int64(3), false).
			AddRow(int64(2), int64(2), "B", "d", "major", "closed", now, now, "rain", nil, nil, true))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Location)
	assert.Equal(t, 3, *got[0].NumberOfVehicles)
	assert.Equal(t, "closed", got[1].Status)
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "db down")
}

// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/roadwatch/internal/dbx"
	"github.com/dmitrijs2005/roadwatch/internal/server/migrations"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/accidents"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/alerts"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/sensordata"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/systemstatus"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Accidents returns an accidents.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accidents(db dbx.DBTX) accidents.Repository {
	return accidents.NewPostgresRepository(db)
}

// SensorData returns a sensordata.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) SensorData(db dbx.DBTX) sensordata.Repository {
	return sensordata.NewPostgresRepository(db)
}

// SystemStatus returns a systemstatus.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) SystemStatus(db dbx.DBTX) systemstatus.Repository {
	return systemstatus.NewPostgresRepository(db)
}

// Alerts returns an alerts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Alerts(db dbx.DBTX) alerts.Repository {
	return alerts.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

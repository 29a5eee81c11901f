// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/roadwatch/internal/logging"
	"github.com/dmitrijs2005/roadwatch/internal/server/config"
	"github.com/dmitrijs2005/roadwatch/internal/server/db"
	"github.com/dmitrijs2005/roadwatch/internal/server/httpapi"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.HTTPServer
}

// NewApp connects to the database, applies migrations and builds the
// services behind the HTTP API.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	conn, err := db.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	svc := httpapi.Services{
		Users:        services.NewUserService(conn, rm, c),
		Accidents:    services.NewAccidentService(conn, rm),
		Alerts:       services.NewAlertService(conn, rm),
		SensorData:   services.NewSensorDataService(conn, rm),
		SystemStatus: services.NewSystemStatusService(conn, rm),
		DB:           conn,
	}
	hs := httpapi.NewHTTPServer(c.HTTPAddr, logger, svc, c.SecretKey, c.CORSAllowedOrigins)

	return &App{config: c, logger: logger, db: conn, http: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the server fails, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "profile", app.config.Profile)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

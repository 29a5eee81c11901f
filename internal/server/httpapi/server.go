// Package httpapi exposes the accident-detection services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/logging"
	"github.com/dmitrijs2005/roadwatch/internal/server/models"
	"github.com/dmitrijs2005/roadwatch/internal/server/services"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type AccidentService interface {
	Create(ctx context.Context, userID int64, in services.NewAccident) (*models.AccidentReport, error)
	Get(ctx context.Context, id int64) (*models.AccidentReport, error)
	List(ctx context.Context) ([]*models.AccidentReport, error)
}

type AlertService interface {
	Create(ctx context.Context, in services.NewAlert) (*models.PreventionAlert, error)
	CreateTestAlert(ctx context.Context) (*models.PreventionAlert, error)
	Get(ctx context.Context, id int64) (*models.PreventionAlert, error)
	List(ctx context.Context) ([]*models.PreventionAlert, error)
}

type SensorDataService interface {
	Record(ctx context.Context, userID int64, in services.NewSensorSample) (*models.SensorData, error)
	Latest(ctx context.Context, userID int64) (*models.SensorData, error)
}

type SystemStatusService interface {
	Update(ctx context.Context, update *models.SystemStatusUpdate) (*models.SystemStatus, error)
	Get(ctx context.Context, userID int64) (*models.SystemStatus, error)
	ListActive(ctx context.Context) ([]*models.SystemStatus, error)
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services groups the dependencies served by the HTTP API.
type Services struct {
	Users        UserService
	Accidents    AccidentService
	Alerts       AlertService
	SensorData   SensorDataService
	SystemStatus SystemStatusService
	DB           Pinger
}

type HTTPServer struct {
	address     string
	logger      logging.Logger
	svc         Services
	jwtSecret   []byte
	corsOrigins []string
}

func NewHTTPServer(a string, l logging.Logger, svc Services, secretKey string, corsOrigins []string) *HTTPServer {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		svc:         svc,
		jwtSecret:   []byte(secretKey),
		corsOrigins: corsOrigins,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}

// Package httpcontroller exposes the monitoring API: system status, the
// current recommendation with manual action triggers, deterrent control,
// recent alerts, and Prometheus metrics.
package httpcontroller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/strikewarn/strikewarn-go/internal/conf"
	"github.com/strikewarn/strikewarn-go/internal/datastore"
	"github.com/strikewarn/strikewarn-go/internal/detection"
	"github.com/strikewarn/strikewarn-go/internal/logging"
	"github.com/strikewarn/strikewarn-go/internal/observability"
	"github.com/strikewarn/strikewarn-go/internal/pipeline"
	"github.com/strikewarn/strikewarn-go/internal/strategy"
)

// Server encapsulates the Echo server and its collaborators.
type Server struct {
	Echo     *echo.Echo
	Settings *conf.Settings
	Engine   *strategy.Engine
	Pipeline *pipeline.Pipeline
	DS       datastore.Interface
	Metrics  *observability.Metrics

	// Detections is the ingest channel feeding the pipeline worker. The
	// classifier boundary posts detections here; nil disables ingest.
	Detections chan<- detection.Event

	logger *slog.Logger
}

// New initializes the HTTP server and registers all routes.
func New(settings *conf.Settings, engine *strategy.Engine, pl *pipeline.Pipeline, ds datastore.Interface, metrics *observability.Metrics) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		Echo:     e,
		Settings: settings,
		Engine:   engine,
		Pipeline: pl,
		DS:       ds,
		Metrics:  metrics,
		logger:   logging.ForService("http"),
	}
	s.initRoutes()
	return s
}

// initRoutes registers the API surface.
func (s *Server) initRoutes() {
	v1 := s.Echo.Group("/api/v1")
	v1.POST("/detections", s.ingestDetection)
	v1.GET("/status", s.getStatus)
	v1.GET("/recommendation", s.getRecommendation)
	v1.POST("/recommendation/:id/actions/:index/execute", s.executeAction)
	v1.POST("/deterrent/stop", s.stopDeterrent)
	v1.GET("/alerts/recent", s.getRecentAlerts)
	v1.POST("/alerts/:id/acknowledge", s.acknowledgeAlert)

	if s.Metrics != nil {
		s.Echo.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}
}

// Start begins serving on the configured port. Blocks until the server stops.
func (s *Server) Start() error {
	addr := ":" + s.Settings.HTTP.Port
	s.logger.Info("HTTP server starting", "addr", addr)
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

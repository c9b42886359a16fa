// Package api serves adherence reports over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/julianstephens/mealframe/internal/constants"
	"github.com/julianstephens/mealframe/internal/logger"
	"github.com/julianstephens/mealframe/internal/metrics"
	"github.com/julianstephens/mealframe/internal/stats"
)

// Reporter computes the report for a trailing window ending today.
type Reporter interface {
	Report(ctx context.Context, days int) (stats.Report, error)
}

// Config holds HTTP server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigins []string
	// DefaultDays is used when the days query parameter is absent.
	DefaultDays int
}

func (c *Config) withDefaults() *Config {
	out := Config{Host: constants.DefaultServerHost, Port: constants.DefaultServerPort, DefaultDays: constants.DefaultPeriodDays}
	if c == nil {
		return &out
	}
	if c.Host != "" {
		out.Host = c.Host
	}
	if c.Port != 0 {
		out.Port = c.Port
	}
	if c.DefaultDays != 0 {
		out.DefaultDays = c.DefaultDays
	}
	out.CORSOrigins = c.CORSOrigins
	return &out
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server provides the HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	reporter Reporter
	metrics  *metrics.Metrics
	config   *Config
}

// NewServer wires routes and middleware. m may be nil to disable instrumentation.
func NewServer(reporter Reporter, m *metrics.Metrics, cfg *Config) (*Server, error) {
	if reporter == nil {
		return nil, fmt.Errorf("reporter cannot be nil")
	}
	cfg = cfg.withDefaults()
	if err := stats.ValidateDays(cfg.DefaultDays); err != nil {
		return nil, fmt.Errorf("default window: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
		}))
	}
	e.Use(requestLogger())
	if m != nil {
		e.Use(instrument(m))
	}

	s := &Server{echo: e, reporter: reporter, metrics: m, config: cfg}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group(constants.APIPrefix)
	v1.GET("/stats", s.handleStats)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
}

// ServeHTTP lets the server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	addr := s.config.Addr()
	logger.Info("Starting HTTP server", "addr", addr)
	s.echo.Server.ReadHeaderTimeout = constants.ServerReadHeaderTimeout
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down within ServerShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

// requestLogger logs one line per request through the application logger.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}

// instrument records request metrics by route pattern. Scrapes of /metrics are not counted.
func instrument(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			done := m.RequestStarted()
			defer done()

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			m.ObserveRequest(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
			return nil
		}
	}
}

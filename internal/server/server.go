// Package server runs the HTTP API as a long lived process with graceful
// shutdown
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thenoetrevino/rolodex/internal/api"
	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/config"
)

// Server owns the listener, the echo instance and everything they need
type Server struct {
	app             *app.App
	authn           *auth.Authenticator
	echo            *echo.Echo
	http            *http.Server
	listener        net.Listener
	metrics         *Metrics
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// New opens the datastore, prepares token verification and binds the
// configured address. Nothing is served until Start.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	authn, err := auth.New(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	a, err := app.Open(ctx, cfg)
	if err != nil {
		authn.Close()
		return nil, err
	}

	s, err := NewWithApp(a, authn, cfg.HTTP, logger)
	if err != nil {
		authn.Close()
		_ = a.Close()
		return nil, err
	}
	return s, nil
}

// NewWithApp serves an already opened App. Shutdown closes both a and authn.
func NewWithApp(a *app.App, authn *auth.Authenticator, cfg config.HTTPConfig, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	metrics := NewMetrics()
	e := api.New(a, authn, cfg, logger)
	e.Use(metrics.Middleware())
	e.GET("/metrics", metrics.Handler())

	return &Server{
		app:             a,
		authn:           authn,
		echo:            e,
		http:            &http.Server{Handler: e, ReadHeaderTimeout: 10 * time.Second},
		listener:        listener,
		metrics:         metrics,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// Addr returns the bound address, useful when listening on port 0
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Metrics returns the request counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves until ctx is cancelled or the listener fails, then shuts
// down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("api listening", "addr", s.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info("api context cancelled, shutting down")
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		} else if err != nil {
			s.logger.Error("api serve error", "error", err)
		}
	}

	if shutdownErr := s.Shutdown(); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}

// Shutdown stops accepting requests, waits for in-flight ones up to the
// configured timeout and releases the App
func (s *Server) Shutdown() error {
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	// Serve closes the listener itself; this covers a server never started
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = append(errs, err)
	}
	s.authn.Close()
	if err := s.app.Close(); err != nil {
		errs = append(errs, err)
	}

	snap := s.metrics.GetSnapshot()
	s.logger.Info("api stopped", "requests", snap.Requests, "server_errors", snap.ServerErrors, "uptime", snap.Uptime)
	return errors.Join(errs...)
}

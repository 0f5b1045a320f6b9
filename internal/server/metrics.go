package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics tracks API request statistics using atomic operations for
// thread-safety
type Metrics struct {
	Requests     atomic.Int64
	ClientErrors atomic.Int64
	ServerErrors atomic.Int64
	InFlight     atomic.Int32
	StartTime    time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// Observe records one finished request by status code
func (m *Metrics) Observe(status int) {
	m.Requests.Add(1)
	switch {
	case status >= 500:
		m.ServerErrors.Add(1)
	case status >= 400:
		m.ClientErrors.Add(1)
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Requests     int64     `json:"requests"`
	ClientErrors int64     `json:"client_errors"`
	ServerErrors int64     `json:"server_errors"`
	InFlight     int32     `json:"in_flight"`
	StartTime    time.Time `json:"start_time"`
	Uptime       string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:     m.Requests.Load(),
		ClientErrors: m.ClientErrors.Load(),
		ServerErrors: m.ServerErrors.Load(),
		InFlight:     m.InFlight.Load(),
		StartTime:    m.StartTime,
		Uptime:       time.Since(m.StartTime).Round(time.Second).String(),
	}
}

// Middleware counts every request once its status is known. Errors are
// resolved through the echo error handler first so the recorded status
// matches the response.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.InFlight.Add(1)
			defer m.InFlight.Add(-1)

			if err := next(c); err != nil {
				c.Error(err)
			}
			m.Observe(c.Response().Status)
			return nil
		}
	}
}

// Handler serves the snapshot as JSON
func (m *Metrics) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, m.GetSnapshot())
	}
}

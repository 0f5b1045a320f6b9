// Package api exposes the services as a JSON HTTP API
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/thenoetrevino/rolodex/internal/app"
	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/config"
)

// Authenticator turns an Authorization header into a session
type Authenticator interface {
	SessionFromHeader(header string) (*auth.Session, error)
}

// New builds the echo server with every route registered
func New(a *app.App, authn Authenticator, cfg config.HTTPConfig, logger *slog.Logger) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler(logger)

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(logger))

	Register(e, a, authn)
	return e
}

// Register wires up all API routes on the provided Echo instance
func Register(e *echo.Echo, a *app.App, authn Authenticator) {
	e.GET("/healthz", healthz())

	g := e.Group("/api", requireSession(authn))
	g.GET("/dashboard", getDashboard(a))

	g.GET("/deals", listDeals(a))
	g.POST("/deals", createDeal(a))
	g.POST("/deals/positions", syncPositions(a))
	g.GET("/deals/:id", getDeal(a))
	g.PUT("/deals/:id", updateDeal(a))
	g.DELETE("/deals/:id", deleteDeal(a))

	g.GET("/contacts", listContacts(a))
	g.POST("/contacts", createContact(a))
	g.GET("/contacts/:id", getContact(a))
	g.PUT("/contacts/:id", updateContact(a))
	g.DELETE("/contacts/:id", deleteContact(a))
	g.GET("/contacts/:id/matches", contactMatches(a))
	g.GET("/contacts/:id/deals", contactDeals(a))
	g.GET("/contacts/:id/activities", listActivities(a))
	g.POST("/contacts/:id/activities", createActivity(a))
	g.DELETE("/contacts/:id/activities/:activityID", deleteActivity(a))

	g.GET("/matches", freeMatch(a))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

// requireSession authenticates every request of the group and stores the
// session on the request context
func requireSession(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := authn.SessionFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithSession(req.Context(), session)))
			return next(c)
		}
	}
}

func session(c echo.Context) *auth.Session {
	return auth.FromContext(c.Request().Context())
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Debug("request", attrs...)
			return nil
		},
	})
}

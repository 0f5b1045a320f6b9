package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/rolodex/internal/cache"
	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/database"
	activityservice "github.com/thenoetrevino/rolodex/internal/services/activity"
	contactservice "github.com/thenoetrevino/rolodex/internal/services/contact"
	dashboardservice "github.com/thenoetrevino/rolodex/internal/services/dashboard"
	dealservice "github.com/thenoetrevino/rolodex/internal/services/deal"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Rendered views, dropped by every mutation
	views cache.ViewCache

	logger  *slog.Logger
	closers []func() error

	// Service layer (business logic)
	DealService      dealservice.Service
	ContactService   contactservice.Service
	ActivityService  activityservice.Service
	DashboardService dashboardservice.Service
}

// New creates a new App with all services initialized.
// Without a view cache an in-memory one is used.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.views == nil {
		cfg.views = cache.NewMemory(0)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &App{
		repo:             repo,
		views:            cfg.views,
		logger:           cfg.logger,
		DealService:      dealservice.NewService(repo, cfg.views, dealservice.Options{AtomicSync: cfg.atomicSync}),
		ContactService:   contactservice.NewService(repo, cfg.views),
		ActivityService:  activityservice.NewService(repo, cfg.views),
		DashboardService: dashboardservice.NewService(repo, cfg.views),
	}
}

// Open connects to the configured datastore and view cache and builds the
// App on top of them. Close releases both.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, dialect, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	views, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize view cache: %w", err)
	}

	a := New(database.NewRepository(db, dialect),
		WithViewCache(views),
		WithAtomicSync(cfg.Deals.AtomicSync),
	)
	a.closers = append(a.closers, views.Close, db.Close)
	a.logger.Info("app opened", "driver", dialect.DriverName(), "redis", cfg.Redis.URL != "", "atomic_sync", cfg.Deals.AtomicSync)
	return a, nil
}

// NewWithDB builds an App over an already migrated connection
func NewWithDB(db *sql.DB, dialect database.Dialect, opts ...Option) *App {
	return New(database.NewRepository(db, dialect), opts...)
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Views returns the view cache shared by the services
func (a *App) Views() cache.ViewCache {
	return a.views
}

// Close releases the resources opened by Open
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

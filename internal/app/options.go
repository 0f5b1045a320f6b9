package app

import (
	"log/slog"

	"github.com/thenoetrevino/rolodex/internal/cache"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	views      cache.ViewCache
	atomicSync bool
	logger     *slog.Logger
}

// WithViewCache sets the cache that holds rendered views
func WithViewCache(views cache.ViewCache) Option {
	return func(cfg *appConfig) {
		cfg.views = views
	}
}

// WithAtomicSync makes board position batches all-or-nothing
func WithAtomicSync(atomic bool) Option {
	return func(cfg *appConfig) {
		cfg.atomicSync = atomic
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

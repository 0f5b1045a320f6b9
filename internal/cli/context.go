package cli

import (
	"context"

	"github.com/thenoetrevino/rolodex/internal/config"
)

type (
	cliKey    struct{}
	configKey struct{}
)

// WithCLI stores a ready CLI in ctx. Commands run with this context use it
// instead of opening their own, and leave closing it to the caller.
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// WithConfig stores the loaded configuration in ctx
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored in ctx, loading it from
// disk when absent
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// GetCLIFromContext returns the CLI for a command. The caller must Close it.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if c, ok := ctx.Value(cliKey{}).(*CLI); ok && c != nil {
		return &CLI{App: c.App, Session: c.Session}, nil
	}

	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg)
}

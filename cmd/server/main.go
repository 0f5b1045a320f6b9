package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/rolodex/internal/config"
	"github.com/thenoetrevino/rolodex/internal/logging"
	"github.com/thenoetrevino/rolodex/internal/server"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// A server logs to stderr unless a file is configured
	if cfg.Log.File == "" {
		cfg.Log.File = "-"
	}
	closer, err := logging.Init(cfg.Log)
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	srv, err := server.New(ctx, cfg, logging.Logger)
	if err != nil {
		slog.Error("failed to start api", "error", err)
		os.Exit(1)
	}

	slog.Info("rolodex api starting", "addr", srv.Addr(), "pid", os.Getpid())

	// Start the server (blocks until shutdown)
	if err := srv.Start(ctx); err != nil {
		slog.Error("api error", "error", err)
		os.Exit(1)
	}

	slog.Info("rolodex api shut down gracefully")
}

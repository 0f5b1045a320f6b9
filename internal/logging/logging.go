// Package logging configures the process-wide slog logger
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/rolodex/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system. By default logs go to
// ~/.rolodex/logs/rolodex.log so they never interleave with CLI or TUI output;
// File "-" sends them to stderr (the API server does this).
// The returned closer releases the log file, if any.
func Init(cfg config.LogConfig) (io.Closer, error) {
	out, closer, err := openOutput(cfg.File)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same destination
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return closer, nil
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(path string) (io.Writer, io.Closer, error) {
	if path == "-" {
		return os.Stderr, io.NopCloser(nil), nil
	}

	if path == "" {
		dataDir, err := config.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dataDir, "logs", "rolodex.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

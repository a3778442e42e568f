// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options control where and how much is logged.
type Options struct {
	// Debug sends debug-level output to File, since the TUI owns the terminal.
	Debug bool
	Level string
	File  string
}

// New creates a logger, installs it via slog.SetDefault, and returns a close
// function for the underlying file (a no-op for stderr).
func New(opts Options) (*slog.Logger, func() error, error) {
	var (
		out     io.Writer = os.Stderr
		closeFn           = func() error { return nil }
		level             = parseLevel(opts.Level, slog.LevelWarn)
	)
	if opts.Debug {
		if opts.File == "" {
			return nil, nil, fmt.Errorf("debug log path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
		closeFn = file.Close
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// Package logger implements a ports.Logger adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"

	"go.bud.dev/bud/internal/core/ports"
)

// Logger implements ports.Logger on top of a slog.Logger writing
// human-readable text to an io.Writer (stderr when built with New).
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing to os.Stderr at slog.LevelInfo.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w at slog.LevelInfo.
func NewWithWriter(w io.Writer) ports.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

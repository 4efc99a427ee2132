package app

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// AtomicLogger holds the active slog.Logger behind an atomic pointer so a
// config reload can swap the level or format without racing in-flight calls.
type AtomicLogger struct {
	ptr atomic.Pointer[slog.Logger]
}

// NewAtomicLogger wraps an initial logger.
func NewAtomicLogger(l *slog.Logger) *AtomicLogger {
	a := &AtomicLogger{}
	a.ptr.Store(l)
	return a
}

// Get returns the current logger.
func (a *AtomicLogger) Get() *slog.Logger {
	return a.ptr.Load()
}

// Set replaces the current logger.
func (a *AtomicLogger) Set(l *slog.Logger) {
	a.ptr.Store(l)
}

func (app *Application) setupLogger() error {
	app.logger = NewAtomicLogger(buildLogger(
		app.config.Logging.Level,
		app.config.Logging.Format,
	))
	return nil
}

// buildLogger creates and configures the logger.
func buildLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// slogAdapter adapts slog.Logger to the domain logger.Logger interface.
type slogAdapter struct {
	logger *AtomicLogger
}

func (a *slogAdapter) Debug(msg string, keysAndValues ...any) {
	a.logger.Get().Debug(msg, keysAndValues...)
}

func (a *slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Get().Info(msg, keysAndValues...)
}

func (a *slogAdapter) Warn(msg string, keysAndValues ...any) {
	a.logger.Get().Warn(msg, keysAndValues...)
}

func (a *slogAdapter) Error(msg string, keysAndValues ...any) {
	a.logger.Get().Error(msg, keysAndValues...)
}

package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger interface for structured logging. Fields are alternating
// key/value pairs.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// SlogLogger implements Logger on top of log/slog
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a logger writing JSON records in production and text
// records everywhere else.
func New(environment string) Logger {
	return NewWithWriter(os.Stdout, environment)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, environment string) Logger {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() Logger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Info logs an info message
func (l *SlogLogger) Info(msg string, fields ...interface{}) {
	l.logger.Info(msg, fields...)
}

// Error logs an error message
func (l *SlogLogger) Error(msg string, err error, fields ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, fields...)...)
}

// Warn logs a warning message
func (l *SlogLogger) Warn(msg string, fields ...interface{}) {
	l.logger.Warn(msg, fields...)
}

// Debug logs a debug message
func (l *SlogLogger) Debug(msg string, fields ...interface{}) {
	l.logger.Debug(msg, fields...)
}

// Fatal logs a fatal error and exits
func (l *SlogLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.Error(msg, err, fields...)
	os.Exit(1)
}

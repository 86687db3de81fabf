package server

import (
	"context"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger interface for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// DefaultLogger writes JSON lines through zerolog
type DefaultLogger struct {
	logger zerolog.Logger
}

// NewDefaultLogger logs at info level to stdout
func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stdout, zerolog.InfoLevel)
}

func NewLogger(w io.Writer, level zerolog.Level) *DefaultLogger {
	return &DefaultLogger{
		logger: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// NewLoggerFromConfig parses a level name such as "debug" or "warn"
func NewLoggerFromConfig(w io.Writer, level string) (*DefaultLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return NewLogger(w, lvl), nil
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.log(l.logger.Debug(), msg, fields...)
}

func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.log(l.logger.Info(), msg, fields...)
}

func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.log(l.logger.Error(), msg, fields...)
}

func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.log(l.logger.Warn(), msg, fields...)
}

func (l *DefaultLogger) log(ev *zerolog.Event, msg string, fields ...Field) {
	if ev == nil {
		// level disabled
		return
	}
	for _, f := range fields {
		ev = ev.Interface(f.Key, sanitizeValue(f.Key, f.Value))
	}
	ev.Msg(msg)
}

// SlogLogger adapts a *slog.Logger
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewOTelLogger sends records to the global OpenTelemetry logger provider
func NewOTelLogger(name string) *SlogLogger {
	return NewSlogLogger(otelslog.NewLogger(name))
}

func (l *SlogLogger) Debug(msg string, fields ...Field) {
	l.log(slog.LevelDebug, msg, fields...)
}

func (l *SlogLogger) Info(msg string, fields ...Field) {
	l.log(slog.LevelInfo, msg, fields...)
}

func (l *SlogLogger) Error(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields...)
}

func (l *SlogLogger) Warn(msg string, fields ...Field) {
	l.log(slog.LevelWarn, msg, fields...)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields ...Field) {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, sanitizeValue(f.Key, f.Value)))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

const maxValueLen = 100

// StackKey holds a recovered panic's stack trace. Its value is never truncated.
const StackKey = "stack"

// Long strings are cut so request data cannot flood the log. The cut backs off
// to a rune boundary so the value stays valid UTF-8.
func sanitizeValue(key string, v interface{}) interface{} {
	s, ok := v.(string)
	if !ok || key == StackKey || len(s) <= maxValueLen {
		return v
	}
	cut := maxValueLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...[truncated]"
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (n *NullLogger) Debug(msg string, fields ...Field) {}
func (n *NullLogger) Info(msg string, fields ...Field)  {}
func (n *NullLogger) Error(msg string, fields ...Field) {}
func (n *NullLogger) Warn(msg string, fields ...Field)  {}

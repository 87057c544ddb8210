package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging surface every floorsync component receives.
// Key/value pairs follow slog conventions.
type Logger interface {
	Debug(msg string, kv ...any)
	Debugf(format string, args ...any)
	Info(msg string, kv ...any)
	Infof(format string, args ...any)
	Warn(msg string, kv ...any)
	Warnf(format string, args ...any)
	Error(msg string, kv ...any)
	Errorf(format string, args ...any)
	With(kv ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// NewLogger returns a text logger on stderr at the given level.
// Unknown levels fall back to info.
func NewLogger(level string) Logger {
	return NewLoggerTo(os.Stderr, level)
}

func NewLoggerTo(w io.Writer, level string) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &slogLogger{l: slog.New(h)}
}

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

func (s *slogLogger) Debug(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s *slogLogger) Info(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s *slogLogger) Warn(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s *slogLogger) Error(msg string, kv ...any) { s.l.Error(msg, kv...) }

func (s *slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s *slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s *slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s *slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

func (s *slogLogger) With(kv ...any) Logger {
	return &slogLogger{l: s.l.With(kv...)}
}

type noopLogger struct{}

// NewNoopLogger discards everything. Tests and nil-logger defaults use it.
func NewNoopLogger() Logger { return noopLogger{} }

func (noopLogger) Debug(string, ...any)  {}
func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Info(string, ...any)   {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warn(string, ...any)   {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Error(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}
func (n noopLogger) With(...any) Logger  { return n }

// OrNoop returns l, or the noop logger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NewNoopLogger()
	}
	return l
}

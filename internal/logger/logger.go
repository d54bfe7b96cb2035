package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with printf-style helpers.
type Logger struct {
	*slog.Logger
}

// New returns a logger writing to stderr.
func New(level, format string) *Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a logger writing to w. format is "json" or "text";
// anything else falls back to text.
func NewWithWriter(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard, "error", "text")
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

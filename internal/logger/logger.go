// Package logger provides structured logging and run metrics for the
// fencing-results tools.
//
// Logging is backed by zerolog. Entries are JSON by default; the console
// format is meant for interactive use. Fields are passed as a map so callers
// stay independent of the logging library:
//
//	logger.Info("extracted results", logger.Fields{
//	    "source": "engarde",
//	    "rows":   42,
//	})
//
//	logger.Error("fetch failed", logger.Fields{"url": u}, err)
//
// Metrics are in-process counters, gauges and timings summarised at the end
// of a run:
//
//	logger.IncrCounter("fetch.requests")
//	logger.RecordTiming("fetch.duration", d)
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel reads a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	zl zerolog.Logger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(LevelInfo, os.Stderr)
)

// New creates a JSON logger writing to w. Messages below level are dropped.
func New(level Level, w io.Writer) *Logger {
	zl := zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewConsole creates a logger with human-readable output.
func NewConsole(level Level, w io.Writer) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	zl := zerolog.New(cw).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// SetDefault replaces the logger used by the package-level functions.
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Default returns the logger used by the package-level functions.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	var ev *zerolog.Event
	switch level {
	case LevelDebug:
		ev = l.zl.Debug()
	case LevelWarn:
		ev = l.zl.Warn()
	case LevelError:
		ev = l.zl.Error()
	default:
		ev = l.zl.Info()
	}
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(message)
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a problem that did not stop the run.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs a failure together with its error.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Debug logs with the default logger
func Debug(message string, fields Fields) {
	Default().Debug(message, fields)
}

// Info logs with the default logger
func Info(message string, fields Fields) {
	Default().Info(message, fields)
}

// Warn logs with the default logger
func Warn(message string, fields Fields) {
	Default().Warn(message, fields)
}

// Error logs with the default logger
func Error(message string, fields Fields, err error) {
	Default().Error(message, fields, err)
}

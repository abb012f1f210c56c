// Package logger writes leveled diagnostics for tp to a log file. Terminal
// output stays reserved for user-facing messages.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	slogger  *slog.Logger
	levelVar = new(slog.LevelVar)
	logFile  *os.File
)

// DefaultPath returns the log file used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "tp-debug.log")
}

// Init opens path for appending and routes all log calls to it.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	logFile = f
	slogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	return nil
}

// SetOutput routes logs to w. Used by tests and by callers without a log file.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	slogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// SetDebug toggles debug level output.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}

func logAt(level slog.Level, msg string, args ...any) {
	mu.Lock()
	l := slogger
	mu.Unlock()

	if l == nil || !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, msg, args...)
}

// Debug logs msg with key/value attributes at debug level.
func Debug(msg string, args ...any) { logAt(slog.LevelDebug, msg, args...) }

func Info(msg string, args ...any) { logAt(slog.LevelInfo, msg, args...) }

func Warn(msg string, args ...any) { logAt(slog.LevelWarn, msg, args...) }

func Error(msg string, args ...any) { logAt(slog.LevelError, msg, args...) }

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	slogger = nil
}

// Reset drops all state so Init can be called again.
func Reset() {
	Close()
	levelVar.Set(slog.LevelInfo)
}

package pkg

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component tags log records with the part of the driver that produced them.
type Component string

const (
	ComponentRegistry Component = "registry"
	ComponentScan     Component = "scan"
	ComponentDispatch Component = "dispatch"
	ComponentHeap     Component = "heap"
	ComponentBoard    Component = "board"
	ComponentSim      Component = "sim"
)

var (
	logger   *slog.Logger
	logLevel = new(slog.LevelVar)
	logMu    sync.RWMutex
)

func init() {
	logLevel.Set(slog.LevelWarn)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// SetLogLevel changes the minimum level of the shared logger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// LogLevel returns the minimum level of the shared logger.
func LogLevel() slog.Level {
	return logLevel.Level()
}

// SetLogger replaces the shared logger. A nil logger restores the default
// text logger on stderr.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NewLogger(os.Stderr)
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// Logger returns the shared logger.
func Logger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// NewLogger returns a text logger on w that honours SetLogLevel.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// NewJSONLogger returns a JSON logger on w that honours SetLogLevel.
func NewJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func LogDebug(c Component, msg string, args ...any) { emit(slog.LevelDebug, c, msg, args) }
func LogInfo(c Component, msg string, args ...any)  { emit(slog.LevelInfo, c, msg, args) }
func LogWarn(c Component, msg string, args ...any)  { emit(slog.LevelWarn, c, msg, args) }
func LogError(c Component, msg string, args ...any) { emit(slog.LevelError, c, msg, args) }

func emit(level slog.Level, c Component, msg string, args []any) {
	l := Logger()
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.Log(ctx, level, msg, append([]any{"component", string(c)}, args...)...)
}

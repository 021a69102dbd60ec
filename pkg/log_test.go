package pkg

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLogger(t *testing.T, l *slog.Logger, level slog.Level) {
	t.Helper()
	prevLevel := LogLevel()
	prev := Logger()
	SetLogger(l)
	SetLogLevel(level)
	t.Cleanup(func() {
		SetLogger(prev)
		SetLogLevel(prevLevel)
	})
}

func TestSetLogLevel(t *testing.T) {
	prev := LogLevel()
	defer SetLogLevel(prev)

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		SetLogLevel(level)
		assert.Equal(t, level, LogLevel())
	}
}

func TestLogComponent(t *testing.T) {
	var buf bytes.Buffer
	withLogger(t, NewLogger(&buf), slog.LevelDebug)

	LogDebug(ComponentScan, "transition", "key", "A")
	out := buf.String()
	assert.Contains(t, out, "transition")
	assert.Contains(t, out, "component=scan")
	assert.Contains(t, out, "key=A")
}

func TestLogFiltered(t *testing.T) {
	var buf bytes.Buffer
	withLogger(t, NewLogger(&buf), slog.LevelWarn)

	LogDebug(ComponentHeap, "hidden")
	LogInfo(ComponentHeap, "hidden")
	assert.Empty(t, buf.String())

	LogWarn(ComponentHeap, "shown")
	LogError(ComponentHeap, "also shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "also shown")
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	withLogger(t, NewJSONLogger(&buf), slog.LevelInfo)

	LogInfo(ComponentDispatch, "delivered", "seq", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "delivered", rec["msg"])
	assert.Equal(t, "dispatch", rec["component"])
	assert.EqualValues(t, 7, rec["seq"])
}

func TestSetLoggerNil(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	SetLogger(nil)
	assert.NotNil(t, Logger())
}

package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"resumenapi/internal/config"
)

func lastEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInitializeLoggerWritesJSONFile(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "nested", "app.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: logFile,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entry := lastEntry(t, content)
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Same(t, logger, GetLogger())
}

func TestInitializeLoggerOnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)
	second, err := InitializeCLILogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestInitializeLoggerBadPath(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := InitializeLogger(config.LoggingConfig{
		Output:   "both",
		FilePath: filepath.Join(blocker, "app.log"),
	})
	assert.Error(t, err)
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")

	ctx := WithTraceID(context.Background(), "test-trace-123")
	logger.InfoContext(ctx, "with trace")
	assert.Equal(t, "test-trace-123", lastEntry(t, buf.Bytes())["trace_id"])

	buf.Reset()
	logger.Info("without trace")
	_, present := lastEntry(t, buf.Bytes())["trace_id"]
	assert.False(t, present)
}

func TestGetTraceIDFromSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))

	ctx = WithTraceID(ctx, "explicit")
	assert.Equal(t, "explicit", GetTraceID(ctx), "explicit id wins over span")
}

func TestLogLevels(t *testing.T) {
	tests := map[string]bool{
		"debug":   true,
		"info":    false,
		"warning": false,
		"error":   false,
		"bogus":   false,
	}
	for level, debugVisible := range tests {
		t.Run(level, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, level).Debug("debug line")
			assert.Equal(t, debugVisible, buf.Len() > 0)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)), "existing id is kept")

	var buf bytes.Buffer
	WithComponent(NewLogger(&buf, "info"), "report_service").Info("hello")
	assert.Equal(t, "report_service", lastEntry(t, buf.Bytes())["component"])
}

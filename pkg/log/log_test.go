package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	config "github.com/mwantia/cookbook/internal/config/server"
	"github.com/mwantia/fabric/pkg/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   Debug,
		"DEBUG":   Debug,
		"info":    Info,
		"":        Info,
		"warning": Warn,
		"warn":    Warn,
		"error":   Error,
		"fatal":   Fatal,
		"verbose": Info,
	}
	for value, expected := range tests {
		assert.Equal(t, expected, Parse(value), value)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", Warn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLoggerService("cookbook", config.LogServerConfig{Level: "info", JSON: true}, &buf)

	logger.Named("api").Info("listed %d users", 3)

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "cookbook/api", entry.Service)
	assert.Equal(t, "listed 3 users", entry.Message)
	assert.NotEmpty(t, entry.Timestamp)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLoggerService("", config.LogServerConfig{Level: "warn"}, &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown %s", "warning")
	logger.Error("shown error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[0], "shown warning")
	assert.Contains(t, lines[1], "ERROR")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestNamedWithoutParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLoggerService("", config.LogServerConfig{}, &buf)

	logger.Named("store").Info("connected")
	assert.Contains(t, buf.String(), "[store] connected")
}

func TestFatalDoesNotExitWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLoggerService("", config.LogServerConfig{}, &buf)

	logger.Fatal("boom")
	assert.Contains(t, buf.String(), "FATAL")
}

func TestLoggerTagProcessor(t *testing.T) {
	ltp := NewLoggerTagProcessor()

	assert.Equal(t, 50, ltp.GetPriority())
	assert.True(t, ltp.CanProcess("logger"))
	assert.True(t, ltp.CanProcess("Logger:api"))
	assert.False(t, ltp.CanProcess("inject"))
	assert.False(t, ltp.CanProcess("loggers"))
}

func TestResolveLogger_Unregistered(t *testing.T) {
	sc := container.NewServiceContainer()

	_, err := ResolveLogger(context.Background(), sc, "api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no logger service registered")
}

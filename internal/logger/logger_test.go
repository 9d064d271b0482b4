package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	New(zap.New(core))
	return logs
}

func TestInit(t *testing.T) {
	Init("debug", true)
	assert.NotNil(t, log)

	Init("not-a-level", false)
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Info("slot created", "slot_id", 7)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "slot created", entry.Message)
	assert.Equal(t, int64(7), entry.ContextMap()["slot_id"])
}

func TestErrorf(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Errorf("failed to queue %s", "reminder")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to queue reminder", logs.All()[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestDebugFilteredAtInfo(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	Debug("hidden")
	Debugf("hidden %d", 1)

	assert.Equal(t, 0, logs.Len())
}

func TestDebugEnabled(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	Debugf("test %s", "debug")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test debug", logs.All()[0].Message)
}

func TestWithError(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	WithError(errors.New("boom")).Info("test with error")

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap(), "error")
}

func TestWithFields(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	WithFields(map[string]interface{}{
		"key1": "value1",
		"key2": 123,
	}).Info("test with fields")

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "value1", ctx["key1"])
	assert.Equal(t, int64(123), ctx["key2"])
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildAddsServiceFields(t *testing.T) {
	var buf bytes.Buffer
	log := build(Config{Level: "debug", AppName: "salesboard", Environment: "test"}, zapcore.AddSync(&buf))

	log.Debug("hello", zap.String("stage_id", "new"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "salesboard", entry["app"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "new", entry["stage_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestBuildFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := build(Config{Level: "chatty"}, zapcore.AddSync(&buf))

	log.Debug("hidden")
	log.Info("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	base := zap.NewNop()
	assert.Same(t, base, WithRequestID(context.Background(), base))
	assert.NotSame(t, base, WithRequestID(ctx, base))
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONIncludesBaseAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: FormatJSON, ServiceName: "homestead", Environment: "test"}, &buf)
	l.Debug("tilled", "x", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tilled", entry["msg"])
	assert.Equal(t, "homestead", entry["service"])
	assert.Equal(t, "test", entry["environment"])
	assert.EqualValues(t, 2, entry["x"])
}

func TestConfig_LogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}

func TestConfig_IsJSONFallsBackToEnvironment(t *testing.T) {
	assert.True(t, Config{Environment: "production"}.IsJSON())
	assert.False(t, Config{Environment: "dev"}.IsJSON())
	assert.False(t, Config{Format: FormatText, Environment: "prod"}.IsJSON())
}

func TestRequestIDRoundTrip(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	id := GenerateRequestID()
	ctx := WithRequestID(context.Background(), id)
	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Len(t, got, 36)
}

package logger

import (
	"bytes"
	"context"
	"course_recommender/internal/config"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		level string
		want  zapcore.Level
	}{
		{"debug mode", "debug", "", zap.DebugLevel},
		{"release mode", "release", "", zap.InfoLevel},
		{"explicit level", "debug", "warn", zap.WarnLevel},
		{"invalid level falls back", "release", "loud", zap.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Server: config.ServerConfig{Mode: tt.mode},
				Log:    config.LogConfig{Level: tt.level},
			}
			require.Equal(t, tt.want, levelFor(cfg))
		})
	}
}

func TestNewWritesJSONWithService(t *testing.T) {
	var file, console bytes.Buffer
	log := New(zap.InfoLevel, &file, &console)

	log.Debug("hidden")
	log.Info("generated", zap.Int("count", 3))
	require.NoError(t, log.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(file.Bytes()), &entry))
	require.Equal(t, "generated", entry["msg"])
	require.Equal(t, "course-recommender", entry["service"])
	require.Equal(t, float64(3), entry["count"])
	require.Contains(t, console.String(), "generated")
	require.NotContains(t, console.String(), "hidden")
}

func TestFromContextAddsTraceID(t *testing.T) {
	var file bytes.Buffer
	prev := Log
	Log = New(zap.InfoLevel, &file, &bytes.Buffer{})
	defer func() { Log = prev }()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	FromContext(ctx).Info("traced")
	require.Contains(t, file.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)

	require.Same(t, Log, FromContext(context.Background()))
}

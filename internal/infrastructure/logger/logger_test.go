package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("creates json logger", func(t *testing.T) {
		l, err := New(&Config{Level: "info", Format: "json", Output: "stdout", TimeFormat: "2006-01-02"})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
		assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
		assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("carries request and reviewer IDs", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		base := zap.New(core)

		ctx := context.Background()
		ctx, _ = WithRequestID(ctx, base, "req-123")
		ctx, _ = WithReviewerID(ctx, FromContext(ctx), "rev-456")

		L(ctx).Info("month closed")

		entries := logs.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, "rev-456", fields["reviewer_id"])
	})

	t.Run("missing logger falls back to no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
		// Must not panic.
		L(context.Background()).Info("ignored")
	})

	t.Run("no active span leaves logger unchanged", func(t *testing.T) {
		base := zap.NewNop()
		assert.Equal(t, base, WithTraceContext(context.Background(), base))
		assert.Empty(t, GetTraceID(context.Background()))
	})
}

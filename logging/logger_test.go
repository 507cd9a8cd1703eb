package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopLogger(t *testing.T) {
	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		l.Debug("test message", "key", "value")
		l.Info("test message", "key", "value")
		l.Warn("test message", "key", "value")
		l.Error("test message", "key", "value")
	})

	t.Run("With returns same NopLogger", func(t *testing.T) {
		l := NopLogger{}
		_, ok := l.With("key", "value").(NopLogger)
		assert.True(t, ok, "With should return NopLogger")
	})
}

func TestOrNop(t *testing.T) {
	_, ok := OrNop(nil).(NopLogger)
	assert.True(t, ok)

	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, OrNop(adapter))
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	t.Run("levels and attributes reach the handler", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("debug message", "location", "extra.xml")
		adapter.Warn("warn message")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG")
		assert.Contains(t, out, "debug message")
		assert.Contains(t, out, "location=extra.xml")
		assert.Contains(t, out, "level=WARN")
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

		adapter.With("run", "abc").Info("resolved")
		assert.True(t, strings.Contains(buf.String(), "run=abc"), buf.String())
	})
}

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewZapAdapter(zap.New(core))

	adapter.With("run", "r1").Info("resolution complete", "locations", 3)
	adapter.Error("root document unreadable")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "resolution complete", entries[0].Message)
	assert.Equal(t, "r1", entries[0].ContextMap()["run"])
	assert.EqualValues(t, 3, entries[0].ContextMap()["locations"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestNewZapAdapterNil(t *testing.T) {
	adapter := NewZapAdapter(nil)
	adapter.Info("discarded")
}

func TestNewZap(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l, err := NewZap(Config{})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("debug json", func(t *testing.T) {
		l, err := NewZap(Config{Level: "debug", Encoding: "json"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewZap(Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := NewZap(Config{Encoding: "xml"})
		assert.Error(t, err)
	})
}

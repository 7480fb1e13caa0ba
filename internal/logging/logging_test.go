package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(&buf, "info", "json")).With("component", "api")
		logger.Debug("hidden")
		logger.Info("upload analyzed", "rows", 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "upload analyzed", entry["msg"])
		assert.Equal(t, "api", entry["component"])
		assert.Equal(t, float64(3), entry["rows"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		slog.New(NewHandler(&buf, "debug", "text")).Debug("record dropped", "line", 7)
		assert.Contains(t, buf.String(), "record dropped")
		assert.Contains(t, buf.String(), "line=7")
	})
}

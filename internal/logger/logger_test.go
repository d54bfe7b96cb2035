package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestTextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "text")

	log.Infof("dropped %d", 1)
	log.Warnf("kept %d", 2)
	log.Errorf("also kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `msg="kept 2"`)
	assert.Contains(t, out, "level=ERROR")
}

func TestJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "json")

	log.Debugf("imported %d trades", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "imported 3 trades", entry["msg"])
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Discard().Errorf("nothing to see")
	})
}

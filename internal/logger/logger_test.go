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
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarning,
		"warning": LevelWarning,
		"error":   LevelError,
		"":        DefaultLevel,
		"bogus":   DefaultLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestParseHandler(t *testing.T) {
	assert.Equal(t, JSONHandler, ParseHandler("json"))
	assert.Equal(t, TextHandler, ParseHandler("text"))
	assert.Equal(t, TextHandler, ParseHandler("txt"))
	assert.Equal(t, DevHandler, ParseHandler(""))
}

func TestJSONHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf), WithHandler(JSONHandler), WithLevel(LevelWarning))

	l.Info("dropped")
	l.Warn("kept", "capacity", 37)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.EqualValues(t, 37, rec["capacity"])
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithWriter(&buf), WithHandler(TextHandler), WithLevel(LevelTrace))

	l.Log(t.Context(), LevelTrace, "walk")
	assert.Contains(t, buf.String(), "level=TRACE")
}

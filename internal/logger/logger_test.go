package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/comitanigiacomo/kanso-habits/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestInitWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWriter(&buf, slog.LevelInfo, true)

	logger.Debug("hidden")
	logger.With("user_id", "u1").Info("toggled", "habit_id", "h1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "toggled", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "h1", entry["habit_id"])
}

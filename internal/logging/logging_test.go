package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"stressless/internal/config"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel(" INFO ")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestFileCoreKeepsInfoWhenConsoleIsQuiet(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "stressless.log")

	logger, closeFn, err := build(config.LoggingConfig{Level: "warn", File: file, MaxSizeMB: 1}, zapcore.AddSync(&console))
	require.NoError(t, err)

	logger.Info("level up")
	logger.Warn("slot is malformed")
	closeFn()

	require.NotContains(t, console.String(), "level up")
	require.Contains(t, console.String(), "slot is malformed")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "level up", entry["msg"])
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewFansOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "wastelandhub.log")
	var console bytes.Buffer
	logger, closeLog, err := New(Options{Path: path, Level: "warn", Console: &console})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("unrecognized menu action", "action", "hack")
	require.NoError(t, closeLog())

	require.Contains(t, console.String(), "action=hack")
	require.NotContains(t, console.String(), "dropped")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "WARN", rec["level"])
	require.Equal(t, "hack", rec["action"])
}

func TestNewWithoutSinks(t *testing.T) {
	logger, closeLog, err := New(Options{})
	require.NoError(t, err)
	logger.Error("nowhere")
	require.NoError(t, closeLog())
}

func TestNewRejectsLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

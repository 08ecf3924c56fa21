package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wellspring/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InteractiveWithoutDebugIsNop(t *testing.T) {
	l, err := New(config.LoggingConfig{Level: "info"}, Options{Mode: ModeInteractive})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1), "nop logger should not enable any level")
}

func TestNew_DebugModeWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "well.log")
	cfg := config.LoggingConfig{Level: "debug", DebugMode: true, File: path}

	l, err := New(cfg, Options{Mode: ModeInteractive})
	require.NoError(t, err)

	For(l, CategoryRoll).Info("spin started")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "spin started")
	assert.Contains(t, string(data), `"logger":"roll"`)
}

func TestNew_DisabledCategoryIsDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "well.log")
	cfg := config.LoggingConfig{
		Level:      "info",
		DebugMode:  true,
		File:       path,
		Categories: map[string]bool{"roll": false},
	}

	l, err := New(cfg, Options{})
	require.NoError(t, err)

	For(l, CategoryRoll).Info("hidden")
	For(l, CategoryRitual).Info("visible")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.True(t, strings.Contains(string(data), "visible"))
}

func TestNew_DebugModeNeedsFile(t *testing.T) {
	_, err := New(config.LoggingConfig{DebugMode: true}, Options{})
	assert.Error(t, err)
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty"}, Options{})
	assert.Error(t, err)
}

func TestFor_NilLogger(t *testing.T) {
	l := For(nil, CategoryUI)
	require.NotNil(t, l)
	l.Info("does not panic")
}

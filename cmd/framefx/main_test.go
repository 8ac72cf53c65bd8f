package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/framefx/config"
	"github.com/opd-ai/framefx/effects"
)

func TestParseCLIFlagsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framefx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  mode: invert\n  brightness_delta: 10\n"), 0o644))

	cli, err := parseCLIFlags([]string{"-config", path, "-mode", "brightness", "-out", "/tmp/frames"}, io.Discard)
	require.NoError(t, err)

	cfg, err := loadConfig(cli)
	require.NoError(t, err)
	assert.Equal(t, effects.ModeBrightness, cfg.Pipeline.Mode)
	assert.Equal(t, 10, cfg.Pipeline.BrightnessDelta, "unset -delta keeps the file value")
	assert.Equal(t, "/tmp/frames", cfg.Sink.Dir)

	cli, err = parseCLIFlags([]string{"-config", path, "-delta", "-40"}, io.Discard)
	require.NoError(t, err)
	cfg, err = loadConfig(cli)
	require.NoError(t, err)
	assert.Equal(t, effects.ModeInvert, cfg.Pipeline.Mode)
	assert.Equal(t, -40, cfg.Pipeline.BrightnessDelta)
}

func TestLoadConfigErrors(t *testing.T) {
	cli, err := parseCLIFlags([]string{"-mode", "sepia"}, io.Discard)
	require.NoError(t, err)
	_, err = loadConfig(cli)
	assert.ErrorIs(t, err, effects.ErrUnknownMode)

	cli, err = parseCLIFlags([]string{"-log-level", "loud"}, io.Discard)
	require.NoError(t, err)
	_, err = loadConfig(cli)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = parseCLIFlags([]string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestRunPatternToFiles(t *testing.T) {
	out := t.TempDir()

	cfg := config.Default()
	cfg.Pipeline.Mode = effects.ModeInvert
	cfg.Pipeline.QueueSize = 8
	cfg.Source.Width = 16
	cfg.Source.Height = 8
	cfg.Source.FPS = 60
	cfg.Source.Limit = 3
	cfg.Sink.Dir = out
	require.NoError(t, config.Validate(cfg))

	stats, err := run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.Received)
	assert.Equal(t, uint64(3), stats.Processed)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "frame-000001-invert.png", entries[0].Name())
}

func TestRunProbeWithoutSink(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Mode = effects.ModeProbe
	cfg.Source.Width = 4
	cfg.Source.Height = 4
	cfg.Source.FPS = 60
	cfg.Source.Limit = 2

	stats, err := run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Processed)
}

func TestRunCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Width = 4
	cfg.Source.Height = 4

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run(ctx, cfg)
	assert.NoError(t, err)
}

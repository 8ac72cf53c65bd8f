package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/framefx/effects"
	"github.com/opd-ai/framefx/frame"
	"github.com/opd-ai/framefx/pipeline"
	"github.com/opd-ai/framefx/source"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestParseMergesOverDefault(t *testing.T) {
	data := []byte(`
log:
  level: debug
  format: json
pipeline:
  mode: brightness
  brightness_delta: -30
  drop_policy: newest
source:
  type: pattern
  pattern: bars
  fps: 60
  limit: 10
sink:
  dir: /tmp/out
  format: bmp
  annotate: true
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, effects.ModeBrightness, cfg.Pipeline.Mode)
	assert.Equal(t, -30, cfg.Pipeline.BrightnessDelta)
	assert.Equal(t, pipeline.DropNewest, cfg.Pipeline.DropPolicy)
	assert.Equal(t, 4, cfg.Pipeline.QueueSize, "unset fields keep defaults")
	assert.Equal(t, 1.5, cfg.Pipeline.ContrastFactor)
	assert.Equal(t, 640, cfg.Source.Width)
	assert.Equal(t, "bmp", cfg.Sink.Format)
	assert.True(t, cfg.Sink.Annotate)

	pc := cfg.PipelineConfig()
	assert.Equal(t, effects.Params{BrightnessDelta: -30, ContrastFactor: 1.5}, pc.Params)
	assert.Equal(t, pipeline.DropNewest, pc.DropPolicy)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "log: [unterminated"},
		{"unknown mode", "pipeline:\n  mode: sepia\n"},
		{"unknown drop policy", "pipeline:\n  drop_policy: sometimes\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"zero queue", "pipeline:\n  queue_size: 0\n"},
		{"unknown source", "source:\n  type: camera\n"},
		{"dir without path", "source:\n  type: dir\n"},
		{"bad pattern", "source:\n  pattern: plaid\n"},
		{"bad color", "source:\n  color: red\n"},
		{"zero fps", "source:\n  fps: 0\n"},
		{"bad sink format", "sink:\n  dir: out\n  format: tiff\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framefx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  mode: probe\n  report_every: 6\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, effects.ModeProbe, cfg.Pipeline.Mode)
	assert.Equal(t, 6, cfg.Pipeline.ReportEvery)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteCanBeParsed(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.Mode = effects.ModeContrast

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))
	assert.Contains(t, buf.String(), "mode: contrast")
	assert.Contains(t, buf.String(), "drop_policy: oldest")

	parsed, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestNewSource(t *testing.T) {
	cfg := Default()
	cfg.Source.Pattern = "solid"
	cfg.Source.Color = "#1E140A"

	src, err := cfg.NewSource()
	require.NoError(t, err)
	ps, ok := src.(*source.PatternSource)
	require.True(t, ok)
	assert.Equal(t, frame.Pixel{B: 10, G: 20, R: 30, A: 255}, ps.Color)
	assert.Equal(t, source.PatternSolid, ps.Pattern)

	cfg.Source.Type = SourceDir
	cfg.Source.Dir = t.TempDir()
	cfg.Source.Watch = true
	src, err = cfg.NewSource()
	require.NoError(t, err)
	ds, ok := src.(*source.DirSource)
	require.True(t, ok)
	assert.True(t, ds.Watch)
}

func TestLogConfigApply(t *testing.T) {
	logger := logrus.New()

	require.NoError(t, LogConfig{Level: "warn", Format: "json"}.Apply(logger))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	assert.ErrorIs(t, LogConfig{Level: "nope"}.Apply(logger), ErrInvalidConfig)
	assert.ErrorIs(t, LogConfig{Level: "info", Format: "xml"}.Apply(logger), ErrInvalidConfig)
}

func TestParseColor(t *testing.T) {
	p, err := ParseColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, frame.Pixel{R: 255, G: 128, B: 0, A: 255}, p)

	for _, bad := range []string{"", "#FFF", "#GGGGGG", "12345678"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidConfig, bad)
	}
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/framefx/effects"
	"github.com/opd-ai/framefx/frame"
	"github.com/opd-ai/framefx/pipeline"
	"github.com/opd-ai/framefx/sink"
	"github.com/opd-ai/framefx/source"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Source types.
const (
	SourcePattern = "pattern"
	SourceDir     = "dir"
)

// Config represents the complete framefx configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Source   SourceConfig   `yaml:"source"`
	Sink     SinkConfig     `yaml:"sink"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // text, json
}

// PipelineConfig contains frame pipeline settings
type PipelineConfig struct {
	QueueSize       int                 `yaml:"queue_size"`
	ResultBuffer    int                 `yaml:"result_buffer"`
	Mode            effects.Mode        `yaml:"mode"` // grayscale, invert, brightness, probe, contrast
	BrightnessDelta int                 `yaml:"brightness_delta"`
	ContrastFactor  float64             `yaml:"contrast_factor"`
	DropPolicy      pipeline.DropPolicy `yaml:"drop_policy"` // oldest, newest
	ReportEvery     int                 `yaml:"report_every"`
}

// SourceConfig contains frame source settings
type SourceConfig struct {
	Type string `yaml:"type"` // pattern, dir

	// Pattern source
	Pattern string `yaml:"pattern"` // gradient, solid, bars
	Color   string `yaml:"color"`   // #RRGGBB, for solid
	FPS     int    `yaml:"fps"`
	Limit   int    `yaml:"limit"` // 0 = until interrupted
	Align   int    `yaml:"align"` // stride alignment in bytes

	// Frame size. Directory sources scale to it when both are set.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Directory source
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// SinkConfig contains output settings
type SinkConfig struct {
	Dir      string `yaml:"dir"`    // empty = results are discarded
	Format   string `yaml:"format"` // png, bmp
	Annotate bool   `yaml:"annotate"`
}

// Default returns the configuration used for unset fields.
func Default() *Config {
	pc := pipeline.DefaultConfig()
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Pipeline: PipelineConfig{
			QueueSize:       pc.QueueSize,
			ResultBuffer:    pc.ResultBuffer,
			Mode:            pc.Mode,
			BrightnessDelta: pc.Params.BrightnessDelta,
			ContrastFactor:  pc.Params.ContrastFactor,
			DropPolicy:      pc.DropPolicy,
			ReportEvery:     pc.ReportEvery,
		},
		Source: SourceConfig{
			Type:    SourcePattern,
			Pattern: string(source.PatternGradient),
			Color:   "#808080",
			FPS:     source.FPS30,
			Width:   640,
			Height:  480,
		},
		Sink: SinkConfig{
			Format: string(sink.FormatPNG),
		},
	}
}

// Load reads a YAML configuration file over Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks every section.
func Validate(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	if _, err := cfg.Log.Formatter(); err != nil {
		return err
	}

	if err := cfg.PipelineConfig().Validate(); err != nil {
		return fmt.Errorf("%w: pipeline: %w", ErrInvalidConfig, err)
	}

	if _, err := cfg.NewSource(); err != nil {
		return fmt.Errorf("%w: source: %w", ErrInvalidConfig, err)
	}

	if cfg.Sink.Dir != "" {
		if _, err := sink.ParseImageFormat(cfg.Sink.Format); err != nil {
			return fmt.Errorf("%w: sink: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// Formatter returns the logrus formatter for Format.
func (l LogConfig) Formatter() (logrus.Formatter, error) {
	switch strings.ToLower(l.Format) {
	case "", "text":
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidConfig, l.Format)
	}
}

// Apply sets the level and formatter of logger.
func (l LogConfig) Apply(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	formatter, err := l.Formatter()
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetFormatter(formatter)
	return nil
}

// PipelineConfig converts the pipeline section.
func (c *Config) PipelineConfig() pipeline.Config {
	p := c.Pipeline
	return pipeline.Config{
		QueueSize:    p.QueueSize,
		ResultBuffer: p.ResultBuffer,
		Mode:         p.Mode,
		Params: effects.Params{
			BrightnessDelta: p.BrightnessDelta,
			ContrastFactor:  p.ContrastFactor,
		},
		DropPolicy:  p.DropPolicy,
		ReportEvery: p.ReportEvery,
	}
}

// NewSource builds the configured source.
func (c *Config) NewSource() (source.Source, error) {
	s := c.Source
	switch strings.ToLower(s.Type) {
	case SourcePattern:
		pattern, err := source.ParsePattern(s.Pattern)
		if err != nil {
			return nil, err
		}
		color, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		src := &source.PatternSource{
			Width:   s.Width,
			Height:  s.Height,
			Align:   s.Align,
			FPS:     s.FPS,
			Pattern: pattern,
			Color:   color,
			Limit:   s.Limit,
		}
		if err := src.Validate(); err != nil {
			return nil, err
		}
		return src, nil
	case SourceDir:
		if s.Dir == "" {
			return nil, fmt.Errorf("%w: dir source needs a directory", ErrInvalidConfig)
		}
		return &source.DirSource{
			Dir:    s.Dir,
			Width:  s.Width,
			Height: s.Height,
			Watch:  s.Watch,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown source type %q", ErrInvalidConfig, s.Type)
	}
}

// ParseColor parses "#RRGGBB" into an opaque pixel.
func ParseColor(s string) (frame.Pixel, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return frame.Pixel{}, fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalidConfig, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return frame.Pixel{}, fmt.Errorf("%w: color %q: %w", ErrInvalidConfig, s, err)
	}
	return frame.Pixel{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

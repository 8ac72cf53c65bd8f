package pipeline

import (
	"fmt"
	"strings"

	"github.com/opd-ai/framefx/effects"
)

// DropPolicy selects which frame is discarded when the input queue is full.
type DropPolicy uint8

const (
	// DropOldest evicts the oldest queued frame so the newest one is processed.
	// Late frames are the ones that get discarded.
	DropOldest DropPolicy = iota
	// DropNewest rejects the incoming frame and keeps the queue as is.
	DropNewest
)

func (d DropPolicy) String() string {
	switch d {
	case DropOldest:
		return "oldest"
	case DropNewest:
		return "newest"
	default:
		return fmt.Sprintf("DropPolicy(%d)", uint8(d))
	}
}

// ParseDropPolicy parses "oldest" or "newest".
func ParseDropPolicy(s string) (DropPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oldest":
		return DropOldest, nil
	case "newest":
		return DropNewest, nil
	default:
		return 0, fmt.Errorf("%w: unknown drop policy %q", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DropPolicy) MarshalText() ([]byte, error) {
	if d != DropOldest && d != DropNewest {
		return nil, fmt.Errorf("%w: unknown drop policy %d", ErrInvalidConfig, uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DropPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseDropPolicy(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Config configures a Pipeline.
type Config struct {
	// QueueSize bounds the number of frames waiting for the worker.
	QueueSize int

	// ResultBuffer bounds the number of results waiting for the consumer.
	ResultBuffer int

	// Mode is the initial processing mode.
	Mode effects.Mode

	// Params tunes the brightness and contrast modes.
	Params effects.Params

	// DropPolicy decides which frame is lost when the queue is full.
	DropPolicy DropPolicy

	// ReportEvery attaches a probe report to every Nth probed frame.
	ReportEvery int

	// TimeProvider supplies timestamps; nil means DefaultTimeProvider.
	TimeProvider TimeProvider
}

// DefaultConfig returns a config with a small queue that favors fresh frames.
func DefaultConfig() Config {
	return Config{
		QueueSize:    4,
		ResultBuffer: 16,
		Mode:         effects.ModeGrayscale,
		Params:       effects.DefaultParams(),
		DropPolicy:   DropOldest,
		ReportEvery:  1,
	}
}

// Validate checks the config for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue size %d < 1", ErrInvalidConfig, c.QueueSize)
	}
	if c.ResultBuffer < 0 {
		return fmt.Errorf("%w: result buffer %d < 0", ErrInvalidConfig, c.ResultBuffer)
	}
	if c.ReportEvery < 1 {
		return fmt.Errorf("%w: report interval %d < 1", ErrInvalidConfig, c.ReportEvery)
	}
	if _, err := c.DropPolicy.MarshalText(); err != nil {
		return err
	}
	if _, err := c.Mode.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

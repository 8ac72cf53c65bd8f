package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framefx/frame"
)

// Pattern names a synthetic frame pattern.
type Pattern string

const (
	// PatternGradient is a horizontal red ramp over a vertical green ramp that
	// scrolls by a few pixels every frame.
	PatternGradient Pattern = "gradient"
	// PatternSolid fills the frame with PatternSource.Color.
	PatternSolid Pattern = "solid"
	// PatternBars draws eight vertical color bars.
	PatternBars Pattern = "bars"
)

// ParsePattern parses a pattern name, case-insensitively.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(strings.ToLower(strings.TrimSpace(s))); p {
	case PatternGradient, PatternSolid, PatternBars:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown pattern %q", ErrInvalidSource, s)
	}
}

// Common capture rates.
const (
	FPS15 = 15
	FPS30 = 30
	FPS60 = 60
)

var colorBars = [8]frame.Pixel{
	{B: 255, G: 255, R: 255, A: 255}, // white
	{B: 0, G: 255, R: 255, A: 255},   // yellow
	{B: 255, G: 255, R: 0, A: 255},   // cyan
	{B: 0, G: 255, R: 0, A: 255},     // green
	{B: 255, G: 0, R: 255, A: 255},   // magenta
	{B: 0, G: 0, R: 255, A: 255},     // red
	{B: 255, G: 0, R: 0, A: 255},     // blue
	{B: 0, G: 0, R: 0, A: 255},       // black
}

// PatternSource emits synthetic frames at a fixed rate.
type PatternSource struct {
	Width  int
	Height int

	// Align rounds the stride up to a multiple of Align bytes; 0 means a tight stride.
	Align int

	FPS     int
	Pattern Pattern

	// Color is used by PatternSolid.
	Color frame.Pixel

	// Limit stops the source after this many frames; 0 means run until cancelled.
	Limit int

	// NewTicker overrides the ticker, for tests. Nil uses NewTicker.
	NewTicker func(d time.Duration) Ticker
}

// Validate checks the source settings.
func (s *PatternSource) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSource, s.Width, s.Height)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidSource, s.FPS)
	}
	if s.Limit < 0 {
		return fmt.Errorf("%w: limit %d", ErrInvalidSource, s.Limit)
	}
	if _, err := ParsePattern(string(s.Pattern)); err != nil {
		return err
	}
	return nil
}

// Frame renders frame number n of the pattern.
func (s *PatternSource) Frame(n int) (*frame.Frame, error) {
	var (
		f   *frame.Frame
		err error
	)
	if s.Align > 0 {
		f, err = frame.NewAligned(s.Width, s.Height, s.Align)
	} else {
		f, err = frame.NewWithStride(s.Width, s.Height, s.Width*frame.BytesPerPixel)
	}
	if err != nil {
		return nil, err
	}

	switch s.Pattern {
	case PatternSolid:
		f.Fill(s.Color)
	case PatternBars:
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				f.SetPixel(x, y, colorBars[x*len(colorBars)/f.Width])
			}
		}
	default:
		shift := n * 4
		for y := 0; y < f.Height; y++ {
			g := uint8(y * 256 / f.Height)
			for x := 0; x < f.Width; x++ {
				r := uint8(x*256/f.Width + shift)
				f.SetPixel(x, y, frame.Pixel{B: 128, G: g, R: r, A: 255})
			}
		}
	}
	return f, nil
}

// Run emits one frame per tick. It returns nil once Limit frames have been
// emitted and ctx.Err() when cancelled first. Frames the submitter rejects still
// count toward Limit.
func (s *PatternSource) Run(ctx context.Context, sub Submitter) error {
	if err := s.Validate(); err != nil {
		return err
	}

	newTicker := s.NewTicker
	if newTicker == nil {
		newTicker = NewTicker
	}
	interval := time.Second / time.Duration(s.FPS)
	ticker := newTicker(interval)
	defer ticker.Stop()

	logrus.WithFields(logrus.Fields{
		"function": "PatternSource.Run",
		"pattern":  s.Pattern,
		"width":    s.Width,
		"height":   s.Height,
		"fps":      s.FPS,
		"limit":    s.Limit,
	}).Info("Pattern source started")

	n, rejected := 0, 0
	for ; s.Limit == 0 || n < s.Limit; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
		}

		f, err := s.Frame(n)
		if err != nil {
			return err
		}
		if !sub.Submit(f) {
			rejected++
			logrus.WithFields(logrus.Fields{
				"function": "PatternSource.Run",
				"frame":    n,
				"rejected": rejected,
			}).Debug("Frame rejected by submitter")
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "PatternSource.Run",
		"frames":   n,
		"rejected": rejected,
	}).Info("Pattern source finished")

	return nil
}

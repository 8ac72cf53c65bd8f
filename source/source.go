package source

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/framefx/frame"
)

// ErrInvalidSource indicates a source configuration that cannot produce frames.
var ErrInvalidSource = errors.New("invalid source configuration")

// Submitter accepts frames without blocking. Submit reports whether the frame
// was queued.
type Submitter interface {
	Submit(f *frame.Frame) bool
}

// Source delivers frames to a Submitter until it runs out or ctx is cancelled.
type Source interface {
	Run(ctx context.Context, sub Submitter) error
}

// Ticker is the subset of time.Ticker a source needs, so tests can drive it.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker returns a Ticker backed by time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

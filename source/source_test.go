package source

import (
	"context"
	"sync"
	"time"

	"github.com/opd-ai/framefx/frame"
)

// collector records submitted frames.
type collector struct {
	mu     sync.Mutex
	frames []*frame.Frame
	accept bool
}

func newCollector() *collector {
	return &collector{accept: true}
}

func (c *collector) Submit(f *frame.Frame) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
	return c.accept
}

func (c *collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *collector) Frames() []*frame.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*frame.Frame(nil), c.frames...)
}

// fakeTicker fires only when the test sends on ch.
type fakeTicker struct {
	ch       chan time.Time
	interval time.Duration
	stopped  bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped = true }

func newFakeTicker() (*fakeTicker, func(time.Duration) Ticker) {
	ft := &fakeTicker{ch: make(chan time.Time)}
	return ft, func(d time.Duration) Ticker {
		ft.interval = d
		return ft
	}
}

var _ Source = (*PatternSource)(nil)
var _ Source = (*DirSource)(nil)

func runAsync(ctx context.Context, s Source, sub Submitter) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx, sub) }()
	return errc
}

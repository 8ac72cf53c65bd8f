package pipeline

import (
	"time"

	"github.com/opd-ai/framefx/effects"
)

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	// Received counts Submit calls made while the pipeline was open.
	Received uint64
	// Processed counts frames transformed or probed successfully.
	Processed uint64
	// Failed counts frames whose transform returned an error.
	Failed uint64
	// DroppedFrames counts frames lost to a full input queue.
	DroppedFrames uint64
	// DroppedResults counts results lost to a full result buffer.
	DroppedResults uint64

	Mode    effects.Mode
	Elapsed time.Duration

	// FPS is Processed over Elapsed.
	FPS float64
}

// Stats returns the current counters. Elapsed runs from Start to Stop, or to now
// while running.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	startedAt, stoppedAt := p.startedAt, p.stoppedAt
	p.mu.Unlock()

	s := Stats{
		Received:       p.received.Load(),
		Processed:      p.processed.Load(),
		Failed:         p.failed.Load(),
		DroppedFrames:  p.droppedFrames.Load(),
		DroppedResults: p.droppedResults.Load(),
		Mode:           p.mode.Load().mode,
	}

	switch {
	case startedAt.IsZero():
	case stoppedAt.IsZero():
		s.Elapsed = p.timeProvider.Since(startedAt)
	default:
		s.Elapsed = stoppedAt.Sub(startedAt)
	}

	if s.Elapsed > 0 {
		s.FPS = float64(s.Processed) / s.Elapsed.Seconds()
	}
	return s
}

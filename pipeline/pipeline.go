package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framefx/effects"
	"github.com/opd-ai/framefx/frame"
	"github.com/opd-ai/framefx/probe"
)

// Result is the outcome of processing one frame.
type Result struct {
	// Seq numbers frames in the order the worker took them, starting at 1.
	// Failed frames consume a number too, so gaps mark failures.
	Seq uint64

	// ID identifies the pipeline that produced the result.
	ID uuid.UUID

	Mode effects.Mode

	// Original is the submitted frame.
	Original *frame.Frame

	// Processed is the transformed frame. In probe mode it is Original.
	Processed *frame.Frame

	// Report is set in probe mode on every ReportEvery-th probed frame.
	Report *probe.Report

	// Info describes the applied mode, e.g. "Brightness: +50 per channel".
	Info string

	Duration  time.Duration
	Timestamp time.Time
}

// modeState is swapped atomically by SetMode.
type modeState struct {
	mode   effects.Mode
	params effects.Params
	effect effects.Effect // nil in probe mode
	info   string
}

func newModeState(mode effects.Mode, params effects.Params) (*modeState, error) {
	s := &modeState{
		mode:   mode,
		params: params,
		info:   mode.Info(params),
	}
	if mode == effects.ModeProbe {
		return s, nil
	}
	effect, err := effects.ForMode(mode, params)
	if err != nil {
		return nil, err
	}
	s.effect = effect
	return s, nil
}

// Pipeline is a bounded frame queue feeding a single transform worker.
type Pipeline struct {
	id           uuid.UUID
	cfg          Config
	timeProvider TimeProvider

	input   chan *frame.Frame
	results chan Result

	mode atomic.Pointer[modeState]

	// Counters
	received       atomic.Uint64
	processed      atomic.Uint64
	failed         atomic.Uint64
	droppedFrames  atomic.Uint64
	droppedResults atomic.Uint64

	// Lifecycle
	mu        sync.Mutex
	running   bool
	closed    atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
	startedAt time.Time
	stoppedAt time.Time

	// Worker-owned
	seq        uint64
	probeCount uint64
}

// New creates a pipeline. The worker does not run until Start; frames submitted
// before that wait in the queue.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	state, err := newModeState(cfg.Mode, cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	tp := cfg.TimeProvider
	if tp == nil {
		tp = DefaultTimeProvider{}
	}

	p := &Pipeline{
		id:           uuid.New(),
		cfg:          cfg,
		timeProvider: tp,
		input:        make(chan *frame.Frame, cfg.QueueSize),
		results:      make(chan Result, cfg.ResultBuffer),
	}
	p.mode.Store(state)

	logrus.WithFields(logrus.Fields{
		"function":      "New",
		"pipeline_id":   p.id,
		"mode":          cfg.Mode,
		"queue_size":    cfg.QueueSize,
		"result_buffer": cfg.ResultBuffer,
		"drop_policy":   cfg.DropPolicy,
	}).Info("Pipeline created")

	return p, nil
}

// ID returns the pipeline identifier.
func (p *Pipeline) ID() uuid.UUID {
	return p.id
}

// Results returns the channel results are published on. It is closed when the
// worker exits, after Stop or when the Start context is cancelled.
func (p *Pipeline) Results() <-chan Result {
	return p.results
}

// Mode returns the current processing mode and its parameters.
func (p *Pipeline) Mode() (effects.Mode, effects.Params) {
	s := p.mode.Load()
	return s.mode, s.params
}

// SetMode switches the processing mode. Frames already taken by the worker
// finish under the previous mode. Safe to call from any goroutine.
func (p *Pipeline) SetMode(mode effects.Mode, params effects.Params) error {
	state, err := newModeState(mode, params)
	if err != nil {
		return err
	}
	p.mode.Store(state)

	logrus.WithFields(logrus.Fields{
		"function":    "Pipeline.SetMode",
		"pipeline_id": p.id,
		"mode":        mode,
		"info":        state.info,
	}).Info("Processing mode changed")

	return nil
}

// Submit offers a frame to the pipeline without blocking. It returns false when
// the frame was not queued: the queue was full under DropNewest, or the pipeline
// is closed. Under DropOldest the oldest queued frame is evicted instead and
// Submit returns true.
func (p *Pipeline) Submit(f *frame.Frame) bool {
	if p.closed.Load() {
		return false
	}
	p.received.Add(1)

	for {
		select {
		case p.input <- f:
			return true
		default:
		}

		if p.cfg.DropPolicy == DropNewest {
			p.recordDrop("queue full, incoming frame rejected")
			return false
		}

		select {
		case <-p.input:
			p.recordDrop("queue full, oldest frame evicted")
		default:
			// The worker emptied a slot in the meantime; retry the send.
		}
	}
}

func (p *Pipeline) recordDrop(reason string) {
	dropped := p.droppedFrames.Add(1)
	logrus.WithFields(logrus.Fields{
		"function":       "Pipeline.Submit",
		"pipeline_id":    p.id,
		"dropped_frames": dropped,
	}).Warn("Dropped frame: " + reason)
}

// Start launches the worker. Cancelling ctx stops the worker and closes the
// pipeline exactly as Stop does; a later Stop then returns ErrNotRunning.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}
	if p.closed.Load() {
		return ErrClosed
	}

	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.startedAt = p.timeProvider.Now()

	go p.run(workerCtx, p.done)

	logrus.WithFields(logrus.Fields{
		"function":    "Pipeline.Start",
		"pipeline_id": p.id,
	}).Info("Pipeline started")

	return nil
}

// Stop cancels the worker, waits for it to exit and closes Results().
func (p *Pipeline) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	p.running = false
	p.closed.Store(true)
	p.cancel()
	done := p.done
	p.mu.Unlock()

	<-done

	stats := p.Stats()
	logrus.WithFields(logrus.Fields{
		"function":        "Pipeline.Stop",
		"pipeline_id":     p.id,
		"received":        stats.Received,
		"processed":       stats.Processed,
		"failed":          stats.Failed,
		"dropped_frames":  stats.DroppedFrames,
		"dropped_results": stats.DroppedResults,
		"fps":             stats.FPS,
	}).Info("Pipeline stopped")

	return nil
}

// flushPollInterval is how often Flush checks the counters.
const flushPollInterval = 5 * time.Millisecond

// Flush waits until every frame submitted so far has been processed, failed or
// dropped. It needs a running worker and returns ctx.Err() if ctx ends first,
// or ErrClosed if the worker exits before the queue settles.
func (p *Pipeline) Flush(ctx context.Context) error {
	p.mu.Lock()
	running, done := p.running, p.done
	p.mu.Unlock()

	if !running {
		if p.closed.Load() {
			return ErrClosed
		}
		return ErrNotRunning
	}

	ticker := time.NewTicker(flushPollInterval)
	defer ticker.Stop()

	for {
		settled := p.processed.Load() + p.failed.Load() + p.droppedFrames.Load()
		if settled >= p.received.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			if p.processed.Load()+p.failed.Load()+p.droppedFrames.Load() >= p.received.Load() {
				return nil
			}
			return ErrClosed
		case <-ticker.C:
		}
	}
}

// IsRunning reports whether the worker is live: Start has been called and
// neither Stop nor cancellation of the Start context has ended it.
func (p *Pipeline) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Pipeline) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer close(p.results)
	defer p.markStopped()

	for {
		select {
		case <-ctx.Done():
			logrus.WithFields(logrus.Fields{
				"function":    "Pipeline.run",
				"pipeline_id": p.id,
				"reason":      ctx.Err(),
			}).Debug("Worker exiting")
			return
		case f := <-p.input:
			p.process(f)
		}
	}
}

// markStopped records that the worker has exited, whether through Stop or
// through cancellation of the Start context.
func (p *Pipeline) markStopped() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = false
	p.closed.Store(true)
	if p.stoppedAt.IsZero() {
		p.stoppedAt = p.timeProvider.Now()
	}
}

// process handles one frame. Errors are logged and counted, never returned.
func (p *Pipeline) process(f *frame.Frame) {
	p.seq++
	state := p.mode.Load()
	start := p.timeProvider.Now()

	result := Result{
		Seq:       p.seq,
		ID:        p.id,
		Mode:      state.mode,
		Original:  f,
		Info:      state.info,
		Timestamp: start,
	}

	var err error
	if state.mode == effects.ModeProbe {
		result.Processed, result.Report, err = p.probe(f)
	} else {
		result.Processed, err = state.effect.Apply(f)
	}
	if err != nil {
		failed := p.failed.Add(1)
		logrus.WithFields(logrus.Fields{
			"function":    "Pipeline.process",
			"pipeline_id": p.id,
			"seq":         p.seq,
			"mode":        state.mode,
			"failed":      failed,
			"error":       err.Error(),
		}).Warn("Frame processing failed, skipping")
		return
	}

	result.Duration = p.timeProvider.Since(start)
	// Counted after publishing, so a flushed pipeline has its results queued.
	defer p.processed.Add(1)

	logrus.WithFields(logrus.Fields{
		"function":    "Pipeline.process",
		"pipeline_id": p.id,
		"seq":         p.seq,
		"mode":        state.mode,
		"duration":    result.Duration,
	}).Debug("Frame processed")

	select {
	case p.results <- result:
	default:
		dropped := p.droppedResults.Add(1)
		logrus.WithFields(logrus.Fields{
			"function":        "Pipeline.process",
			"pipeline_id":     p.id,
			"seq":             p.seq,
			"dropped_results": dropped,
		}).Warn("Result buffer full, result dropped")
	}
}

// probe validates f and attaches a report on every ReportEvery-th probed frame.
func (p *Pipeline) probe(f *frame.Frame) (*frame.Frame, *probe.Report, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, fmt.Errorf("probe: %w", err)
	}

	p.probeCount++
	if (p.probeCount-1)%uint64(p.cfg.ReportEvery) != 0 {
		return f, nil, nil
	}

	report, err := probe.Probe(f)
	if err != nil {
		return nil, nil, err
	}
	return f, report, nil
}

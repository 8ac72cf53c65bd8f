// Package framefx applies per-pixel transforms to strided BGRA frame buffers.
//
// The module is split by concern:
//
//   - frame: the Frame buffer type, layout validation, scoped read-only views,
//     conversion from and to Go images, and payload digests.
//   - effects: the pixel transforms (grayscale, invert, brightness, contrast),
//     effect chains, and the Mode selector.
//   - probe: the center pixel report and its on-frame overlay.
//   - pipeline: a bounded, non-blocking frame queue with a single transform
//     worker, drop accounting and live mode switching.
//   - source and sink: frame producers (synthetic patterns, image directories)
//     and the file writer for results.
//   - config: YAML configuration for the framefx command.
//   - limits: frame size limits shared by every allocation.
//
// # Getting Started
//
// Transform a single frame:
//
//	f := frame.New(640, 480)
//	out, err := effects.NewBrightness(effects.DefaultBrightnessDelta).Apply(f)
//	if err != nil {
//	    var te *effects.TransformError
//	    if errors.As(err, &te) && errors.Is(err, frame.ErrInvalidBufferLayout) {
//	        // the input geometry was inconsistent
//	    }
//	    return err
//	}
//
// Or run frames through a pipeline:
//
//	p, _ := pipeline.New(pipeline.DefaultConfig())
//	p.Start(ctx)
//	defer p.Stop()
//	go (&source.PatternSource{Width: 640, Height: 480, FPS: 30, Pattern: source.PatternBars}).Run(ctx, p)
//	for result := range p.Results() {
//	    // result.Processed
//	}
//
// Transforms are pure: they never modify their input, never block and allocate
// exactly one output frame per call, so they may run concurrently on
// independent frames.
package framefx

// Package effects implements per-pixel transforms over BGRA frames.
//
// Every effect computes each output pixel from the single input pixel at the
// same position. Alpha is copied through unchanged, the output has the same
// width, height and stride as the input, and the input is never modified:
//
//	gray, err := effects.NewGrayscale().Apply(f)
//	if err != nil {
//	    // errors.Is(err, frame.ErrInvalidBufferLayout) etc.
//	}
//
// Available effects:
//   - Grayscale: B=G=R=trunc(0.114*B + 0.587*G + 0.299*R)
//   - Invert: 255 - value per channel
//   - Brightness: clamp(value + delta) per channel, default delta +50
//   - Contrast: clamp(128 + (value-128)*factor) per channel
//
// Effects can be combined in a Chain, or selected by Mode:
//
//	effect, err := effects.ForMode(effects.ModeBrightness, effects.DefaultParams())
//
// # Failures
//
// Input is validated before any output is allocated. A failed transform returns
// a *TransformError wrapping frame.ErrInvalidBufferLayout,
// frame.ErrUnreadableMemory or frame.ErrAllocationFailure, and no frame.
// Failures are local: callers drop the frame and continue with the next one.
//
// # Thread Safety
//
// Effects hold only immutable lookup tables and may be shared between
// goroutines; concurrent Apply calls on independent frames are safe. A Chain
// must not be modified while it is applying.
package effects

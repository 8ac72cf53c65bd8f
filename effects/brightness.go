package effects

import (
	"fmt"

	"github.com/opd-ai/framefx/frame"
)

// DefaultBrightnessDelta is the brightness adjustment used when none is configured.
const DefaultBrightnessDelta = 50

// Brightness adds a fixed delta to every color channel, clamped to [0, 255].
type Brightness struct {
	delta int // -255 to +255
	table lut
}

// NewBrightness creates a brightness adjustment effect.
// delta: -255 (black) to +255 (white), 0 = no change
func NewBrightness(delta int) *Brightness {
	// Clamp to valid range
	if delta < -255 {
		delta = -255
	}
	if delta > 255 {
		delta = 255
	}

	e := &Brightness{delta: delta}
	for i := range e.table {
		e.table[i] = clamp(i + delta)
	}
	return e
}

// Delta returns the effective adjustment.
func (e *Brightness) Delta() int {
	return e.delta
}

// Apply adjusts the brightness of the frame.
func (e *Brightness) Apply(f *frame.Frame) (*frame.Frame, error) {
	return applyPixelwise(e.GetName(), f, e.table.apply)
}

// GetName returns the effect name.
func (e *Brightness) GetName() string {
	return fmt.Sprintf("Brightness(%+d)", e.delta)
}

func clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

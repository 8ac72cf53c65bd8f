package effects

import (
	"fmt"

	"github.com/opd-ai/framefx/frame"
)

// Contrast scales every color channel around the midpoint 128.
type Contrast struct {
	factor float64 // 0.0 = flat gray, 1.0 = normal, 3.0 = high contrast
	table  lut
}

// NewContrast creates a contrast adjustment effect.
// factor: 0.0 (flat gray) to 3.0 (high contrast), 1.0 = no change
func NewContrast(factor float64) *Contrast {
	// Clamp to reasonable range
	if factor < 0.0 {
		factor = 0.0
	}
	if factor > 3.0 {
		factor = 3.0
	}

	const midpoint = 128.0

	e := &Contrast{factor: factor}
	for i := range e.table {
		v := midpoint + (float64(i)-midpoint)*factor
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		e.table[i] = uint8(v + 0.5) // Round to nearest
	}
	return e
}

// Factor returns the effective contrast factor.
func (e *Contrast) Factor() float64 {
	return e.factor
}

// Apply adjusts the contrast of the frame.
func (e *Contrast) Apply(f *frame.Frame) (*frame.Frame, error) {
	return applyPixelwise(e.GetName(), f, e.table.apply)
}

// GetName returns the effect name.
func (e *Contrast) GetName() string {
	return fmt.Sprintf("Contrast(%.2f)", e.factor)
}

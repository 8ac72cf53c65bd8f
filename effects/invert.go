package effects

import "github.com/opd-ai/framefx/frame"

// Invert replaces each color channel v with 255-v.
type Invert struct{}

// NewInvert creates a color inversion effect.
func NewInvert() *Invert {
	return &Invert{}
}

// Apply inverts the color channels of the frame.
func (e *Invert) Apply(f *frame.Frame) (*frame.Frame, error) {
	return applyPixelwise(e.GetName(), f, func(b, g, r uint8) (uint8, uint8, uint8) {
		return 255 - b, 255 - g, 255 - r
	})
}

// GetName returns the effect name.
func (e *Invert) GetName() string {
	return "Invert"
}

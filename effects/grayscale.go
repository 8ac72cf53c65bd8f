package effects

import "github.com/opd-ai/framefx/frame"

// Luma weights in thousandths (BT.601: 0.114 B + 0.587 G + 0.299 R).
// They sum to 1000, so the weighted sum of 8-bit inputs never exceeds 255.
const (
	lumaWeightB = 114
	lumaWeightG = 587
	lumaWeightR = 299
)

// Luma returns the truncated BT.601 luma of one pixel.
func Luma(b, g, r uint8) uint8 {
	return uint8((lumaWeightB*uint32(b) + lumaWeightG*uint32(g) + lumaWeightR*uint32(r)) / 1000)
}

// Grayscale replaces B, G and R with the pixel's luma.
type Grayscale struct{}

// NewGrayscale creates a grayscale conversion effect.
func NewGrayscale() *Grayscale {
	return &Grayscale{}
}

// Apply converts the frame to grayscale.
func (e *Grayscale) Apply(f *frame.Frame) (*frame.Frame, error) {
	return applyPixelwise(e.GetName(), f, func(b, g, r uint8) (uint8, uint8, uint8) {
		y := Luma(b, g, r)
		return y, y, y
	})
}

// GetName returns the effect name.
func (e *Grayscale) GetName() string {
	return "Grayscale"
}

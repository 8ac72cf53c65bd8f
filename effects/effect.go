package effects

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framefx/frame"
)

// Effect represents a pixel transform that can be applied to frames.
type Effect interface {
	// Apply processes a frame and returns a new frame; the input is not modified
	Apply(f *frame.Frame) (*frame.Frame, error)
	// GetName returns the effect name for identification
	GetName() string
}

// pixelFunc maps the color channels of one pixel. Alpha is never passed in, so
// no effect built on it can change alpha.
type pixelFunc func(b, g, r uint8) (uint8, uint8, uint8)

// lut is a per-channel lookup table.
type lut [256]uint8

func (t *lut) apply(b, g, r uint8) (uint8, uint8, uint8) {
	return t[b], t[g], t[r]
}

// applyPixelwise validates src, allocates one output frame of identical geometry
// and fills it from fn, pixel by pixel. On any failure nothing is returned.
func applyPixelwise(op string, src *frame.Frame, fn pixelFunc) (*frame.Frame, error) {
	var dst *frame.Frame

	err := frame.Read(src, func(v frame.View) error {
		out, err := frame.Allocate(v.Width(), v.Height(), v.Stride())
		if err != nil {
			return err
		}

		for y := 0; y < v.Height(); y++ {
			in, err := v.Row(y)
			if err != nil {
				return err
			}
			row := out.Pix[y*out.Stride : y*out.Stride+len(in)]
			for i := 0; i < len(in); i += frame.BytesPerPixel {
				row[i], row[i+1], row[i+2] = fn(in[i], in[i+1], in[i+2])
				row[i+3] = in[i+3]
			}
		}

		dst = out
		return nil
	})
	if err != nil {
		return nil, newTransformError(op, err)
	}

	return dst, nil
}

// Chain applies multiple effects in sequence.
type Chain struct {
	effects []Effect
}

// NewChain creates an effect chain from the given effects.
func NewChain(effects ...Effect) *Chain {
	return &Chain{
		effects: append([]Effect(nil), effects...),
	}
}

// Add appends an effect to the chain.
func (c *Chain) Add(effect Effect) {
	c.effects = append(c.effects, effect)
}

// Len returns the number of effects in the chain.
func (c *Chain) Len() int {
	return len(c.effects)
}

// Clear removes all effects from the chain.
func (c *Chain) Clear() {
	c.effects = c.effects[:0]
}

// Apply runs the frame through every effect. An empty chain returns a validated copy.
func (c *Chain) Apply(f *frame.Frame) (*frame.Frame, error) {
	if len(c.effects) == 0 {
		if err := f.Validate(); err != nil {
			return nil, newTransformError(c.GetName(), err)
		}
		return f.Clone(), nil
	}

	current := f
	for i, effect := range c.effects {
		result, err := effect.Apply(current)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Chain.Apply",
				"index":    i,
				"effect":   effect.GetName(),
				"error":    err.Error(),
			}).Debug("Effect chain stopped")
			return nil, fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
		current = result
	}

	return current, nil
}

// GetName returns the names of the chained effects.
func (c *Chain) GetName() string {
	name := "Chain("
	for i, effect := range c.effects {
		if i > 0 {
			name += ", "
		}
		name += effect.GetName()
	}
	return name + ")"
}

// Interface checks.
var (
	_ Effect = (*Grayscale)(nil)
	_ Effect = (*Invert)(nil)
	_ Effect = (*Brightness)(nil)
	_ Effect = (*Contrast)(nil)
	_ Effect = (*Chain)(nil)
)

package frame

import (
	"fmt"
	"sync/atomic"
)

type viewState struct {
	f        *Frame
	released atomic.Bool
}

// View is scoped, read-only access to a validated frame. A View is only valid
// inside the Read callback that produced it; afterwards every accessor returns
// ErrViewReleased.
//
// Row slices alias the frame memory and must not be modified.
type View struct {
	s *viewState
}

// Read validates f and calls fn with a View of it. The view is released when
// fn returns, on every path, including a panic inside fn.
// Validation errors are returned without calling fn.
func Read(f *Frame, fn func(v View) error) error {
	if err := f.Validate(); err != nil {
		return err
	}

	s := &viewState{f: f}
	defer s.released.Store(true)

	return fn(View{s: s})
}

func (v View) frame() (*Frame, error) {
	if v.s == nil || v.s.released.Load() {
		return nil, ErrViewReleased
	}
	return v.s.f, nil
}

// Width returns the frame width, or 0 once released.
func (v View) Width() int {
	if f, err := v.frame(); err == nil {
		return f.Width
	}
	return 0
}

// Height returns the frame height, or 0 once released.
func (v View) Height() int {
	if f, err := v.frame(); err == nil {
		return f.Height
	}
	return 0
}

// Stride returns the frame stride, or 0 once released.
func (v View) Stride() int {
	if f, err := v.frame(); err == nil {
		return f.Stride
	}
	return 0
}

// Format returns the frame pixel format.
func (v View) Format() PixelFormat {
	if f, err := v.frame(); err == nil {
		return f.PixelFormat()
	}
	return FormatUnspecified
}

// DataSize returns the size of the frame buffer in bytes.
func (v View) DataSize() int {
	if f, err := v.frame(); err == nil {
		return f.DataSize()
	}
	return 0
}

// Row returns the pixel payload of row y, Width*4 bytes, with capacity capped
// so appends cannot reach the padding or the next row.
func (v View) Row(y int) ([]byte, error) {
	f, err := v.frame()
	if err != nil {
		return nil, err
	}
	if y < 0 || y >= f.Height {
		return nil, fmt.Errorf("row %d out of range [0,%d)", y, f.Height)
	}
	start := y * f.Stride
	end := start + f.Width*BytesPerPixel
	return f.Pix[start:end:end], nil
}

// Pixel returns the pixel at (x, y).
func (v View) Pixel(x, y int) (Pixel, error) {
	f, err := v.frame()
	if err != nil {
		return Pixel{}, err
	}
	if !f.inBounds(x, y) {
		return Pixel{}, fmt.Errorf("pixel (%d,%d) out of bounds %dx%d", x, y, f.Width, f.Height)
	}
	return f.PixelAt(x, y), nil
}

package frame

import (
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framefx/limits"
)

// BytesPerPixel is the size of one BGRA pixel.
const BytesPerPixel = limits.BytesPerPixel

// Frame is one image as a contiguous, strided, interleaved BGRA byte region.
//
// Pixel (x, y) starts at Pix[y*Stride+x*4] and is laid out B, G, R, A.
// Stride may exceed Width*4; the bytes past the row payload are padding and are
// never read by the transforms.
type Frame struct {
	// Width of the frame in pixels.
	Width int

	// Height of the frame in pixels.
	Height int

	// Stride is the byte distance between the starts of consecutive rows.
	Stride int

	// Format is the pixel format tag. FormatUnspecified is treated as FormatBGRA.
	Format PixelFormat

	// Pix holds the pixel data.
	Pix []byte
}

// New returns a BGRA frame with a tight stride (Width*4).
func New(width, height int) *Frame {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	stride := width * BytesPerPixel
	return &Frame{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: FormatBGRA,
		Pix:    make([]byte, stride*height),
	}
}

// NewWithStride returns a BGRA frame with an explicit stride.
func NewWithStride(width, height, stride int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBufferLayout, width, height)
	}
	if stride < width*BytesPerPixel {
		return nil, fmt.Errorf("%w: stride %d < width*4 (%d)", ErrInvalidBufferLayout, stride, width*BytesPerPixel)
	}
	return Allocate(width, height, stride)
}

// NewAligned returns a BGRA frame whose stride is rounded up to a multiple of
// align bytes, the way capture hardware pads rows.
func NewAligned(width, height, align int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBufferLayout, width, height)
	}
	stride, err := limits.AlignStride(width, align)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBufferLayout, err)
	}
	return Allocate(width, height, stride)
}

// Allocate creates a zeroed BGRA frame of the given geometry, enforcing
// limits.MaxFrameDimension and limits.MaxFrameBytes.
func Allocate(width, height, stride int) (*Frame, error) {
	if err := limits.ValidateFrameSize(width, height, stride); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Allocate",
			"width":    width,
			"height":   height,
			"stride":   stride,
			"error":    err.Error(),
		}).Warn("Refusing frame allocation")
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}

	return &Frame{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: FormatBGRA,
		Pix:    make([]byte, stride*height),
	}, nil
}

// PixelFormat returns the effective pixel format.
func (f *Frame) PixelFormat() PixelFormat {
	if f.Format == FormatUnspecified {
		return FormatBGRA
	}
	return f.Format
}

// Validate checks the frame layout invariants: positive dimensions no larger than
// limits.MaxFrameDimension, a stride no larger than limits.MaxFrameBytes, BGRA
// format, Stride >= Width*4 and len(Pix) >= Stride*Height.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrUnreadableMemory)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBufferLayout, f.Width, f.Height)
	}
	// Bound the operands before any multiplication so the products below cannot overflow.
	if f.Width > limits.MaxFrameDimension || f.Height > limits.MaxFrameDimension {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d", ErrInvalidBufferLayout, f.Width, f.Height, limits.MaxFrameDimension)
	}
	if f.Stride > limits.MaxFrameBytes {
		return fmt.Errorf("%w: stride %d exceeds %d", ErrInvalidBufferLayout, f.Stride, limits.MaxFrameBytes)
	}
	if pf := f.PixelFormat(); pf != FormatBGRA {
		return fmt.Errorf("%w: unsupported pixel format %s", ErrInvalidBufferLayout, pf)
	}
	if f.Stride < f.Width*BytesPerPixel {
		return fmt.Errorf("%w: stride %d < width*4 (%d)", ErrInvalidBufferLayout, f.Stride, f.Width*BytesPerPixel)
	}
	if f.Pix == nil {
		return fmt.Errorf("%w: nil pixel data", ErrUnreadableMemory)
	}
	if need := int64(f.Stride) * int64(f.Height); int64(len(f.Pix)) < need {
		return fmt.Errorf("%w: buffer length %d < stride*height (%d)", ErrInvalidBufferLayout, len(f.Pix), need)
	}
	return nil
}

// DataSize returns the size of the pixel buffer in bytes, padding included.
func (f *Frame) DataSize() int {
	return len(f.Pix)
}

// PixOffset returns the index of the first byte of pixel (x, y) in Pix.
func (f *Frame) PixOffset(x, y int) int {
	return y*f.Stride + x*BytesPerPixel
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// PixelAt returns the pixel at (x, y), or the zero Pixel when out of bounds.
func (f *Frame) PixelAt(x, y int) Pixel {
	if !f.inBounds(x, y) {
		return Pixel{}
	}
	i := f.PixOffset(x, y)
	s := f.Pix[i : i+4 : i+4]
	return Pixel{B: s[0], G: s[1], R: s[2], A: s[3]}
}

// SetPixel stores p at (x, y). Out of bounds writes are ignored.
func (f *Frame) SetPixel(x, y int, p Pixel) {
	if !f.inBounds(x, y) {
		return
	}
	i := f.PixOffset(x, y)
	s := f.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = p.B, p.G, p.R, p.A
}

// Fill sets every pixel to p. Row padding is left untouched.
func (f *Frame) Fill(p Pixel) {
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Stride : y*f.Stride+f.Width*BytesPerPixel]
		for i := 0; i < len(row); i += BytesPerPixel {
			row[i], row[i+1], row[i+2], row[i+3] = p.B, p.G, p.R, p.A
		}
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	return &Frame{
		Width:  f.Width,
		Height: f.Height,
		Stride: f.Stride,
		Format: f.Format,
		Pix:    append([]byte(nil), f.Pix...),
	}
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return PixelModel
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	if !f.inBounds(x, y) {
		return color.Transparent
	}
	return f.PixelAt(x, y)
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, pixelModel(c).(Pixel))
}

// String describes the frame geometry.
func (f *Frame) String() string {
	return fmt.Sprintf("%dx%d stride=%d format=%s", f.Width, f.Height, f.Stride, f.PixelFormat())
}

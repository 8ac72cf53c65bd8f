// Package limits provides centralized frame size limits for framefx.
// This ensures consistent validation across the frame, effects and pipeline packages.
package limits

import (
	"errors"
	"fmt"
)

const (
	// BytesPerPixel is the size of one interleaved BGRA pixel.
	BytesPerPixel = 4

	// MaxFrameDimension is the largest width or height accepted for a frame (16K).
	MaxFrameDimension = 16384

	// MaxFrameBytes is the absolute maximum for any single frame allocation (256MB).
	// A 16K x 4K BGRA frame is exactly this size.
	MaxFrameBytes = 256 * 1024 * 1024

	// MaxStrideAlignment is the largest row alignment accepted when building aligned frames.
	MaxStrideAlignment = 4096
)

var (
	// ErrFrameEmpty indicates a frame with a zero or negative dimension.
	ErrFrameEmpty = errors.New("empty frame")

	// ErrFrameTooLarge indicates a frame exceeds MaxFrameDimension or MaxFrameBytes.
	ErrFrameTooLarge = errors.New("frame too large")
)

// ValidateDimensions checks width and height against MaxFrameDimension.
// Returns an error with context including the actual and maximum sizes.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrFrameEmpty, width, height)
	}
	if width > MaxFrameDimension || height > MaxFrameDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", ErrFrameTooLarge, width, height, MaxFrameDimension)
	}
	return nil
}

// ValidateFrameSize checks a frame geometry against MaxFrameDimension and MaxFrameBytes.
// The stride is not checked against the width here; layout checks belong to the frame package.
func ValidateFrameSize(width, height, stride int) error {
	if err := ValidateDimensions(width, height); err != nil {
		return err
	}
	if stride <= 0 {
		return fmt.Errorf("%w: stride %d", ErrFrameEmpty, stride)
	}
	if stride > MaxFrameBytes {
		return fmt.Errorf("%w: stride %d exceeds limit %d", ErrFrameTooLarge, stride, MaxFrameBytes)
	}
	// Both operands are bounded, so the int64 product cannot overflow.
	size := int64(stride) * int64(height)
	if size > MaxFrameBytes {
		return fmt.Errorf("%w: size %d exceeds limit %d", ErrFrameTooLarge, size, MaxFrameBytes)
	}
	return nil
}

// AlignStride returns the smallest stride >= width*BytesPerPixel that is a multiple of align.
// An align of 0 or 1 returns the tight stride.
func AlignStride(width, align int) (int, error) {
	if width <= 0 {
		return 0, fmt.Errorf("%w: width %d", ErrFrameEmpty, width)
	}
	if align < 0 || align > MaxStrideAlignment {
		return 0, fmt.Errorf("invalid stride alignment %d (max %d)", align, MaxStrideAlignment)
	}
	stride := width * BytesPerPixel
	if align <= 1 {
		return stride, nil
	}
	return (stride + align - 1) / align * align, nil
}

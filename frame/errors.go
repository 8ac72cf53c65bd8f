package frame

import "errors"

// Sentinel errors for frame layout and allocation failures.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrInvalidBufferLayout indicates the frame geometry is inconsistent or out of
	// range: a zero dimension or one above limits.MaxFrameDimension, a stride shorter
	// than one row of pixels or above limits.MaxFrameBytes, a pixel slice shorter than
	// stride*height, or a pixel format other than BGRA.
	ErrInvalidBufferLayout = errors.New("invalid buffer layout")

	// ErrUnreadableMemory indicates the frame or its pixel memory is missing.
	ErrUnreadableMemory = errors.New("unreadable buffer memory")

	// ErrAllocationFailure indicates an output frame of the requested geometry
	// could not be created.
	ErrAllocationFailure = errors.New("frame allocation failed")

	// ErrViewReleased indicates a View was used after its Read callback returned.
	ErrViewReleased = errors.New("frame view released")
)

// Package limits provides centralized frame size constants and validation functions
// for framefx. This package ensures consistent size enforcement across all
// components that allocate pixel memory.
//
// # Size Hierarchy
//
//   - BytesPerPixel (4): one interleaved B, G, R, A sample set.
//
//   - MaxFrameDimension (16384): the largest accepted width or height.
//
//   - MaxFrameBytes (256MB): the absolute maximum for one frame allocation. Transform
//     outputs larger than this fail with an allocation error instead of exhausting memory.
//
//   - MaxStrideAlignment (4096): the largest row alignment for aligned frames.
//
// # Validation Functions
//
//	if err := limits.ValidateFrameSize(1920, 1080, 7680); err != nil {
//	    // ErrFrameEmpty or ErrFrameTooLarge
//	}
//
//	stride, err := limits.AlignStride(1918, 64) // 7680
package limits

// Package frame defines the BGRA frame buffer used throughout framefx.
//
// A Frame is a contiguous byte region holding one image as interleaved 8-bit
// B, G, R, A samples. Rows are Stride bytes apart; Stride may exceed Width*4
// when the producer pads rows for alignment:
//
//	f, err := frame.NewAligned(1918, 1080, 64) // Stride 7680
//	f.Fill(frame.Pixel{B: 10, G: 20, R: 30, A: 255})
//
// # Layout Invariants
//
// Every transform validates its input before touching it:
//
//   - Width > 0 and Height > 0
//   - Stride >= Width*4
//   - len(Pix) >= Stride*Height
//   - Format is FormatBGRA (FormatUnspecified is read as BGRA)
//
// Violations are reported as ErrInvalidBufferLayout, a missing frame or pixel
// slice as ErrUnreadableMemory. Output frames come from Allocate, which fails
// with ErrAllocationFailure above the sizes in the limits package.
//
// # Scoped Access
//
// Read hands a callback a View of a validated frame and releases it when the
// callback returns, whatever the exit path:
//
//	err := frame.Read(f, func(v frame.View) error {
//	    row, err := v.Row(0)
//	    ...
//	})
//
// # Interoperability
//
// Frame implements image.Image and draw.Image. FromImage and ToNRGBA convert to
// and from the standard image types; Digest fingerprints the pixel payload.
package frame

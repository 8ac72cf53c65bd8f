package probe

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framefx/frame"
)

// Report describes the center pixel of a frame and the frame's buffer.
type Report struct {
	// X and Y locate the probed pixel: (Width/2, Height/2).
	X, Y int

	R, G, B, A uint8

	// Hex is the color as #RRGGBB.
	Hex string

	Width    int
	Height   int
	Stride   int
	Format   frame.PixelFormat
	DataSize int

	// Digest is the BLAKE2b-256 of the pixel payload.
	Digest string
}

// Probe reads the pixel at (Width/2, Height/2). The frame is validated first and
// layout errors are returned unchanged, so errors.Is works against the frame
// sentinels.
func Probe(f *frame.Frame) (*Report, error) {
	var report *Report

	err := frame.Read(f, func(v frame.View) error {
		x, y := v.Width()/2, v.Height()/2
		p, err := v.Pixel(x, y)
		if err != nil {
			return err
		}

		report = &Report{
			X:        x,
			Y:        y,
			R:        p.R,
			G:        p.G,
			B:        p.B,
			A:        p.A,
			Hex:      p.Hex(),
			Width:    v.Width(),
			Height:   v.Height(),
			Stride:   v.Stride(),
			Format:   v.Format(),
			DataSize: v.DataSize(),
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Probe",
			"error":    err.Error(),
		}).Debug("Probe rejected frame")
		return nil, fmt.Errorf("probe: %w", err)
	}

	digest, err := f.Digest()
	if err != nil {
		return nil, fmt.Errorf("probe digest: %w", err)
	}
	report.Digest = digest

	return report, nil
}

// Pixel returns the probed pixel.
func (r *Report) Pixel() frame.Pixel {
	return frame.Pixel{B: r.B, G: r.G, R: r.R, A: r.A}
}

// Lines returns the report text one line per entry, blank separator included.
func (r *Report) Lines() []string {
	return []string{
		fmt.Sprintf("Center pixel (%d, %d):", r.X, r.Y),
		r.Pixel().String(),
		"Hex: " + r.Hex,
		"",
		"Buffer:",
		fmt.Sprintf("Size: %d x %d", r.Width, r.Height),
		fmt.Sprintf("Bytes per row: %d", r.Stride),
		"Pixel format: " + r.Format.Description(),
		"Data size: " + humanize.IBytes(uint64(r.DataSize)),
	}
}

// String renders the multi-line text report.
func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

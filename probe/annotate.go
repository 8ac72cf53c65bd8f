package probe

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/opd-ai/framefx/frame"
)

const (
	overlayMargin  = 4
	overlayPadding = 4
)

var (
	overlayBackground = frame.Pixel{B: 0, G: 0, R: 0, A: 192}
	overlayText       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Annotate returns a copy of f with the report text drawn in the top-left
// corner over a dark box. The box is clipped to the frame; f is not modified.
func Annotate(f *frame.Frame, report *Report) (*frame.Frame, error) {
	if report == nil {
		return nil, fmt.Errorf("annotate: nil report")
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	out := f.Clone()
	face := basicfont.Face7x13
	lines := report.Lines()

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(overlayText),
		Face: face,
	}

	width := 0
	for _, line := range lines {
		if w := d.MeasureString(line).Ceil(); w > width {
			width = w
		}
	}
	lineHeight := face.Metrics().Height.Ceil()

	box := image.Rect(
		overlayMargin,
		overlayMargin,
		overlayMargin+width+2*overlayPadding,
		overlayMargin+lineHeight*len(lines)+2*overlayPadding,
	).Intersect(out.Bounds())
	draw.Draw(out, box, image.NewUniform(overlayBackground), image.Point{}, draw.Over)

	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		d.Dot = fixed.P(overlayMargin+overlayPadding, overlayMargin+overlayPadding+ascent+i*lineHeight)
		d.DrawString(line)
	}

	return out, nil
}

package frame

import (
	"fmt"
	"image/color"
)

// Pixel is one BGRA sample set, in memory order.
type Pixel struct {
	B, G, R, A uint8
}

// RGBA implements color.Color. Channels are straight (not premultiplied) alpha.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// Hex returns the color as #RRGGBB, alpha omitted.
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", p.R, p.G, p.B)
}

// String returns the channels in display order.
func (p Pixel) String() string {
	return fmt.Sprintf("R: %d, G: %d, B: %d, A: %d", p.R, p.G, p.B, p.A)
}

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{B: n.B, G: n.G, R: n.R, A: n.A}
}

// PixelModel converts any color to a Pixel.
var PixelModel color.Model = color.ModelFunc(pixelModel)

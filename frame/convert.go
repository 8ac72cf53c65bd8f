package frame

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// FromImage converts any image into a tight-stride BGRA frame.
func FromImage(img image.Image) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrUnreadableMemory)
	}
	b := img.Bounds()
	return FromImageScaled(img, b.Dx(), b.Dy())
}

// FromImageScaled converts img into a BGRA frame of width x height, resampling
// with bilinear interpolation when the size differs from the source.
func FromImageScaled(img image.Image, width, height int) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrUnreadableMemory)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBufferLayout, width, height)
	}

	f, err := Allocate(width, height, width*BytesPerPixel)
	if err != nil {
		return nil, err
	}

	// Render into NRGBA first so x/image takes its fast paths, then swizzle.
	// NRGBA sources of the right size are read directly, keeping alpha exact.
	src := img.Bounds()
	tmp, ok := img.(*image.NRGBA)
	if !ok || src.Dx() != width || src.Dy() != height {
		tmp = image.NewNRGBA(image.Rect(0, 0, width, height))
		if src.Dx() == width && src.Dy() == height {
			xdraw.Draw(tmp, tmp.Bounds(), img, src.Min, xdraw.Src)
		} else {
			xdraw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), img, src, xdraw.Src, nil)
		}
	}

	origin := tmp.Bounds().Min
	for y := 0; y < height; y++ {
		start := tmp.PixOffset(origin.X, origin.Y+y)
		in := tmp.Pix[start : start+width*4]
		out := f.Pix[y*f.Stride : y*f.Stride+width*4]
		for i := 0; i < len(in); i += 4 {
			out[i+0] = in[i+2]
			out[i+1] = in[i+1]
			out[i+2] = in[i+0]
			out[i+3] = in[i+3]
		}
	}
	return f, nil
}

// ToNRGBA converts the frame into an *image.NRGBA suitable for the standard
// image encoders.
func (f *Frame) ToNRGBA() (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	err := Read(f, func(v View) error {
		for y := 0; y < v.Height(); y++ {
			in, err := v.Row(y)
			if err != nil {
				return err
			}
			out := img.Pix[y*img.Stride : y*img.Stride+len(in)]
			for i := 0; i < len(in); i += 4 {
				out[i+0] = in[i+2]
				out[i+1] = in[i+1]
				out[i+2] = in[i+0]
				out[i+3] = in[i+3]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

package frame

import "fmt"

// PixelFormat is a FourCC pixel format tag, packed big-endian so the tag reads
// left to right in hex dumps (FormatBGRA is 0x42475241).
type PixelFormat uint32

// Known pixel formats. Only FormatBGRA is accepted by the transforms; the others
// exist so frames from other producers are reported by name instead of by number.
const (
	FormatUnspecified PixelFormat = 0
	FormatBGRA        PixelFormat = 'B'<<24 | 'G'<<16 | 'R'<<8 | 'A'
	FormatRGBA        PixelFormat = 'R'<<24 | 'G'<<16 | 'B'<<8 | 'A'
	FormatARGB        PixelFormat = 'A'<<24 | 'R'<<16 | 'G'<<8 | 'B'
	FormatNV12        PixelFormat = 'N'<<24 | 'V'<<16 | '1'<<8 | '2'
	FormatGray8       PixelFormat = 'L'<<24 | '0'<<16 | '0'<<8 | '8'
)

var formatInfo = map[PixelFormat]struct {
	description   string
	bytesPerPixel int
}{
	FormatBGRA:  {"BGRA (32bit)", 4},
	FormatRGBA:  {"RGBA (32bit)", 4},
	FormatARGB:  {"ARGB (32bit)", 4},
	FormatNV12:  {"420YpCbCr8BiPlanar (12bit)", 0},
	FormatGray8: {"Gray (8bit)", 1},
}

// String returns the FourCC text of the format, or its hex value when the tag
// is not printable.
func (f PixelFormat) String() string {
	if f == FormatUnspecified {
		return "unspecified"
	}
	b := []byte{byte(f >> 24), byte(f >> 16), byte(f >> 8), byte(f)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(f))
		}
	}
	return string(b)
}

// Description returns a human readable name, such as "BGRA (32bit)".
func (f PixelFormat) Description() string {
	if info, ok := formatInfo[f]; ok {
		return info.description
	}
	return f.String()
}

// BytesPerPixel returns the size of one packed pixel, or 0 for planar and
// unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	return formatInfo[f].bytesPerPixel
}

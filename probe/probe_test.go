package probe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/framefx/frame"
	"github.com/opd-ai/framefx/limits"
)

func createUniformFrame(t testing.TB, width, height, stride int, p frame.Pixel) *frame.Frame {
	f, err := frame.NewWithStride(width, height, stride)
	require.NoError(t, err)
	f.Fill(p)
	return f
}

func TestProbeUniform(t *testing.T) {
	p := frame.Pixel{B: 10, G: 20, R: 30, A: 255}

	sizes := []struct{ w, h, stride int }{
		{1, 1, 4},
		{2, 2, 8},
		{3, 5, 16},
		{640, 480, 2560},
		{641, 479, 2624},
	}

	for _, s := range sizes {
		t.Run(fmt.Sprintf("%dx%d", s.w, s.h), func(t *testing.T) {
			report, err := Probe(createUniformFrame(t, s.w, s.h, s.stride, p))
			require.NoError(t, err)

			assert.Equal(t, "#1E140A", report.Hex)
			assert.Equal(t, uint8(30), report.R)
			assert.Equal(t, uint8(20), report.G)
			assert.Equal(t, uint8(10), report.B)
			assert.Equal(t, uint8(255), report.A)
			assert.Equal(t, s.w/2, report.X)
			assert.Equal(t, s.h/2, report.Y)
			assert.Equal(t, s.stride, report.Stride)
			assert.Equal(t, s.stride*s.h, report.DataSize)
			assert.Equal(t, frame.FormatBGRA, report.Format)
			assert.Len(t, report.Digest, 64)
		})
	}
}

func TestProbeReadsCenter(t *testing.T) {
	f := frame.New(4, 3)
	f.SetPixel(2, 1, frame.Pixel{B: 0xCC, G: 0xBB, R: 0xAA, A: 7})

	report, err := Probe(f)
	require.NoError(t, err)

	assert.Equal(t, 2, report.X)
	assert.Equal(t, 1, report.Y)
	assert.Equal(t, "#AABBCC", report.Hex)
	assert.Equal(t, frame.Pixel{B: 0xCC, G: 0xBB, R: 0xAA, A: 7}, report.Pixel())
}

func TestProbeDoesNotModifyFrame(t *testing.T) {
	f := createUniformFrame(t, 8, 8, 40, frame.Pixel{B: 1, G: 2, R: 3, A: 4})
	before := append([]byte(nil), f.Pix...)

	_, err := Probe(f)
	require.NoError(t, err)
	assert.Equal(t, before, f.Pix)
}

func TestProbeInvalidFrames(t *testing.T) {
	tests := []struct {
		name    string
		frame   *frame.Frame
		wantErr error
	}{
		{"zero size", &frame.Frame{Pix: []byte{}}, frame.ErrInvalidBufferLayout},
		{"short stride", &frame.Frame{Width: 2, Height: 1, Stride: 4, Pix: make([]byte, 8)}, frame.ErrInvalidBufferLayout},
		{"short buffer", &frame.Frame{Width: 2, Height: 2, Stride: 8, Pix: make([]byte, 12)}, frame.ErrInvalidBufferLayout},
		{"nil pixels", &frame.Frame{Width: 1, Height: 1, Stride: 4}, frame.ErrUnreadableMemory},
		{"nil frame", nil, frame.ErrUnreadableMemory},
		{"stride wraps stride*height", &frame.Frame{Width: 1, Height: 4, Stride: 1 << 62, Pix: []byte{}}, frame.ErrInvalidBufferLayout},
		{"width wraps width*4", &frame.Frame{Width: 1 << 62, Height: 1, Stride: 0, Pix: []byte{}}, frame.ErrInvalidBufferLayout},
		{"width above max dimension", &frame.Frame{Width: limits.MaxFrameDimension + 1, Height: 1, Stride: (limits.MaxFrameDimension + 1) * 4, Pix: make([]byte, (limits.MaxFrameDimension+1)*4)}, frame.ErrInvalidBufferLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report *Report
			var err error
			require.NotPanics(t, func() { report, err = Probe(tt.frame) })
			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReportString(t *testing.T) {
	f := createUniformFrame(t, 1280, 720, 5120, frame.Pixel{B: 10, G: 20, R: 30, A: 255})

	report, err := Probe(f)
	require.NoError(t, err)

	want := "Center pixel (640, 360):\n" +
		"R: 30, G: 20, B: 10, A: 255\n" +
		"Hex: #1E140A\n" +
		"\n" +
		"Buffer:\n" +
		"Size: 1280 x 720\n" +
		"Bytes per row: 5120\n" +
		"Pixel format: BGRA (32bit)\n" +
		"Data size: 3.5 MiB"
	assert.Equal(t, want, report.String())
}

func TestReportDigestTracksContent(t *testing.T) {
	a, err := Probe(createUniformFrame(t, 4, 4, 16, frame.Pixel{B: 1, A: 255}))
	require.NoError(t, err)
	b, err := Probe(createUniformFrame(t, 4, 4, 32, frame.Pixel{B: 1, A: 255}))
	require.NoError(t, err)
	c, err := Probe(createUniformFrame(t, 4, 4, 16, frame.Pixel{B: 2, A: 255}))
	require.NoError(t, err)

	assert.Equal(t, a.Digest, b.Digest, "padding must not affect the digest")
	assert.NotEqual(t, a.Digest, c.Digest)
}

func BenchmarkProbe(b *testing.B) {
	f := createUniformFrame(b, 1920, 1080, 7680, frame.Pixel{B: 10, G: 20, R: 30, A: 255})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Probe(f); err != nil {
			b.Fatal(err)
		}
	}
}

package source

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/opd-ai/framefx/frame"
)

func writeSolidImage(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	if filepath.Ext(path) == ".bmp" {
		require.NoError(t, bmp.Encode(file, img))
	} else {
		require.NoError(t, png.Encode(file, img))
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	red := color.NRGBA{R: 200, G: 10, B: 20, A: 255}

	for _, name := range []string{"a.png", "b.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			writeSolidImage(t, path, 6, 4, red)

			f, err := LoadImage(path, 0, 0)
			require.NoError(t, err)
			assert.Equal(t, 6, f.Width)
			assert.Equal(t, 4, f.Height)
			assert.Equal(t, frame.Pixel{B: 20, G: 10, R: 200, A: 255}, f.PixelAt(3, 2))

			scaled, err := LoadImage(path, 3, 2)
			require.NoError(t, err)
			assert.Equal(t, 3, scaled.Width)
			assert.Equal(t, frame.Pixel{B: 20, G: 10, R: 200, A: 255}, scaled.PixelAt(1, 1))
		})
	}

	_, err := LoadImage(filepath.Join(dir, "missing.png"), 0, 0)
	assert.Error(t, err)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("x.PNG"))
	assert.True(t, IsImageFile("/a/b/c.webp"))
	assert.True(t, IsImageFile("photo.jpeg"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("noext"))
}

func TestDirSourceScan(t *testing.T) {
	dir := t.TempDir()
	writeSolidImage(t, filepath.Join(dir, "02.png"), 2, 2, color.NRGBA{R: 2, A: 255})
	writeSolidImage(t, filepath.Join(dir, "01.bmp"), 2, 2, color.NRGBA{R: 1, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "03.png"), []byte("not a png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	sub := newCollector()
	src := &DirSource{Dir: dir}
	require.NoError(t, src.Run(context.Background(), sub))

	frames := sub.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, uint8(1), frames[0].PixelAt(0, 0).R, "files are submitted in name order")
	assert.Equal(t, uint8(2), frames[1].PixelAt(0, 0).R)
}

func TestDirSourceInvalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.png")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name string
		dir  string
	}{
		{"empty", ""},
		{"missing", filepath.Join(t.TempDir(), "nope")},
		{"not a directory", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &DirSource{Dir: tt.dir}
			assert.ErrorIs(t, src.Run(context.Background(), newCollector()), ErrInvalidSource)
		})
	}
}

func TestDirSourceWatch(t *testing.T) {
	dir := t.TempDir()
	writeSolidImage(t, filepath.Join(dir, "first.png"), 2, 2, color.NRGBA{G: 1, A: 255})

	watching := make(chan struct{})
	src := &DirSource{Dir: dir, Watch: true, onWatch: func() { close(watching) }}
	sub := newCollector()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := runAsync(ctx, src, sub)

	select {
	case <-watching:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was not registered")
	}

	// Write under a name the source ignores, then rename into place so the
	// source only sees a complete file.
	tmp := filepath.Join(dir, "second.tmp")
	writeSolidImage(t, tmp, 2, 2, color.NRGBA{G: 2, A: 255})
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, "second.png")))

	assert.Eventually(t, func() bool { return sub.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watching source ignored cancellation")
	}

	frames := sub.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, uint8(2), frames[1].PixelAt(0, 0).G)
}

package source

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/opd-ai/framefx/frame"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImageFile reports whether the file extension is one DirSource decodes.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// LoadImage decodes an image file into a BGRA frame. When width and height are
// both positive the image is scaled to that size.
func LoadImage(path string, width, height int) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "LoadImage",
		"path":     path,
		"format":   format,
		"bounds":   img.Bounds().String(),
	}).Debug("Image decoded")

	if width > 0 && height > 0 {
		return frame.FromImageScaled(img, width, height)
	}
	return frame.FromImage(img)
}

// DirSource submits every image in a directory, in file name order.
type DirSource struct {
	Dir string

	// Width and Height scale every image when both are positive.
	Width  int
	Height int

	// Watch keeps the source running after the initial scan and submits images
	// created or rewritten later, until ctx is cancelled.
	Watch bool

	// onWatch is called once the watcher is registered. Tests use it to know
	// when new files will be seen.
	onWatch func()
}

type fileStamp struct {
	size    int64
	modTime int64
}

// Run scans the directory and submits each decodable image. Files that fail to
// decode are logged and skipped. Without Watch it returns nil after the scan.
func (s *DirSource) Run(ctx context.Context, sub Submitter) error {
	if s.Dir == "" {
		return fmt.Errorf("%w: empty directory", ErrInvalidSource)
	}
	info, err := os.Stat(s.Dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidSource, s.Dir)
	}

	var watcher *fsnotify.Watcher
	if s.Watch {
		// Register before scanning so files created during the scan are not missed.
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(s.Dir); err != nil {
			return fmt.Errorf("watch %s: %w", s.Dir, err)
		}
		if s.onWatch != nil {
			s.onWatch()
		}
	}

	seen := make(map[string]fileStamp)

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.Dir, err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		s.submitFile(filepath.Join(s.Dir, entry.Name()), sub, seen)
	}

	logrus.WithFields(logrus.Fields{
		"function": "DirSource.Run",
		"dir":      s.Dir,
		"images":   len(seen),
		"watch":    s.Watch,
	}).Info("Directory scan complete")

	if watcher == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if IsImageFile(event.Name) {
				s.submitFile(event.Name, sub, seen)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithFields(logrus.Fields{
				"function": "DirSource.Run",
				"dir":      s.Dir,
				"error":    err.Error(),
			}).Warn("Watcher error")
		}
	}
}

// submitFile decodes and submits path unless the same version was already
// submitted. A partially written file fails to decode and is picked up again on
// its next write event.
func (s *DirSource) submitFile(path string, sub Submitter, seen map[string]fileStamp) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	stamp := fileStamp{size: info.Size(), modTime: info.ModTime().UnixNano()}
	if prev, ok := seen[path]; ok && prev == stamp {
		return
	}

	f, err := LoadImage(path, s.Width, s.Height)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "DirSource.submitFile",
			"path":     path,
			"error":    err.Error(),
		}).Warn("Skipping unreadable image")
		return
	}
	seen[path] = stamp

	if !sub.Submit(f) {
		logrus.WithFields(logrus.Fields{
			"function": "DirSource.submitFile",
			"path":     path,
		}).Debug("Frame rejected by submitter")
	}
}

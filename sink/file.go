package sink

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"

	"github.com/opd-ai/framefx/frame"
	"github.com/opd-ai/framefx/pipeline"
	"github.com/opd-ai/framefx/probe"
)

// ErrInvalidSink indicates a sink configuration that cannot write files.
var ErrInvalidSink = errors.New("invalid sink configuration")

// ImageFormat selects the encoder for processed frames.
type ImageFormat string

const (
	// FormatPNG writes lossless PNG files.
	FormatPNG ImageFormat = "png"
	// FormatBMP writes uncompressed BMP files.
	FormatBMP ImageFormat = "bmp"
)

// ParseImageFormat parses "png" or "bmp", case-insensitively.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch f := ImageFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown image format %q", ErrInvalidSink, s)
	}
}

func (f ImageFormat) encode(w io.Writer, img image.Image) error {
	switch f {
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// FileSink writes each result to Dir as frame-<seq>-<mode>.<format>. Probe
// results that carry a report also get frame-<seq>-probe.txt.
type FileSink struct {
	Dir    string
	Format ImageFormat

	// Annotate draws the probe report onto probed frames before encoding.
	Annotate bool

	written atomic.Uint64
	failed  atomic.Uint64
}

// NewFileSink creates the output directory and returns a sink writing to it.
func NewFileSink(dir string, format ImageFormat, annotate bool) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrInvalidSink)
	}
	if _, err := ParseImageFormat(string(format)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sink directory: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewFileSink",
		"dir":      dir,
		"format":   format,
		"annotate": annotate,
	}).Info("File sink created")

	return &FileSink{Dir: dir, Format: format, Annotate: annotate}, nil
}

// ImagePath returns the file the processed frame of r is written to.
func (s *FileSink) ImagePath(r pipeline.Result) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame-%06d-%s.%s", r.Seq, r.Mode, s.format()))
}

// ReportPath returns the file the probe report of r is written to.
func (s *FileSink) ReportPath(r pipeline.Result) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame-%06d-probe.txt", r.Seq))
}

func (s *FileSink) format() ImageFormat {
	if s.Format == "" {
		return FormatPNG
	}
	return s.Format
}

// Write encodes one result.
func (s *FileSink) Write(r pipeline.Result) error {
	if err := s.write(r); err != nil {
		s.failed.Add(1)
		return err
	}
	s.written.Add(1)
	return nil
}

func (s *FileSink) write(r pipeline.Result) error {
	if r.Processed == nil {
		return fmt.Errorf("result %d: no processed frame", r.Seq)
	}

	out := r.Processed
	if r.Report != nil && s.Annotate {
		annotated, err := probe.Annotate(out, r.Report)
		if err != nil {
			return fmt.Errorf("result %d: %w", r.Seq, err)
		}
		out = annotated
	}

	if err := s.writeImage(s.ImagePath(r), out); err != nil {
		return fmt.Errorf("result %d: %w", r.Seq, err)
	}

	if r.Report != nil {
		text := r.Report.String() + "\nDigest: " + r.Report.Digest + "\n"
		if err := os.WriteFile(s.ReportPath(r), []byte(text), 0o644); err != nil {
			return fmt.Errorf("result %d: write report: %w", r.Seq, err)
		}
	}
	return nil
}

func (s *FileSink) writeImage(path string, f *frame.Frame) (err error) {
	img, err := f.ToNRGBA()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if err := s.format().encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Drain writes results until the channel closes, returning nil, or ctx is
// cancelled, returning ctx.Err(). Write failures are logged and do not stop it.
func (s *FileSink) Drain(ctx context.Context, results <-chan pipeline.Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-results:
			if !ok {
				logrus.WithFields(logrus.Fields{
					"function": "FileSink.Drain",
					"written":  s.Written(),
					"failed":   s.Failed(),
				}).Info("Result channel closed")
				return nil
			}
			if err := s.Write(r); err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "FileSink.Drain",
					"seq":      r.Seq,
					"error":    err.Error(),
				}).Error("Failed to write result")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"function": "FileSink.Drain",
				"seq":      r.Seq,
				"mode":     r.Mode,
			}).Debug("Result written")
		}
	}
}

// Written returns the number of results written successfully.
func (s *FileSink) Written() uint64 {
	return s.written.Load()
}

// Failed returns the number of results that could not be written.
func (s *FileSink) Failed() uint64 {
	return s.failed.Load()
}

// Package main provides the framefx command: it reads frames from a source,
// runs them through the transform pipeline and writes the results to disk.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/framefx/config"
	"github.com/opd-ai/framefx/effects"
	"github.com/opd-ai/framefx/pipeline"
	"github.com/opd-ai/framefx/sink"
)

// CLI configuration
type CLIConfig struct {
	configPath  string
	mode        string
	delta       int
	logLevel    string
	outDir      string
	printConfig bool

	// set records the flags given explicitly on the command line.
	set map[string]bool
}

// parseCLIFlags parses command-line flags and returns the configuration.
func parseCLIFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cli := &CLIConfig{set: make(map[string]bool)}

	fs := flag.NewFlagSet("framefx", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cli.configPath, "config", "", "YAML configuration file (default: built-in defaults)")
	fs.StringVar(&cli.mode, "mode", "", "Processing mode: grayscale, invert, brightness, probe, contrast")
	fs.IntVar(&cli.delta, "delta", effects.DefaultBrightnessDelta, "Brightness delta, -255 to 255")
	fs.StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cli.outDir, "out", "", "Output directory for processed frames")
	fs.BoolVar(&cli.printConfig, "print-config", false, "Print the effective configuration and exit")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: framefx [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nExamples:\n")
		fmt.Fprintf(output, "  framefx -mode invert -out ./out\n")
		fmt.Fprintf(output, "  framefx -config framefx.yaml -mode brightness -delta -40\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { cli.set[f.Name] = true })

	return cli, nil
}

// loadConfig loads the config file, if any, and applies the flag overrides.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.Default()
	if cli.configPath != "" {
		loaded, err := config.Load(cli.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.set["mode"] {
		mode, err := effects.ParseMode(cli.mode)
		if err != nil {
			return nil, err
		}
		cfg.Pipeline.Mode = mode
	}
	if cli.set["delta"] {
		cfg.Pipeline.BrightnessDelta = cli.delta
	}
	if cli.set["log-level"] {
		cfg.Log.Level = cli.logLevel
	}
	if cli.set["out"] {
		cfg.Sink.Dir = cli.outDir
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run wires source, pipeline and sink together and blocks until the source is
// exhausted or ctx is cancelled. Frames still queued when a finite source ends
// are processed before the pipeline stops.
func run(ctx context.Context, cfg *config.Config) (pipeline.Stats, error) {
	src, err := cfg.NewSource()
	if err != nil {
		return pipeline.Stats{}, err
	}

	p, err := pipeline.New(cfg.PipelineConfig())
	if err != nil {
		return pipeline.Stats{}, err
	}

	drain := discardResults
	if cfg.Sink.Dir != "" {
		fileSink, err := sink.NewFileSink(cfg.Sink.Dir, sink.ImageFormat(cfg.Sink.Format), cfg.Sink.Annotate)
		if err != nil {
			return pipeline.Stats{}, err
		}
		drain = fileSink.Drain
	}

	if err := p.Start(ctx); err != nil {
		return pipeline.Stats{}, err
	}

	drained := make(chan error, 1)
	go func() {
		// Results() closes when the pipeline stops, which ends the drain.
		drained <- drain(context.Background(), p.Results())
	}()

	srcErr := src.Run(ctx, p)
	if srcErr == nil {
		if err := p.Flush(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pipeline.ErrClosed) {
			logrus.WithFields(logrus.Fields{
				"function": "run",
				"error":    err.Error(),
			}).Warn("Pipeline flush interrupted")
		}
	}

	// ErrNotRunning means cancelling ctx already stopped the worker.
	if err := p.Stop(); err != nil && !errors.Is(err, pipeline.ErrNotRunning) {
		return p.Stats(), err
	}
	if err := <-drained; err != nil {
		return p.Stats(), err
	}

	if srcErr != nil && !errors.Is(srcErr, context.Canceled) {
		return p.Stats(), fmt.Errorf("source: %w", srcErr)
	}
	return p.Stats(), nil
}

func discardResults(ctx context.Context, results <-chan pipeline.Result) error {
	for r := range results {
		fields := logrus.Fields{
			"function": "discardResults",
			"seq":      r.Seq,
			"mode":     r.Mode,
			"duration": r.Duration,
		}
		if r.Report != nil {
			fields["hex"] = r.Report.Hex
		}
		logrus.WithFields(fields).Debug("Result discarded")
	}
	return nil
}

// main is the entry point for the framefx command.
func main() {
	cli, err := parseCLIFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if cli.printConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print configuration: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Log.Apply(logrus.StandardLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := run(ctx, cfg)

	logrus.WithFields(logrus.Fields{
		"function":        "main",
		"received":        stats.Received,
		"processed":       stats.Processed,
		"failed":          stats.Failed,
		"dropped_frames":  stats.DroppedFrames,
		"dropped_results": stats.DroppedResults,
		"fps":             fmt.Sprintf("%.1f", stats.FPS),
	}).Info("framefx finished")

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("framefx failed")
		os.Exit(1)
	}
}

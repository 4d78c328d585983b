package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/backends"
	"github.com/df07/go-diffuse-raytracer/pkg/backends/window"
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

const defaultHeight = 512

// runConfig holds the parsed flags of the run subcommand
type runConfig struct {
	Scene      string
	Output     string
	Width      int
	Height     int
	Samples    int
	Workers    int
	Scale      int
	Background string
	Window     bool
	Verbose    bool
}

func main() {
	if len(os.Args) < 2 || os.Args[1] != "run" {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[2:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Diffuse Raytracer")
	fmt.Fprintln(w, "Usage: raytracer run [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'raytracer run -h' for the list of options.")
}

// parseRunFlags parses the arguments of the run subcommand
func parseRunFlags(args []string, output io.Writer) (runConfig, error) {
	var cfg runConfig
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Scene, "scene", "default", "Scene name or path to a .json scene description")
	fs.StringVar(&cfg.Output, "o", "run.png", "Output file (.png, .bmp, .tif)")
	fs.IntVar(&cfg.Width, "width", 0, "Image width (0 = derive from camera aspect ratio)")
	fs.IntVar(&cfg.Height, "height", 0, fmt.Sprintf("Image height (0 = %d, or derived from -width)", defaultHeight))
	fs.IntVar(&cfg.Samples, "samples", 1, "Samples per pixel: 1, 4 or 16")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of render workers (0 = number of CPUs)")
	fs.IntVar(&cfg.Scale, "scale", 1, "Integer upscale factor for the output")
	fs.StringVar(&cfg.Background, "background", "", "Override the scene background (#rrggbb or color name)")
	fs.BoolVar(&cfg.Window, "window", false, "Show the result in a window instead of writing a file")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.Usage = func() {
		printUsage(output)
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Built-in scenes:")
		for _, name := range scene.BuiltinNames() {
			fmt.Fprintf(output, "  %s\n", name)
		}
	}

	if err := fs.Parse(args); err != nil {
		return runConfig{}, err
	}
	if fs.NArg() > 0 {
		return runConfig{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return runConfig{}, fmt.Errorf("%w: width and height must not be negative", renderer.ErrInvalidTarget)
	}
	return cfg, nil
}

// createScene loads the requested scene and applies command line overrides
func createScene(name, background string) (*scene.Scene, error) {
	s, err := scene.Load(name)
	if err != nil {
		return nil, err
	}
	if background != "" {
		c, err := core.ParseColor(background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.Camera().SetClearColor(c)
	}
	return s, nil
}

// imageSize resolves unset dimensions from the camera aspect ratio
func imageSize(aspect float32, width, height int) core.PixelSize {
	switch {
	case width == 0 && height == 0:
		height = defaultHeight
		width = int(math.Round(float64(aspect * float32(height))))
	case width == 0:
		width = int(math.Round(float64(aspect * float32(height))))
	case height == 0:
		height = int(math.Round(float64(float32(width) / aspect)))
	}
	return core.NewPixelSize(width, height)
}

func newBackend(cfg runConfig) (backends.Backend, error) {
	if cfg.Window {
		return window.New(cfg.Scale), nil
	}
	return backends.NewFileBackend(cfg.Output, cfg.Scale)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes the run subcommand
func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := parseRunFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)
	core.SetLogger(logger)
	defer core.SetLogger(nil)

	sampling, err := renderer.ParseSamplingLevel(cfg.Samples)
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg)
	if err != nil {
		return err
	}

	s, err := createScene(cfg.Scene, cfg.Background)
	if err != nil {
		return err
	}
	logger.Info("scene loaded", "scene", cfg.Scene, "entities", s.Len(), "camera", s.Camera().String())

	size := imageSize(s.Camera().AspectRatio(), cfg.Width, cfg.Height)
	target, err := renderer.NewFrameBuffer(size.Width, size.Height)
	if err != nil {
		return err
	}

	lastLogged := time.Now()
	progress := func(p float32) {
		if p >= 1 || time.Since(lastLogged) > time.Second {
			lastLogged = time.Now()
			logger.Info("rendering", "progress", fmt.Sprintf("%.0f%%", p*100))
		}
	}

	opts := renderer.RenderOptions{Sampling: sampling, Workers: cfg.Workers}
	stats, err := s.Render(ctx, target, opts, progress)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Info("render complete",
		"target", target.String(),
		"samples", sampling.String(),
		"workers", stats.Workers,
		"hitRatio", fmt.Sprintf("%.3f", stats.HitRatio),
		"elapsed", stats.Elapsed)

	logger.Info("presenting", "backend", backend.String())
	return backend.Present(ctx, target)
}

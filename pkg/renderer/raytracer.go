package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
)

// ErrDegenerateTarget is returned for targets one pixel wide or high, which uv mapping cannot divide by
var ErrDegenerateTarget = errors.New("render target must be at least 2x2 pixels")

// Tracer resolves the nearest intersection along a ray.
// Implementations are shared by all render workers and must be safe for concurrent reads.
type Tracer interface {
	Hit(ray math.Ray) (geometry.Hit, bool)
}

// ProgressFunc receives the completed fraction of a render in [0, 1]
type ProgressFunc func(progress float32)

// RenderOptions contains per-render configuration
type RenderOptions struct {
	Sampling SamplingLevel // Sub-pixel samples per pixel
	Workers  int           // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderOptions returns single sampling on every CPU
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Sampling: SampleSingle,
		Workers:  0,
	}
}

// ValidateTargetSize checks that a target can be rendered into
func ValidateTargetSize(size core.PixelSize) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTarget, size)
	}
	if size.Width == 1 || size.Height == 1 {
		return fmt.Errorf("%w: got %s", ErrDegenerateTarget, size)
	}
	return nil
}

// Render clears the target and renders every pixel into it.
// Progress is reported once per completed scanline from the calling goroutine.
// Cancellation is checked between scanlines.
func (c *Camera) Render(ctx context.Context, tracer Tracer, target RenderTarget, opts RenderOptions, progress ProgressFunc) (RenderStats, error) {
	size := target.Size()
	if err := ValidateTargetSize(size); err != nil {
		return RenderStats{}, err
	}
	if !opts.Sampling.Valid() {
		return RenderStats{}, fmt.Errorf("%w: got %d", ErrInvalidSampling, int(opts.Sampling))
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, size.Height)

	logger := core.Logger()
	logger.Debug("render started",
		"target", size.String(), "sampling", opts.Sampling.String(), "workers", numWorkers)

	target.Clear(c.clearColor)

	startTime := time.Now()
	stats := RenderStats{MaxSamples: int(opts.Sampling), Workers: numWorkers}
	pool := NewScanlinePool(numWorkers, func(row int) Scanline {
		return c.renderScanline(tracer, row, size, opts.Sampling)
	})

	completed := 0
	err := pool.Run(ctx, size.Height, func(line Scanline) {
		for x, color := range line.Pixels {
			target.Set(core.NewPixel(x, line.Row), color)
		}
		stats.merge(line.Stats)
		completed++
		if progress != nil {
			progress(float32(completed) / float32(size.Height))
		}
	})
	stats.Elapsed = time.Since(startTime)
	stats.finalize()

	if err != nil {
		logger.Debug("render stopped", "rows", stats.TotalRows, "error", err)
		return stats, err
	}

	logger.Debug("render finished",
		"elapsed", stats.Elapsed, "samples", stats.TotalSamples, "hitRatio", stats.HitRatio)
	return stats, nil
}

// renderScanline renders a single row into its own buffer
func (c *Camera) renderScanline(tracer Tracer, row int, size core.PixelSize, level SamplingLevel) Scanline {
	line := Scanline{
		Row:    row,
		Pixels: make([]core.Color, size.Width),
	}
	samples := int(level)

	for col := 0; col < size.Width; col++ {
		color, hits := c.samplePixel(tracer, core.NewPixel(col, row), size, level)
		line.Pixels[col] = color
		line.Stats.TotalSamples += samples
		line.Stats.TotalHits += hits
	}
	line.Stats.TotalPixels = size.Width
	line.Stats.TotalRows = 1
	return line
}

package renderer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// Scanline is a rendered row of pixels
type Scanline struct {
	Row    int
	Pixels []core.Color
	Stats  RenderStats
}

// ScanlinePool renders rows in parallel. Workers only write to the scanline
// they own; finished scanlines are handed back to the goroutine calling Run.
type ScanlinePool struct {
	numWorkers int
	render     func(row int) Scanline
}

// NewScanlinePool creates a pool with the given number of workers
func NewScanlinePool(numWorkers int, render func(row int) Scanline) *ScanlinePool {
	return &ScanlinePool{
		numWorkers: max(1, numWorkers),
		render:     render,
	}
}

// NumWorkers returns the number of workers in the pool
func (p *ScanlinePool) NumWorkers() int {
	return p.numWorkers
}

// Run renders rows [0, rows) and calls collect for each finished scanline.
// Rows are dispatched in order, so a single worker completes them row-major.
// Run returns ctx.Err() if the context is cancelled before all rows finish.
func (p *ScanlinePool) Run(ctx context.Context, rows int, collect func(Scanline)) error {
	g, gctx := errgroup.WithContext(ctx)

	taskQueue := make(chan int)
	resultQueue := make(chan Scanline, p.numWorkers)

	// Dispatcher
	g.Go(func() error {
		defer close(taskQueue)
		for row := 0; row < rows; row++ {
			select {
			case taskQueue <- row:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	for i := 0; i < p.numWorkers; i++ {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for row := range taskQueue {
				if err := gctx.Err(); err != nil {
					return err
				}
				line := p.render(row)
				select {
				case resultQueue <- line:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		workers.Wait()
		close(resultQueue)
	}()

	for line := range resultQueue {
		collect(line)
	}

	return g.Wait()
}

// Package window shows a rendered frame in a desktop window.
package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-diffuse-raytracer/pkg/backends"
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

const (
	// Title is the window title
	Title = "raytracer - Press 'Esc' to exit"
	// TicksPerSecond is the window refresh rate
	TicksPerSecond = 60
)

// Backend displays the render target until the window is closed or Escape is pressed
type Backend struct {
	Scale int // Window size multiplier
}

// New creates a window backend
func New(scale int) *Backend {
	if scale < 1 {
		scale = 1
	}
	return &Backend{Scale: scale}
}

// Present opens the window and blocks until it is closed
func (b *Backend) Present(ctx context.Context, target renderer.RenderTarget) error {
	g := newFrameGame(ctx, target)
	size := g.size

	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(size.Width*b.Scale, size.Height*b.Scale)
	ebiten.SetTPS(TicksPerSecond)

	core.Logger().Info("opening window", "size", size.String())
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return ctx.Err()
}

func (b *Backend) String() string {
	return fmt.Sprintf("WindowBackend (%dx)", b.Scale)
}

// frameGame shows a fixed frame. The target is converted once; it does not change while shown.
type frameGame struct {
	ctx   context.Context
	size  core.PixelSize
	pix   []byte
	frame *ebiten.Image
}

func newFrameGame(ctx context.Context, target renderer.RenderTarget) *frameGame {
	return &frameGame{
		ctx:  ctx,
		size: target.Size(),
		pix:  backends.ToRGBA(target).Pix,
	}
}

func (g *frameGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (g *frameGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.size.Width, g.size.Height)
		g.frame.WritePixels(g.pix)
	}
	screen.DrawImage(g.frame, nil)
}

func (g *frameGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size.Width, g.size.Height
}

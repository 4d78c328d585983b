package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// ErrInvalidTarget is returned for render targets with non-positive dimensions
var ErrInvalidTarget = errors.New("render target dimensions must be positive")

// RenderTarget is anything a frame can be rendered into
type RenderTarget interface {
	// Size returns the pixel dimensions
	Size() core.PixelSize
	// Set sets the color of a pixel
	Set(pixel core.Pixel, c core.Color)
	// Get returns the color of a pixel
	Get(pixel core.Pixel) core.Color
	// Clear sets every pixel to the given color
	Clear(c core.Color)
	// Bytes returns the pixels row-major, 3 bytes per pixel in R, G, B order
	Bytes() []byte
}

const bytesPerPixel = 3

// FrameBuffer is a RenderTarget backed by a flat RGB byte slice
type FrameBuffer struct {
	size   core.PixelSize
	pixels []byte
}

// NewFrameBuffer creates a black frame buffer
func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidTarget, width, height)
	}
	return &FrameBuffer{
		size:   core.NewPixelSize(width, height),
		pixels: make([]byte, width*height*bytesPerPixel),
	}, nil
}

// Size returns the pixel dimensions
func (fb *FrameBuffer) Size() core.PixelSize {
	return fb.size
}

// Bytes returns a view of the underlying bytes
func (fb *FrameBuffer) Bytes() []byte {
	return fb.pixels
}

// Set sets a pixel. Pixels outside the buffer are ignored.
func (fb *FrameBuffer) Set(pixel core.Pixel, c core.Color) {
	if !fb.inBounds(pixel) {
		return
	}
	offset := fb.offset(pixel)
	fb.pixels[offset] = c.R
	fb.pixels[offset+1] = c.G
	fb.pixels[offset+2] = c.B
}

// Get returns a pixel. Pixels outside the buffer read as black.
func (fb *FrameBuffer) Get(pixel core.Pixel) core.Color {
	if !fb.inBounds(pixel) {
		return core.Black
	}
	offset := fb.offset(pixel)
	return core.NewColor(fb.pixels[offset], fb.pixels[offset+1], fb.pixels[offset+2])
}

// Clear fills the buffer with a single color
func (fb *FrameBuffer) Clear(c core.Color) {
	for i := 0; i < len(fb.pixels); i += bytesPerPixel {
		fb.pixels[i] = c.R
		fb.pixels[i+1] = c.G
		fb.pixels[i+2] = c.B
	}
}

func (fb *FrameBuffer) String() string {
	return fmt.Sprintf("FrameBuffer (%s RGB)", fb.size)
}

func (fb *FrameBuffer) inBounds(p core.Pixel) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < fb.size.Width && p.Y < fb.size.Height
}

func (fb *FrameBuffer) offset(p core.Pixel) int {
	return (p.Y*fb.size.Width + p.X) * bytesPerPixel
}

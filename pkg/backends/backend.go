// Package backends presents rendered frames to files or windows.
package backends

import (
	"context"
	"image"

	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// Backend presents a finished render target
type Backend interface {
	// Present displays or stores the target. It blocks until the output is done.
	Present(ctx context.Context, target renderer.RenderTarget) error
	String() string
}

// ToRGBA converts a render target into an opaque RGBA image
func ToRGBA(target renderer.RenderTarget) *image.RGBA {
	size := target.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	src := target.Bytes()

	for i := 0; i < size.Pixels(); i++ {
		img.Pix[i*4+0] = src[i*3+0]
		img.Pix[i*4+1] = src[i*3+1]
		img.Pix[i*4+2] = src[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

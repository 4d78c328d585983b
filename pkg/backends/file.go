package backends

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

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned when the output extension has no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

type encodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]encodeFunc{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// FileBackend writes the render target to an image file chosen by extension
type FileBackend struct {
	Path  string
	Scale int // Integer upscale factor, values below 2 write the image as rendered
}

// NewFileBackend creates a file backend, failing early on unknown extensions
func NewFileBackend(path string, scale int) (*FileBackend, error) {
	if _, err := encoderFor(path); err != nil {
		return nil, err
	}
	return &FileBackend{Path: path, Scale: scale}, nil
}

func encoderFor(path string) (encodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	encode, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return encode, nil
}

// Present encodes the target and writes it to Path, creating parent directories
func (b *FileBackend) Present(ctx context.Context, target renderer.RenderTarget) error {
	encode, err := encoderFor(b.Path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var img image.Image = ToRGBA(target)
	if b.Scale > 1 {
		img = upscale(img, b.Scale)
	}

	if dir := filepath.Dir(b.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(b.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encode(file, img); err != nil {
		file.Close()
		os.Remove(b.Path)
		return fmt.Errorf("failed to encode %s: %w", b.Path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(b.Path)
		return fmt.Errorf("failed to write %s: %w", b.Path, err)
	}

	bounds := img.Bounds()
	core.Logger().Info("image saved", "path", b.Path, "width", bounds.Dx(), "height", bounds.Dy())
	return nil
}

func upscale(src image.Image, factor int) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

func (b *FileBackend) String() string {
	return fmt.Sprintf("FileBackend %s", b.Path)
}

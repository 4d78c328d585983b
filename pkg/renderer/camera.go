package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
)

// ErrInvalidCamera is returned for camera configurations with non-positive dimensions
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains the parameters for camera construction
type CameraConfig struct {
	Position       math.Vec3  // Camera position, looking down -Z
	FocalLength    float32    // Distance from the position to the image plane
	ViewportHeight float32    // Image plane height in scene units
	AspectRatio    float32    // Image plane width / height
	ClearColor     core.Color // Background for rays that hit nothing
}

// DefaultCameraConfig returns a 2x2 viewport one unit in front of the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:       math.NewVec3(0, 0, 0),
		FocalLength:    1,
		ViewportHeight: 2,
		AspectRatio:    1,
		ClearColor:     core.Black,
	}
}

// Validate checks that all dimensions are positive
func (c CameraConfig) Validate() error {
	switch {
	case !(c.FocalLength > 0):
		return fmt.Errorf("%w: focal length must be positive, got %v", ErrInvalidCamera, c.FocalLength)
	case !(c.ViewportHeight > 0):
		return fmt.Errorf("%w: viewport height must be positive, got %v", ErrInvalidCamera, c.ViewportHeight)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidCamera, c.AspectRatio)
	}
	return nil
}

// Camera generates primary rays and renders frames
type Camera struct {
	transform       geometry.Transform
	focalLength     float32
	clearColor      core.Color
	aspectRatio     float32
	viewportWidth   float32
	viewportHeight  float32
	horizontal      math.Vec3
	vertical        math.Vec3
	lowerLeftCorner math.Vec3
}

// NewCamera creates a camera from a validated configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{
		transform:      geometry.NewTransform(config.Position),
		focalLength:    config.FocalLength,
		clearColor:     config.ClearColor,
		aspectRatio:    config.AspectRatio,
		viewportWidth:  config.AspectRatio * config.ViewportHeight,
		viewportHeight: config.ViewportHeight,
	}
	c.updateImagePlane()
	return c, nil
}

func (c *Camera) updateImagePlane() {
	origin := c.transform.Position()
	c.horizontal = math.NewVec3(c.viewportWidth, 0, 0)
	c.vertical = math.NewVec3(0, c.viewportHeight, 0)
	forward := math.NewVec3(0, 0, c.focalLength)
	c.lowerLeftCorner = origin.
		Subtract(c.horizontal.Divide(2)).
		Subtract(c.vertical.Divide(2)).
		Subtract(forward)
}

// Transform returns the camera placement
func (c *Camera) Transform() geometry.Transform {
	return c.transform
}

// SetPosition moves the camera and its image plane
func (c *Camera) SetPosition(position math.Vec3) {
	c.transform.SetPosition(position)
	c.updateImagePlane()
}

// ClearColor returns the background color
func (c *Camera) ClearColor() core.Color {
	return c.clearColor
}

// SetClearColor changes the background color
func (c *Camera) SetClearColor(clear core.Color) {
	c.clearColor = clear
}

// AspectRatio returns the viewport width / height
func (c *Camera) AspectRatio() float32 {
	return c.aspectRatio
}

// FocalLength returns the distance to the image plane
func (c *Camera) FocalLength() float32 {
	return c.focalLength
}

// Viewport returns the image plane size in scene units
func (c *Camera) Viewport() (width, height float32) {
	return c.viewportWidth, c.viewportHeight
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera (background: %s)", c.clearColor)
}

// UV maps a sub-pixel to normalized image plane coordinates.
// Pixel (0,0) maps to (0,1) and (W-1,H-1) to (1,0); rows are flipped because
// the buffer is stored top-down. A dimension of 1 pixel maps to the first column/row.
func (c *Camera) UV(sub core.SubPixel, size core.PixelSize) (u, v float32) {
	if size.Width > 1 {
		u = sub.X / float32(size.Width-1)
	}
	v = 1
	if size.Height > 1 {
		v = 1 - sub.Y/float32(size.Height-1)
	}
	return u, v
}

// PrimaryRay returns the ray from the camera through image plane point (u, v)
func (c *Camera) PrimaryRay(u, v float32) math.Ray {
	origin := c.transform.Position()
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(origin)
	return math.NewRay(origin, direction)
}

// SamplePixel traces every sub-sample of a pixel and returns the averaged color
func (c *Camera) SamplePixel(tracer Tracer, pixel core.Pixel, size core.PixelSize, level SamplingLevel) core.Color {
	color, _ := c.samplePixel(tracer, pixel, size, level)
	return color
}

// samplePixel also reports how many sub-samples hit geometry
func (c *Camera) samplePixel(tracer Tracer, pixel core.Pixel, size core.PixelSize, level SamplingLevel) (core.Color, int) {
	var sample core.Sample
	hits := 0
	center := pixel.Center()

	for _, o := range level.offsets() {
		u, v := c.UV(center.Offset(o.dx, o.dy), size)
		if hit, ok := tracer.Hit(c.PrimaryRay(u, v)); ok {
			sample.Add(hit.Material.DiffuseColor())
			hits++
		} else {
			sample.Add(c.clearColor)
		}
	}

	color, err := sample.Color()
	if err != nil {
		return c.clearColor, hits
	}
	return color, hits
}

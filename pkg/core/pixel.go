package core

import "fmt"

// Pixel is an integer pixel coordinate, origin at the top-left
type Pixel struct {
	X, Y int
}

// NewPixel creates a new Pixel
func NewPixel(x, y int) Pixel {
	return Pixel{X: x, Y: y}
}

// Center returns the pixel as a sub-pixel coordinate
func (p Pixel) Center() SubPixel {
	return SubPixel{X: float32(p.X), Y: float32(p.Y)}
}

// SubPixel is a fractional pixel coordinate used for multisampling
type SubPixel struct {
	X, Y float32
}

// Offset returns the sub-pixel moved by (dx, dy) pixels
func (s SubPixel) Offset(dx, dy float32) SubPixel {
	return SubPixel{X: s.X + dx, Y: s.Y + dy}
}

// PixelSize is the pixel dimensions of a render target
type PixelSize struct {
	Width, Height int
}

// NewPixelSize creates a new PixelSize
func NewPixelSize(width, height int) PixelSize {
	return PixelSize{Width: width, Height: height}
}

// Pixels returns the total pixel count
func (s PixelSize) Pixels() int {
	return s.Width * s.Height
}

func (s PixelSize) String() string {
	return fmt.Sprintf("%d*%d", s.Width, s.Height)
}

package geometry

import "github.com/df07/go-diffuse-raytracer/pkg/math"

// Transform places an entity in world space. Only translation is supported.
type Transform struct {
	position math.Vec3
}

// NewTransform creates a transform at the given position
func NewTransform(position math.Vec3) Transform {
	return Transform{position: position}
}

// Position returns the world-space position
func (t Transform) Position() math.Vec3 {
	return t.position
}

// SetPosition moves the transform
func (t *Transform) SetPosition(position math.Vec3) {
	t.position = position
}

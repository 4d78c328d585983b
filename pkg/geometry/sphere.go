package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-diffuse-raytracer/pkg/material"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
)

// ErrInvalidRadius is returned when a sphere is built with a non-positive radius
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Sphere is a sphere centered on its transform's position
type Sphere struct {
	radius    float32
	sqrRadius float32
}

// NewSphere creates a new sphere
func NewSphere(radius float32) (*Sphere, error) {
	if !(radius > 0) || math32.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	return &Sphere{radius: radius, sqrRadius: radius * radius}, nil
}

// Radius returns the sphere radius
func (s *Sphere) Radius() float32 {
	return s.radius
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray math.Ray, transform Transform, interval math.Interval, mat material.Material) (Hit, bool) {
	center := transform.Position()

	// Quadratic coefficients with b = 2*halfB
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.LengthSquared()
	if a == 0 {
		return Hit{}, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.sqrRadius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Hit{}, false
	}
	sqrtD := math32.Sqrt(discriminant)

	// Near root first, far root when the ray starts inside or the near root is clipped
	root := (-halfB - sqrtD) / a
	if !interval.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !interval.Contains(root) {
			return Hit{}, false
		}
	}

	point := ray.At(root)
	return Hit{
		Position: point,
		Normal:   point.Subtract(center).Divide(s.radius),
		T:        root,
		Material: mat,
	}, true
}

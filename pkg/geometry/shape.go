package geometry

import (
	"github.com/df07/go-diffuse-raytracer/pkg/material"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
)

// Hit contains information about a ray-primitive intersection
type Hit struct {
	Position math.Vec3         // World-space point of intersection
	Normal   math.Vec3         // Outward unit normal at the intersection
	T        float32           // Parameter t along the ray
	Material material.Material // Material of the intersected surface
}

// Primitive is geometry that can be intersected by rays.
// Placement comes from the caller's Transform, so a Primitive holds no position.
type Primitive interface {
	Hit(ray math.Ray, transform Transform, interval math.Interval, mat material.Material) (Hit, bool)
}

package scene

import (
	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/material"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
)

// Entity binds a placement, a material and a primitive into a scene object
type Entity struct {
	transform geometry.Transform
	material  material.Material
	primitive geometry.Primitive
}

// NewEntity creates a new entity. The material is copied into the entity.
func NewEntity(transform geometry.Transform, mat material.Material, primitive geometry.Primitive) Entity {
	return Entity{
		transform: transform,
		material:  mat,
		primitive: primitive,
	}
}

// NewSphereEntity creates a diffuse sphere centered at center
func NewSphereEntity(center math.Vec3, radius float32, diffuse core.Color) (Entity, error) {
	sphere, err := geometry.NewSphere(radius)
	if err != nil {
		return Entity{}, err
	}
	return NewEntity(geometry.NewTransform(center), material.FromDiffuse(diffuse), sphere), nil
}

// Transform returns the entity placement
func (e Entity) Transform() geometry.Transform {
	return e.transform
}

// Material returns the entity material
func (e Entity) Material() material.Material {
	return e.material
}

// Primitive returns the entity geometry
func (e Entity) Primitive() geometry.Primitive {
	return e.primitive
}

// Hit tests the entity's primitive at the entity's placement.
// An entity without a primitive, such as the zero Entity, is never hit.
func (e Entity) Hit(ray math.Ray, interval math.Interval) (geometry.Hit, bool) {
	if e.primitive == nil {
		return geometry.Hit{}, false
	}
	return e.primitive.Hit(ray, e.transform, interval, e.material)
}

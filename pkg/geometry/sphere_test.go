package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/material"
	mathpkg "github.com/df07/go-diffuse-raytracer/pkg/math"
)

const tolerance = 1e-5

func near(a, b float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func vecNear(a, b mathpkg.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func mustSphere(t *testing.T, radius float32) *Sphere {
	t.Helper()
	s, err := NewSphere(radius)
	if err != nil {
		t.Fatalf("NewSphere(%v) failed: %v", radius, err)
	}
	return s
}

func TestNewSphere_RejectsInvalidRadius(t *testing.T) {
	for _, radius := range []float32{0, -1, math32.NaN(), math32.Inf(1)} {
		if _, err := NewSphere(radius); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("Expected ErrInvalidRadius for radius %v, got %v", radius, err)
		}
	}
}

func TestSphere_Hit_AlongNegativeX(t *testing.T) {
	mat := material.FromDiffuse(core.Green)

	tests := []struct {
		name   string
		center mathpkg.Vec3
		radius float32
		d      float32
	}{
		{"unit sphere at origin", mathpkg.NewVec3(0, 0, 0), 1, 2},
		{"offset sphere", mathpkg.NewVec3(3, -2, 5), 0.5, 0.25},
		{"large sphere far away", mathpkg.NewVec3(-10, 4, 1), 7, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := mustSphere(t, tt.radius)
			origin := tt.center.Add(mathpkg.NewVec3(tt.radius+tt.d, 0, 0))
			ray := mathpkg.NewRay(origin, mathpkg.NewVec3(-1, 0, 0))

			hit, ok := sphere.Hit(ray, NewTransform(tt.center), mathpkg.Forward, mat)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if !near(hit.T, tt.d) {
				t.Errorf("Expected t=%f, got t=%f", tt.d, hit.T)
			}
			if !vecNear(hit.Normal, mathpkg.NewVec3(1, 0, 0)) {
				t.Errorf("Expected normal (1,0,0), got %v", hit.Normal)
			}
			if !vecNear(hit.Position, tt.center.Add(mathpkg.NewVec3(tt.radius, 0, 0))) {
				t.Errorf("Unexpected hit position %v", hit.Position)
			}
			if hit.Material != mat {
				t.Errorf("Expected material %v, got %v", mat, hit.Material)
			}
		})
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := mustSphere(t, 1)
	// Closest approach to the center is 2, larger than the radius
	ray := mathpkg.NewRay(mathpkg.NewVec3(2, 0, 5), mathpkg.NewVec3(0, 0, -1))

	if hit, ok := sphere.Hit(ray, NewTransform(mathpkg.Vec3{}), mathpkg.Forward, material.Material{}); ok {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FromInsideUsesFarRoot(t *testing.T) {
	sphere := mustSphere(t, 2)
	center := mathpkg.NewVec3(1, 1, 1)
	ray := mathpkg.NewRay(center, mathpkg.NewVec3(0, 0, 1))

	hit, ok := sphere.Hit(ray, NewTransform(center), mathpkg.Forward, material.Material{})
	if !ok {
		t.Fatal("Expected hit from inside the sphere")
	}
	if !near(hit.T, 2) {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if !vecNear(hit.Normal, mathpkg.NewVec3(0, 0, 1)) {
		t.Errorf("Expected outward normal (0,0,1), got %v", hit.Normal)
	}
}

func TestSphere_Hit_NearRootClippedUsesFarRoot(t *testing.T) {
	sphere := mustSphere(t, 1)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, -1))

	// Near root at t=4 is below the interval, far root at t=6 is accepted
	hit, ok := sphere.Hit(ray, NewTransform(mathpkg.Vec3{}), mathpkg.NewInterval(4.5, 100), material.Material{})
	if !ok {
		t.Fatal("Expected far root hit")
	}
	if !near(hit.T, 6) {
		t.Errorf("Expected t=6, got t=%f", hit.T)
	}
	if !vecNear(hit.Normal, mathpkg.NewVec3(0, 0, -1)) {
		t.Errorf("Expected normal (0,0,-1), got %v", hit.Normal)
	}
}

func TestSphere_Hit_BothRootsOutsideInterval(t *testing.T) {
	sphere := mustSphere(t, 1)
	transform := NewTransform(mathpkg.Vec3{})

	tests := []struct {
		name     string
		ray      mathpkg.Ray
		interval mathpkg.Interval
	}{
		{"sphere behind ray", mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, 1)), mathpkg.Forward},
		{"clipped by tMax", mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, -1)), mathpkg.NewInterval(0, 3.5)},
		{"clipped by tMin", mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, -1)), mathpkg.NewInterval(6.5, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := sphere.Hit(tt.ray, transform, tt.interval, material.Material{}); ok {
				t.Errorf("Expected miss, got hit at t=%f", hit.T)
			}
		})
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := mustSphere(t, 1)
	ray := mathpkg.NewRay(mathpkg.NewVec3(1, 0, 2), mathpkg.NewVec3(0, 0, -1))

	hit, ok := sphere.Hit(ray, NewTransform(mathpkg.Vec3{}), mathpkg.Forward, material.Material{})
	if !ok {
		t.Fatal("Expected glancing hit, but got miss")
	}
	if !vecNear(hit.Position, mathpkg.NewVec3(1, 0, 0)) {
		t.Errorf("Expected hit point (1,0,0), got %v", hit.Position)
	}
}

func TestSphere_Hit_ZeroDirection(t *testing.T) {
	sphere := mustSphere(t, 1)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.Vec3{})

	if _, ok := sphere.Hit(ray, NewTransform(mathpkg.Vec3{}), mathpkg.Forward, material.Material{}); ok {
		t.Error("Expected zero-length direction to miss")
	}
}

func TestSphere_Hit_UnnormalizedDirection(t *testing.T) {
	sphere := mustSphere(t, 1)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 5), mathpkg.NewVec3(0, 0, -4))

	hit, ok := sphere.Hit(ray, NewTransform(mathpkg.Vec3{}), mathpkg.Forward, material.Material{})
	if !ok {
		t.Fatal("Expected hit")
	}
	if !near(hit.T, 1) {
		t.Errorf("Expected parametric t=1 for direction length 4, got %f", hit.T)
	}
}

func TestTransform_SetPosition(t *testing.T) {
	var transform Transform
	transform.SetPosition(mathpkg.NewVec3(1, 2, 3))
	if transform.Position() != mathpkg.NewVec3(1, 2, 3) {
		t.Errorf("Unexpected position %v", transform.Position())
	}
}

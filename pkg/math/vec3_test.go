package math

import (
	"testing"

	"github.com/chewxy/math32"
)

const tolerance = 1e-6

func vecNear(a, b Vec3) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(2, 5, 99)
	b := NewVec3(6, 1, 1)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(8, 6, 100)},
		{"subtract", a.Subtract(b), NewVec3(-4, 4, 98)},
		{"multiply", b.Multiply(2), NewVec3(12, 2, 2)},
		{"divide", b.Divide(2), NewVec3(3, 0.5, 0.5)},
		{"negate", b.Negate(), NewVec3(-6, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(3, 4, 12)

	if got := v.Dot(NewVec3(1, 0, 0)); got != 3 {
		t.Errorf("Expected dot 3, got %f", got)
	}
	if got := v.LengthSquared(); got != 169 {
		t.Errorf("Expected squared length 169, got %f", got)
	}
	if got := v.Length(); math32.Abs(got-13) > tolerance {
		t.Errorf("Expected length 13, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"unit x", NewVec3(5, 0, 0), NewVec3(1, 0, 0)},
		{"diagonal", NewVec3(0, 3, 4), NewVec3(0, 0.6, 0.8)},
		{"zero vector stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.vector.Normalize()
			if !vecNear(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if math32.IsNaN(got.X) || math32.IsNaN(got.Y) || math32.IsNaN(got.Z) {
				t.Errorf("Normalize produced NaN: %v", got)
			}
		})
	}
}

func TestVec3_IsZero(t *testing.T) {
	if !(Vec3{}).IsZero() {
		t.Error("Expected zero value to be zero")
	}
	if NewVec3(0, 0, 1e-9).IsZero() {
		t.Error("Expected tiny non-zero vector not to be zero")
	}
}

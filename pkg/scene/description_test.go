package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-diffuse-raytracer/pkg/math"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

const twoSpheresJSON = `{
  "name": "Two Spheres",
  "description": "A red and a blue sphere",
  "camera": {
    "position": [0, 0, 2],
    "focalLength": 1.5,
    "aspectRatio": 2,
    "background": "#102030"
  },
  "entities": [
    {"type": "sphere", "position": [0, 0, -1], "radius": 0.5, "color": "red"},
    {"type": "sphere", "position": [1, 0, -2], "radius": 1, "color": "#0000ff"}
  ]
}`

func TestDescription_Build(t *testing.T) {
	desc, err := DecodeDescription(strings.NewReader(twoSpheresJSON))
	if err != nil {
		t.Fatalf("DecodeDescription failed: %v", err)
	}
	s, err := desc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("Expected 2 entities, got %d", s.Len())
	}

	camera := s.Camera()
	if camera.Transform().Position() != mathpkg.NewVec3(0, 0, 2) {
		t.Errorf("Unexpected camera position %v", camera.Transform().Position())
	}
	if camera.FocalLength() != 1.5 || camera.AspectRatio() != 2 {
		t.Errorf("Unexpected camera focal %f aspect %f", camera.FocalLength(), camera.AspectRatio())
	}
	if _, h := camera.Viewport(); h != 2 {
		t.Errorf("Expected default viewport height 2, got %f", h)
	}
	if camera.ClearColor() != core.NewColor(0x10, 0x20, 0x30) {
		t.Errorf("Unexpected background %v", camera.ClearColor())
	}

	second := s.Entities()[1]
	if second.Material().DiffuseColor() != core.Blue {
		t.Errorf("Expected blue second entity, got %v", second.Material().DiffuseColor())
	}
	sphere, ok := second.Primitive().(*geometry.Sphere)
	if !ok || sphere.Radius() != 1 {
		t.Errorf("Expected sphere of radius 1, got %#v", second.Primitive())
	}
}

func TestDescription_Errors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr error
	}{
		{
			name:    "non-positive radius",
			json:    `{"entities": [{"type": "sphere", "position": [0,0,0], "radius": 0, "color": "red"}]}`,
			wantErr: geometry.ErrInvalidRadius,
		},
		{
			name:    "bad color",
			json:    `{"entities": [{"type": "sphere", "position": [0,0,0], "radius": 1, "color": "mauve-ish"}]}`,
			wantErr: core.ErrInvalidColor,
		},
		{
			name:    "bad background",
			json:    `{"camera": {"background": "#12"}, "entities": []}`,
			wantErr: core.ErrInvalidColor,
		},
		{
			name:    "negative focal length",
			json:    `{"camera": {"focalLength": -1}, "entities": []}`,
			wantErr: renderer.ErrInvalidCamera,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := DecodeDescription(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("DecodeDescription failed: %v", err)
			}
			if _, err := desc.Build(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDescription_UnsupportedType(t *testing.T) {
	desc, err := DecodeDescription(strings.NewReader(`{"entities": [{"type": "cube", "radius": 1, "color": "red"}]}`))
	if err != nil {
		t.Fatalf("DecodeDescription failed: %v", err)
	}
	_, err = desc.Build()
	if err == nil || !strings.Contains(err.Error(), "entity 0") {
		t.Errorf("Expected entity 0 error, got %v", err)
	}
}

func TestDecodeDescription_RejectsUnknownFields(t *testing.T) {
	if _, err := DecodeDescription(strings.NewReader(`{"lights": []}`)); err == nil {
		t.Error("Expected unknown field to be rejected")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "two-spheres.json")
	if err := os.WriteFile(path, []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name        string
		input       string
		expectError error
	}{
		{"default scene", "default", nil},
		{"overlap scene", "overlap", nil},
		{"spheregrid scene", "spheregrid", nil},
		{"json file", path, nil},
		{"unknown scene", "nonexistent", ErrUnknownScene},
		{"empty scene name", "", ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.input)
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("Expected %v, got %v", tt.expectError, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene, got %v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Len() == 0 || s.Camera() == nil {
				t.Errorf("Expected populated scene, got %v", s)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// Description is the JSON form of a scene
type Description struct {
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description,omitempty"`
	Camera      CameraDescription   `json:"camera"`
	Entities    []EntityDescription `json:"entities"`
}

// CameraDescription describes the camera. Zero fields take the default camera values.
type CameraDescription struct {
	Position       [3]float32 `json:"position"`
	FocalLength    float32    `json:"focalLength,omitempty"`
	ViewportHeight float32    `json:"viewportHeight,omitempty"`
	AspectRatio    float32    `json:"aspectRatio,omitempty"`
	Background     string     `json:"background,omitempty"` // "#rrggbb" or a palette name
}

// EntityDescription describes one scene object
type EntityDescription struct {
	Type     string     `json:"type"` // only "sphere" is supported
	Position [3]float32 `json:"position"`
	Radius   float32    `json:"radius"`
	Color    string     `json:"color"`
}

// DecodeDescription reads a JSON scene description, rejecting unknown fields
func DecodeDescription(r io.Reader) (Description, error) {
	var desc Description
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("failed to decode scene description: %w", err)
	}
	return desc, nil
}

// LoadFile reads and builds a scene from a JSON file
func LoadFile(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := DecodeDescription(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc.Build()
}

// CameraConfig converts the camera description, applying defaults
func (d CameraDescription) CameraConfig() (renderer.CameraConfig, error) {
	override := renderer.CameraConfig{
		Position:       vec(d.Position),
		FocalLength:    d.FocalLength,
		ViewportHeight: d.ViewportHeight,
		AspectRatio:    d.AspectRatio,
	}
	config := MergeCameraConfig(renderer.DefaultCameraConfig(), override)

	// Black is the zero color, so the background is applied even when it matches the default
	if d.Background != "" {
		background, err := core.ParseColor(d.Background)
		if err != nil {
			return renderer.CameraConfig{}, fmt.Errorf("camera background: %w", err)
		}
		config.ClearColor = background
	}
	return config, nil
}

// Build validates the description and creates the scene
func (d Description) Build() (*Scene, error) {
	config, err := d.Camera.CameraConfig()
	if err != nil {
		return nil, err
	}
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return nil, err
	}

	entities := make([]Entity, 0, len(d.Entities))
	for i, ed := range d.Entities {
		entity, err := ed.build()
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		entities = append(entities, entity)
	}

	return New(camera, entities...), nil
}

func (e EntityDescription) build() (Entity, error) {
	if t := strings.ToLower(e.Type); t != "sphere" {
		return Entity{}, fmt.Errorf("unsupported entity type %q", e.Type)
	}
	color, err := core.ParseColor(e.Color)
	if err != nil {
		return Entity{}, err
	}
	return NewSphereEntity(vec(e.Position), e.Radius, color)
}

func vec(v [3]float32) math.Vec3 {
	return math.NewVec3(v[0], v[1], v[2])
}

package scene

import (
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// NewDefaultScene creates a single green sphere in front of the camera on a blue background
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.Position = math.NewVec3(0, 0, 3)
	defaultCameraConfig.ClearColor = core.Blue

	camera, err := newCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}

	sphere, err := NewSphereEntity(math.NewVec3(0, 0, 0), 1.0, core.Green)
	if err != nil {
		return nil, err
	}

	return New(camera, sphere), nil
}

// NewOverlapScene creates three overlapping spheres at different depths.
// Entities are added far to near so the picture depends on nearest-hit resolution, not order.
func NewOverlapScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.Position = math.NewVec3(0, 0, 4)
	defaultCameraConfig.AspectRatio = 16.0 / 9.0
	defaultCameraConfig.ClearColor = core.Gray

	camera, err := newCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}

	spheres := []struct {
		center math.Vec3
		radius float32
		color  core.Color
	}{
		{math.NewVec3(1.2, 0.3, -3), 1.6, core.Blue},
		{math.NewVec3(-0.6, -0.2, -1), 1.0, core.Red},
		{math.NewVec3(0.3, 0.1, 0.5), 0.5, core.White},
	}

	entities := make([]Entity, 0, len(spheres))
	for i, sphere := range spheres {
		entity, err := NewSphereEntity(sphere.center, sphere.radius, sphere.color)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		entities = append(entities, entity)
	}

	return New(camera, entities...), nil
}

// newCamera builds a camera from defaults with the first override merged on top
func newCamera(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) (*renderer.Camera, error) {
	config := defaults
	if len(overrides) > 0 {
		config = MergeCameraConfig(defaults, overrides[0])
	}
	return renderer.NewCamera(config)
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override renderer.CameraConfig) renderer.CameraConfig {
	result := base
	if !override.Position.IsZero() {
		result.Position = override.Position
	}
	if override.FocalLength != 0 {
		result.FocalLength = override.FocalLength
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ClearColor != (core.Color{}) {
		result.ClearColor = override.ClearColor
	}
	return result
}

package scene

import (
	"context"
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// Scene contains the entities and the camera used to render them.
// A scene is read-only once built and may be shared by render workers.
type Scene struct {
	entities []Entity
	camera   *renderer.Camera
}

// New creates a scene. Entity order only matters for exact distance ties.
func New(camera *renderer.Camera, entities ...Entity) *Scene {
	return &Scene{
		entities: append([]Entity(nil), entities...),
		camera:   camera,
	}
}

// Camera returns the scene camera
func (s *Scene) Camera() *renderer.Camera {
	return s.camera
}

// Entities returns a copy of the entity list
func (s *Scene) Entities() []Entity {
	return append([]Entity(nil), s.entities...)
}

// Len returns the number of entities
func (s *Scene) Len() int {
	return len(s.entities)
}

// Hit returns the nearest intersection along the ray.
// Candidates replace the current best only when strictly nearer, so on an
// exact tie the entity added first wins.
func (s *Scene) Hit(ray math.Ray) (geometry.Hit, bool) {
	_, hit, ok := s.Pick(ray)
	return hit, ok
}

// Pick is Hit that also reports the index of the entity hit, or -1 on a miss
func (s *Scene) Pick(ray math.Ray) (int, geometry.Hit, bool) {
	var closest geometry.Hit
	index := -1

	for i, entity := range s.entities {
		hit, ok := entity.Hit(ray, math.Forward)
		if !ok {
			continue
		}
		if index < 0 || hit.T < closest.T {
			closest = hit
			index = i
		}
	}

	return index, closest, index >= 0
}

// Render renders the scene through its camera into target
func (s *Scene) Render(ctx context.Context, target renderer.RenderTarget, opts renderer.RenderOptions, progress renderer.ProgressFunc) (renderer.RenderStats, error) {
	return s.camera.Render(ctx, s, target, opts, progress)
}

func (s *Scene) String() string {
	return fmt.Sprintf("Scene (%d entities, %s)", len(s.entities), s.camera)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
	"github.com/df07/go-diffuse-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Entity       int                    `json:"entity"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Color        string                 `json:"color"` // Diffuse color on a hit, background otherwise
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// inspectPixel casts the primary ray through the pixel center and reports what it hits
func inspectPixel(sceneObj *scene.Scene, size core.PixelSize, pixel core.Pixel) InspectResponse {
	camera := sceneObj.Camera()
	u, v := camera.UV(pixel.Center(), size)
	index, hit, ok := sceneObj.Pick(camera.PrimaryRay(u, v))
	if !ok {
		return InspectResponse{Hit: false, Entity: -1, Color: camera.ClearColor().Hex()}
	}

	entity := sceneObj.Entities()[index]
	geometryType, props := geometryInfo(entity)
	return InspectResponse{
		Hit:          true,
		Entity:       index,
		GeometryType: geometryType,
		Color:        hit.Material.DiffuseColor().Hex(),
		Point:        vecArray(hit.Position),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		Properties:   props,
	}
}

// geometryInfo describes the primitive of an entity
func geometryInfo(entity scene.Entity) (string, map[string]interface{}) {
	props := map[string]interface{}{
		"position": vecArray(entity.Transform().Position()),
	}
	switch p := entity.Primitive().(type) {
	case *geometry.Sphere:
		props["radius"] = p.Radius()
		return "sphere", props
	default:
		return "unknown", props
	}
}

func vecArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// handleInspect reports the nearest hit under a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	sceneObj, err := s.loadScene(req.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.Height == 0 {
		req.Height = derivedHeight(sceneObj.Camera().AspectRatio(), req.Width)
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	size := core.NewPixelSize(req.Width, req.Height)
	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, size, core.NewPixel(pixelX, pixelY)))
}

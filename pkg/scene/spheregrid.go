package scene

import (
	gomath "math"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/math"
	"github.com/df07/go-diffuse-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to an 8-bit RGB color
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * gomath.Pi / 180.0

	// OKLCH to OKLAB
	a := c * gomath.Cos(hRad)
	b := c * gomath.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(toByte(r), toByte(g), toByte(blue))
}

func toByte(v float64) uint8 {
	return uint8(255 * gomath.Max(0, gomath.Min(1, v)))
}

// NewSphereGridScene creates a grid of spheres colored by hue and chroma, seen head-on
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.Position = math.NewVec3(0, 0, 12)
	defaultCameraConfig.FocalLength = 1.2
	defaultCameraConfig.AspectRatio = 16.0 / 9.0
	defaultCameraConfig.ClearColor = core.NewColor(20, 20, 28)

	camera, err := newCamera(defaultCameraConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}

	const (
		gridSize   = 10
		targetArea = 12.0 // grid spans roughly 12 units, centered on the optical axis
	)
	spacing := float32(targetArea) / float32(gridSize-1)
	sphereRadius := spacing * 0.35

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	entities := make([]Entity, 0, gridSize*gridSize)
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float32(i)*spacing - targetArea/2.0
			y := float32(j)*spacing - targetArea/2.0

			// Hue across X, chroma across Y
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*gomath.Sin(float64(i+j)*0.5)

			entity, err := NewSphereEntity(math.NewVec3(x, y, 0), sphereRadius, oklchToRGB(lightness, chroma, hue))
			if err != nil {
				return nil, err
			}
			entities = append(entities, entity)
		}
	}

	return New(camera, entities...), nil
}

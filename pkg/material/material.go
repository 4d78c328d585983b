package material

import (
	"fmt"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

// Material is a flat, view-independent surface. Entities hold their own copy.
type Material struct {
	Diffuse core.Color
}

// FromDiffuse creates a material with the given diffuse color
func FromDiffuse(diffuse core.Color) Material {
	return Material{Diffuse: diffuse}
}

// DiffuseColor returns the color the surface reflects
func (m Material) DiffuseColor() core.Color {
	return m.Diffuse
}

func (m Material) String() string {
	return fmt.Sprintf("Material (diffuse: %s)", m.Diffuse.Hex())
}

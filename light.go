package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightDef defines a scene light before packing into the uniform block.
type LightDef struct {
	Center mgl32.Vec3
	Color  mgl32.Vec4
	// Propagation holds attenuation coefficients (constant, linear,
	// quadratic, unused).
	Propagation mgl32.Vec4
}

// PackLights lays scene lights out as the fragment-args and lights
// uniform blocks. Lights beyond MaxLights are dropped; the count always
// matches the number of packed records.
func PackLights(defs []LightDef) (FragmentArgs, [MaxLights]Light) {
	var lights [MaxLights]Light

	n := len(defs)
	if n > MaxLights {
		n = MaxLights
	}
	for i := 0; i < n; i++ {
		lights[i] = Light{
			Propagation: defs[i].Propagation,
			Center:      defs[i].Center.Vec4(1),
			Color:       defs[i].Color,
		}
	}
	return FragmentArgs{LightCount: uint32(n)}, lights
}

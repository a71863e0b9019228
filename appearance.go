package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Appearance pairs an emissive color with the effect parameters the
// fragment stage reads. By convention effect.x drives the intensity gate
// (0.5 or above saturates it) and effect.y is a phase/age control; z and
// w are uploaded but unused.
type Appearance struct {
	Color  mgl32.Vec4
	Effect mgl32.Vec4
}

func NewAppearance(color, effect mgl32.Vec4) Appearance {
	return Appearance{Color: color, Effect: effect}
}

// Rgba is a plain colored appearance with the gate fully open and no
// phase animation.
func Rgba(color mgl32.Vec4) Appearance {
	return Appearance{
		Color:  color,
		Effect: mgl32.Vec4{1, 0, 0, 0},
	}
}

func (a Appearance) Material() MaterialBlock {
	return MaterialBlock{
		Emissive: a.Color,
		Effect:   a.Effect,
	}
}

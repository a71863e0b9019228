package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the general translate-rotate-scale transform for a drawn
// object. Scale may be non-uniform; in that case the model matrix is not
// safe for the vertex stage's direction transforms (see ModelBlock) and
// the caller owns the consequences. Prefer RigidTransform when the object
// never needs per-axis scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) ModelMatrix() mgl32.Mat4 {
	rot := t.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

func (t Transform) Block() ModelBlock {
	return ModelBlock{Model: t.ModelMatrix()}
}

// Uniform reports whether the scale is uniform within tolerance, i.e.
// whether the resulting model matrix satisfies the vertex stage's
// direction-transform precondition.
func (t Transform) Uniform(epsilon float32) bool {
	return mgl32.Abs(t.Scale.X()-t.Scale.Y()) <= epsilon &&
		mgl32.Abs(t.Scale.Y()-t.Scale.Z()) <= epsilon
}

// RigidTransform admits only translation, rotation and uniform scale.
// Its model matrix is always safe to reuse for normal and tangent
// transforms, which the vertex stage does without an inverse-transpose.
type RigidTransform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

func NewRigidTransform(position mgl32.Vec3) RigidTransform {
	return RigidTransform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    1,
	}
}

func (t RigidTransform) Transform() Transform {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return Transform{
		Position: t.Position,
		Rotation: t.Rotation,
		Scale:    mgl32.Vec3{scale, scale, scale},
	}
}

func (t RigidTransform) ModelMatrix() mgl32.Mat4 {
	return t.Transform().ModelMatrix()
}

func (t RigidTransform) Block() ModelBlock {
	return ModelBlock{Model: t.ModelMatrix()}
}

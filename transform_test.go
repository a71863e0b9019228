package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_ModelMatrixOrder(t *testing.T) {
	// Translation applied after rotation and scale: local +X under a 90°
	// Z rotation with scale 2 ends up at origin + (0, 2, 0).
	tr := Transform{
		Position: mgl32.Vec3{5, 0, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}

	p := tr.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 5, p.X(), epsilon)
	assert.InDelta(t, 2, p.Y(), epsilon)
	assert.InDelta(t, 0, p.Z(), epsilon)
}

func TestTransform_ZeroRotationActsAsIdentity(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{1, 2, 3}, Scale: mgl32.Vec3{1, 1, 1}}
	p := tr.ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, p)
}

func TestTransform_Uniform(t *testing.T) {
	assert.True(t, Transform{Scale: mgl32.Vec3{2, 2, 2}}.Uniform(1e-6))
	assert.False(t, Transform{Scale: mgl32.Vec3{2, 1, 2}}.Uniform(1e-6))
	assert.True(t, Transform{Scale: mgl32.Vec3{1, 1.0000001, 1}}.Uniform(1e-5))
}

func TestRigidTransform_PreservesUnitDirections(t *testing.T) {
	rigid := RigidTransform{
		Position: mgl32.Vec3{-4, 2, 9},
		Rotation: mgl32.QuatRotate(0.8, mgl32.Vec3{1, 1, 0}.Normalize()),
		Scale:    3,
	}

	in := VertexAttributes{
		Normal:  mgl32.Vec3{0, 1, 0},
		Tangent: mgl32.Vec3{0, 0, 1},
	}
	out := VertexStage(testCamera(), rigid.Block(), in)

	assert.InDelta(t, 1.0, out.Normal.Len(), epsilon)
	assert.InDelta(t, 1.0, out.TBN.Col(0).Len(), epsilon)
	// With orthogonal inputs the bitangent is unit length too.
	assert.InDelta(t, 1.0, out.TBN.Col(1).Len(), epsilon)
}

func TestRigidTransform_ZeroScaleDefaultsToOne(t *testing.T) {
	rigid := RigidTransform{Position: mgl32.Vec3{1, 0, 0}}
	p := rigid.ModelMatrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{2, 1, 1, 1}, p)
}

func TestNewTransformDefaults(t *testing.T) {
	tr := NewTransform(mgl32.Vec3{7, 8, 9})
	assert.Equal(t, mgl32.QuatIdent(), tr.Rotation)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale)
}

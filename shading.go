package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the capacity of the lights uniform block.
const MaxLights = 16

// CameraBlock is the camera uniform block: two 4x4 matrices, shared by
// every vertex of a draw. Owned by the caller, read-only here.
type CameraBlock struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

// ModelBlock is the per-object model transform uniform block.
//
// The upper-left 3x3 of Model is reused directly to transform normals and
// tangents, so Model must not carry non-uniform scale. Build it from a
// Transform with uniform scale or from a RigidTransform; see transform.go.
type ModelBlock struct {
	Model mgl32.Mat4
}

// MaterialBlock holds the per-material uniforms. Only the first two
// components of Effect are read: x is the intensity gate, y is a
// phase/time-like control for the ripple envelope.
type MaterialBlock struct {
	Emissive mgl32.Vec4
	Effect   mgl32.Vec4
}

// FragmentArgs carries the light count for the lights block.
type FragmentArgs struct {
	LightCount uint32
}

// Light is one record of the lights uniform block.
type Light struct {
	Propagation mgl32.Vec4
	Center      mgl32.Vec4
	Color       mgl32.Vec4
}

// VertexAttributes is the per-vertex input of the vertex stage.
type VertexAttributes struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Varyings are the interpolated values handed to the fragment stage.
// Position is world-space. TBN columns are (tangent, bitangent, normal):
// tangent and normal are unit length, bitangent = cross(normal, tangent)
// and is left unnormalized, so it is exactly orthogonal to both while its
// magnitude is sin of the angle between them.
type Varyings struct {
	Position mgl32.Vec4
	Normal   mgl32.Vec3
	TBN      mgl32.Mat3
	TexCoord mgl32.Vec2
}

// VertexOutput is everything the vertex stage produces for one vertex.
type VertexOutput struct {
	Varyings
	ClipPosition mgl32.Vec4
}

// LightingFunc is the extension point for a light accumulation term added
// on top of the emissive formula. The lights block is declared and
// uploaded but not consumed by the base formula; a renderer that wants
// lit output plugs its own implementation in here.
type LightingFunc func(v Varyings, args FragmentArgs, lights []Light) mgl32.Vec4

// NoLighting is the default LightingFunc: constant zero contribution.
func NoLighting(v Varyings, args FragmentArgs, lights []Light) mgl32.Vec4 {
	return mgl32.Vec4{}
}

// VertexStage transforms one vertex into world space and builds its
// tangent basis. Pure function: no state, no failure paths. A zero-length
// input normal or tangent yields NaN from normalization; that is a caller
// precondition violation, not a handled error.
func VertexStage(cam CameraBlock, model ModelBlock, in VertexAttributes) VertexOutput {
	world := model.Model.Mul4x1(in.Position.Vec4(1))

	linear := model.Model.Mat3()
	normal := linear.Mul3x1(in.Normal).Normalize()
	tangent := linear.Mul3x1(in.Tangent).Normalize()
	bitangent := normal.Cross(tangent)

	return VertexOutput{
		Varyings: Varyings{
			Position: world,
			Normal:   normal,
			TBN:      mgl32.Mat3FromCols(tangent, bitangent, normal),
			TexCoord: in.TexCoord,
		},
		ClipPosition: cam.Projection.Mul4(cam.View).Mul4x1(world),
	}
}

// FragmentStage computes the emissive radial-falloff color for one
// fragment, with no lighting contribution.
func FragmentStage(v Varyings, mat MaterialBlock, args FragmentArgs, lights []Light) mgl32.Vec4 {
	return FragmentStageLit(v, mat, args, lights, NoLighting)
}

// FragmentStageLit is FragmentStage with an explicit lighting hook.
//
// The texture coordinate is clamped to [0,1] before the remap to [-1,1],
// so interpolation overshoot cannot push dx/dy out of range. The squared
// radius saturates at the unit circle rather than extrapolating beyond it.
func FragmentStageLit(v Varyings, mat MaterialBlock, args FragmentArgs, lights []Light, lighting LightingFunc) mgl32.Vec4 {
	dx := remap(v.TexCoord.X())
	dy := remap(v.TexCoord.Y())
	r := mgl32.Clamp(dx*dx+dy*dy, 0, 1)

	f := mgl32.Clamp(mat.Effect.X()*2, 0, 1)
	e := mgl32.Clamp(mgl32.Abs(cosf(r-mat.Effect.Y())+sinf(dy-2*mat.Effect.Y())), 0, 1)

	return mat.Emissive.Mul(e * f).Add(lighting(v, args, lights))
}

// remap takes a texture coordinate component from [0,1] to [-1,1],
// clamping first.
func remap(c float32) float32 {
	return 2*mgl32.Clamp(c, 0, 1) - 1
}

func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }
func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }

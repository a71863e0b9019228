package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCamera_Block(t *testing.T) {
	cam := Camera{
		Position: mgl32.Vec3{0, 0, 10},
		LookAt:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      mgl32.DegToRad(45),
		Aspect:   4.0 / 3.0,
		Near:     0.1,
		Far:      100,
	}

	block := cam.Block()
	assert.Equal(t, cam.ProjectionMatrix(), block.Projection)
	assert.Equal(t, cam.ViewMatrix(), block.View)

	// A point on the view axis projects to the screen center.
	clip := block.Projection.Mul4(block.View).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X(), epsilon)
	assert.InDelta(t, 0, clip.Y(), epsilon)
}

func TestOrthoCamera_VisibleExtent(t *testing.T) {
	// scale is the visible world width: a point at half that width from
	// the center lands on the clip-space edge x = ±1.
	block := OrthoCamera(mgl32.Vec2{0, 0}, 50, 16.0/9.0)

	right := block.Projection.Mul4(block.View).Mul4x1(mgl32.Vec4{25, 0, 0, 1})
	assert.InDelta(t, 1, right.X(), epsilon)

	top := block.Projection.Mul4(block.View).Mul4x1(mgl32.Vec4{0, 25 * 9.0 / 16.0, 0, 1})
	assert.InDelta(t, 1, top.Y(), epsilon)
}

func TestOrthoCamera_CenterOffset(t *testing.T) {
	block := OrthoCamera(mgl32.Vec2{10, -5}, 20, 1)
	center := block.Projection.Mul4(block.View).Mul4x1(mgl32.Vec4{10, -5, 0, 1})
	assert.InDelta(t, 0, center.X(), epsilon)
	assert.InDelta(t, 0, center.Y(), epsilon)
}

func TestViewport_ToWorld(t *testing.T) {
	v := NewViewport(1280, 720, 50)

	center := v.ToWorld(mgl32.Vec2{640, 360})
	assert.InDelta(t, 0, center.X(), epsilon)
	assert.InDelta(t, 0, center.Y(), epsilon)

	// Right edge maps to +scale/2; y is flipped (window y grows down).
	right := v.ToWorld(mgl32.Vec2{1280, 360})
	assert.InDelta(t, 25, right.X(), epsilon)

	topLeft := v.ToWorld(mgl32.Vec2{0, 0})
	assert.InDelta(t, -25, topLeft.X(), epsilon)
	assert.True(t, topLeft.Y() > 0)
}

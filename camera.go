package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera definition.
type Camera struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32 // vertical field of view, radians
	Aspect   float32
	Near     float32
	Far      float32
}

func (c Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.LookAt, c.Up)
}

func (c Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

func (c Camera) Block() CameraBlock {
	return CameraBlock{
		Projection: c.ProjectionMatrix(),
		View:       c.ViewMatrix(),
	}
}

// OrthoCamera builds the camera block for a 2D view centered on the given
// world point. scale is the visible world width; the visible height
// follows from the viewport ratio (width/height).
func OrthoCamera(center mgl32.Vec2, scale, ratio float32) CameraBlock {
	halfW := scale / 2
	halfH := halfW / ratio
	return CameraBlock{
		Projection: mgl32.Ortho(-halfW, halfW, -halfH, halfH, -1, 1),
		View:       mgl32.Translate3D(-center.X(), -center.Y(), 0),
	}
}

// Viewport maps window pixels to world units for a 2D view.
type Viewport struct {
	Width  int
	Height int
	Ratio  float32
	Scale  float32
}

func NewViewport(width, height int, scale float32) Viewport {
	return Viewport{
		Width:  width,
		Height: height,
		Ratio:  float32(width) / float32(height),
		Scale:  scale,
	}
}

// ToWorld converts a window position (pixels, y down, origin top-left)
// into world coordinates with the viewport center at the origin.
func (v Viewport) ToWorld(pos mgl32.Vec2) mgl32.Vec2 {
	dx := float32(v.Width) / v.Scale
	tx := (pos.X() - float32(v.Width)*0.5) / dx
	ty := (float32(v.Height)*0.5 - pos.Y()) / dx
	return mgl32.Vec2{tx, ty}
}

package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycle_WrapsBothWays(t *testing.T) {
	c := NewCycle([]int{1, 2, 3})

	assert.Equal(t, 1, c.Get())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 3, c.Next())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 3, c.Prev())
	assert.Equal(t, 2, c.Prev())
}

func TestCycle_EmptyPanics(t *testing.T) {
	assert.Panics(t, func() { NewCycle([]int{}) })
}

func TestDefaultCycles_StartAtUnity(t *testing.T) {
	lights := DefaultLightColors()
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, lights.Get())

	backgrounds := DefaultBackgroundColors()
	assert.Equal(t, mgl32.Vec4{0.05, 0.07, 0.1, 1}, backgrounds.Get())
}

func TestEnvironment_Lights(t *testing.T) {
	env := Environment{
		LightColor: mgl32.Vec4{3.1, 3.1, 3.1, 1},
		LightPositions: []mgl32.Vec3{
			{1, 2, 0},
			{-4, 0, 1},
		},
		BackgroundColor: mgl32.Vec4{0, 0, 0, 1},
	}

	defs := env.Lights()
	require.Len(t, defs, 2)
	for i, def := range defs {
		assert.Equal(t, env.LightColor, def.Color)
		assert.Equal(t, env.LightPositions[i], def.Center)
	}
}

func TestPackLights_CountAndOrder(t *testing.T) {
	defs := []LightDef{
		{Center: mgl32.Vec3{1, 0, 0}, Color: mgl32.Vec4{1, 0, 0, 1}},
		{Center: mgl32.Vec3{0, 2, 0}, Color: mgl32.Vec4{0, 1, 0, 1}},
	}

	args, lights := PackLights(defs)
	require.Equal(t, uint32(2), args.LightCount)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, lights[0].Center)
	assert.Equal(t, mgl32.Vec4{0, 2, 0, 1}, lights[1].Center)
	assert.Equal(t, Light{}, lights[2])
}

func TestPackLights_DropsBeyondCapacity(t *testing.T) {
	defs := make([]LightDef, MaxLights+5)
	for i := range defs {
		defs[i].Center = mgl32.Vec3{float32(i), 0, 0}
	}

	args, lights := PackLights(defs)
	assert.Equal(t, uint32(MaxLights), args.LightCount)
	assert.Equal(t, float32(MaxLights-1), lights[MaxLights-1].Center.X())
}

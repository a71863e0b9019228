package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Cycle steps through a fixed list of values, wrapping at both ends.
type Cycle[T any] struct {
	items []T
	index int
}

func NewCycle[T any](items []T) *Cycle[T] {
	if len(items) == 0 {
		panic("cycle needs at least one item")
	}
	return &Cycle[T]{items: items}
}

func (c *Cycle[T]) Get() T {
	return c.items[c.index]
}

func (c *Cycle[T]) Next() T {
	c.index = (c.index + 1) % len(c.items)
	return c.items[c.index]
}

func (c *Cycle[T]) Prev() T {
	c.index = (c.index + len(c.items) - 1) % len(c.items)
	return c.items[c.index]
}

// Environment is the per-frame shared scene state handed to the renderer:
// the active light color, the emitter positions and the clear color.
type Environment struct {
	LightColor      mgl32.Vec4
	LightPositions  []mgl32.Vec3
	BackgroundColor mgl32.Vec4
}

// Lights packs the environment emitters as uniform light definitions, all
// sharing the active light color.
func (e Environment) Lights() []LightDef {
	defs := make([]LightDef, 0, len(e.LightPositions))
	for _, p := range e.LightPositions {
		defs = append(defs, LightDef{
			Center:      p,
			Color:       e.LightColor,
			Propagation: mgl32.Vec4{1, 0, 0, 0},
		})
	}
	return defs
}

// DefaultLightColors is the stock light intensity ramp, from unity up
// through overbright whites and back down to near-black.
func DefaultLightColors() *Cycle[mgl32.Vec4] {
	return NewCycle([]mgl32.Vec4{
		{1.0, 1.0, 1.0, 1.0},
		{3.1, 3.1, 3.1, 1.0},
		{10.0, 10.0, 10.0, 1.0},
		{31.0, 31.0, 31.0, 1.0},
		{100.0, 100.0, 100.0, 1.0},
		{0.001, 0.001, 0.001, 1.0},
		{0.01, 0.01, 0.01, 1.0},
		{0.1, 0.1, 0.1, 1.0},
		{0.31, 0.31, 0.31, 0.5},
	})
}

// DefaultBackgroundColors is the stock clear-color ramp.
func DefaultBackgroundColors() *Cycle[mgl32.Vec4] {
	return NewCycle([]mgl32.Vec4{
		{0.05, 0.07, 0.1, 1.0},
		{0.5, 0.5, 0.5, 0.5},
		{1.0, 1.0, 1.0, 1.0},
		{3.1, 3.1, 3.1, 1.0},
		{10.0, 10.0, 10.0, 1.0},
		{0.0, 0.0, 0.0, 1.0},
		{0.01, 0.01, 0.01, 1.0},
	})
}

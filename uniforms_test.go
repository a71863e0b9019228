package lumen

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32At(t *testing.T, data []byte, offset int) float32 {
	t.Helper()
	require.LessOrEqual(t, offset+4, len(data))
	return math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
}

func TestPackCameraBlock_Layout(t *testing.T) {
	block := CameraBlock{
		Projection: mgl32.Ident4(),
		View:       mgl32.Translate3D(1, 2, 3),
	}
	data := PackCameraBlock(block)
	require.Len(t, data, 128)

	// Projection first: identity diagonal in column-major order.
	assert.Equal(t, float32(1), float32At(t, data, 0))
	assert.Equal(t, float32(1), float32At(t, data, 5*4))
	// View follows at offset 64; translation sits in the last column.
	assert.Equal(t, float32(1), float32At(t, data, 64+12*4))
	assert.Equal(t, float32(2), float32At(t, data, 64+13*4))
	assert.Equal(t, float32(3), float32At(t, data, 64+14*4))
}

func TestPackModelBlock_Size(t *testing.T) {
	data := PackModelBlock(ModelBlock{Model: mgl32.Ident4()})
	assert.Len(t, data, 64)
}

func TestPackMaterialBlock_Layout(t *testing.T) {
	block := MaterialBlock{
		Emissive: mgl32.Vec4{0.1, 0.2, 0.3, 0.4},
		Effect:   mgl32.Vec4{0.5, 0.6, 0.7, 0.8},
	}
	data := PackMaterialBlock(block)
	require.Len(t, data, 32)

	assert.Equal(t, float32(0.1), float32At(t, data, 0))
	// Effect starts on the second 16-byte slot.
	assert.Equal(t, float32(0.5), float32At(t, data, 16))
	assert.Equal(t, float32(0.8), float32At(t, data, 28))
}

func TestPackFragmentArgs_FullSlot(t *testing.T) {
	data := PackFragmentArgs(FragmentArgs{LightCount: 7})
	require.Len(t, data, 16)

	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(data))
	// Padding is zeroed.
	for i := 4; i < 16; i++ {
		assert.Equal(t, byte(0), data[i], "byte %d", i)
	}
}

func TestPackLightsBlock_RecordStride(t *testing.T) {
	var lights [MaxLights]Light
	lights[1] = Light{
		Propagation: mgl32.Vec4{1, 0.5, 0.25, 0},
		Center:      mgl32.Vec4{10, 20, 30, 1},
		Color:       mgl32.Vec4{0.9, 0.8, 0.7, 1},
	}

	data := PackLightsBlock(lights)
	require.Len(t, data, MaxLights*48)

	const base = 48 // second record
	assert.Equal(t, float32(1), float32At(t, data, base))
	assert.Equal(t, float32(10), float32At(t, data, base+16))
	assert.Equal(t, float32(0.9), float32At(t, data, base+32))

	// First record is all zeros.
	for i := 0; i < 48; i++ {
		assert.Equal(t, byte(0), data[i], "byte %d", i)
	}
}

func TestToBufferBytes_NestedStructsAndArrays(t *testing.T) {
	type inner struct {
		A uint32
		B float32
	}
	type outer struct {
		Values [2]inner
		Tail   uint32
	}

	data := toBufferBytes(outer{
		Values: [2]inner{{A: 1, B: 2}, {A: 3, B: 4}},
		Tail:   5,
	})
	require.Len(t, data, 20)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[0:]))
	assert.Equal(t, float32(4), float32At(t, data, 12))
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(data[16:]))
}

func TestToBufferBytes_RejectsUnsupportedKinds(t *testing.T) {
	assert.Panics(t, func() {
		toBufferBytes(struct{ S string }{S: "nope"})
	})
}

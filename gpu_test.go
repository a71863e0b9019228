package lumen

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectBindGroupLayout_DeclaresEveryBinding(t *testing.T) {
	// Bindings 3 and 4 are uploaded every frame but never read by the
	// fragment formula; a layout derived from shader usage would drop
	// them and reject the renderer's bind groups. The explicit layout
	// must list all five.
	entries := effectBindGroupLayoutEntries()
	require.Len(t, entries, 5)

	byBinding := map[uint32]wgpu.BindGroupLayoutEntry{}
	for _, e := range entries {
		byBinding[e.Binding] = e
	}
	for binding := uint32(0); binding < 5; binding++ {
		e, ok := byBinding[binding]
		require.True(t, ok, "binding %d", binding)
		assert.Equal(t, wgpu.BufferBindingTypeUniform, e.Buffer.Type, "binding %d", binding)
		assert.False(t, e.Buffer.HasDynamicOffset, "binding %d", binding)
	}

	assert.Equal(t, wgpu.ShaderStageVertex, byBinding[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex, byBinding[1].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, byBinding[2].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, byBinding[3].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, byBinding[4].Visibility)
}

func TestEffectBindGroupLayout_MinSizesMatchPackedBlocks(t *testing.T) {
	entries := effectBindGroupLayoutEntries()
	require.Len(t, entries, 5)

	sizes := map[uint32]uint64{}
	for _, e := range entries {
		sizes[e.Binding] = e.Buffer.MinBindingSize
	}

	assert.Equal(t, uint64(len(PackCameraBlock(CameraBlock{}))), sizes[0])
	assert.Equal(t, uint64(len(PackModelBlock(ModelBlock{}))), sizes[1])
	assert.Equal(t, uint64(len(PackMaterialBlock(MaterialBlock{}))), sizes[2])
	assert.Equal(t, uint64(len(PackFragmentArgs(FragmentArgs{}))), sizes[3])
	assert.Equal(t, uint64(len(PackLightsBlock([MaxLights]Light{}))), sizes[4])
}

func TestCreateVertexBufferLayout_EffectVertex(t *testing.T) {
	layout := createVertexBufferLayout(Vertex{})

	assert.Equal(t, uint64(11*4), layout.ArrayStride)
	require.Len(t, layout.Attributes, 4)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	assert.Equal(t, uint64(0), layout.Attributes[0].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[2].Format)
	assert.Equal(t, uint64(6*4), layout.Attributes[2].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layout.Attributes[3].Format)
	assert.Equal(t, uint64(9*4), layout.Attributes[3].Offset)
}

func TestCreateVertexBufferLayout_TextVertex(t *testing.T) {
	layout := createVertexBufferLayout(TextVertex{})

	assert.Equal(t, uint64(8*4), layout.ArrayStride)
	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, layout.Attributes[2].Format)
	assert.Equal(t, uint64(4*4), layout.Attributes[2].Offset)
}

func TestParseFormat_RejectsUnknown(t *testing.T) {
	assert.Panics(t, func() { parseFormat("float5") })
}

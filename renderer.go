package lumen

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumen3d/lumen/shaders"
)

type RendererConfig struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// FontPath enables the stats/text overlay when non-empty.
	FontPath string
	FontSize float64
}

type drawCmd struct {
	mesh     AssetId
	model    ModelBlock
	material MaterialBlock
}

type gpuMesh struct {
	version    uint
	vertexBuf  *wgpu.Buffer
	indexBuf   *wgpu.Buffer
	indexCount uint32
}

// drawSlot holds the per-draw uniform buffers and bind group. Slots are
// created on demand and reused across frames, indexed by draw order.
type drawSlot struct {
	modelBuffer    *wgpu.Buffer
	materialBuffer *wgpu.Buffer
	bindGroup      *wgpu.BindGroup
}

// Renderer is the forward pass for the emissive effect pipeline: one
// color target, one render pass per frame, draws queued between
// BeginFrame and EndFrame.
type Renderer struct {
	log    Logger
	assets *AssetServer
	window *WindowState
	gpu    *GpuState

	effectPipeline     *wgpu.RenderPipeline
	effectBindLayout   *wgpu.BindGroupLayout
	cameraBuffer       *wgpu.Buffer
	fragmentArgsBuffer *wgpu.Buffer
	lightsBuffer       *wgpu.Buffer
	slots              []drawSlot
	meshes             map[AssetId]*gpuMesh

	camera     CameraBlock
	args       FragmentArgs
	lights     [MaxLights]Light
	background wgpu.Color
	draws      []drawCmd

	overlay       *TextOverlay
	textPipeline  *wgpu.RenderPipeline
	textBindGroup *wgpu.BindGroup
	textVertexBuf *wgpu.Buffer
	textItems     []TextItem
}

func NewRenderer(cfg RendererConfig, assets *AssetServer, log Logger) (*Renderer, error) {
	if log == nil {
		log = NewNopLogger()
	}

	window := createWindowState(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle)
	gpu := createGpuState(window)

	// The effect shader declares the fragment-args and lights bindings
	// without reading them, so the pipeline layout is spelled out instead
	// of being derived from shader usage.
	effectBindLayout, effectLayout := createEffectPipelineLayout(gpu)

	r := &Renderer{
		log:              log,
		assets:           assets,
		window:           window,
		gpu:              gpu,
		effectPipeline:   createRenderPipeline("effect", shaders.EffectWGSL, Vertex{}, nil, effectLayout, gpu),
		effectBindLayout: effectBindLayout,
		meshes:           map[AssetId]*gpuMesh{},
		background:       wgpu.Color{R: 0.05, G: 0.07, B: 0.1, A: 1},
	}

	r.cameraBuffer = createUniformBuffer("camera", CameraBlock{Projection: mgl32.Ident4(), View: mgl32.Ident4()}, gpu)
	r.fragmentArgsBuffer = createUniformBuffer("fragmentArgs", fragmentArgsUniform{}, gpu)
	r.lightsBuffer = createUniformBuffer("lights", [MaxLights]Light{}, gpu)

	if cfg.FontPath != "" {
		overlay, err := NewTextOverlay(cfg.FontPath, cfg.FontSize)
		if err != nil {
			return nil, fmt.Errorf("text overlay: %w", err)
		}
		r.overlay = overlay
		// The text shader reads both of its bindings, so the derived
		// layout is complete here.
		r.textPipeline = createRenderPipeline("text", shaders.TextWGSL, TextVertex{}, alphaBlendState(), nil, gpu)

		atlasView := createAlphaTexture(overlay.atlas, gpu)
		sampler := createLinearSampler(gpu)

		layout := r.textPipeline.GetBindGroupLayout(0)
		defer layout.Release()
		bindGroup, err := gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Layout: layout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: atlasView},
				{Binding: 1, Sampler: sampler},
			},
		})
		if err != nil {
			panic(err)
		}
		r.textBindGroup = bindGroup
		log.Infof("text overlay enabled: %s @ %.1fpt", cfg.FontPath, cfg.FontSize)
	}

	log.Infof("renderer ready: %dx%d %q", cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle)
	return r, nil
}

func (r *Renderer) ShouldClose() bool {
	return r.window.windowGlfw.ShouldClose()
}

func (r *Renderer) PollEvents() {
	glfw.PollEvents()
}

// Setup installs the per-frame shared state: camera block, clear color
// and the packed lights. Call between draws, i.e. once per frame before
// BeginFrame.
func (r *Renderer) Setup(cam CameraBlock, env Environment) {
	r.camera = cam
	r.background = wgpu.Color{
		R: float64(env.BackgroundColor.X()),
		G: float64(env.BackgroundColor.Y()),
		B: float64(env.BackgroundColor.Z()),
		A: float64(env.BackgroundColor.W()),
	}
	r.args, r.lights = PackLights(env.Lights())
}

func (r *Renderer) BeginFrame() {
	r.draws = r.draws[:0]
	r.textItems = r.textItems[:0]
}

// Draw queues one mesh instance with its model transform and appearance.
func (r *Renderer) Draw(mesh MeshHandle, model ModelBlock, appearance Appearance) {
	r.draws = append(r.draws, drawCmd{
		mesh:     mesh.Id(),
		model:    model,
		material: appearance.Material(),
	})
}

// DrawText queues an overlay string at a pixel position. No-op when the
// renderer was built without a font.
func (r *Renderer) DrawText(text string, position [2]float32, color [4]float32) {
	if r.overlay == nil {
		return
	}
	r.textItems = append(r.textItems, TextItem{
		Text:     text,
		Position: position,
		Scale:    1,
		Color:    color,
	})
}

// EndFrame flushes the queued draws as a single render pass and presents.
func (r *Renderer) EndFrame() error {
	nextTexture, err := r.gpu.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	queue := r.gpu.queue
	if err := queue.WriteBuffer(r.cameraBuffer, 0, PackCameraBlock(r.camera)); err != nil {
		return err
	}
	if err := queue.WriteBuffer(r.fragmentArgsBuffer, 0, PackFragmentArgs(r.args)); err != nil {
		return err
	}
	if err := queue.WriteBuffer(r.lightsBuffer, 0, PackLightsBlock(r.lights)); err != nil {
		return err
	}

	for i, cmd := range r.draws {
		r.ensureSlot(i)
		if err := r.ensureMesh(cmd.mesh); err != nil {
			return err
		}
		if err := queue.WriteBuffer(r.slots[i].modelBuffer, 0, PackModelBlock(cmd.model)); err != nil {
			return err
		}
		if err := queue.WriteBuffer(r.slots[i].materialBuffer, 0, PackMaterialBlock(cmd.material)); err != nil {
			return err
		}
	}

	var textVertices []TextVertex
	if r.overlay != nil && len(r.textItems) > 0 {
		textVertices = r.overlay.BuildVertices(r.textItems, r.window.WindowWidth, r.window.WindowHeight)
		if len(textVertices) > 0 {
			if r.textVertexBuf != nil {
				r.textVertexBuf.Release()
			}
			r.textVertexBuf, err = r.gpu.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
				Label:    "text vertices",
				Contents: wgpu.ToBytes(textVertices),
				Usage:    wgpu.BufferUsageVertex,
			})
			if err != nil {
				return fmt.Errorf("text vertex buffer: %w", err)
			}
		}
	}

	encoder, err := r.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.background,
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(r.effectPipeline)
	for i, cmd := range r.draws {
		mesh := r.meshes[cmd.mesh]
		renderPass.SetBindGroup(0, r.slots[i].bindGroup, nil)
		renderPass.SetVertexBuffer(0, mesh.vertexBuf, 0, wgpu.WholeSize)
		renderPass.SetIndexBuffer(mesh.indexBuf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}

	if len(textVertices) > 0 {
		renderPass.SetPipeline(r.textPipeline)
		renderPass.SetBindGroup(0, r.textBindGroup, nil)
		renderPass.SetVertexBuffer(0, r.textVertexBuf, 0, wgpu.WholeSize)
		renderPass.Draw(uint32(len(textVertices)), 1, 0, 0)
	}

	if err := renderPass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmdBuffer.Release()

	queue.Submit(cmdBuffer)
	r.gpu.surface.Present()
	return nil
}

// ensureSlot grows the per-draw uniform slots up to index i.
func (r *Renderer) ensureSlot(i int) {
	for len(r.slots) <= i {
		slot := drawSlot{
			modelBuffer:    createUniformBuffer("model", ModelBlock{Model: mgl32.Ident4()}, r.gpu),
			materialBuffer: createUniformBuffer("material", MaterialBlock{}, r.gpu),
		}

		bindGroup, err := r.gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Layout: r.effectBindLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: r.cameraBuffer, Size: wgpu.WholeSize},
				{Binding: 1, Buffer: slot.modelBuffer, Size: wgpu.WholeSize},
				{Binding: 2, Buffer: slot.materialBuffer, Size: wgpu.WholeSize},
				{Binding: 3, Buffer: r.fragmentArgsBuffer, Size: wgpu.WholeSize},
				{Binding: 4, Buffer: r.lightsBuffer, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			panic(err)
		}
		slot.bindGroup = bindGroup
		r.slots = append(r.slots, slot)
		r.log.Debugf("draw slot %d allocated", len(r.slots)-1)
	}
}

// ensureMesh uploads (or re-uploads after an update) the GPU buffers of
// a registered mesh.
func (r *Renderer) ensureMesh(id AssetId) error {
	asset, ok := r.assets.mesh(id)
	if !ok {
		return fmt.Errorf("draw of unknown mesh asset %s", id)
	}

	cached, ok := r.meshes[id]
	if ok && cached.version == asset.version {
		return nil
	}
	if ok {
		cached.vertexBuf.Release()
		cached.indexBuf.Release()
	}

	vertexBuf, indexBuf := createVertexIndexBuffers(asset.mesh.Vertices, asset.mesh.Indices, r.gpu.device)
	r.meshes[id] = &gpuMesh{
		version:    asset.version,
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		indexCount: uint32(len(asset.mesh.Indices)),
	}
	return nil
}

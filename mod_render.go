package shmup

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shmup/shaders"
)

// RenderModule draws the particle buffer as one indexed mesh per
// frame. Requires the WindowState, AssetServer, ParticleSystem and
// SpriteAtlas resources.
type RenderModule struct{}

type renderState struct {
	gpu        *GpuState
	pipeline   *wgpu.RenderPipeline
	bindGroup  *wgpu.BindGroup
	vertexBuf  *wgpu.Buffer
	indexBuf   *wgpu.Buffer
	projBuf    *wgpu.Buffer
	indexCount uint32
}

func (RenderModule) Install(app *App) {
	win := Resource[*WindowState](app)
	assets := Resource[*AssetServer](app)
	ps := Resource[*ParticleSystem](app)
	atlas := Resource[*SpriteAtlas](app)

	gpu := createGpuState(win)

	pipeline := createRenderPipeline("sprite", shaders.SpriteWGSL, ps.Layout(), ps.StrideBytes(), gpu)

	tex, ok := assets.Texture(atlas.Texture)
	if !ok {
		panic("atlas texture asset missing")
	}
	textureView := createTextureFromAsset(&tex, gpu)
	sampler := createSpriteSampler(gpu)

	proj := mgl32.Ortho2D(0, float32(win.WindowWidth), 0, float32(win.WindowHeight))
	projBuf := createUniformBuffer("projection", proj[:], gpu.device)

	vertexBuf, indexBuf := createVertexIndexBuffers(ps.Vertices(), ps.Indices(), gpu.device)

	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := gpu.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: projBuf, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: textureView},
			{Binding: 2, Sampler: sampler},
		},
	})
	if err != nil {
		panic(err)
	}

	app.AddResources(&renderState{
		gpu:        gpu,
		pipeline:   pipeline,
		bindGroup:  bindGroup,
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		projBuf:    projBuf,
		indexCount: uint32(len(ps.Indices())),
	})
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func renderSystem(rs *renderState, ps *ParticleSystem, input *Input, life *Lifecycle) {
	if life.Quit {
		return
	}

	gpu := rs.gpu

	if w, h := uint32(input.WindowWidth), uint32(input.WindowHeight); w > 0 && h > 0 &&
		(w != gpu.surfaceConfig.Width || h != gpu.surfaceConfig.Height) {
		gpu.surfaceConfig.Width = w
		gpu.surfaceConfig.Height = h
		gpu.surface.Configure(gpu.adapter, gpu.device, gpu.surfaceConfig)

		proj := mgl32.Ortho2D(0, float32(w), 0, float32(h))
		if err := gpu.queue.WriteBuffer(rs.projBuf, 0, wgpu.ToBytes(proj[:])); err != nil {
			panic(err)
		}
	}

	// The whole frame's geometry in one write: only center/scale fields
	// change, but the buffer is small enough that a single upload wins.
	if err := gpu.queue.WriteBuffer(rs.vertexBuf, 0, wgpu.ToBytes(ps.Vertices())); err != nil {
		panic(err)
	}

	nextTexture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.0, G: 0.0, B: 0.04, A: 1.0},
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(rs.pipeline)
	renderPass.SetBindGroup(0, rs.bindGroup, nil)
	renderPass.SetVertexBuffer(0, rs.vertexBuf, 0, wgpu.WholeSize)
	renderPass.SetIndexBuffer(rs.indexBuf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	renderPass.DrawIndexed(rs.indexCount, 1, 0, 0, 0)

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpu.queue.Submit(cmdBuffer)
	gpu.surface.Present()
}

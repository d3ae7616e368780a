package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// vertexStride is the byte stride per vertex in the solid pipeline.
// Layout per vertex:
//
//	position (vec4<f32>) = 16 bytes (location 0)
const vertexStride = 16

// uniformSize is the byte size of the Locals uniform: one vec4<f32> color.
const uniformSize = 16

// ErrPipeline is returned when the render pipeline or one of its layouts
// cannot be created.
var ErrPipeline = errors.New("gpu: pipeline creation failed")

// PipelineDescription is the fixed-function state of the solid pipeline.
// It is resolved once when a RenderContext is created.
type PipelineDescription struct {
	// ColorFormat is the format of the color target (the surface format).
	ColorFormat gputypes.TextureFormat

	// Blend is applied to the color target. Straight alpha by default.
	Blend gputypes.BlendState

	// DepthFormat is the format of the depth target.
	DepthFormat gputypes.TextureFormat

	// DepthCompare and DepthWrite configure the depth test.
	DepthCompare gputypes.CompareFunction
	DepthWrite   bool

	// SampleCount is the MSAA sample count of both targets.
	SampleCount uint32
}

// DefaultPipelineDescription returns the description used for the scene:
// triangle lists, no culling, alpha blending and a LessEqual depth test with
// depth writes.
func DefaultPipelineDescription(colorFormat gputypes.TextureFormat) PipelineDescription {
	return PipelineDescription{
		ColorFormat:  colorFormat,
		Blend:        gputypes.BlendStateAlpha(),
		DepthFormat:  gputypes.TextureFormatDepth24Plus,
		DepthCompare: gputypes.CompareFunctionLessEqual,
		DepthWrite:   true,
		SampleCount:  1,
	}
}

// pipeline holds the GPU objects of the solid pipeline.
type pipeline struct {
	desc PipelineDescription

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
}

// newPipeline compiles the solid shader and creates the render pipeline.
// Objects created before a failure are destroyed.
func newPipeline(device hal.Device, desc PipelineDescription) (*pipeline, error) {
	p := &pipeline{desc: desc}
	if err := p.create(device); err != nil {
		p.destroy(device)
		return nil, err
	}
	return p, nil
}

func (p *pipeline) create(device hal.Device) error {
	shader, err := createShaderModule(device, "solid_shader", solidShaderSource)
	if err != nil {
		return err
	}
	p.shader = shader

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "solid_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: uniform layout: %w", ErrPipeline, err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "solid_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("%w: pipeline layout: %w", ErrPipeline, err)
	}
	p.pipeLayout = pipeLayout

	blend := p.desc.Blend
	rp, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "solid_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    solidVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.desc.ColorFormat,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            p.desc.DepthFormat,
			DepthWriteEnabled: p.desc.DepthWrite,
			DepthCompare:      p.desc.DepthCompare,
			StencilFront:      keepStencil(),
			StencilBack:       keepStencil(),
			StencilReadMask:   0x00,
			StencilWriteMask:  0x00,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: p.desc.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	p.pipeline = rp
	return nil
}

// keepStencil is a stencil face state that never touches the stencil buffer.
func keepStencil() hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
}

// destroy releases all pipeline resources in reverse creation order.
func (p *pipeline) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// solidVertexLayout returns the vertex buffer layout for the solid pipeline.
func solidVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/hanoi"
	"github.com/gogpu/wgpu/hal"
)

// RenderContext owns the solid-color pipeline and turns SubmitTriangles
// calls into GPU work.
//
// Every draw gets its own vertex buffer, uniform buffer and bind group.
// They belong to the frame until Flush, then to the submission until
// Cleanup sees it completed.
//
// RenderContext implements hanoi.Canvas. It is not safe for concurrent use.
type RenderContext struct {
	device hal.Device
	queue  hal.Queue

	targets RenderTargets
	pipe    *pipeline
	pool    *encoderPool

	enc      Encoder
	frame    []drawResources
	inflight []submission

	// err is the first allocation failure since the last Flush.
	err error

	staging []byte
	stats   Stats
}

var _ hanoi.Canvas = (*RenderContext)(nil)

// Stats reports RenderContext activity.
type Stats struct {
	// Draws is the number of draws recorded since the last Flush.
	Draws int
	// LastDraws and LastPasses describe the most recent successful Flush.
	LastDraws  int
	LastPasses int
	// Submissions is the number of command buffers submitted.
	Submissions int
	// InFlight is the number of submissions not yet reclaimed.
	InFlight int
	// Reclaimed is the number of per-draw resource sets released so far.
	Reclaimed int
}

// NewRenderContext compiles the solid pipeline for targets and returns a
// context that records into encoder. encoder must be closed (not recording);
// the context takes ownership of it.
//
// The returned error wraps ErrShaderCompile or ErrPipeline; callers treat
// both as fatal.
func NewRenderContext(device hal.Device, queue hal.Queue, encoder hal.CommandEncoder, targets RenderTargets) (*RenderContext, error) {
	if device == nil || queue == nil {
		return nil, errors.New("gpu: render context: nil device or queue")
	}
	if targets.ColorFormat == gputypes.TextureFormatUndefined {
		return nil, fmt.Errorf("%w: undefined color format", ErrPipeline)
	}

	desc := DefaultPipelineDescription(targets.ColorFormat)
	if targets.DepthFormat != gputypes.TextureFormatUndefined {
		desc.DepthFormat = targets.DepthFormat
	}
	targets.DepthFormat = desc.DepthFormat

	pipe, err := newPipeline(device, desc)
	if err != nil {
		return nil, err
	}

	slogger().Debug("gpu: render context created",
		"color_format", targets.ColorFormat,
		"depth_format", targets.DepthFormat,
		"width", targets.Width,
		"height", targets.Height)

	return &RenderContext{
		device:  device,
		queue:   queue,
		targets: targets,
		pipe:    pipe,
		pool:    newEncoderPool(device, encoder),
	}, nil
}

// Targets returns the current render targets.
func (rc *RenderContext) Targets() RenderTargets { return rc.targets }

// SetColorTarget binds view as the color target of subsequent commands.
// The window calls it with the swapchain view at the start of every frame.
func (rc *RenderContext) SetColorTarget(view hal.TextureView) {
	rc.targets.Color = view
}

// SetDepthTarget replaces the depth attachment and the target size. The
// caller owns the previous depth view and must keep it alive until the
// submissions using it complete.
func (rc *RenderContext) SetDepthTarget(view hal.TextureView, width, height uint32) {
	rc.targets.Depth = view
	rc.targets.Width, rc.targets.Height = width, height
}

// ClearColor records a clear of the color target.
func (rc *RenderContext) ClearColor(c hanoi.Color) {
	rc.enc.ClearColor(rc.targets.Color, c.GPU())
}

// ClearDepth records a clear of the depth target.
func (rc *RenderContext) ClearDepth(depth float32) {
	rc.enc.ClearDepth(rc.targets.Depth, depth)
}

// SubmitTriangles records a draw of vertices as a triangle list filled with
// color.
//
// A vertex buffer holding the vertices and a 16-byte uniform buffer are
// allocated for the draw; the color reaches the uniform buffer through a
// deferred write on the encoder. Fewer than three vertices record nothing,
// and trailing vertices that do not complete a triangle are not drawn.
// Allocation failures are reported by the next Flush.
func (rc *RenderContext) SubmitTriangles(vertices []hanoi.Vertex, color hanoi.Color) {
	n := len(vertices) - len(vertices)%3
	if n == 0 || rc.err != nil {
		return
	}
	if rc.targets.Color == nil {
		rc.err = ErrNoColorTarget
		return
	}

	res, err := rc.allocDraw(vertices[:n])
	if err != nil {
		rc.err = err
		return
	}
	rc.frame = append(rc.frame, res)

	rc.enc.UpdateBuffer(res.uniformBuf, encodeColor(color))
	rc.enc.Draw(drawCall{
		vertexBuf:   res.vertexBuf,
		bindGroup:   res.bindGroup,
		vertexCount: uint32(n),
		color:       rc.targets.Color,
		depth:       rc.targets.Depth,
	})
	rc.stats.Draws++
}

// allocDraw creates the buffers and bind group of one draw and uploads the
// vertex data.
func (rc *RenderContext) allocDraw(vertices []hanoi.Vertex) (drawResources, error) {
	var res drawResources
	size := uint64(len(vertices)) * vertexStride

	vb, err := rc.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "solid_vertices",
		Size:  size,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return res, fmt.Errorf("gpu: create vertex buffer (%d bytes): %w", size, err)
	}
	res.vertexBuf = vb

	rc.staging = encodeVertices(rc.staging[:0], vertices)
	if err := rc.queue.WriteBuffer(vb, 0, rc.staging); err != nil {
		res.destroy(rc.device)
		return res, fmt.Errorf("gpu: upload vertices: %w", err)
	}

	ub, err := rc.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "solid_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		res.destroy(rc.device)
		return res, fmt.Errorf("gpu: create uniform buffer: %w", err)
	}
	res.uniformBuf = ub

	bg, err := rc.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "solid_bind_group",
		Layout: rc.pipe.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: ub.NativeHandle(),
					Offset: 0,
					Size:   uniformSize,
				},
			},
		},
	})
	if err != nil {
		res.destroy(rc.device)
		return res, fmt.Errorf("gpu: create bind group: %w", err)
	}
	res.bindGroup = bg
	return res, nil
}

// Flush encodes everything recorded since the previous Flush into one
// command buffer and submits it. The frame's draw resources move to the
// in-flight submission. A recorded allocation failure is returned instead
// and the frame is dropped.
func (rc *RenderContext) Flush() error {
	if err := rc.err; err != nil {
		rc.err = nil
		rc.discardFrame()
		return err
	}
	if rc.enc.Len() == 0 {
		return nil
	}

	sub, passes, err := rc.submit()
	if err != nil {
		rc.discardFrame()
		return err
	}
	sub.resources = rc.frame
	rc.inflight = append(rc.inflight, sub)

	rc.stats.LastDraws = rc.stats.Draws
	rc.stats.LastPasses = passes
	rc.stats.Draws = 0
	rc.stats.Submissions++
	rc.stats.InFlight = len(rc.inflight)

	rc.frame = nil
	rc.enc.Reset()
	return nil
}

// submit applies deferred buffer writes, encodes the command list and
// submits it.
func (rc *RenderContext) submit() (submission, int, error) {
	if err := rc.enc.applyUpdates(rc.queue); err != nil {
		return submission{}, 0, err
	}

	enc, err := rc.pool.acquire()
	if err != nil {
		return submission{}, 0, err
	}
	if err := enc.BeginEncoding("hanoi_frame"); err != nil {
		rc.pool.release(enc)
		return submission{}, 0, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	passes, err := rc.enc.encode(enc, rc.pipe.pipeline)
	if err != nil {
		enc.DiscardEncoding()
		rc.pool.release(enc)
		return submission{}, 0, err
	}

	cmdBuf, err := enc.EndEncoding()
	if err != nil {
		enc.DiscardEncoding()
		rc.pool.release(enc)
		return submission{}, 0, fmt.Errorf("gpu: end encoding: %w", err)
	}

	index, err := rc.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		enc.ResetAll([]hal.CommandBuffer{cmdBuf})
		rc.pool.release(enc)
		return submission{}, 0, fmt.Errorf("gpu: submit: %w", err)
	}

	return submission{index: index, encoder: enc, cmdBuf: cmdBuf}, passes, nil
}

// discardFrame destroys the resources of an unsubmitted frame.
func (rc *RenderContext) discardFrame() {
	for i := range rc.frame {
		rc.frame[i].destroy(rc.device)
	}
	rc.frame = nil
	rc.enc.Reset()
	rc.stats.Draws = 0
}

// Cleanup releases the resources of every submission the queue reports as
// complete. It never blocks.
func (rc *RenderContext) Cleanup() {
	if len(rc.inflight) == 0 {
		return
	}
	if n := rc.reclaimCompleted(rc.queue.PollCompleted()); n > 0 {
		rc.stats.InFlight = len(rc.inflight)
	}
}

// Stats returns a snapshot of the context counters.
func (rc *RenderContext) Stats() Stats { return rc.stats }

// Destroy waits for the device to finish, then releases every resource the
// context owns. The context must not be used afterwards.
func (rc *RenderContext) Destroy() {
	if rc.device == nil {
		return
	}
	if err := rc.device.WaitIdle(); err != nil {
		slogger().Warn("gpu: wait idle before destroy failed", "err", err)
	}
	rc.reclaimCompleted(math.MaxUint64)
	rc.stats.InFlight = 0
	rc.discardFrame()
	rc.pool.destroy()
	rc.pipe.destroy(rc.device)
	rc.device = nil
}

// encodeVertices appends the little-endian float32 encoding of vertices.
func encodeVertices(dst []byte, vertices []hanoi.Vertex) []byte {
	for _, v := range vertices {
		for _, f := range v.Pos {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}

// encodeColor returns the uniform buffer contents for c.
func encodeColor(c hanoi.Color) []byte {
	buf := make([]byte, 0, uniformSize)
	for _, f := range c.Vec4() {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}

package gpu

import (
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for unit tests.
// No GPU hardware is required.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// fakeView is a distinguishable texture view. noop.Resource is zero-sized,
// so two pointers to it may compare equal.
type fakeView struct {
	noop.Resource
	id int
}

// bufferWrite is one captured Queue.WriteBuffer call.
type bufferWrite struct {
	buf  hal.Buffer
	data []byte
}

// recordingQueue wraps a noop queue and captures writes and submissions.
type recordingQueue struct {
	hal.Queue
	writes  []bufferWrite
	submits int

	// stall makes PollCompleted report nothing completed.
	stall bool
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	q.writes = append(q.writes, bufferWrite{buf: buf, data: append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) Submit(cmds []hal.CommandBuffer) (uint64, error) {
	q.submits++
	return q.Queue.Submit(cmds)
}

func (q *recordingQueue) PollCompleted() uint64 {
	if q.stall {
		return 0
	}
	return q.Queue.PollCompleted()
}

// recordingEncoder wraps a noop command encoder and logs render pass
// activity as short strings.
type recordingEncoder struct {
	hal.CommandEncoder
	log    []string
	passes []hal.RenderPassDescriptor
	resets int
}

func (e *recordingEncoder) BeginEncoding(label string) error {
	e.log = append(e.log, "begin-encoding")
	return e.CommandEncoder.BeginEncoding(label)
}

func (e *recordingEncoder) EndEncoding() (hal.CommandBuffer, error) {
	e.log = append(e.log, "end-encoding")
	return e.CommandEncoder.EndEncoding()
}

func (e *recordingEncoder) ResetAll(cmds []hal.CommandBuffer) {
	e.resets++
	e.CommandEncoder.ResetAll(cmds)
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.log = append(e.log, "begin-pass")
	e.passes = append(e.passes, *desc)
	return &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), enc: e}
}

type recordingPass struct {
	hal.RenderPassEncoder
	enc *recordingEncoder
}

func (p *recordingPass) SetPipeline(rp hal.RenderPipeline) {
	p.enc.log = append(p.enc.log, "pipeline")
	p.RenderPassEncoder.SetPipeline(rp)
}

func (p *recordingPass) SetBindGroup(index uint32, bg hal.BindGroup, offsets []uint32) {
	p.enc.log = append(p.enc.log, "bind")
	p.RenderPassEncoder.SetBindGroup(index, bg, offsets)
}

func (p *recordingPass) SetVertexBuffer(slot uint32, buf hal.Buffer, offset uint64) {
	p.enc.log = append(p.enc.log, "vertex")
	p.RenderPassEncoder.SetVertexBuffer(slot, buf, offset)
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.enc.log = append(p.enc.log, fmt.Sprintf("draw:%d", vertexCount))
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *recordingPass) End() {
	p.enc.log = append(p.enc.log, "end-pass")
	p.RenderPassEncoder.End()
}

// newRecordingEncoder returns a recording wrapper around a fresh noop encoder.
func newRecordingEncoder(t *testing.T, device hal.Device) *recordingEncoder {
	t.Helper()
	enc, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "test"})
	if err != nil {
		t.Fatalf("CreateCommandEncoder failed: %v", err)
	}
	return &recordingEncoder{CommandEncoder: enc}
}

// testContext bundles a RenderContext with its recording collaborators.
type testContext struct {
	rc    *RenderContext
	queue *recordingQueue
	enc   *recordingEncoder
	color *fakeView
	depth *fakeView
}

func newTestContext(t *testing.T) *testContext {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	tc := &testContext{
		queue: &recordingQueue{Queue: queue},
		enc:   newRecordingEncoder(t, device),
		color: &fakeView{id: 1},
		depth: &fakeView{id: 2},
	}
	rc, err := NewRenderContext(device, tc.queue, tc.enc, RenderTargets{
		Color:       tc.color,
		Depth:       tc.depth,
		ColorFormat: gputypes.TextureFormatBGRA8UnormSrgb,
		DepthFormat: gputypes.TextureFormatDepth24Plus,
		Width:       800,
		Height:      600,
	})
	if err != nil {
		t.Fatalf("NewRenderContext failed: %v", err)
	}
	t.Cleanup(rc.Destroy)
	tc.rc = rc
	return tc
}

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// commandKind identifies an Encoder command.
type commandKind uint8

const (
	cmdClearColor commandKind = iota
	cmdClearDepth
	cmdUpdateBuffer
	cmdDraw
)

func (k commandKind) String() string {
	switch k {
	case cmdClearColor:
		return "clear-color"
	case cmdClearDepth:
		return "clear-depth"
	case cmdUpdateBuffer:
		return "update-buffer"
	case cmdDraw:
		return "draw"
	default:
		return fmt.Sprintf("commandKind(%d)", uint8(k))
	}
}

// drawCall binds one vertex buffer and one bind group against the solid
// pipeline and draws vertexCount vertices as a triangle list.
type drawCall struct {
	vertexBuf   hal.Buffer
	bindGroup   hal.BindGroup
	vertexCount uint32
	color       hal.TextureView
	depth       hal.TextureView
}

// command is one entry of the Encoder's command list.
type command struct {
	kind commandKind

	view  hal.TextureView
	color gputypes.Color
	depth float32

	buffer hal.Buffer
	data   []byte

	draw drawCall
}

// Encoder is an ordered list of device commands. Commands reach the device
// in append order when the list is encoded.
//
// Buffer updates are deferred writes: they are applied through the queue
// immediately before the command buffer that uses them is submitted, which
// orders every update ahead of every draw of the same flush.
type Encoder struct {
	cmds []command
}

// ClearColor records a clear of view to c.
func (e *Encoder) ClearColor(view hal.TextureView, c gputypes.Color) {
	e.cmds = append(e.cmds, command{kind: cmdClearColor, view: view, color: c})
}

// ClearDepth records a clear of view to depth.
func (e *Encoder) ClearDepth(view hal.TextureView, depth float32) {
	e.cmds = append(e.cmds, command{kind: cmdClearDepth, view: view, depth: depth})
}

// UpdateBuffer records a write of data at offset 0 of buf.
func (e *Encoder) UpdateBuffer(buf hal.Buffer, data []byte) {
	e.cmds = append(e.cmds, command{kind: cmdUpdateBuffer, buffer: buf, data: data})
}

// Draw records a draw call.
func (e *Encoder) Draw(d drawCall) {
	e.cmds = append(e.cmds, command{kind: cmdDraw, draw: d})
}

// Len returns the number of recorded commands.
func (e *Encoder) Len() int { return len(e.cmds) }

// Reset drops all recorded commands and keeps the backing storage.
func (e *Encoder) Reset() {
	clear(e.cmds)
	e.cmds = e.cmds[:0]
}

// applyUpdates writes every recorded buffer update through queue.
func (e *Encoder) applyUpdates(queue hal.Queue) error {
	for i := range e.cmds {
		c := &e.cmds[i]
		if c.kind != cmdUpdateBuffer {
			continue
		}
		if err := queue.WriteBuffer(c.buffer, 0, c.data); err != nil {
			return fmt.Errorf("gpu: update buffer: %w", err)
		}
	}
	return nil
}

// passState accumulates the attachments and load operations of the render
// pass that will receive the next draws.
type passState struct {
	open bool
	rp   hal.RenderPassEncoder

	colorView hal.TextureView
	depthView hal.TextureView

	colorClear *gputypes.Color
	depthClear *float32
}

// encode records the command list into enc. Clears become the load
// operations of the next render pass; a clear recorded after draws ends the
// current pass. Clears that no draw consumes still get an empty pass so the
// targets are cleared. It returns the number of render passes.
func (e *Encoder) encode(enc hal.CommandEncoder, rp hal.RenderPipeline) (int, error) {
	var (
		st     passState
		passes int
		last   hal.TextureView // most recent color view, for depth-only clears
	)

	clearOnly := func() error {
		if !st.pending() {
			return nil
		}
		if st.colorView == nil {
			st.colorView = last
		}
		if err := st.begin(enc, nil); err != nil {
			return err
		}
		passes++
		st.end()
		return nil
	}

	for i := range e.cmds {
		c := &e.cmds[i]
		switch c.kind {
		case cmdUpdateBuffer:
			// Applied through the queue before submission.

		case cmdClearColor:
			st.end()
			if st.colorClear != nil && st.colorView != c.view {
				if err := clearOnly(); err != nil {
					return passes, err
				}
			}
			col := c.color
			st.colorClear = &col
			st.colorView = c.view
			if c.view != nil {
				last = c.view
			}

		case cmdClearDepth:
			st.end()
			if st.depthClear != nil && st.depthView != c.view {
				if err := clearOnly(); err != nil {
					return passes, err
				}
			}
			d := c.depth
			st.depthClear = &d
			st.depthView = c.view

		case cmdDraw:
			d := &c.draw
			if st.open && (st.colorView != d.color || st.depthView != d.depth) {
				st.end()
			}
			if !st.open {
				if (st.colorClear != nil && st.colorView != d.color) ||
					(st.depthClear != nil && st.depthView != d.depth) {
					if err := clearOnly(); err != nil {
						return passes, err
					}
				}
				st.colorView, st.depthView = d.color, d.depth
				if err := st.begin(enc, rp); err != nil {
					return passes, err
				}
				passes++
			}
			if d.color != nil {
				last = d.color
			}
			st.rp.SetBindGroup(0, d.bindGroup, nil)
			st.rp.SetVertexBuffer(0, d.vertexBuf, 0)
			st.rp.Draw(d.vertexCount, 1, 0, 0)
		}
	}
	st.end()

	if err := clearOnly(); err != nil {
		return passes, err
	}
	return passes, nil
}

// pending reports whether a clear is waiting for a render pass.
func (st *passState) pending() bool {
	return st.colorClear != nil || st.depthClear != nil
}

// begin opens a render pass on the current attachments, consuming any
// pending clears as load operations. rp may be nil for a clear-only pass.
func (st *passState) begin(enc hal.CommandEncoder, rp hal.RenderPipeline) error {
	if st.colorView == nil {
		return ErrNoColorTarget
	}

	colorLoad := gputypes.LoadOpLoad
	var clearValue gputypes.Color
	if st.colorClear != nil {
		colorLoad = gputypes.LoadOpClear
		clearValue = *st.colorClear
	}

	desc := &hal.RenderPassDescriptor{
		Label: "solid_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       st.colorView,
				LoadOp:     colorLoad,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clearValue,
			},
		},
	}

	if st.depthView != nil {
		depthLoad := gputypes.LoadOpLoad
		var depthValue float32
		if st.depthClear != nil {
			depthLoad = gputypes.LoadOpClear
			depthValue = *st.depthClear
		}
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:            st.depthView,
			DepthLoadOp:     depthLoad,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: depthValue,
			StencilReadOnly: true,
		}
	}

	st.rp = enc.BeginRenderPass(desc)
	st.open = true
	st.colorClear, st.depthClear = nil, nil
	if rp != nil {
		st.rp.SetPipeline(rp)
	}
	return nil
}

// end closes the open render pass, if any.
func (st *passState) end() {
	if !st.open {
		return
	}
	st.rp.End()
	st.rp = nil
	st.open = false
}

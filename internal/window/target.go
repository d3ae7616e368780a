// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/hanoi"
	"github.com/gogpu/hanoi/internal/gpu"
)

var (
	errNoFrame = errors.New("window: no acquired frame")
	errClosed  = errors.New("window: closed")
)

// target is the per-window render state: the depth attachment and the
// render context that frames are recorded into. It never owns the device,
// the queue or the surface views bound to it.
type target struct {
	device hal.Device
	depth  *gpu.DepthTarget
	ctx    *gpu.RenderContext

	view   hal.TextureView
	closed bool
}

func newTarget(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, width, height uint32) (*target, error) {
	depth, err := gpu.NewDepthTarget(device, width, height)
	if err != nil {
		return nil, err
	}

	enc, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "hanoi_encoder"})
	if err != nil {
		depth.Destroy(device)
		return nil, fmt.Errorf("window: create encoder: %w", err)
	}

	ctx, err := gpu.NewRenderContext(device, queue, enc, gpu.RenderTargets{
		Depth:       depth.View,
		ColorFormat: format,
		DepthFormat: depth.Format,
		Width:       width,
		Height:      height,
	})
	if err != nil {
		enc.Destroy()
		depth.Destroy(device)
		return nil, err
	}
	return &target{device: device, depth: depth, ctx: ctx}, nil
}

// begin binds view as this frame's color target. A nil view means the
// surface had no image to give and the frame is skipped. The depth
// attachment follows the surface size.
func (t *target) begin(view hal.TextureView, width, height uint32) error {
	if t.closed {
		return errClosed
	}
	if view == nil || width == 0 || height == 0 {
		return hanoi.ErrFrameSkipped
	}
	if err := t.resize(width, height); err != nil {
		return err
	}
	t.view = view
	t.ctx.SetColorTarget(view)
	return nil
}

// end unbinds the frame's view. Presentation is left to the surface owner.
func (t *target) end() error {
	if t.view == nil {
		return errNoFrame
	}
	t.view = nil
	t.ctx.SetColorTarget(nil)
	return nil
}

func (t *target) resize(width, height uint32) error {
	cur := t.ctx.Targets()
	if cur.Width == width && cur.Height == height {
		return nil
	}
	depth, err := gpu.NewDepthTarget(t.device, width, height)
	if err != nil {
		return err
	}
	if err := t.device.WaitIdle(); err != nil {
		hanoi.Logger().Warn("window: wait idle before resize failed", "err", err)
	}
	t.depth.Destroy(t.device)
	t.depth = depth
	t.ctx.SetDepthTarget(depth.View, width, height)
	hanoi.Logger().Debug("window: resized depth target", "width", width, "height", height)
	return nil
}

// close releases the render context and the depth target. It is safe to
// call more than once.
func (t *target) close() {
	if t.closed {
		return
	}
	t.closed = true
	t.view = nil
	t.ctx.Destroy()
	t.depth.Destroy(t.device)
}

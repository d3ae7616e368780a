// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window hosts the puzzle in a gogpu application window. gogpu owns
// the OS window, the device and the swapchain; this package keeps the depth
// target and the gpu.RenderContext frames are recorded into, and drives a
// hanoi.Driver from the application's draw callback.
//
// Window methods other than Run and Size are called from inside the draw
// callback, on gogpu's render thread.
package window

import (
	"context"
	"errors"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/hanoi"
)

var (
	// ErrNoDevice is returned by Run when the application exposes no HAL
	// device to render with.
	ErrNoDevice = errors.New("window: no HAL device")

	errNotDrawing = errors.New("window: frame requested outside the draw callback")
)

// Framer advances the animation by one frame. *hanoi.Driver implements it.
type Framer interface {
	Frame() (hanoi.Outcome, error)
}

// Window is a non-resizable gogpu window the puzzle renders into.
type Window struct {
	app *gogpu.App

	dc     *gogpu.Context
	tgt    *target
	events eventQueue

	outcome hanoi.Outcome
	err     error
}

var (
	_ hanoi.Window              = (*Window)(nil)
	_ gpucontext.DeviceProvider = (*Window)(nil)
)

// New creates a window titled title. Nothing is opened until Run.
func New(title string, opts ...Option) *Window {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	appCfg := gogpu.DefaultConfig().
		WithTitle(title).
		WithSize(cfg.width, cfg.height).
		WithVSync(cfg.vsync).
		WithContinuousRender(true)
	appCfg.Resizable = false

	w := &Window{app: gogpu.NewApp(appCfg)}
	w.app.OnResize(func(width, height int) {
		w.events.push(hanoi.ResizeEvent{Width: width, Height: height})
	})
	w.app.OnClose(w.Close)
	return w
}

// Run opens the window and calls f.Frame once per drawn frame until it
// reports an outcome other than Running, returns an error, the window is
// closed or ctx is canceled. It blocks on the calling goroutine, which
// gogpu locks to the main OS thread.
func (w *Window) Run(ctx context.Context, f Framer) (hanoi.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return hanoi.Canceled, err
	}
	w.outcome, w.err = hanoi.Running, nil

	w.app.OnUpdate(func(float64) {
		if err := ctx.Err(); err != nil && w.outcome == hanoi.Running {
			w.outcome, w.err = hanoi.Canceled, err
			w.app.Quit()
		}
	})
	w.app.OnDraw(func(dc *gogpu.Context) {
		if w.outcome != hanoi.Running {
			return
		}
		outcome, err := w.draw(dc, f)
		if err != nil || outcome != hanoi.Running {
			w.outcome, w.err = outcome, err
			w.app.Quit()
		}
	})

	if err := w.app.Run(); err != nil {
		return hanoi.Running, err
	}
	if w.outcome == hanoi.Running && w.err == nil {
		// The window system ended the loop.
		w.outcome = hanoi.Closed
	}
	return w.outcome, w.err
}

// draw runs one frame of f against the surface gogpu is drawing.
func (w *Window) draw(dc *gogpu.Context, f Framer) (hanoi.Outcome, error) {
	if w.tgt == nil {
		width, height := dc.SurfaceSize()
		if width == 0 || height == 0 {
			return hanoi.Running, nil
		}
		tgt, err := w.newTarget(width, height)
		if err != nil {
			return hanoi.Running, err
		}
		w.tgt = tgt
	}

	w.dc = dc
	defer func() { w.dc = nil }()
	return f.Frame()
}

func (w *Window) newTarget(width, height uint32) (*target, error) {
	p := w.app.DeviceProvider()
	if p == nil || p.Device() == nil {
		return nil, ErrNoDevice
	}
	device, queue := p.Device().HalDevice(), p.Device().HalQueue()
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}

	tgt, err := newTarget(device, queue, p.SurfaceFormat(), width, height)
	if err != nil {
		return nil, err
	}
	hanoi.Logger().Info("window: ready",
		"format", p.SurfaceFormat(),
		"width", width,
		"height", height)
	return tgt, nil
}

// Canvas returns the render context as a hanoi.Canvas.
func (w *Window) Canvas() hanoi.Canvas {
	if w.tgt == nil {
		return nil
	}
	return w.tgt.ctx
}

// BeginFrame binds the current surface view as the color target. It
// returns hanoi.ErrFrameSkipped when gogpu has no view this frame.
func (w *Window) BeginFrame() error {
	if w.dc == nil || w.tgt == nil {
		return errNotDrawing
	}
	var view hal.TextureView
	if v := w.dc.SurfaceView(); v != nil {
		view = v.HalTextureView()
	}
	width, height := w.dc.SurfaceSize()
	return w.tgt.begin(view, width, height)
}

// PollEvents returns the resize events received since the last call. A
// close request ends Run with hanoi.Closed instead.
func (w *Window) PollEvents() []hanoi.Event {
	return w.events.drain()
}

// Present hands the frame back to gogpu, which presents it once the draw
// callback returns.
func (w *Window) Present() error {
	if w.tgt == nil {
		return errNoFrame
	}
	return w.tgt.end()
}

// Close releases the render context and the depth target. gogpu calls it
// at shutdown while the device is still alive. It is safe to call more
// than once.
func (w *Window) Close() {
	if w.tgt != nil {
		w.tgt.close()
	}
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.app.PhysicalSize()
}

// Device returns the application's device, or nil before Run.
func (w *Window) Device() gpucontext.Device {
	if p := w.app.GPUContextProvider(); p != nil {
		return p.Device()
	}
	return nil
}

// Queue returns the application's queue, or nil before Run.
func (w *Window) Queue() gpucontext.Queue {
	if p := w.app.GPUContextProvider(); p != nil {
		return p.Queue()
	}
	return nil
}

// SurfaceFormat returns the format of the window surface.
func (w *Window) SurfaceFormat() gputypes.TextureFormat {
	if p := w.app.GPUContextProvider(); p != nil {
		return p.SurfaceFormat()
	}
	return gputypes.TextureFormatUndefined
}

// Adapter returns the adapter the device was opened on.
func (w *Window) Adapter() gpucontext.Adapter {
	if p := w.app.GPUContextProvider(); p != nil {
		return p.Adapter()
	}
	return nil
}

// AdapterInfo describes the adapter.
func (w *Window) AdapterInfo() gpucontext.AdapterInfo {
	if p := w.app.GPUContextProvider(); p != nil {
		return p.AdapterInfo()
	}
	return gpucontext.AdapterInfo{}
}

package hanoi

import "errors"

// ErrFrameSkipped is returned by Window.BeginFrame when no presentable image
// is available this frame, for example while the surface is reconfigured.
// The Driver drops such a frame and tries again on the next one.
var ErrFrameSkipped = errors.New("hanoi: frame skipped")

// Canvas is the immediate-mode drawing surface the frame loop renders into.
// internal/gpu.RenderContext is the GPU implementation.
//
// Commands are recorded in call order and reach the device on Flush.
// Within one frame ClearColor and ClearDepth are issued once each, before
// the first SubmitTriangles.
type Canvas interface {
	// Cleanup releases transient resources of completed frames.
	Cleanup()

	// ClearColor records a clear of the color target.
	ClearColor(c Color)

	// ClearDepth records a clear of the depth target.
	ClearDepth(depth float32)

	// SubmitTriangles records a draw of vertices as a triangle list filled
	// with c. An empty slice records nothing.
	SubmitTriangles(vertices []Vertex, c Color)

	// Flush submits everything recorded since the previous Flush.
	Flush() error
}

// Window is the presentation target driven by the frame loop.
// All methods are called from the goroutine running the frame loop.
type Window interface {
	// Canvas returns the canvas that renders into the window.
	Canvas() Canvas

	// BeginFrame prepares the next presentable image as the color target.
	// It returns ErrFrameSkipped when there is nothing to render into.
	BeginFrame() error

	// PollEvents drains all pending events without blocking.
	PollEvents() []Event

	// Present shows the frame rendered since BeginFrame.
	Present() error
}

// Overlay draws a status line over the scene.
// Draw errors never stop the frame loop.
type Overlay interface {
	Draw(c Canvas, status Status) error
}

// Status summarizes puzzle progress for an Overlay.
type Status struct {
	Disks int
	Moves int
	Total int
	State State
}

// StatusOf returns the current status of p.
func StatusOf(p *Puzzle) Status {
	return Status{
		Disks: p.Disks(),
		Moves: p.Moves(),
		Total: MinMoves(p.Disks()),
		State: p.State(),
	}
}

// Package hanoi animates the Towers of Hanoi puzzle on a GPU surface.
//
// # Overview
//
// The package holds the puzzle model, the flat-color geometry it is drawn
// with, and the frame loop that ties them to a window. Rendering is
// immediate-mode: every frame the loop clears the targets, draws one colored
// triangle list per rod and per disk, flushes the recorded commands, polls
// window events and presents.
//
//	win := window.New("Hanoi Towers")
//	puzzle, _ := hanoi.NewPuzzle(9)
//	outcome, err := win.Run(ctx, hanoi.NewDriver(win, puzzle))
//
// Driver.Run drives the same loop without a window system, for callers
// that own their event loop.
//
// # Coordinate System
//
// Geometry is expressed directly in clip space:
//   - Origin (0,0) at the center of the window
//   - X increases right, Y increases up
//   - Both axes span [-1, 1]
//
// # Solving
//
// The puzzle advances with the iterative alternating-move rule: the smallest
// disk moves one rod to the right on every other step, and the steps in
// between make the only legal move that does not involve the smallest disk.
// N disks are solved in exactly 2^N-1 steps.
//
// # Packages
//
//   - internal/gpu: RenderContext, the pipeline and the command encoder
//   - internal/window: gogpu window hosting the render context
//   - internal/overlay: status text rasterized into colored spans
//   - cmd/hanoi: the executable
package hanoi

package hanoi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Outcome describes why a Driver stopped.
type Outcome int

const (
	// Running means the loop should continue.
	Running Outcome = iota
	// Finished means the puzzle was solved.
	Finished
	// Closed means the window reported a close event.
	Closed
	// Canceled means the context passed to Run was canceled.
	Canceled
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	case Closed:
		return "Closed"
	case Canceled:
		return "Canceled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Driver runs the frame loop: it advances a Puzzle on a fixed tick and
// renders every iteration into a Window.
//
// A Driver must be used from the goroutine running the frame loop.
type Driver struct {
	win    Window
	puzzle *Puzzle
	opts   options

	lastStep time.Time
	solvedAt time.Time
	started  bool
	frames   int
}

// NewDriver creates a driver for puzzle rendered into win.
func NewDriver(win Window, puzzle *Puzzle, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{
		win:    win,
		puzzle: puzzle,
		opts:   o,
	}
}

// Run calls Frame until it reports an outcome other than Running.
// A canceled ctx stops the loop between frames with Canceled and ctx.Err().
// A Frame error ends the loop and is returned.
func (d *Driver) Run(ctx context.Context) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Canceled, err
		}
		outcome, err := d.Frame()
		if err != nil || outcome != Running {
			return outcome, err
		}
	}
}

// Frame runs one loop iteration:
//
//  1. step the puzzle if the tick interval has elapsed since the last step
//  2. release completed GPU resources
//  3. acquire the next frame; a skipped frame ends the iteration here
//  4. clear color, then depth
//  5. draw the overlay (errors are logged and dropped)
//  6. draw rods and disks
//  7. flush recorded commands
//  8. drain window events
//  9. present
//
// It returns Closed if a close event was drained, Finished once the puzzle
// is solved and the hold period has passed, and Running otherwise.
func (d *Driver) Frame() (Outcome, error) {
	now := d.opts.now()
	if !d.started {
		d.lastStep = now
		d.started = true
	}
	d.tick(now)

	canvas := d.win.Canvas()
	canvas.Cleanup()

	if err := d.win.BeginFrame(); err != nil {
		if errors.Is(err, ErrFrameSkipped) {
			Logger().Debug("hanoi: frame skipped", "frame", d.frames)
			return Running, nil
		}
		return Running, fmt.Errorf("hanoi: begin frame: %w", err)
	}

	canvas.ClearColor(ClearColor)
	canvas.ClearDepth(ClearDepth)

	if d.opts.overlay != nil {
		if err := d.opts.overlay.Draw(canvas, StatusOf(d.puzzle)); err != nil {
			Logger().Debug("hanoi: overlay draw failed", "err", err)
		}
	}

	DrawScene(canvas, d.puzzle)

	if err := canvas.Flush(); err != nil {
		return Running, fmt.Errorf("hanoi: flush: %w", err)
	}

	events := d.win.PollEvents()

	if err := d.win.Present(); err != nil {
		return Running, fmt.Errorf("hanoi: present: %w", err)
	}
	d.frames++

	if ContainsClose(events) {
		Logger().Info("hanoi: window closed", "moves", d.puzzle.Moves(), "frames", d.frames)
		return Closed, nil
	}
	if d.puzzle.Solved() && now.Sub(d.solvedAt) >= d.opts.hold {
		return Finished, nil
	}
	return Running, nil
}

// tick steps the puzzle at most once per call.
func (d *Driver) tick(now time.Time) {
	if d.puzzle.Solved() || now.Sub(d.lastStep) < d.opts.tick {
		return
	}
	d.puzzle.Step()
	d.lastStep = now

	if d.puzzle.Solved() {
		d.solvedAt = now
		Logger().Info("hanoi: puzzle solved",
			"disks", d.puzzle.Disks(),
			"moves", d.puzzle.Moves(),
			"frames", d.frames)
	}
}

// Frames returns the number of frames presented so far.
func (d *Driver) Frames() int { return d.frames }

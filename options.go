package hanoi

import "time"

// Defaults used when no option overrides them.
const (
	// DefaultTick is the interval between puzzle steps.
	DefaultTick = 100 * time.Millisecond

	// DefaultDisks is the disk count of the executable.
	DefaultDisks = 9

	// DefaultTitle is the window title of the executable.
	DefaultTitle = "Hanoi Towers"
)

// Option configures a Driver during creation.
//
// Example:
//
//	d := hanoi.NewDriver(win, puzzle,
//		hanoi.WithTick(50*time.Millisecond),
//		hanoi.WithOverlay(ov),
//	)
type Option func(*options)

// options holds optional configuration for Driver creation.
type options struct {
	tick    time.Duration
	hold    time.Duration
	now     func() time.Time
	overlay Overlay
}

// defaultOptions returns the default driver options.
func defaultOptions() options {
	return options{
		tick: DefaultTick,
		now:  time.Now,
	}
}

// WithTick sets the interval between puzzle steps.
// Non-positive values are ignored.
func WithTick(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.tick = d
		}
	}
}

// WithHold keeps the loop running for d after the puzzle is solved so the
// final position stays on screen. The default is to stop immediately.
func WithHold(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.hold = d
		}
	}
}

// WithClock replaces time.Now as the time source.
// The returned times must carry a monotonic reading or be strictly
// increasing; tick gating uses Time.Sub.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOverlay draws ov on every frame after the clears and before the scene.
func WithOverlay(ov Overlay) Option {
	return func(o *options) {
		o.overlay = ov
	}
}

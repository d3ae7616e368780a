package hanoi

// Event is a window event delivered by Window.PollEvents.
type Event interface{}

// CloseEvent is reported when the user asks to close the window.
type CloseEvent struct{}

// ResizeEvent is reported when the framebuffer size changes.
// The window is created non-resizable, so this is only seen when the
// platform forces a size (for example on a DPI change).
type ResizeEvent struct {
	Width, Height int
}

// ContainsClose reports whether events holds a CloseEvent.
func ContainsClose(events []Event) bool {
	for _, ev := range events {
		if _, ok := ev.(CloseEvent); ok {
			return true
		}
	}
	return false
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// Option configures a Window.
type Option func(*config)

type config struct {
	width, height int
	vsync         bool
}

func defaultConfig() config {
	return config{
		width:  defaultWidth,
		height: defaultHeight,
		vsync:  true,
	}
}

// WithSize sets the window size requested from the window system.
// Non-positive values keep the default 800×600.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithVSync toggles waiting for vertical blank on present. It is on by
// default.
func WithVSync(on bool) Option {
	return func(c *config) {
		c.vsync = on
	}
}

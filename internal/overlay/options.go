package overlay

import (
	"golang.org/x/text/language"

	"github.com/gogpu/hanoi"
)

// Viewport reports the framebuffer size in pixels. The window satisfies it.
type Viewport interface {
	Size() (width, height int)
}

// Option configures a Text overlay during creation.
type Option func(*config)

// config holds the overlay configuration.
type config struct {
	fontFile string
	size     float64
	dpi      float64
	x, y     float32
	color    hanoi.Color
	viewport Viewport
	lang     language.Tag
}

// fixedViewport is a Viewport of constant size.
type fixedViewport struct{ w, h int }

func (v fixedViewport) Size() (int, int) { return v.w, v.h }

// defaultConfig returns the default overlay configuration: the embedded Go
// Mono face at 18pt, white, anchored near the top-left corner of an
// 800×600 framebuffer.
func defaultConfig() config {
	return config{
		size:     18,
		dpi:      72,
		x:        -0.95,
		y:        0.95,
		color:    hanoi.TextColor,
		viewport: fixedViewport{w: 800, h: 600},
		lang:     language.English,
	}
}

// WithFontFile loads the face from a TrueType or OpenType file instead of
// the embedded Go Mono. A file that cannot be read or parsed makes New fail
// with ErrFont.
func WithFontFile(path string) Option {
	return func(c *config) {
		c.fontFile = path
	}
}

// WithSize sets the font size in points. Non-positive values are ignored.
func WithSize(points float64) Option {
	return func(c *config) {
		if points > 0 {
			c.size = points
		}
	}
}

// WithPosition sets the clip-space position of the top-left corner of the
// text.
func WithPosition(x, y float32) Option {
	return func(c *config) {
		c.x, c.y = x, y
	}
}

// WithColor sets the text color.
func WithColor(col hanoi.Color) Option {
	return func(c *config) {
		c.color = col
	}
}

// WithViewport sets the framebuffer size source used to map pixels to clip
// space. It is queried on every layout.
func WithViewport(v Viewport) Option {
	return func(c *config) {
		if v != nil {
			c.viewport = v
		}
	}
}

// WithLanguage sets the language used to format numbers.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.lang = tag
	}
}

// Package overlay draws a status line over the scene.
//
// Text is rasterized on the CPU with golang.org/x/image into an alpha mask.
// Each horizontal run of covered pixels becomes one rectangle, and the whole
// line is submitted as a single triangle list, so the overlay needs nothing
// beyond the solid-color pipeline.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/message"

	"github.com/gogpu/hanoi"
)

// coverageThreshold is the minimum alpha for a pixel to be drawn.
const coverageThreshold = 0x80

var (
	// ErrFont is returned by New when the font cannot be loaded.
	ErrFont = errors.New("overlay: font unavailable")

	// ErrViewport is returned by Layout when the viewport has no area.
	ErrViewport = errors.New("overlay: empty viewport")
)

// Text is a hanoi.Overlay that renders the puzzle status.
type Text struct {
	cfg     config
	face    font.Face
	printer *message.Printer

	// Layout of the last string, reused while neither the text nor the
	// viewport changes.
	lastText     string
	lastW, lastH int
	lastVerts    []hanoi.Vertex
}

var _ hanoi.Overlay = (*Text)(nil)

// New loads the font and returns a Text overlay.
func New(opts ...Option) (*Text, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	data := gomono.TTF
	if cfg.fontFile != "" {
		b, err := os.ReadFile(cfg.fontFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFont, err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrFont, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.size,
		DPI:     cfg.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: face: %w", ErrFont, err)
	}

	return &Text{
		cfg:     cfg,
		face:    face,
		printer: message.NewPrinter(cfg.lang),
	}, nil
}

// Close releases the font face.
func (t *Text) Close() error {
	return t.face.Close()
}

// Format returns the status line for s.
func (t *Text) Format(s hanoi.Status) string {
	if s.State == hanoi.Solved {
		return t.printer.Sprintf("%d disks solved in %d moves", s.Disks, s.Moves)
	}
	return t.printer.Sprintf("Move %d of %d", s.Moves, s.Total)
}

// Draw lays out the status line and submits it to c as one draw.
func (t *Text) Draw(c hanoi.Canvas, s hanoi.Status) error {
	verts, err := t.Layout(t.Format(s))
	if err != nil {
		return err
	}
	c.SubmitTriangles(verts, t.cfg.color)
	return nil
}

// Layout rasterizes text and returns the clip-space triangles covering it.
// Text with no visible pixels yields no vertices.
func (t *Text) Layout(text string) ([]hanoi.Vertex, error) {
	vw, vh := t.cfg.viewport.Size()
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrViewport, vw, vh)
	}
	if text == t.lastText && vw == t.lastW && vh == t.lastH && t.lastVerts != nil {
		return t.lastVerts, nil
	}

	mask := t.rasterize(text)
	verts := spans(mask, t.cfg.x, t.cfg.y, 2/float32(vw), 2/float32(vh))

	t.lastText, t.lastW, t.lastH, t.lastVerts = text, vw, vh, verts
	return verts, nil
}

// rasterize draws text into a tightly bounded alpha mask whose origin is
// the top-left of the ink box.
func (t *Text) rasterize(text string) *image.Alpha {
	bounds, _ := font.BoundString(t.face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w <= 0 || h <= 0 {
		return image.NewAlpha(image.Rectangle{})
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: t.face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	d.DrawString(text)
	return mask
}

// spans converts every run of covered pixels in mask into a rectangle.
// (x, y) is the clip-space position of the mask origin and sx, sy the size
// of one pixel in clip space.
func spans(mask *image.Alpha, x, y, sx, sy float32) []hanoi.Vertex {
	b := mask.Bounds()
	var verts []hanoi.Vertex
	for py := b.Min.Y; py < b.Max.Y; py++ {
		row := mask.Pix[(py-b.Min.Y)*mask.Stride:]
		start := -1
		for px := b.Min.X; px <= b.Max.X; px++ {
			covered := px < b.Max.X && row[px-b.Min.X] >= coverageThreshold
			switch {
			case covered && start < 0:
				start = px
			case !covered && start >= 0:
				verts = hanoi.AppendRect(verts,
					x+float32(start)*sx,
					y-float32(py)*sy,
					float32(px-start)*sx,
					sy)
				start = -1
			}
		}
	}
	return verts
}

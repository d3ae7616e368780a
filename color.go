package hanoi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// ErrBadHex is returned by ParseHex for a malformed color string.
var ErrBadHex = errors.New("hanoi: malformed hex color")

// Color is a straight-alpha RGBA color with components in [0, 1].
// It is uploaded to the fragment shader unchanged as one vec4 uniform.
type Color struct {
	R, G, B, A float32
}

// RGBA creates a color from its four components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'. A string ParseHex rejects yields opaque black.
func Hex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Color{A: 1}
	}
	return c
}

// ParseHex parses a hex color in any of the formats Hex accepts. It fails
// on a bad length or any non-hex digit.
func ParseHex(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")

	var digits [4]uint32
	digits[3] = 255
	switch len(s) {
	case 3, 4:
		for i := range len(s) {
			v, ok := parseHex(s[i : i+1])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrBadHex, hex)
			}
			digits[i] = v * 17
		}
	case 6, 8:
		for i := 0; i < len(s); i += 2 {
			v, ok := parseHex(s[i : i+2])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrBadHex, hex)
			}
			digits[i/2] = v
		}
	default:
		return Color{}, fmt.Errorf("%w: %q has length %d", ErrBadHex, hex, len(s))
	}

	return Color{
		R: float32(digits[0]) / 255,
		G: float32(digits[1]) / 255,
		B: float32(digits[2]) / 255,
		A: float32(digits[3]) / 255,
	}, nil
}

// parseHex decodes s as a hex number. ok is false if s holds a non-hex
// digit.
func parseHex(s string) (val uint32, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}

// Vec4 returns the color as the shader sees it.
func (c Color) Vec4() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// GPU converts the color to a render pass clear value.
func (c Color) GPU() gputypes.Color {
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// Scene colors.
var (
	Black     = Hex("#000")
	White     = Hex("#fff")
	RodColor  = Hex("#ff000099") // red at 60%
	DiskColor = Hex("#ffffffcc") // white at 80%
	TextColor = White

	// ClearColor fills the color target at the start of every frame.
	ClearColor = Black
)

// ClearDepth is the depth value written at the start of every frame.
const ClearDepth float32 = 1.0

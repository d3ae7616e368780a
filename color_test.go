package hanoi

import (
	"errors"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Color
	}{
		{"short", "#f00", RGB(1, 0, 0)},
		{"short alpha", "fff0", RGBA(1, 1, 1, 0)},
		{"long", "00ff00", RGB(0, 1, 0)},
		{"long alpha", "#0000FFFF", RGB(0, 0, 1)},
		{"invalid length", "12345", Black},
		{"empty", "", Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.hex); got != tt.want {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestParseHexRejectsBadInput(t *testing.T) {
	for _, in := range []string{"zz0000", "#12345", "", "#", "ff00g0", "fff-", "#ff0000zz"} {
		t.Run(in, func(t *testing.T) {
			if c, err := ParseHex(in); !errors.Is(err, ErrBadHex) {
				t.Errorf("ParseHex(%q) = (%+v, %v), want ErrBadHex", in, c, err)
			}
			if got := Hex(in); got != Black {
				t.Errorf("Hex(%q) = %+v, want Black", in, got)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	tests := []struct {
		name string
		got  Color
		want Color
	}{
		{"black", Black, RGB(0, 0, 0)},
		{"white", White, RGB(1, 1, 1)},
		{"rod", RodColor, RGBA(1, 0, 0, 0.6)},
		{"disk", DiskColor, RGBA(1, 1, 1, 0.8)},
		{"text", TextColor, RGB(1, 1, 1)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}

func TestColor_GPU(t *testing.T) {
	got := RodColor.GPU()
	if got.R != 1 || got.G != 0 || got.B != 0 {
		t.Errorf("GPU() = %+v, want red", got)
	}
	if absDiff(got.A, 0.6) > 1e-6 {
		t.Errorf("GPU().A = %v, want 0.6", got.A)
	}
}

func TestColor_Vec4(t *testing.T) {
	if got := DiskColor.Vec4(); got != [4]float32{1, 1, 1, 0.8} {
		t.Errorf("Vec4() = %v", got)
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

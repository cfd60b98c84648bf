package raster

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ShadeFactor maps the angle between a face normal and the view vector to a
// brightness in [0, 1]: 1 when they point the same way, 0 when opposed.
// The camera acts as the only light.
func ShadeFactor(angle float64) float64 {
	return 1 - angle/math.Pi
}

// Shade scales the color channels of base by the factor for angle.
// Alpha is kept.
func Shade(base color.NRGBA, angle float64) color.NRGBA {
	f := ShadeFactor(angle)
	return color.NRGBA{
		R: clamp255(float64(base.R) * f),
		G: clamp255(float64(base.G) * f),
		B: clamp255(float64(base.B) * f),
		A: base.A,
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ParseHex reads "#rgb", "#rrggbb" or "#rrggbbaa". Colors without an alpha
// part are opaque.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("raster: bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("raster: bad color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

package core

import "image/color"

// Color is a straight (non-premultiplied) RGBA color.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = Color{R: 0, G: 0, B: 0, A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Transparent = Color{}
)

// FromRGB creates an opaque color from components in [0, 1].
func FromRGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromRGBA8 creates a color from 8-bit components.
func FromRGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// Hex parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
// Malformed input yields opaque black.
func Hex(s string) Color {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var v [4]uint8
	v[3] = 255
	switch len(s) {
	case 3:
		for i := 0; i < 3; i++ {
			n, ok := hexDigit(s[i])
			if !ok {
				return Black
			}
			v[i] = n * 17
		}
	case 6, 8:
		for i := 0; i < len(s)/2; i++ {
			hi, ok1 := hexDigit(s[2*i])
			lo, ok2 := hexDigit(s[2*i+1])
			if !ok1 || !ok2 {
				return Black
			}
			v[i] = hi<<4 | lo
		}
	default:
		return Black
	}
	return FromRGBA8(v[0], v[1], v[2], v[3])
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// RGBA8 returns the color as 8-bit straight components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A)
}

// Premultiplied returns the color as premultiplied 8-bit components, the
// layout stored in image.RGBA.
func (c Color) Premultiplied() color.RGBA {
	return color.RGBA{
		R: unit8(c.R * c.A),
		G: unit8(c.G * c.A),
		B: unit8(c.B * c.A),
		A: unit8(c.A),
	}
}

// ScaleAlpha returns the color with its alpha multiplied by f.
func (c Color) ScaleAlpha(f float32) Color {
	c.A *= f
	return c
}

// IsTransparent reports whether the color has no coverage.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

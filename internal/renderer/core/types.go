// Package core provides the geometry and color types shared by the layout
// engine, the shaping engine and the drawing surfaces.
// This package breaks import cycles between the engine and the renderers.
package core

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	ColorBlack       = Color{R: 0, G: 0, B: 0, A: 255}
	ColorWhite       = Color{R: 255, G: 255, B: 255, A: 255}
	ColorRed         = Color{R: 255, G: 0, B: 0, A: 255}
	ColorTransparent = Color{}
)

// ColorFromRGB creates an opaque color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ColorFromFloat creates a color from components in [0, 1].
// Values outside the range are clamped.
func ColorFromFloat(r, g, b, a float64) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

// ColorFromHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading # is optional).
func ColorFromHex(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	alpha := uint8(255)
	if len(s) == 8 {
		var a uint8
		if _, err := fmt.Sscanf(s[6:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %s", hex)
		}
		alpha = a
		s = s[:6]
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// RGBA implements color.Color with alpha-premultiplied 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return r, g, b, a
}

// WithAlpha returns c with its alpha replaced by a in [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = unit8(a)
	return c
}

// IsTransparent returns true if the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// Blend mixes c toward other by amount in [0, 1] in RGB space.
// Alpha is interpolated linearly.
func (c Color) Blend(other Color, amount float64) Color {
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	mixed := c.colorful().BlendRgb(other.colorful(), amount).Clamped()
	r, g, b := mixed.RGB255()
	a := float64(c.A) + (float64(other.A)-float64(c.A))*amount
	return Color{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

// ToHex returns the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) ToHex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns a human-readable representation of the color.
func (c Color) String() string {
	return c.ToHex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

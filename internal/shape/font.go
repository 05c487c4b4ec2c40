package shape

import "github.com/dshills/typepad/internal/renderer/core"

// GlyphID identifies a glyph within a Font.
type GlyphID uint16

// Metrics describes the vertical extent of a font at its size.
// Ascent is negative (above the baseline), Descent positive.
type Metrics struct {
	Ascent  float32
	Descent float32
	Leading float32
}

// Glyph is one shaped glyph produced by Font.ShapeRun.
type Glyph struct {
	ID GlyphID
	// Cluster is the byte offset in the paragraph text of the first
	// code point this glyph was shaped from.
	Cluster int
	Advance float32
	Offset  core.Point
}

// Font is a sized typeface able to shape a single-font run.
// Implementations must be comparable; runs are split where the font changes.
type Font interface {
	// Size returns the font size in pixels per em.
	Size() float32
	Metrics() Metrics
	// Spacing returns the recommended distance between baselines.
	Spacing() float32
	// Widths stores the nominal advance of each glyph into dst.
	Widths(glyphs []GlyphID, dst []float32)
	// HasGlyph reports whether the font can display r.
	HasGlyph(r rune) bool
	// ShapeRun shapes text[start:end] left to right and appends the glyphs
	// to dst. Glyph clusters are byte offsets into text.
	ShapeRun(text string, start, end int, locale string, dst []Glyph) []Glyph
}

// FontProvider matches fallback fonts for code points the primary font
// cannot display.
type FontProvider interface {
	// Fallback returns a font able to display r at base's size, or nil.
	Fallback(r rune, base Font, locale string) Font
}

package shape

import (
	"math"

	"github.com/dshills/typepad/internal/renderer/core"
)

// Result is the layout of one paragraph.
type Result struct {
	// Blob holds the glyph runs, or nil for an empty paragraph.
	Blob *Blob
	// LineBreakOffsets are the byte offsets where wrapped rows after the
	// first one start. Empty when the paragraph fits on one row.
	LineBreakOffsets []int
	// GlyphBounds holds one cursor rectangle per byte plus a trailing slot.
	// Bytes inside a code point keep core.UnsetRect.
	GlyphBounds []core.Rect
	// WordBreaks is true at every UTF-8 code point boundary.
	WordBreaks []bool
	// VerticalAdvance is the height of the paragraph in whole pixels.
	VerticalAdvance int
	// Rows is the number of visual rows.
	Rows int
}

// Shape lays out text with s and returns its geometry.
func Shape(s Shaper, text string, font Font, provider FontProvider, locale string, width float32) Result {
	bounds := make([]core.Rect, len(text), len(text)+1)
	for i := range bounds {
		bounds[i] = core.UnsetRect
	}

	h := newBlobHandler(text, func(prefix string, run GlyphRun) {
		setCharacterBounds(bounds, prefix, run)
	})
	s.Shape(text, font, provider, locale, width, h)

	res := Result{
		Blob:        h.builder.Make(),
		GlyphBounds: append(bounds, h.finalRect(font)),
		WordBreaks:  make([]bool, len(text)),
		Rows:        max(h.lines, 1),
	}
	if len(h.lineEndOffsets) > 1 {
		res.LineBreakOffsets = h.lineEndOffsets[:len(h.lineEndOffsets)-1]
	}
	for i := range res.WordBreaks {
		res.WordBreaks[i] = isBoundary(text, i)
	}
	res.VerticalAdvance = int(math.Ceil(float64(font.Spacing()))) * res.Rows
	return res
}

// isBoundary reports whether byte i of s starts a code point.
func isBoundary(s string, i int) bool {
	return i == 0 || i >= len(s) || s[i]&0xC0 != 0x80
}

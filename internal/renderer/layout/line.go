// Package layout holds the per-paragraph layout cache of the text buffer.
package layout

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/shape"
)

// State is the cache state of a Line.
type State uint8

const (
	// StateDirty means the text or layout inputs changed since the last shape.
	StateDirty State = iota
	// StateShaped means the cached geometry matches the text.
	StateShaped
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateDirty:
		return "Dirty"
	case StateShaped:
		return "Shaped"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Params are the layout inputs shared by every line of a document.
type Params struct {
	Shaper   shape.Shaper
	Font     shape.Font
	Provider shape.FontProvider
	Locale   string
	// Width is the wrap width in pixels; <= 0 disables wrapping.
	Width int
}

// Line is one paragraph and its cached layout.
type Line struct {
	Text string

	// Blob holds the glyph runs, nil for an empty paragraph.
	Blob *shape.Blob
	// CursorPos has one rectangle per byte plus the end-of-line slot.
	// Rectangles are relative to Origin.
	CursorPos []core.Rect
	// LineEndOffsets are the byte offsets where wrapped rows start.
	LineEndOffsets []int
	// WordBoundaries is true at every code point boundary.
	WordBoundaries []bool

	// Origin is the top-left corner of the paragraph in the document.
	Origin core.IPoint
	// Height is the vertical extent in pixels.
	Height int

	state State
}

// NewLine creates a dirty line holding text.
func NewLine(text string) *Line {
	return &Line{Text: text}
}

// State returns the cache state.
func (l *Line) State() State {
	return l.state
}

// IsShaped returns true if the cached geometry is current.
func (l *Line) IsShaped() bool {
	return l.state == StateShaped
}

// MarkDirty invalidates the cached geometry. The old geometry stays
// readable until the next Reshape.
func (l *Line) MarkDirty() {
	l.state = StateDirty
}

// SetText replaces the text and marks the line dirty.
func (l *Line) SetText(text string) {
	l.Text = text
	l.state = StateDirty
}

// Reshape recomputes the layout if the line is dirty. cache may be nil.
// It returns true if shaping was performed.
func (l *Line) Reshape(cache *ResultCache, p Params) bool {
	if l.state == StateShaped {
		return false
	}
	var res shape.Result
	if cache != nil {
		res = cache.Shape(l.Text, p)
	} else {
		res = shapeText(l.Text, p)
	}
	l.Blob = res.Blob
	l.CursorPos = res.GlyphBounds
	l.LineEndOffsets = res.LineBreakOffsets
	l.WordBoundaries = res.WordBreaks
	l.Height = res.VerticalAdvance
	l.state = StateShaped
	return true
}

func shapeText(text string, p Params) shape.Result {
	return shape.Shape(p.Shaper, text, p.Font, p.Provider, p.Locale, float32(p.Width))
}

// Cursor returns the cursor rectangle of byte b relative to Origin.
// b must be a code point boundary of Text or len(Text). ok is false if the
// line has no geometry for b.
func (l *Line) Cursor(b int) (r core.Rect, ok bool) {
	if b < 0 || b > len(l.Text) || (b < len(l.Text) && !utf8.RuneStart(l.Text[b])) {
		panic(fmt.Sprintf("layout: byte %d is not a code point boundary of a %d byte line", b, len(l.Text)))
	}
	if b >= len(l.CursorPos) || l.CursorPos[b].IsUnset() {
		return core.Rect{}, false
	}
	return l.CursorPos[b], true
}

// RowCount returns the number of visual rows.
func (l *Line) RowCount() int {
	return len(l.LineEndOffsets) + 1
}

// RowOf returns the visual row containing byte b.
func (l *Line) RowOf(b int) int {
	row := 0
	for _, off := range l.LineEndOffsets {
		if b >= off {
			row++
		} else {
			break
		}
	}
	return row
}

// RowStart returns the byte offset where a visual row starts.
func (l *Line) RowStart(row int) int {
	if row <= 0 || len(l.LineEndOffsets) == 0 {
		return 0
	}
	if row > len(l.LineEndOffsets) {
		row = len(l.LineEndOffsets)
	}
	return l.LineEndOffsets[row-1]
}

// RowEnd returns the byte offset where a visual row ends (exclusive).
func (l *Line) RowEnd(row int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(l.LineEndOffsets) {
		return len(l.Text)
	}
	return l.LineEndOffsets[row]
}

// Bottom returns the y coordinate just below the line.
func (l *Line) Bottom() int {
	return l.Origin.Y + l.Height
}

package buffer

import (
	"math"

	"github.com/dshills/typepad/internal/renderer/core"
)

// Position returns the text position under the document point xy.
// A point inside a paragraph's vertical band but outside every glyph box
// maps to the start of the paragraph when left of its origin and to its
// end otherwise. ok is false if no paragraph band contains xy.
func (b *Buffer) Position(xy core.IPoint) (pos TextPosition, ok bool) {
	b.Reshape()

	pt := xy.Point()
	for j, l := range b.lines {
		band := core.Rect{
			Left:   -math.MaxFloat32,
			Top:    float32(l.Origin.Y),
			Right:  math.MaxFloat32,
			Bottom: math.MaxFloat32,
		}
		if j+1 < len(b.lines) {
			band.Bottom = float32(b.lines[j+1].Origin.Y)
		}
		if l.Blob != nil {
			band = band.Join(l.Blob.Bounds().OffsetI(l.Origin))
		}
		if !band.Contains(pt) {
			continue
		}

		local := xy.Sub(l.Origin).Point()
		for i, r := range l.CursorPos {
			if !r.IsUnset() && r.Contains(local) {
				return TextPosition{Paragraph: j, Byte: i}, true
			}
		}
		if xy.X <= l.Origin.X {
			pos = TextPosition{Paragraph: j, Byte: 0}
		} else {
			pos = TextPosition{Paragraph: j, Byte: len(l.Text)}
		}
		ok = true
	}
	return pos, ok
}

// Location returns the caret rectangle for pos in document coordinates:
// two pixels wide, centered on the left edge of the glyph box.
// ok is false if the paragraph has no geometry at that offset.
func (b *Buffer) Location(pos TextPosition) (core.Rect, bool) {
	b.Reshape()
	if len(b.lines) == 0 {
		return core.Rect{}, false
	}

	pos = b.Move(MoveNowhere, pos)
	l := b.lines[pos.Paragraph]
	r, ok := l.Cursor(pos.Byte)
	if !ok {
		return core.Rect{}, false
	}
	r.Right = r.Left + 1
	r.Left--
	return r.OffsetI(l.Origin), true
}

// CursorRect returns the glyph box of the code point at pos in document
// coordinates. It is used to paint selections.
func (b *Buffer) CursorRect(pos TextPosition) (core.Rect, bool) {
	b.Reshape()
	if len(b.lines) == 0 {
		return core.Rect{}, false
	}

	pos = b.Move(MoveNowhere, pos)
	l := b.lines[pos.Paragraph]
	r, ok := l.Cursor(pos.Byte)
	if !ok {
		return core.Rect{}, false
	}
	return r.OffsetI(l.Origin), true
}

// Package paint projects a laid out document onto a drawing surface.
package paint

import (
	"github.com/dshills/typepad/internal/engine/buffer"
	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/renderer/layout"
	"github.com/dshills/typepad/internal/shape"
)

// Surface receives drawing primitives in document pixels.
type Surface interface {
	// Clear fills the whole surface.
	Clear(c core.Color)
	FillRect(r core.Rect, c core.Color)
	// DrawGlyphRun draws run with its positions relative to origin.
	DrawGlyphRun(run *shape.GlyphRun, origin core.Point, c core.Color)
}

// Document is the read side of a buffer used for painting.
type Document interface {
	Reshape()
	LineCount() int
	Line(i int) *layout.Line
	Move(m buffer.Movement, pos buffer.TextPosition) buffer.TextPosition
	Location(pos buffer.TextPosition) (core.Rect, bool)
	CursorRect(pos buffer.TextPosition) (core.Rect, bool)
}

var _ Document = (*buffer.Buffer)(nil)

// Options control what is painted and in which colors.
type Options struct {
	Background core.Color
	Foreground core.Color
	Selection  core.Color
	Caret      core.Color

	// SelectionRange is highlighted when non-nil.
	SelectionRange *buffer.Range
	// Cursor is the caret position; no caret is drawn when nil.
	Cursor *buffer.TextPosition
	// Blink is true during the off phase of the caret blink.
	Blink bool

	// Offset translates the document on the surface (margins and scrolling).
	Offset core.Point
}

// DefaultSelectionColor is the light blue used for selections.
var DefaultSelectionColor = core.ColorFromRGB(0xBA, 0xD3, 0xFC)

// DefaultOptions returns black text on white with a red caret.
func DefaultOptions() Options {
	return Options{
		Background: core.ColorWhite,
		Foreground: core.ColorBlack,
		Selection:  DefaultSelectionColor,
		Caret:      core.ColorRed,
	}
}

// WithSelection returns opts highlighting the text between mark and caret.
func (o Options) WithSelection(mark, caret buffer.TextPosition) Options {
	r := buffer.NewRange(mark, caret)
	o.SelectionRange = &r
	return o
}

// WithCursor returns opts drawing the caret at pos.
func (o Options) WithCursor(pos buffer.TextPosition) Options {
	o.Cursor = &pos
	return o
}

// Paint reshapes doc and draws, in order, the background, the selection,
// the caret and the text of every paragraph.
func Paint(s Surface, doc Document, opts Options) {
	doc.Reshape()

	s.Clear(opts.Background)
	if doc.LineCount() == 0 {
		return
	}

	if opts.SelectionRange != nil && !opts.SelectionRange.IsEmpty() {
		pos := doc.Move(buffer.MoveNowhere, opts.SelectionRange.Start)
		end := doc.Move(buffer.MoveNowhere, opts.SelectionRange.End)
		for pos.Before(end) {
			if r, ok := doc.CursorRect(pos); ok {
				s.FillRect(r.Offset(opts.Offset), opts.Selection)
			}
			next := doc.Move(buffer.MoveRight, pos)
			if next == pos {
				break
			}
			pos = next
		}
	}

	if opts.Cursor != nil {
		if r, ok := doc.Location(*opts.Cursor); ok {
			caret := opts.Caret
			if opts.Blink {
				caret = caret.WithAlpha(0)
			}
			s.FillRect(r.Offset(opts.Offset), caret)
		}
	}

	for i := 0; i < doc.LineCount(); i++ {
		l := doc.Line(i)
		if l.Blob == nil {
			continue
		}
		origin := l.Origin.Point().Add(opts.Offset)
		for j := range l.Blob.Runs {
			s.DrawGlyphRun(&l.Blob.Runs[j], origin, opts.Foreground)
		}
	}
}

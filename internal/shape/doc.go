// Package shape turns one paragraph of text into positioned glyph runs and
// the per-byte geometry an editor needs for caret placement and hit testing.
//
// Shaping is a pure function of its inputs:
//
//	res := shape.Shape(shape.NewWrapShaper(), "hello world", font, nil, "en", 300)
//	res.GlyphBounds[0]      // cursor rectangle of byte 0
//	res.LineBreakOffsets    // byte offsets where wrapped rows start
//	res.VerticalAdvance     // pixels the paragraph occupies vertically
//
// An Engine reports its output through the RunHandler visitor, one call
// sequence per visual row:
//
//	BeginLine
//	  RunInfo ... RunInfo
//	  CommitRunInfo
//	  RunBuffer, CommitRunBuffer ... (once per run, in run order)
//	CommitLine
//
// RunBuffer hands out views into storage owned by a BlobBuilder. The views
// are valid until the next RunBuffer call; the finished runs are collected
// into a Blob that renderers draw.
//
// Fonts are supplied through the Font interface. Backends live in the
// face (golang.org/x/image/font) and gotext (go-text/typesetting)
// subpackages.
package shape

package shape

import "github.com/dshills/typepad/internal/renderer/core"

// GlyphRun is a sequence of glyphs sharing one font.
type GlyphRun struct {
	Font      Font
	Glyphs    []GlyphID
	Positions []core.Point
	// Clusters holds the paragraph byte offset each glyph came from.
	Clusters []uint32
	// Text is the source text of the run; it starts at TextStart in the paragraph.
	Text      string
	TextStart int
}

// Blob is the immutable glyph-run output of shaping one paragraph.
type Blob struct {
	Runs   []GlyphRun
	bounds core.Rect
}

// Bounds returns a conservative bounding box of every glyph in the blob,
// relative to the paragraph origin.
func (b *Blob) Bounds() core.Rect {
	if b == nil {
		return core.Rect{}
	}
	return b.bounds
}

// GlyphCount returns the number of glyphs across all runs.
func (b *Blob) GlyphCount() int {
	if b == nil {
		return 0
	}
	n := 0
	for i := range b.Runs {
		n += len(b.Runs[i].Glyphs)
	}
	return n
}

// RunBuffer is the storage for one run handed to an Engine.
// The slices are views owned by a BlobBuilder.
type RunBuffer struct {
	Glyphs    []GlyphID
	Positions []core.Point
	Clusters  []uint32
	// Point is the pen position at the start of the run.
	Point core.Point
}

// BlobBuilder accumulates glyph runs into a Blob.
// Views returned by AllocRun stay valid until the next AllocRun or Make.
type BlobBuilder struct {
	runs []GlyphRun
}

// AllocRun starts a new run of count glyphs and returns views into its storage.
func (b *BlobBuilder) AllocRun(font Font, count int, text string, textStart int) RunBuffer {
	run := GlyphRun{
		Font:      font,
		Glyphs:    make([]GlyphID, count),
		Positions: make([]core.Point, count),
		Clusters:  make([]uint32, count),
		Text:      text,
		TextStart: textStart,
	}
	b.runs = append(b.runs, run)
	return RunBuffer{Glyphs: run.Glyphs, Positions: run.Positions, Clusters: run.Clusters}
}

// Current returns the views of the run most recently allocated.
func (b *BlobBuilder) Current() RunBuffer {
	if len(b.runs) == 0 {
		return RunBuffer{}
	}
	r := &b.runs[len(b.runs)-1]
	return RunBuffer{Glyphs: r.Glyphs, Positions: r.Positions, Clusters: r.Clusters}
}

// Make finishes the blob and resets the builder.
// It returns nil if no glyphs were added.
func (b *BlobBuilder) Make() *Blob {
	runs := b.runs[:0:0]
	for _, r := range b.runs {
		if len(r.Glyphs) > 0 {
			runs = append(runs, r)
		}
	}
	b.runs = nil
	if len(runs) == 0 {
		return nil
	}

	blob := &Blob{Runs: runs}
	var advances []float32
	for i := range runs {
		r := &runs[i]
		m := r.Font.Metrics()
		if cap(advances) < len(r.Glyphs) {
			advances = make([]float32, len(r.Glyphs))
		}
		advances = advances[:len(r.Glyphs)]
		r.Font.Widths(r.Glyphs, advances)
		for j, p := range r.Positions {
			box := core.Rect{Left: p.X, Top: p.Y + m.Ascent, Right: p.X + advances[j], Bottom: p.Y + m.Descent}
			if box.Right < box.Left {
				box.Left, box.Right = box.Right, box.Left
			}
			blob.bounds = blob.bounds.Join(box)
		}
	}
	return blob
}

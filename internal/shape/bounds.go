package shape

import (
	"math"
	"unicode/utf8"

	"github.com/dshills/typepad/internal/renderer/core"
)

// selectionBox returns the box of one glyph. Advances under one unit are
// widened so zero-width glyphs still get a visible caret.
func selectionBox(m Metrics, advance float32, pos core.Point) core.Rect {
	if math.Abs(float64(advance)) < 1 {
		advance = float32(math.Copysign(1, float64(advance)))
	}
	return core.Rect{
		Left:   pos.X,
		Top:    pos.Y + m.Ascent,
		Right:  pos.X + advance,
		Bottom: pos.Y + m.Descent,
	}
}

// setCharacterBounds fills cursors with the box of every code point that
// starts a cluster in run. text is the paragraph up to the end of the run.
func setCharacterBounds(cursors []core.Rect, text string, run GlyphRun) {
	n := len(run.Glyphs)
	if n == 0 || len(run.Clusters) != n || len(run.Positions) != n {
		panic("shape: malformed glyph run")
	}

	m := run.Font.Metrics()
	advances := make([]float32, n)
	run.Font.Widths(run.Glyphs, advances)

	cluster := func(i int) int { return run.TextStart + int(run.Clusters[i]) }

	clusterStart := 0
	for gi := 0; gi < n; gi++ {
		if gi+1 < n && run.Clusters[gi] == run.Clusters[gi+1] {
			continue
		}
		begin := cluster(gi)
		end := len(text)
		for i := 0; i < n; i++ {
			if c := cluster(i); c >= end {
				end = c + 1
			}
		}
		for i := 0; i < n; i++ {
			if c := cluster(i); c > begin && c < end {
				end = c
				if end == begin+1 {
					break
				}
			}
		}

		box := selectionBox(m, advances[clusterStart], run.Positions[clusterStart])
		for j := clusterStart + 1; j <= gi; j++ {
			box = box.Join(selectionBox(m, advances[j], run.Positions[j]))
		}
		clusterStart = gi + 1

		if begin+1 == end {
			cursors[begin] = box
			continue
		}
		span := text[begin:end]
		count := utf8.RuneCountInString(span)
		if count == 1 {
			cursors[begin] = box
			continue
		}

		// Decomposed cluster: split the box evenly between its code points.
		width := box.Width() / float32(count)
		i := 0
		for j := range span {
			left := box.Left + width*float32(i)
			cursors[begin+j] = core.Rect{Left: left, Top: box.Top, Right: left + width, Bottom: box.Bottom}
			i++
		}
	}
}

package shape

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/typepad/internal/renderer/core"
)

// Shaper shapes one paragraph and reports visual rows to a RunHandler.
type Shaper interface {
	Shape(text string, font Font, provider FontProvider, locale string, width float32, h RunHandler)
}

// WrapShaper shapes a whole paragraph first and then breaks it into rows no
// wider than the wrap width. Rows break at Unicode line break opportunities;
// trailing whitespace may hang past the edge, and a word wider than the row
// is broken between clusters. A width <= 0 disables wrapping.
type WrapShaper struct{}

// NewWrapShaper returns a shape-then-wrap Shaper.
func NewWrapShaper() *WrapShaper {
	return &WrapShaper{}
}

// fontRun is a maximal byte range displayed by one font.
type fontRun struct {
	font   Font
	start  int
	end    int
	glyphs []Glyph
}

type row struct {
	start, end int
}

// Shape implements Shaper.
func (s *WrapShaper) Shape(text string, font Font, provider FontProvider, locale string, width float32, h RunHandler) {
	if text == "" {
		return
	}

	runs := itemize(text, font, provider, locale)
	advance := make([]float32, len(text)+1)
	isCluster := make([]bool, len(text)+1)
	for i := range runs {
		r := &runs[i]
		r.glyphs = r.font.ShapeRun(text, r.start, r.end, locale, nil)
		for _, g := range r.glyphs {
			advance[g.Cluster] += g.Advance
			isCluster[g.Cluster] = true
		}
	}
	isCluster[len(text)] = true

	for _, rw := range breakRows(text, advance, isCluster, width) {
		emitRow(h, runs, rw)
	}
}

// itemize splits text into runs by font coverage. Whitespace and marks
// stay with the preceding run.
func itemize(text string, base Font, provider FontProvider, locale string) []fontRun {
	var runs []fontRun
	var cur Font
	for i, r := range text {
		f := cur
		if f == nil || !(unicode.IsSpace(r) || unicode.Is(unicode.Mn, r)) {
			f = pickFont(r, base, provider, locale)
		}
		if len(runs) == 0 || f != cur {
			runs = append(runs, fontRun{font: f, start: i})
			cur = f
		}
	}
	for i := range runs {
		if i+1 < len(runs) {
			runs[i].end = runs[i+1].start
		} else {
			runs[i].end = len(text)
		}
	}
	return runs
}

func pickFont(r rune, base Font, provider FontProvider, locale string) Font {
	if base.HasGlyph(r) || provider == nil {
		return base
	}
	if f := provider.Fallback(r, base, locale); f != nil {
		return f
	}
	return base
}

// breakRows fills rows greedily. advance holds the advance of the cluster
// starting at each byte.
func breakRows(text string, advance []float32, isCluster []bool, width float32) []row {
	measure := func(a, b int) float32 {
		var w float32
		for _, v := range advance[a:b] {
			w += v
		}
		return w
	}

	var rows []row
	rowStart := 0
	var x float32
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		segStart, segEnd := pos, pos+len(seg)
		pos = segEnd
		contentEnd := segStart + len(strings.TrimRightFunc(seg, unicode.IsSpace))

		content := measure(segStart, contentEnd)
		if width > 0 && segStart > rowStart && x+content > width {
			rows = append(rows, row{rowStart, segStart})
			rowStart, x = segStart, 0
		}
		if width > 0 && segStart == rowStart && content > width {
			// The segment alone is too wide: break it between clusters.
			for b := segStart; b < contentEnd; {
				next := b + 1
				for next < contentEnd && !isCluster[next] {
					next++
				}
				cw := measure(b, next)
				if b > rowStart && x+cw > width {
					rows = append(rows, row{rowStart, b})
					rowStart, x = b, 0
				}
				x += cw
				b = next
			}
			x += measure(contentEnd, segEnd)
		} else {
			x += measure(segStart, segEnd)
		}

		if mustBreak && segEnd < len(text) {
			rows = append(rows, row{rowStart, segEnd})
			rowStart, x = segEnd, 0
		}
	}
	return append(rows, row{rowStart, len(text)})
}

// emitRow drives h through one visual row.
func emitRow(h RunHandler, runs []fontRun, rw row) {
	type piece struct {
		info   RunInfo
		glyphs []Glyph
	}
	var pieces []piece
	for _, r := range runs {
		if r.end <= rw.start || r.start >= rw.end {
			continue
		}
		lo := 0
		for lo < len(r.glyphs) && r.glyphs[lo].Cluster < rw.start {
			lo++
		}
		hi := lo
		for hi < len(r.glyphs) && r.glyphs[hi].Cluster < rw.end {
			hi++
		}
		glyphs := r.glyphs[lo:hi]
		if len(glyphs) == 0 {
			continue
		}
		var adv float32
		for _, g := range glyphs {
			adv += g.Advance
		}
		pieces = append(pieces, piece{
			info: RunInfo{
				Font:       r.font,
				GlyphCount: len(glyphs),
				UTF8Start:  max(r.start, rw.start),
				UTF8End:    min(r.end, rw.end),
				Advance:    core.Point{X: adv},
			},
			glyphs: glyphs,
		})
	}

	h.BeginLine()
	for i := range pieces {
		h.RunInfo(&pieces[i].info)
	}
	h.CommitRunInfo()
	for i := range pieces {
		p := &pieces[i]
		buf := h.RunBuffer(&p.info)
		var x float32
		for j, g := range p.glyphs {
			buf.Glyphs[j] = g.ID
			buf.Positions[j] = core.Point{X: buf.Point.X + x + g.Offset.X, Y: buf.Point.Y + g.Offset.Y}
			buf.Clusters[j] = uint32(g.Cluster)
			x += g.Advance
		}
		h.CommitRunBuffer(&p.info)
	}
	h.CommitLine()
}

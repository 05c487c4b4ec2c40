package shape

import "github.com/dshills/typepad/internal/renderer/core"

// RunInfo describes one single-font run of a visual row.
type RunInfo struct {
	Font       Font
	GlyphCount int
	// UTF8Start and UTF8End bound the paragraph bytes the run was shaped from.
	UTF8Start int
	UTF8End   int
	// Advance is the pen movement across the whole run.
	Advance core.Point
}

// RunHandler receives the output of a Shaper, one visual row at a time.
// Calls happen in run order; see the package documentation for the sequence.
type RunHandler interface {
	BeginLine()
	RunInfo(info *RunInfo)
	CommitRunInfo()
	// RunBuffer returns storage for info.GlyphCount glyphs. The Shaper fills
	// glyph ids, absolute positions and paragraph byte clusters.
	RunBuffer(info *RunInfo) RunBuffer
	CommitRunBuffer(info *RunInfo)
	CommitLine()
}

// runFunc is called for each committed run with the paragraph text up to
// the run end. Clusters in run are relative to run.TextStart.
type runFunc func(text string, run GlyphRun)

// blobHandler collects runs into a Blob and tracks wrap offsets and the
// pen position for the trailing caret slot.
type blobHandler struct {
	builder BlobBuilder
	text    string
	onRun   runFunc

	lineEndOffsets []int
	lines          int
	textOffset     int

	maxAscent  float32
	maxDescent float32
	maxLeading float32

	current core.Point
	offset  core.Point
}

func newBlobHandler(text string, onRun runFunc) *blobHandler {
	return &blobHandler{text: text, onRun: onRun}
}

func (h *blobHandler) BeginLine() {
	h.current = h.offset
	h.maxAscent = 0
	h.maxDescent = 0
	h.maxLeading = 0
}

func (h *blobHandler) RunInfo(info *RunInfo) {
	m := info.Font.Metrics()
	h.maxAscent = min(h.maxAscent, m.Ascent)
	h.maxDescent = max(h.maxDescent, m.Descent)
	h.maxLeading = max(h.maxLeading, m.Leading)
}

func (h *blobHandler) CommitRunInfo() {
	h.current.Y -= h.maxAscent
}

func (h *blobHandler) RunBuffer(info *RunInfo) RunBuffer {
	buf := h.builder.AllocRun(info.Font, info.GlyphCount, h.text[info.UTF8Start:info.UTF8End], info.UTF8Start)
	buf.Point = h.current
	return buf
}

func (h *blobHandler) CommitRunBuffer(info *RunInfo) {
	buf := h.builder.Current()
	for i, c := range buf.Clusters {
		if int(c) < info.UTF8Start {
			panic("shape: glyph cluster before run start")
		}
		buf.Clusters[i] = c - uint32(info.UTF8Start)
	}
	if h.onRun != nil && len(buf.Glyphs) > 0 {
		h.onRun(h.text[:info.UTF8End], GlyphRun{
			Font:      info.Font,
			Glyphs:    buf.Glyphs,
			Positions: buf.Positions,
			Clusters:  buf.Clusters,
			Text:      h.text[info.UTF8Start:info.UTF8End],
			TextStart: info.UTF8Start,
		})
	}
	h.current = h.current.Add(info.Advance)
	h.textOffset = max(h.textOffset, info.UTF8End)
}

func (h *blobHandler) CommitLine() {
	// Wrap offsets must stay strictly increasing.
	if len(h.lineEndOffsets) == 0 || h.textOffset > h.lineEndOffsets[len(h.lineEndOffsets)-1] {
		h.lineEndOffsets = append(h.lineEndOffsets, h.textOffset)
	}
	h.lines++
	h.offset.Y += h.maxDescent + h.maxLeading - h.maxAscent
}

// finalRect returns the caret slot one past the last byte.
func (h *blobHandler) finalRect(font Font) core.Rect {
	if h.maxAscent == 0 || h.maxDescent == 0 {
		m := font.Metrics()
		return core.RectFromPointAndSize(h.current, font.Size(), m.Descent-m.Ascent)
	}
	return core.Rect{
		Left:   h.current.X,
		Top:    h.current.Y + h.maxAscent,
		Right:  h.current.X + font.Size(),
		Bottom: h.current.Y + h.maxDescent,
	}
}

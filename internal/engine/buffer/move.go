package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/typepad/internal/renderer/layout"
)

// Move normalizes pos and applies m to it. The result always addresses a
// paragraph of the document and a code point boundary within it; an empty
// document yields the zero position.
func (b *Buffer) Move(m Movement, pos TextPosition) TextPosition {
	if len(b.lines) == 0 {
		return TextPosition{}
	}
	pos = b.normalize(pos)

	if m.needsGeometry() {
		b.Reshape()
	}

	switch m {
	case MoveNowhere:
	case MoveLeft:
		pos = b.left(pos)
	case MoveRight:
		pos = b.right(pos)
	case MoveUp:
		pos = b.vertical(pos, -1)
	case MoveDown:
		pos = b.vertical(pos, 1)
	case MoveHome:
		l := b.lines[pos.Paragraph]
		pos.Byte = l.RowStart(l.RowOf(pos.Byte))
	case MoveEnd:
		pos.Byte = b.rowEnd(pos)
	case MoveWordLeft:
		pos = b.wordLeft(pos)
	case MoveWordRight:
		pos = b.wordRight(pos)
	default:
		panic(fmt.Sprintf("buffer: unknown movement %v", m))
	}

	b.assertValid(pos)
	return pos
}

// normalize clamps the paragraph and snaps the byte down to a code point boundary.
func (b *Buffer) normalize(pos TextPosition) TextPosition {
	if pos.Paragraph < 0 {
		return TextPosition{}
	}
	if pos.Paragraph >= len(b.lines) {
		last := len(b.lines) - 1
		return TextPosition{Paragraph: last, Byte: len(b.lines[last].Text)}
	}
	text := b.lines[pos.Paragraph].Text
	pos.Byte = max(0, min(pos.Byte, len(text)))
	for pos.Byte < len(text) && !utf8.RuneStart(text[pos.Byte]) {
		pos.Byte--
	}
	return pos
}

func (b *Buffer) assertValid(pos TextPosition) {
	if pos.Paragraph < 0 || pos.Paragraph >= len(b.lines) {
		panic(fmt.Sprintf("buffer: paragraph of %v out of range", pos))
	}
	text := b.lines[pos.Paragraph].Text
	if pos.Byte < 0 || pos.Byte > len(text) || (pos.Byte < len(text) && !utf8.RuneStart(text[pos.Byte])) {
		panic(fmt.Sprintf("buffer: %v is not a code point boundary", pos))
	}
}

func (b *Buffer) left(pos TextPosition) TextPosition {
	if pos.Byte == 0 {
		if pos.Paragraph > 0 {
			pos.Paragraph--
			pos.Byte = len(b.lines[pos.Paragraph].Text)
		}
		return pos
	}
	_, size := utf8.DecodeLastRuneInString(b.lines[pos.Paragraph].Text[:pos.Byte])
	pos.Byte -= size
	return pos
}

func (b *Buffer) right(pos TextPosition) TextPosition {
	text := b.lines[pos.Paragraph].Text
	for n := pos.Byte + 1; n <= pos.Byte+utf8.UTFMax && n <= len(text); n++ {
		if n == len(text) || utf8.RuneStart(text[n]) {
			pos.Byte = n
			return pos
		}
	}
	if pos.Paragraph+1 < len(b.lines) {
		pos.Paragraph++
		pos.Byte = 0
	}
	return pos
}

// rowEnd returns the end of the visual row holding pos. Rows that wrap end
// before their last code point, which hangs at the wrap point.
func (b *Buffer) rowEnd(pos TextPosition) int {
	l := b.lines[pos.Paragraph]
	row := l.RowOf(pos.Byte)
	end := l.RowEnd(row)
	if row < l.RowCount()-1 && end > l.RowStart(row) {
		_, size := utf8.DecodeLastRuneInString(l.Text[:end])
		end -= size
	}
	return end
}

// vertical moves pos dir rows up (-1) or down (+1), keeping the caret x.
func (b *Buffer) vertical(pos TextPosition, dir int) TextPosition {
	l := b.lines[pos.Paragraph]
	x := float32(0)
	if r, ok := l.Cursor(pos.Byte); ok {
		x = r.Left
	}

	para, row := pos.Paragraph, l.RowOf(pos.Byte)+dir
	switch {
	case row < 0 && para == 0:
		return TextPosition{}
	case row < 0:
		para--
		row = b.lines[para].RowCount() - 1
	case row >= l.RowCount() && para == len(b.lines)-1:
		return TextPosition{Paragraph: para, Byte: len(l.Text)}
	case row >= l.RowCount():
		para++
		row = 0
	}
	return TextPosition{Paragraph: para, Byte: nearestInRow(b.lines[para], row, x)}
}

// nearestInRow returns the boundary of row whose cursor is closest to x.
func nearestInRow(l *layout.Line, row int, x float32) int {
	start, end := l.RowStart(row), l.RowEnd(row)
	if row < l.RowCount()-1 {
		// The wrap offset itself belongs to the next row.
		end--
	}
	best, bestDist := start, float32(-1)
	for i := start; i <= end && i <= len(l.Text); i++ {
		if i < len(l.Text) && !utf8.RuneStart(l.Text[i]) {
			continue
		}
		r, ok := l.Cursor(i)
		if !ok {
			continue
		}
		d := r.Left - x
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// wordSpan is one Unicode word segment of a paragraph.
type wordSpan struct {
	start, end int
	space      bool
}

func wordSpans(text string) []wordSpan {
	var spans []wordSpan
	state := -1
	pos := 0
	for rest := text; len(rest) > 0; {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		spans = append(spans, wordSpan{
			start: pos,
			end:   pos + len(word),
			space: strings.TrimSpace(word) == "",
		})
		pos += len(word)
	}
	return spans
}

func (b *Buffer) wordLeft(pos TextPosition) TextPosition {
	if pos.Byte == 0 {
		return b.left(pos)
	}
	spans := wordSpans(b.lines[pos.Paragraph].Text)
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if s.start >= pos.Byte || s.space {
			continue
		}
		pos.Byte = s.start
		return pos
	}
	pos.Byte = 0
	return pos
}

func (b *Buffer) wordRight(pos TextPosition) TextPosition {
	text := b.lines[pos.Paragraph].Text
	if pos.Byte == len(text) {
		return b.right(pos)
	}
	for _, s := range wordSpans(text) {
		if s.end <= pos.Byte || s.space {
			continue
		}
		pos.Byte = s.end
		return pos
	}
	pos.Byte = len(text)
	return pos
}

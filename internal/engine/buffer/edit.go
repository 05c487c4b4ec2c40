package buffer

import (
	"strings"

	"github.com/dshills/typepad/internal/renderer/layout"
)

// Insert inserts text at pos and returns the position just after it.
// Text containing '\n' splits the paragraph. Empty text is a no-op.
func (b *Buffer) Insert(pos TextPosition, text string) TextPosition {
	if text == "" {
		return pos
	}
	text = strings.ToValidUTF8(text, "\uFFFD")

	b.needsReshape = true
	b.revision = NewRevisionID()
	pos = b.Move(MoveNowhere, pos)
	parts := strings.Split(text, "\n")

	if pos.Paragraph >= len(b.lines) {
		// Only an empty document normalizes past the last paragraph.
		for _, part := range parts {
			b.lines = append(b.lines, layout.NewLine(part))
		}
		last := len(b.lines) - 1
		return TextPosition{Paragraph: last, Byte: len(b.lines[last].Text)}
	}

	head := b.lines[pos.Paragraph]
	if len(parts) == 1 {
		head.SetText(head.Text[:pos.Byte] + text + head.Text[pos.Byte:])
		return TextPosition{Paragraph: pos.Paragraph, Byte: pos.Byte + len(text)}
	}

	added := make([]*layout.Line, 0, len(parts)-1)
	for _, part := range parts[1:] {
		added = append(added, layout.NewLine(part))
	}
	next := pos.Paragraph + 1
	b.lines = append(b.lines[:next], append(added, b.lines[next:]...)...)

	foot := added[len(added)-1]
	res := TextPosition{Paragraph: pos.Paragraph + len(added), Byte: len(foot.Text)}
	foot.SetText(foot.Text + head.Text[pos.Byte:])
	head.SetText(head.Text[:pos.Byte] + parts[0])
	return res
}

// Remove deletes the text between start and end and returns the lesser
// of the two. A range spanning paragraphs merges the first and last ones.
func (b *Buffer) Remove(start, end TextPosition) TextPosition {
	if start == end || start.Paragraph < 0 || start.Paragraph >= len(b.lines) {
		return start
	}
	start = b.Move(MoveNowhere, start)
	end = b.Move(MoveNowhere, end)
	if end.Before(start) {
		start, end = end, start
	}
	if start == end {
		return start
	}

	b.needsReshape = true
	b.revision = NewRevisionID()
	head := b.lines[start.Paragraph]
	if start.Paragraph == end.Paragraph {
		head.SetText(head.Text[:start.Byte] + head.Text[end.Byte:])
		return start
	}

	foot := b.lines[end.Paragraph]
	head.SetText(head.Text[:start.Byte] + foot.Text[end.Byte:])
	b.lines = append(b.lines[:start.Paragraph+1], b.lines[end.Paragraph+1:]...)
	return start
}

// Copy returns the text between two positions, paragraphs joined by '\n'.
func (b *Buffer) Copy(start, end TextPosition) string {
	if len(b.lines) == 0 {
		return ""
	}
	r := NewRange(b.Move(MoveNowhere, start), b.Move(MoveNowhere, end))
	if r.IsEmpty() {
		return ""
	}
	head := b.lines[r.Start.Paragraph].Text
	if !r.SpansParagraphs() {
		return head[r.Start.Byte:r.End.Byte]
	}

	var sb strings.Builder
	sb.WriteString(head[r.Start.Byte:])
	for i := r.Start.Paragraph + 1; i < r.End.Paragraph; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i].Text)
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[r.End.Paragraph].Text[:r.End.Byte])
	return sb.String()
}

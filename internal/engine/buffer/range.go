package buffer

import "fmt"

// Range is a span between two positions.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start TextPosition
	End   TextPosition
}

// NewRange returns the range between a and b in document order.
func NewRange(a, b TextPosition) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if p is within the range.
func (r Range) Contains(p TextPosition) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// SpansParagraphs returns true if the range crosses a paragraph break.
func (r Range) SpansParagraphs() bool {
	return r.Start.Paragraph != r.End.Paragraph
}

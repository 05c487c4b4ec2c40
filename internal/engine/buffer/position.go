package buffer

import (
	"fmt"
	"sync/atomic"
)

// TextPosition is a caret location: a paragraph index and a byte offset
// within that paragraph's UTF-8 text.
type TextPosition struct {
	Paragraph int
	Byte      int
}

// NewPosition creates a position at byte b of paragraph p.
func NewPosition(p, b int) TextPosition {
	return TextPosition{Paragraph: p, Byte: b}
}

// String returns a human-readable representation of the position.
func (p TextPosition) String() string {
	return fmt.Sprintf("(%d:%d)", p.Paragraph, p.Byte)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Positions order by paragraph, then byte.
func (p TextPosition) Compare(other TextPosition) int {
	if p.Paragraph < other.Paragraph {
		return -1
	}
	if p.Paragraph > other.Paragraph {
		return 1
	}
	if p.Byte < other.Byte {
		return -1
	}
	if p.Byte > other.Byte {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p TextPosition) Before(other TextPosition) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p TextPosition) After(other TextPosition) bool {
	return p.Compare(other) > 0
}

// IsZero returns true for the document start.
func (p TextPosition) IsZero() bool {
	return p.Paragraph == 0 && p.Byte == 0
}

// RevisionID identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

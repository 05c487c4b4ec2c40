package buffer

import "testing"

// Rows at width 56: "hello " | "world " | "again".
func wrappedBuffer() *Buffer {
	return newTestBuffer("hello world again\nxy", WithWidth(7*8))
}

func TestMoveHomeEnd(t *testing.T) {
	b := wrappedBuffer()

	tests := []struct {
		m        Movement
		in, want TextPosition
	}{
		{MoveHome, NewPosition(0, 8), NewPosition(0, 6)},
		{MoveHome, NewPosition(0, 6), NewPosition(0, 6)},
		{MoveHome, NewPosition(0, 3), NewPosition(0, 0)},
		{MoveEnd, NewPosition(0, 8), NewPosition(0, 11)},
		{MoveEnd, NewPosition(0, 2), NewPosition(0, 5)},
		{MoveEnd, NewPosition(0, 14), NewPosition(0, 17)},
		{MoveEnd, NewPosition(1, 0), NewPosition(1, 2)},
		{MoveHome, NewPosition(1, 2), NewPosition(1, 0)},
	}
	for _, tt := range tests {
		if got := b.Move(tt.m, tt.in); got != tt.want {
			t.Errorf("Move(%v, %v): expected %v, got %v", tt.m, tt.in, tt.want, got)
		}
	}
}

func TestMoveUpDown(t *testing.T) {
	b := wrappedBuffer()

	tests := []struct {
		m        Movement
		in, want TextPosition
	}{
		{MoveDown, NewPosition(0, 2), NewPosition(0, 8)},
		{MoveDown, NewPosition(0, 8), NewPosition(0, 14)},
		{MoveDown, NewPosition(0, 14), NewPosition(1, 2)},
		{MoveDown, NewPosition(1, 1), NewPosition(1, 2)},
		{MoveUp, NewPosition(0, 2), NewPosition(0, 0)},
		{MoveUp, NewPosition(0, 8), NewPosition(0, 2)},
		{MoveUp, NewPosition(1, 1), NewPosition(0, 13)},
		{MoveDown, NewPosition(0, 4), NewPosition(0, 10)},
	}
	for _, tt := range tests {
		if got := b.Move(tt.m, tt.in); got != tt.want {
			t.Errorf("Move(%v, %v): expected %v, got %v", tt.m, tt.in, tt.want, got)
		}
	}
}

func TestMoveDownKeepsColumnOnShortRow(t *testing.T) {
	b := newTestBuffer("abcdef\nab\nabcdef")

	got := b.Move(MoveDown, NewPosition(0, 5))
	if got != NewPosition(1, 2) {
		t.Errorf("expected end of short row (1:2), got %v", got)
	}
	got = b.Move(MoveDown, got)
	if got != NewPosition(2, 2) {
		t.Errorf("expected (2:2), got %v", got)
	}
}

func TestMoveWord(t *testing.T) {
	b := newTestBuffer("hello, big world\nnext")

	tests := []struct {
		m        Movement
		in, want TextPosition
	}{
		{MoveWordRight, NewPosition(0, 0), NewPosition(0, 5)},
		{MoveWordRight, NewPosition(0, 5), NewPosition(0, 6)},
		{MoveWordRight, NewPosition(0, 6), NewPosition(0, 10)},
		{MoveWordRight, NewPosition(0, 8), NewPosition(0, 10)},
		{MoveWordRight, NewPosition(0, 10), NewPosition(0, 16)},
		{MoveWordRight, NewPosition(0, 16), NewPosition(1, 0)},
		{MoveWordRight, NewPosition(1, 0), NewPosition(1, 4)},
		{MoveWordRight, NewPosition(1, 4), NewPosition(1, 4)},
		{MoveWordLeft, NewPosition(0, 16), NewPosition(0, 11)},
		{MoveWordLeft, NewPosition(0, 11), NewPosition(0, 7)},
		{MoveWordLeft, NewPosition(0, 9), NewPosition(0, 7)},
		{MoveWordLeft, NewPosition(0, 7), NewPosition(0, 5)},
		{MoveWordLeft, NewPosition(0, 5), NewPosition(0, 0)},
		{MoveWordLeft, NewPosition(1, 0), NewPosition(0, 16)},
		{MoveWordLeft, NewPosition(0, 0), NewPosition(0, 0)},
	}
	for _, tt := range tests {
		if got := b.Move(tt.m, tt.in); got != tt.want {
			t.Errorf("Move(%v, %v): expected %v, got %v", tt.m, tt.in, tt.want, got)
		}
	}
}

func TestMoveWordTrailingSpace(t *testing.T) {
	b := newTestBuffer("  x  ")

	if got := b.Move(MoveWordRight, NewPosition(0, 3)); got != NewPosition(0, 5) {
		t.Errorf("expected end of line, got %v", got)
	}
	if got := b.Move(MoveWordLeft, NewPosition(0, 2)); got != NewPosition(0, 0) {
		t.Errorf("expected start of line, got %v", got)
	}
}

func TestMovementString(t *testing.T) {
	tests := []struct {
		m    Movement
		want string
	}{
		{MoveNowhere, "Nowhere"},
		{MoveLeft, "Left"},
		{MoveWordRight, "WordRight"},
		{Movement(42), "Movement(42)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}

	m, ok := ParseMovement("Down")
	if !ok || m != MoveDown {
		t.Errorf("expected Down, got %v (%v)", m, ok)
	}
	if _, ok := ParseMovement("Sideways"); ok {
		t.Error("expected unknown movement to fail")
	}
}

func TestTextPositionCompare(t *testing.T) {
	tests := []struct {
		a, b TextPosition
		want int
	}{
		{NewPosition(0, 0), NewPosition(0, 0), 0},
		{NewPosition(0, 5), NewPosition(1, 0), -1},
		{NewPosition(2, 0), NewPosition(1, 9), 1},
		{NewPosition(1, 3), NewPosition(1, 4), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
	if !NewPosition(0, 1).Before(NewPosition(0, 2)) || !NewPosition(1, 0).After(NewPosition(0, 9)) {
		t.Error("Before/After disagree with Compare")
	}
	if NewPosition(3, 4).String() != "(3:4)" {
		t.Errorf("unexpected string %q", NewPosition(3, 4).String())
	}
}

func TestRange(t *testing.T) {
	r := NewRange(NewPosition(1, 4), NewPosition(0, 2))
	if r.Start != NewPosition(0, 2) || r.End != NewPosition(1, 4) {
		t.Errorf("expected ordered range, got %v", r)
	}
	if !r.SpansParagraphs() {
		t.Error("expected range to span paragraphs")
	}
	if !r.Contains(NewPosition(0, 9)) || r.Contains(NewPosition(1, 4)) {
		t.Error("Contains should be half-open")
	}
	if !NewRange(NewPosition(0, 1), NewPosition(0, 1)).IsEmpty() {
		t.Error("expected empty range")
	}
}

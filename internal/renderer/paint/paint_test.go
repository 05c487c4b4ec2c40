package paint

import (
	"testing"

	"github.com/dshills/typepad/internal/engine/buffer"
	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/shape"
	"github.com/dshills/typepad/internal/shape/face"
)

type op struct {
	kind  string
	rect  core.Rect
	color core.Color
	text  string
	at    core.Point
}

type recordingSurface struct {
	ops []op
}

func (s *recordingSurface) Clear(c core.Color) {
	s.ops = append(s.ops, op{kind: "clear", color: c})
}

func (s *recordingSurface) FillRect(r core.Rect, c core.Color) {
	s.ops = append(s.ops, op{kind: "rect", rect: r, color: c})
}

func (s *recordingSurface) DrawGlyphRun(run *shape.GlyphRun, origin core.Point, c core.Color) {
	s.ops = append(s.ops, op{kind: "run", text: run.Text, at: origin, color: c})
}

func (s *recordingSurface) count(kind string) int {
	n := 0
	for _, o := range s.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func TestPaintOrder(t *testing.T) {
	b := buffer.NewFromString(face.Basic(), "hello\nworld")
	s := &recordingSurface{}

	opts := DefaultOptions().
		WithSelection(buffer.NewPosition(0, 3), buffer.NewPosition(0, 1)).
		WithCursor(buffer.NewPosition(1, 2))
	Paint(s, b, opts)

	if len(s.ops) == 0 || s.ops[0].kind != "clear" || s.ops[0].color != core.ColorWhite {
		t.Fatalf("expected white clear first, got %+v", s.ops)
	}
	// clear, 2 selection rects, caret, 2 runs
	wantKinds := []string{"clear", "rect", "rect", "rect", "run", "run"}
	if len(s.ops) != len(wantKinds) {
		t.Fatalf("expected %d ops, got %d: %+v", len(wantKinds), len(s.ops), s.ops)
	}
	for i, k := range wantKinds {
		if s.ops[i].kind != k {
			t.Errorf("op %d: expected %s, got %s", i, k, s.ops[i].kind)
		}
	}

	sel := s.ops[1]
	if sel.color != DefaultSelectionColor || sel.rect.Left != 7 {
		t.Errorf("unexpected first selection rect %+v", sel)
	}
	caret := s.ops[3]
	if caret.color != core.ColorRed || caret.rect.Left != 13 || caret.rect.Top != 13 {
		t.Errorf("unexpected caret %+v", caret)
	}
	if s.ops[5].text != "world" || s.ops[5].at.Y != 13 {
		t.Errorf("expected second run at y=13, got %+v", s.ops[5])
	}
}

func TestPaintSelectionAcrossParagraphs(t *testing.T) {
	b := buffer.NewFromString(face.Basic(), "ab\ncd")
	s := &recordingSurface{}

	Paint(s, b, DefaultOptions().WithSelection(buffer.NewPosition(0, 1), buffer.NewPosition(1, 1)))

	// b, end of first paragraph, c
	if got := s.count("rect"); got != 3 {
		t.Errorf("expected 3 selection rects, got %d", got)
	}
}

func TestPaintBlinkHidesCaret(t *testing.T) {
	b := buffer.NewFromString(face.Basic(), "x")
	s := &recordingSurface{}

	opts := DefaultOptions().WithCursor(buffer.NewPosition(0, 0))
	opts.Blink = true
	Paint(s, b, opts)

	for _, o := range s.ops {
		if o.kind == "rect" && !o.color.IsTransparent() {
			t.Errorf("expected transparent caret while blinking, got %v", o.color)
		}
	}
}

func TestPaintOffset(t *testing.T) {
	b := buffer.NewFromString(face.Basic(), "x")
	s := &recordingSurface{}

	opts := DefaultOptions()
	opts.Offset = core.Point{X: 10, Y: -3}
	Paint(s, b, opts)

	run := s.ops[len(s.ops)-1]
	if run.at != (core.Point{X: 10, Y: -3}) {
		t.Errorf("expected run at (10,-3), got %v", run.at)
	}
}

func TestPaintEmptyDocument(t *testing.T) {
	b := buffer.New(face.Basic())
	s := &recordingSurface{}

	Paint(s, b, DefaultOptions().WithCursor(buffer.TextPosition{}))

	if s.count("run") != 0 {
		t.Error("expected no glyph runs for an empty document")
	}
	if s.count("rect") != 1 {
		t.Errorf("expected the caret, got %d rects", s.count("rect"))
	}
}

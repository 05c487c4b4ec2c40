package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/typepad/internal/engine/buffer"
	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/renderer/paint"
	"github.com/dshills/typepad/internal/shape/face"
)

func newSim(t *testing.T, w, h int) *Terminal {
	t.Helper()
	term, err := NewSimulation(w, h)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	return term
}

func TestTerminalSize(t *testing.T) {
	term := newSim(t, 20, 4)

	w, h := term.Size()
	if w != 20 || h != 4 {
		t.Errorf("expected size (20, 4), got (%d, %d)", w, h)
	}
	pw, ph := term.PixelSize()
	if pw != 140 || ph != 52 {
		t.Errorf("expected pixel size (140, 52), got (%d, %d)", pw, ph)
	}
}

func TestTerminalPaint(t *testing.T) {
	term := newSim(t, 10, 3)
	b := buffer.NewFromString(face.Basic(), "hi\nyo")

	opts := paint.DefaultOptions().
		WithCursor(buffer.NewPosition(0, 1)).
		WithSelection(buffer.NewPosition(1, 0), buffer.NewPosition(1, 1))
	paint.Paint(term, b, opts)

	tests := []struct {
		x, y int
		r    rune
		fg   core.Color
		bg   core.Color
	}{
		{0, 0, 'h', core.ColorBlack, core.ColorWhite},
		{1, 0, 'i', core.ColorBlack, core.ColorRed},
		{0, 1, 'y', core.ColorBlack, paint.DefaultSelectionColor},
		{1, 1, 'o', core.ColorBlack, core.ColorWhite},
		{5, 2, ' ', core.ColorTransparent, core.ColorWhite},
	}
	for _, tt := range tests {
		r, fg, bg := term.Cell(tt.x, tt.y)
		if r != tt.r {
			t.Errorf("cell (%d,%d): expected rune %q, got %q", tt.x, tt.y, tt.r, r)
		}
		if fg != tt.fg {
			t.Errorf("cell (%d,%d): expected fg %v, got %v", tt.x, tt.y, tt.fg, fg)
		}
		if bg != tt.bg {
			t.Errorf("cell (%d,%d): expected bg %v, got %v", tt.x, tt.y, tt.bg, bg)
		}
	}
}

func TestTerminalFillRectSpan(t *testing.T) {
	term := newSim(t, 10, 2)
	term.Clear(core.ColorWhite)

	// A 2px caret centered on the boundary between cells 2 and 3.
	term.FillRect(core.Rect{Left: 20, Top: 0, Right: 22, Bottom: 13}, core.ColorRed)
	// Transparent fills are ignored.
	term.FillRect(core.Rect{Left: 0, Top: 0, Right: 70, Bottom: 26}, core.ColorTransparent)

	for x := 0; x < 5; x++ {
		_, _, bg := term.Cell(x, 0)
		want := core.ColorWhite
		if x == 3 {
			want = core.ColorRed
		}
		if bg != want {
			t.Errorf("cell %d: expected %v, got %v", x, want, bg)
		}
	}
}

func TestTerminalCellSizeOption(t *testing.T) {
	term, err := NewSimulation(4, 4, WithCellSize(10, 20))
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	defer term.Shutdown()

	cw, ch := term.CellSize()
	if cw != 10 || ch != 20 {
		t.Errorf("expected cell size (10, 20), got (%v, %v)", cw, ch)
	}

	term2, _ := NewSimulation(4, 4, WithCellSize(0, 5))
	defer term2.Shutdown()
	if cw, _ := term2.CellSize(); cw != DefaultCellWidth {
		t.Errorf("invalid cell size should be ignored, got width %v", cw)
	}
}

func TestConvertEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Event
	}{
		{
			name: "rune",
			ev:   tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
			want: Event{Type: EventKey, Key: KeyRune, Rune: 'a'},
		},
		{
			name: "shift left",
			ev:   tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift),
			want: Event{Type: EventKey, Key: KeyLeft, Mod: ModShift},
		},
		{
			name: "resize",
			ev:   tcell.NewEventResize(80, 24),
			want: Event{Type: EventResize, Width: 80, Height: 24},
		},
		{
			name: "click",
			ev:   tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone),
			want: Event{Type: EventMouse, MouseX: 3, MouseY: 4, MouseButton: MouseLeft},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertEvent(tt.ev)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModShift | ModCtrl
	if !m.Has(ModShift) || !m.Has(ModCtrl) {
		t.Error("expected shift and ctrl")
	}
	if m.Has(ModAlt) {
		t.Error("did not expect alt")
	}
}

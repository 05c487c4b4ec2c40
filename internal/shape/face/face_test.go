package face

import (
	"testing"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/dshills/typepad/internal/shape"
)

func TestBasicMetrics(t *testing.T) {
	f := Basic()

	m := f.Metrics()
	if m.Ascent != -11 {
		t.Errorf("expected ascent -11, got %v", m.Ascent)
	}
	if m.Descent != 2 {
		t.Errorf("expected descent 2, got %v", m.Descent)
	}
	if m.Leading != 0 {
		t.Errorf("expected leading 0, got %v", m.Leading)
	}
	if f.Spacing() != 13 {
		t.Errorf("expected spacing 13, got %v", f.Spacing())
	}
	if f.Size() != 13 {
		t.Errorf("expected size 13, got %v", f.Size())
	}
}

func TestBasicShapeRun(t *testing.T) {
	f := Basic()
	text := "xab"

	glyphs := f.ShapeRun(text, 1, 3, "en", nil)
	if len(glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(glyphs))
	}
	for i, g := range glyphs {
		if g.Cluster != i+1 {
			t.Errorf("glyph %d: expected cluster %d, got %d", i, i+1, g.Cluster)
		}
		if g.Advance != 7 {
			t.Errorf("glyph %d: expected advance 7, got %v", i, g.Advance)
		}
	}
	if f.Rune(glyphs[0].ID) != 'a' || f.Rune(glyphs[1].ID) != 'b' {
		t.Error("glyph ids do not map back to their runes")
	}

	again := f.ShapeRun("a", 0, 1, "en", nil)
	if again[0].ID != glyphs[0].ID {
		t.Errorf("expected stable glyph id %d, got %d", glyphs[0].ID, again[0].ID)
	}

	widths := make([]float32, 2)
	f.Widths([]shape.GlyphID{glyphs[0].ID, glyphs[1].ID}, widths)
	if widths[0] != 7 || widths[1] != 7 {
		t.Errorf("expected widths [7 7], got %v", widths)
	}
}

func TestBasicMultiByteClusters(t *testing.T) {
	f := Basic()
	text := "\u00e9!"

	glyphs := f.ShapeRun(text, 0, len(text), "en", nil)
	if len(glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(glyphs))
	}
	if glyphs[1].Cluster != 2 {
		t.Errorf("expected second cluster at byte 2, got %d", glyphs[1].Cluster)
	}
}

func TestUnknownGlyphID(t *testing.T) {
	f := Basic()
	if f.Rune(500) != utf8.RuneError {
		t.Error("expected replacement rune for unknown id")
	}
}

func TestOpenType(t *testing.T) {
	f, err := NewOpenType(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.HasGlyph('a') {
		t.Error("expected Go Regular to have 'a'")
	}
	if f.HasGlyph('\u4e2d') {
		t.Error("expected Go Regular to lack CJK ideographs")
	}
	if f.Spacing() <= 0 {
		t.Errorf("expected positive spacing, got %v", f.Spacing())
	}
	m := f.Metrics()
	if m.Ascent >= 0 || m.Descent <= 0 {
		t.Errorf("unexpected metrics %+v", m)
	}

	res := shape.Shape(shape.NewWrapShaper(), "hello", f, nil, "en", 0)
	if len(res.GlyphBounds) != 6 {
		t.Errorf("expected 6 glyph bounds, got %d", len(res.GlyphBounds))
	}
	for i := 0; i < 5; i++ {
		if res.GlyphBounds[i].IsUnset() {
			t.Errorf("byte %d: expected bounds", i)
		}
	}
}

func TestOpenTypeErrors(t *testing.T) {
	if _, err := NewOpenType(goregular.TTF, 0); err == nil {
		t.Error("expected error for zero size")
	}
	if _, err := NewOpenType([]byte("not a font"), 12); err == nil {
		t.Error("expected error for invalid data")
	}
}

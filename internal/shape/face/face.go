// Package face adapts golang.org/x/image/font faces to shape.Font.
//
// A face shapes one glyph per rune with kerning from the face; it has no
// ligatures or complex script support. It is the backend used for bitmap
// fonts such as basicfont.Face7x13 and for quick OpenType rendering.
package face

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/shape"
)

// ErrInvalidSize is returned for non-positive font sizes.
var ErrInvalidSize = errors.New("invalid font size")

// Font is a shape.Font backed by a font.Face.
// Glyph ids are assigned per rune on first use; id 0 is unused.
type Font struct {
	face  font.Face
	size  float32
	ids   map[rune]shape.GlyphID
	runes []rune

	// outline font the face was built from, if any; used for coverage.
	sfnt *sfnt.Font
	buf  sfnt.Buffer
}

// New wraps face. size is the em size in pixels the face was built for.
func New(face font.Face, size float32) *Font {
	return &Font{
		face:  face,
		size:  size,
		ids:   make(map[rune]shape.GlyphID),
		runes: []rune{utf8.RuneError},
	}
}

// Basic returns the 7x13 fixed-width bitmap font.
func Basic() *Font {
	return New(basicfont.Face7x13, 13)
}

// NewOpenType parses TrueType or OpenType data and returns a face at size pixels.
func NewOpenType(data []byte, size float32) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	ff := New(face, size)
	ff.sfnt = f
	return ff, nil
}

// Face returns the underlying face.
func (f *Font) Face() font.Face {
	return f.face
}

// Rune returns the rune a glyph id was assigned to.
func (f *Font) Rune(g shape.GlyphID) rune {
	if int(g) >= len(f.runes) {
		return utf8.RuneError
	}
	return f.runes[g]
}

func (f *Font) glyph(r rune) shape.GlyphID {
	if id, ok := f.ids[r]; ok {
		return id
	}
	id := shape.GlyphID(len(f.runes))
	f.ids[r] = id
	f.runes = append(f.runes, r)
	return id
}

// Size implements shape.Font.
func (f *Font) Size() float32 {
	return f.size
}

// Metrics implements shape.Font.
func (f *Font) Metrics() shape.Metrics {
	m := f.face.Metrics()
	ascent := toFloat(m.Ascent)
	descent := toFloat(m.Descent)
	return shape.Metrics{
		Ascent:  -ascent,
		Descent: descent,
		Leading: max(0, toFloat(m.Height)-ascent-descent),
	}
}

// Spacing implements shape.Font.
func (f *Font) Spacing() float32 {
	return toFloat(f.face.Metrics().Height)
}

// Widths implements shape.Font.
func (f *Font) Widths(glyphs []shape.GlyphID, dst []float32) {
	for i, g := range glyphs {
		adv, _ := f.face.GlyphAdvance(f.Rune(g))
		dst[i] = toFloat(adv)
	}
}

// HasGlyph implements shape.Font.
func (f *Font) HasGlyph(r rune) bool {
	if f.sfnt != nil {
		idx, err := f.sfnt.GlyphIndex(&f.buf, r)
		return err == nil && idx != 0
	}
	_, ok := f.face.GlyphAdvance(r)
	return ok
}

// ShapeRun implements shape.Font.
func (f *Font) ShapeRun(text string, start, end int, locale string, dst []shape.Glyph) []shape.Glyph {
	first := len(dst)
	prev := rune(-1)
	for i, r := range text[start:end] {
		if prev >= 0 && len(dst) > first {
			dst[len(dst)-1].Advance += toFloat(f.face.Kern(prev, r))
		}
		adv, _ := f.face.GlyphAdvance(r)
		dst = append(dst, shape.Glyph{
			ID:      f.glyph(r),
			Cluster: start + i,
			Advance: toFloat(adv),
			Offset:  core.Point{},
		})
		prev = r
	}
	return dst
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

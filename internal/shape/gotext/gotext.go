// Package gotext provides a shape.Font backed by the go-text HarfBuzz port.
//
// Shaping goes through github.com/go-text/typesetting, which applies
// kerning, ligatures and mark positioning. Metrics, nominal advances and
// glyph outlines are read from the same font data with
// golang.org/x/image/font/sfnt, so a single byte slice serves both.
package gotext

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/shape"
)

var (
	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("invalid font size")
	// ErrNoGlyph is returned when a glyph index is outside the font.
	ErrNoGlyph = errors.New("glyph not in font")
)

// Font is an OpenType font at one size.
type Font struct {
	face   *gtfont.Face
	sfnt   *sfnt.Font
	buf    sfnt.Buffer
	shaper shaping.HarfbuzzShaper

	size    float32
	ppem    fixed.Int26_6
	metrics shape.Metrics
	spacing float32
}

// Parse reads TrueType or OpenType data and returns the font at size pixels per em.
func Parse(data []byte, size float32) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse outlines: %w", err)
	}
	return newFont(face, outlines, size)
}

// Regular returns Go Regular at size pixels per em.
func Regular(size float32) (*Font, error) {
	return Parse(goregular.TTF, size)
}

func newFont(face *gtfont.Face, outlines *sfnt.Font, size float32) (*Font, error) {
	f := &Font{
		face: face,
		sfnt: outlines,
		size: size,
		ppem: fixed.Int26_6(size * 64),
	}
	m, err := f.sfnt.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("read metrics: %w", err)
	}
	ascent, descent, height := toFloat(m.Ascent), toFloat(m.Descent), toFloat(m.Height)
	f.metrics = shape.Metrics{
		Ascent:  -ascent,
		Descent: descent,
		Leading: max(0, height-ascent-descent),
	}
	f.spacing = height
	return f, nil
}

// WithSize returns the same typeface at another size.
// The parsed font data is shared.
func (f *Font) WithSize(size float32) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return newFont(gtfont.NewFace(f.face.Font), f.sfnt, size)
}

// Size implements shape.Font.
func (f *Font) Size() float32 {
	return f.size
}

// Metrics implements shape.Font.
func (f *Font) Metrics() shape.Metrics {
	return f.metrics
}

// Spacing implements shape.Font.
func (f *Font) Spacing() float32 {
	return f.spacing
}

// Widths implements shape.Font.
func (f *Font) Widths(glyphs []shape.GlyphID, dst []float32) {
	for i, g := range glyphs {
		adv, err := f.sfnt.GlyphAdvance(&f.buf, sfnt.GlyphIndex(g), f.ppem, font.HintingNone)
		if err != nil {
			dst[i] = 0
			continue
		}
		dst[i] = toFloat(adv)
	}
}

// HasGlyph implements shape.Font.
func (f *Font) HasGlyph(r rune) bool {
	idx, err := f.sfnt.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// ShapeRun implements shape.Font.
func (f *Font) ShapeRun(text string, start, end int, locale string, dst []shape.Glyph) []shape.Glyph {
	if start >= end {
		return dst
	}
	run := text[start:end]
	runes := make([]rune, 0, len(run))
	offsets := make([]int, 0, len(run))
	for i, r := range run {
		runes = append(runes, r)
		offsets = append(offsets, start+i)
	}

	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.face,
		Size:      f.ppem,
		Script:    detectScript(runes),
		Language:  language.NewLanguage(locale),
	})

	for _, g := range out.Glyphs {
		dst = append(dst, shape.Glyph{
			ID:      shape.GlyphID(g.GlyphID),
			Cluster: offsets[g.ClusterIndex],
			Advance: toFloat(g.XAdvance),
			Offset:  core.Point{X: toFloat(g.XOffset), Y: -toFloat(g.YOffset)},
		})
	}
	return dst
}

// GlyphOutline returns the outline of g in pixels, y pointing down,
// relative to the glyph origin on the baseline.
func (f *Font) GlyphOutline(g shape.GlyphID) (sfnt.Segments, error) {
	if int(g) >= f.sfnt.NumGlyphs() {
		return nil, fmt.Errorf("%w: %d", ErrNoGlyph, g)
	}
	segs, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(g), f.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %d: %w", g, err)
	}
	return segs, nil
}

// detectScript returns the script of the first letter in runes.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Package raster implements paint.Surface on an in-memory RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/renderer/paint"
	"github.com/dshills/typepad/internal/shape"
)

// outliner is a font that can return vector outlines, such as gotext.Font.
type outliner interface {
	GlyphOutline(g shape.GlyphID) (sfnt.Segments, error)
}

// facer is a font backed by a font.Face, such as face.Font.
type facer interface {
	Face() font.Face
	Rune(g shape.GlyphID) rune
}

// Surface draws into an RGBA image.
type Surface struct {
	img  *image.RGBA
	rast vector.Rasterizer
}

var _ paint.Surface = (*Surface)(nil)

// New creates a surface of width x height pixels.
func New(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear implements paint.Surface.
func (s *Surface) Clear(c core.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect implements paint.Surface. r is rounded outward to whole pixels.
func (s *Surface) FillRect(r core.Rect, c core.Color) {
	if c.IsTransparent() || r.IsEmpty() {
		return
	}
	x0, y0, x1, y1 := r.RoundOut()
	draw.Draw(s.img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawGlyphRun implements paint.Surface. Runs from fonts that expose neither
// outlines nor a face are skipped.
func (s *Surface) DrawGlyphRun(run *shape.GlyphRun, origin core.Point, c core.Color) {
	src := image.NewUniform(c)
	switch f := run.Font.(type) {
	case outliner:
		for i, g := range run.Glyphs {
			segs, err := f.GlyphOutline(g)
			if err != nil {
				continue
			}
			s.fillOutline(segs, origin.Add(run.Positions[i]), src)
		}
	case facer:
		face := f.Face()
		for i, g := range run.Glyphs {
			p := origin.Add(run.Positions[i])
			dot := fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
			dr, mask, maskp, _, ok := face.Glyph(dot, f.Rune(g))
			if !ok {
				continue
			}
			draw.DrawMask(s.img, dr, src, image.Point{}, mask, maskp, draw.Over)
		}
	}
}

// fillOutline rasterizes segs with their origin at p.
func (s *Surface) fillOutline(segs sfnt.Segments, p core.Point, src image.Image) {
	if len(segs) == 0 {
		return
	}
	b := segs.Bounds()
	x0 := int(math.Floor(float64(p.X + fromFixed(b.Min.X))))
	y0 := int(math.Floor(float64(p.Y + fromFixed(b.Min.Y))))
	x1 := int(math.Ceil(float64(p.X + fromFixed(b.Max.X))))
	y1 := int(math.Ceil(float64(p.Y + fromFixed(b.Max.Y))))
	if x1 <= x0 || y1 <= y0 {
		return
	}

	dx, dy := p.X-float32(x0), p.Y-float32(y0)
	pt := func(q fixed.Point26_6) (float32, float32) {
		return fromFixed(q.X) + dx, fromFixed(q.Y) + dy
	}

	s.rast.Reset(x1-x0, y1-y0)
	s.rast.DrawOp = draw.Over
	started := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				s.rast.ClosePath()
			}
			started = true
			s.rast.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			s.rast.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			s.rast.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			s.rast.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	s.rast.ClosePath()
	s.rast.Draw(s.img, image.Rect(x0, y0, x1, y1), src, image.Point{})
}

// WritePNG encodes the image as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

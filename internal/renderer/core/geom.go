package core

import (
	"fmt"
	"math"
)

// Point is a position in pixels.
type Point struct {
	X, Y float32
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IPoint is an integer pixel position.
type IPoint struct {
	X, Y int
}

// Sub returns p - q.
func (p IPoint) Sub(q IPoint) IPoint {
	return IPoint{X: p.X - q.X, Y: p.Y - q.Y}
}

// Point converts p to a float point.
func (p IPoint) Point() Point {
	return Point{X: float32(p.X), Y: float32(p.Y)}
}

// String returns a human-readable representation of the point.
func (p IPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its edges.
// Left/Top are inclusive, Right/Bottom exclusive.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// UnsetRect marks a cursor slot that shaping did not fill.
// It contains no point and compares unequal to every real rectangle.
var UnsetRect = Rect{
	Left:   -math.MaxFloat32,
	Top:    -math.MaxFloat32,
	Right:  -math.MaxFloat32,
	Bottom: -math.MaxFloat32,
}

// RectFromXYWH creates a rectangle from an origin and a size.
func RectFromXYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// RectFromPointAndSize creates a rectangle with its top-left corner at p.
func RectFromPointAndSize(p Point, w, h float32) Rect {
	return RectFromXYWH(p.X, p.Y, w, h)
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns the vertical extent.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// IsUnset returns true for UnsetRect.
func (r Rect) IsUnset() bool {
	return r == UnsetRect
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Join returns the smallest rectangle containing r and other.
// Empty rectangles do not contribute.
func (r Rect) Join(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// Offset returns r translated by d.
func (r Rect) Offset(d Point) Rect {
	return Rect{Left: r.Left + d.X, Top: r.Top + d.Y, Right: r.Right + d.X, Bottom: r.Bottom + d.Y}
}

// OffsetI returns r translated by an integer offset.
func (r Rect) OffsetI(d IPoint) Rect {
	return r.Offset(d.Point())
}

// RoundOut returns the smallest integer rectangle containing r as
// (left, top, right, bottom).
func (r Rect) RoundOut() (left, top, right, bottom int) {
	return int(math.Floor(float64(r.Left))), int(math.Floor(float64(r.Top))),
		int(math.Ceil(float64(r.Right))), int(math.Ceil(float64(r.Bottom)))
}

// String returns a human-readable representation of the rectangle.
func (r Rect) String() string {
	if r.IsUnset() {
		return "[unset]"
	}
	return fmt.Sprintf("[%g,%g %g,%g]", r.Left, r.Top, r.Right, r.Bottom)
}

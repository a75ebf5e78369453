// Package geom holds the small set of float geometry types shared by the
// layout engine, the hit tester and the box model renderer.
package geom

import (
	"fmt"
	"math"
)

// Point represents an (X, Y) coordinate.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns a new Point offset by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns a new Point with other subtracted.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// In returns true if the point is inside the given rectangle.
func (p Point) In(r Rect) bool {
	return r.Contains(p)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y)
}

// Size represents a width/height pair.
type Size struct {
	Width, Height float64
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

func (s Size) String() string {
	return fmt.Sprintf("%.1fx%.1f", s.Width, s.Height)
}

// Edges represents resolved spacing on four sides.
type Edges struct {
	Left, Right, Top, Bottom float64
}

// Uniform returns Edges with v on every side.
func Uniform(v float64) Edges {
	return Edges{Left: v, Right: v, Top: v, Bottom: v}
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// Add sums two edge sets side by side.
func (e Edges) Add(o Edges) Edges {
	return Edges{
		Left:   e.Left + o.Left,
		Right:  e.Right + o.Right,
		Top:    e.Top + o.Top,
		Bottom: e.Bottom + o.Bottom,
	}
}

func (e Edges) String() string {
	return fmt.Sprintf("[l=%.1f r=%.1f t=%.1f b=%.1f]", e.Left, e.Right, e.Top, e.Bottom)
}

// Rect is an axis aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Point
}

// FromMinSize builds a Rect from its top-left corner and a size.
func FromMinSize(min Point, size Size) Rect {
	return Rect{Min: min, Max: Point{X: min.X + size.Width, Y: min.Y + size.Height}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns the extent of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Translate moves r by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Contains reports whether p lies in r. The min edges are inclusive, the
// max edges exclusive, so adjacent rectangles never both contain a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Inset shrinks r by cutting each side by the respective edge value.
//
// The result always lies inside r: negative cuts count as zero, and when the
// cuts on one axis exceed the extent of r the result collapses to zero
// width (or height) at the point where both cut edges would meet.
func (r Rect) Inset(e Edges) Rect {
	x0, x1 := insetAxis(r.Min.X, r.Max.X, e.Left, e.Right)
	y0, y1 := insetAxis(r.Min.Y, r.Max.Y, e.Top, e.Bottom)
	return Rect{Min: Point{X: x0, Y: y0}, Max: Point{X: x1, Y: y1}}
}

func insetAxis(lo, hi, cutLo, cutHi float64) (float64, float64) {
	cutLo, cutHi = math.Max(cutLo, 0), math.Max(cutHi, 0)
	if hi < lo {
		hi = lo
	}
	a, b := lo+cutLo, hi-cutHi
	if a <= b {
		return a, b
	}
	meet := lo
	if sum := cutLo + cutHi; sum > 0 {
		meet = lo + (hi-lo)*cutLo/sum
	}
	return meet, meet
}

// Outline returns the closed polygon around r, starting and ending at the
// top-left corner, clockwise.
func (r Rect) Outline() []Point {
	return []Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
		r.Min,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}

package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Point represents a 2D point in logical coordinates.
type Point struct {
	X float64
	Y float64
}

// Near reports whether p and other are within tolerance of each other.
func (p Point) Near(other Point, tolerance float64) bool {
	return math.Abs(p.X-other.X) <= tolerance && math.Abs(p.Y-other.Y) <= tolerance
}

// Size represents width and height dimensions in logical units.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Scale returns the size multiplied by factor.
func (s Size) Scale(factor float64) Size {
	return Size{Width: s.Width * factor, Height: s.Height * factor}
}

// ApproxEqual reports whether two sizes match within a small tolerance.
func (s Size) ApproxEqual(other Size) bool {
	return math.Abs(s.Width-other.Width) < epsilon && math.Abs(s.Height-other.Height) < epsilon
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

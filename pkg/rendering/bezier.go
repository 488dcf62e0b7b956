package rendering

import (
	"fmt"

	"github.com/go-drift/chartkit/pkg/graphics"
)

// BezierElementKind is an element type of the desktop toolkit's path object,
// which has no quadratic segments.
type BezierElementKind int

const (
	BezierMoveTo BezierElementKind = iota
	BezierLineTo
	BezierCurveTo
	BezierClosePath
)

// String returns a human-readable representation of the element kind.
func (k BezierElementKind) String() string {
	switch k {
	case BezierMoveTo:
		return "moveTo"
	case BezierLineTo:
		return "lineTo"
	case BezierCurveTo:
		return "curveTo"
	case BezierClosePath:
		return "closePath"
	default:
		return fmt.Sprintf("BezierElementKind(%d)", int(k))
	}
}

// BezierElement is one element of a BezierPath. Points holds one point for
// moveTo and lineTo, three for curveTo (control 1, control 2, end) and none
// for closePath.
type BezierElement struct {
	Kind   BezierElementKind
	Points []graphics.Point
}

// BezierPath mirrors the desktop toolkit's native path object.
type BezierPath struct {
	Elements []BezierElement
}

// ElementCount returns the number of elements.
func (b *BezierPath) ElementCount() int {
	return len(b.Elements)
}

// Bounds returns the bounding box of every element point, control points
// included. An empty path has zero bounds.
func (b *BezierPath) Bounds() graphics.Rect {
	var r graphics.Rect
	seen := false
	for _, el := range b.Elements {
		for _, pt := range el.Points {
			pr := graphics.Rect{Left: pt.X, Top: pt.Y, Right: pt.X, Bottom: pt.Y}
			if !seen {
				r, seen = pr, true
				continue
			}
			r = r.Union(pr)
		}
	}
	return r
}

// ToBezierPath converts an op list into the native element list. Quadratic
// segments are raised to equivalent cubics, which needs the current point, so
// a quadratic with no preceding point starts from the origin.
func ToBezierPath(p *Path) *BezierPath {
	out := &BezierPath{Elements: make([]BezierElement, 0, len(p.Commands))}
	var current, start graphics.Point
	for _, cmd := range p.Commands {
		if len(cmd.Args) < cmd.Op.argCount() {
			continue
		}
		a := cmd.Args
		switch cmd.Op {
		case PathOpMoveTo:
			current = graphics.Point{X: a[0], Y: a[1]}
			start = current
			out.Elements = append(out.Elements, BezierElement{Kind: BezierMoveTo, Points: []graphics.Point{current}})
		case PathOpLineTo:
			current = graphics.Point{X: a[0], Y: a[1]}
			out.Elements = append(out.Elements, BezierElement{Kind: BezierLineTo, Points: []graphics.Point{current}})
		case PathOpQuadTo:
			ctrl := graphics.Point{X: a[0], Y: a[1]}
			end := graphics.Point{X: a[2], Y: a[3]}
			c1 := graphics.Point{X: current.X + 2.0/3*(ctrl.X-current.X), Y: current.Y + 2.0/3*(ctrl.Y-current.Y)}
			c2 := graphics.Point{X: end.X + 2.0/3*(ctrl.X-end.X), Y: end.Y + 2.0/3*(ctrl.Y-end.Y)}
			current = end
			out.Elements = append(out.Elements, BezierElement{Kind: BezierCurveTo, Points: []graphics.Point{c1, c2, end}})
		case PathOpCubicTo:
			pts := []graphics.Point{{X: a[0], Y: a[1]}, {X: a[2], Y: a[3]}, {X: a[4], Y: a[5]}}
			current = pts[2]
			out.Elements = append(out.Elements, BezierElement{Kind: BezierCurveTo, Points: pts})
		case PathOpClose:
			current = start
			out.Elements = append(out.Elements, BezierElement{Kind: BezierClosePath})
		}
	}
	return out
}

// Path converts the native element list back into an op list. Elements with
// too few points are skipped.
func (b *BezierPath) Path() *Path {
	p := NewPath()
	for _, el := range b.Elements {
		pts := el.Points
		switch el.Kind {
		case BezierMoveTo:
			if len(pts) >= 1 {
				p.MoveTo(pts[0].X, pts[0].Y)
			}
		case BezierLineTo:
			if len(pts) >= 1 {
				p.LineTo(pts[0].X, pts[0].Y)
			}
		case BezierCurveTo:
			if len(pts) >= 3 {
				p.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			}
		case BezierClosePath:
			p.Close()
		}
	}
	return p
}

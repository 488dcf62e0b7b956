package rendering

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/go-drift/chartkit/pkg/graphics"
)

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Draw line to point (x, y)
	PathOpQuadTo                // Draw quadratic curve to (x2, y2) via control (x1, y1)
	PathOpCubicTo               // Draw cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpQuadTo:
		return "quad_to"
	case PathOpCubicTo:
		return "cubic_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// argCount returns how many coordinates the op carries.
func (o PathOp) argCount() int {
	switch o {
	case PathOpMoveTo, PathOpLineTo:
		return 2
	case PathOpQuadTo:
		return 4
	case PathOpCubicTo:
		return 6
	default:
		return 0
	}
}

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp    // The operation type
	Args []float64 // Coordinates: MoveTo/LineTo=[x,y], QuadTo=[x1,y1,x2,y2], CubicTo=[x1,y1,x2,y2,x3,y3]
}

// Path is the toolkit-neutral op list charts build their shapes with.
// Convert it with [ToBezierPath] for toolkits that want their own form.
type Path struct {
	Commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.add(PathOpMoveTo, x, y)
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.add(PathOpLineTo, x, y)
}

// QuadTo adds a quadratic bezier curve from the current point to (x2, y2)
// with control point (x1, y1).
func (p *Path) QuadTo(x1, y1, x2, y2 float64) {
	p.add(PathOpQuadTo, x1, y1, x2, y2)
}

// CubicTo adds a cubic bezier curve from the current point to (x3, y3)
// with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.add(PathOpCubicTo, x1, y1, x2, y2, x3, y3)
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.add(PathOpClose)
}

// AddRect appends a closed rectangle subpath.
func (p *Path) AddRect(r graphics.Rect) {
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right, r.Top)
	p.LineTo(r.Right, r.Bottom)
	p.LineTo(r.Left, r.Bottom)
	p.Close()
}

func (p *Path) add(op PathOp, args ...float64) {
	p.Commands = append(p.Commands, PathCommand{Op: op, Args: args})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// Clear removes all commands from the path.
func (p *Path) Clear() {
	p.Commands = p.Commands[:0]
}

// Transformed returns a copy of the path with every point mapped through m.
// Affine maps keep bezier curves as bezier curves, so control points map
// exactly.
func (p *Path) Transformed(m f64.Aff3) *Path {
	out := &Path{Commands: make([]PathCommand, len(p.Commands))}
	for i, cmd := range p.Commands {
		args := make([]float64, len(cmd.Args))
		for j := 0; j+1 < len(cmd.Args); j += 2 {
			args[j], args[j+1] = apply(m, cmd.Args[j], cmd.Args[j+1])
		}
		out.Commands[i] = PathCommand{Op: cmd.Op, Args: args}
	}
	return out
}

// Bounds returns the bounding box of every point in the path, control points
// included. An empty path has zero bounds.
func (p *Path) Bounds() graphics.Rect {
	b := graphics.Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	seen := false
	for _, cmd := range p.Commands {
		for j := 0; j+1 < len(cmd.Args); j += 2 {
			seen = true
			b = b.Union(graphics.Rect{Left: cmd.Args[j], Top: cmd.Args[j+1], Right: cmd.Args[j], Bottom: cmd.Args[j+1]})
		}
	}
	if !seen {
		return graphics.Rect{}
	}
	return b
}

// apply maps (x, y) through the affine matrix m.
func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

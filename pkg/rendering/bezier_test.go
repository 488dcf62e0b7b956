package rendering

import (
	"testing"

	"github.com/go-drift/chartkit/pkg/graphics"
)

func TestBezierPath_RoundTrip(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.LineTo(10, 2)
	p.CubicTo(12, 4, 14, 8, 10, 12)
	p.Close()

	bp := ToBezierPath(p)
	if bp.ElementCount() != 4 {
		t.Fatalf("expected 4 elements, got %d", bp.ElementCount())
	}
	wantKinds := []BezierElementKind{BezierMoveTo, BezierLineTo, BezierCurveTo, BezierClosePath}
	for i, el := range bp.Elements {
		if el.Kind != wantKinds[i] {
			t.Errorf("element %d: expected %v, got %v", i, wantKinds[i], el.Kind)
		}
	}

	back := bp.Path()
	if len(back.Commands) != len(p.Commands) {
		t.Fatalf("expected %d commands, got %d", len(p.Commands), len(back.Commands))
	}
	for i, cmd := range back.Commands {
		orig := p.Commands[i]
		if cmd.Op != orig.Op {
			t.Errorf("command %d: expected %v, got %v", i, orig.Op, cmd.Op)
			continue
		}
		if len(cmd.Args) != len(orig.Args) {
			t.Errorf("command %d: expected %d args, got %d", i, len(orig.Args), len(cmd.Args))
			continue
		}
		for j := range cmd.Args {
			if d := cmd.Args[j] - orig.Args[j]; d > 1e-9 || d < -1e-9 {
				t.Errorf("command %d arg %d: expected %v, got %v", i, j, orig.Args[j], cmd.Args[j])
			}
		}
	}
}

func TestToBezierPath_ElevatesQuads(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadTo(3, 3, 6, 0)

	bp := ToBezierPath(p)
	if bp.ElementCount() != 2 {
		t.Fatalf("expected 2 elements, got %d", bp.ElementCount())
	}
	curve := bp.Elements[1]
	if curve.Kind != BezierCurveTo {
		t.Fatalf("expected curveTo, got %v", curve.Kind)
	}
	want := []graphics.Point{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 6, Y: 0}}
	for i, pt := range curve.Points {
		if !pt.Near(want[i], 1e-9) {
			t.Errorf("point %d: expected %v, got %v", i, want[i], pt)
		}
	}
}

func TestToBezierPath_SkipsMalformedCommands(t *testing.T) {
	p := &Path{Commands: []PathCommand{
		{Op: PathOpMoveTo, Args: []float64{1}},
		{Op: PathOpLineTo, Args: []float64{1, 1}},
	}}
	bp := ToBezierPath(p)
	if bp.ElementCount() != 1 || bp.Elements[0].Kind != BezierLineTo {
		t.Errorf("expected a single lineTo, got %+v", bp.Elements)
	}
}

func TestBezierPath_PathSkipsShortElements(t *testing.T) {
	bp := &BezierPath{Elements: []BezierElement{
		{Kind: BezierMoveTo, Points: []graphics.Point{{X: 1, Y: 1}}},
		{Kind: BezierCurveTo, Points: []graphics.Point{{X: 2, Y: 2}}},
		{Kind: BezierClosePath},
	}}
	p := bp.Path()
	if len(p.Commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(p.Commands))
	}
	if p.Commands[1].Op != PathOpClose {
		t.Errorf("expected close, got %v", p.Commands[1].Op)
	}
}

func TestBezierPath_BoundsMatchesPath(t *testing.T) {
	p := NewPath()
	p.MoveTo(-2, 3)
	p.CubicTo(0, -4, 6, 1, 5, 9)
	p.Close()

	if got, want := ToBezierPath(p).Bounds(), p.Bounds(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := (&BezierPath{}).Bounds(); got != (graphics.Rect{}) {
		t.Errorf("expected zero bounds, got %v", got)
	}
}

package animation

import (
	"github.com/go-drift/chartkit/pkg/graphics"
)

// Tween interpolates between Begin and End values based on animation progress.
//
// Tween maps a 0-1 phase of a [ChartAnimator] to any value range or type.
// Use the helper constructors ([TweenFloat64], [TweenColor], [TweenPoint],
// [TweenValues]) for common types, or create custom tweens with a Lerp function.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp interpolates between Begin and End at progress t in [0, 1].
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// TransformX returns the interpolated value at the animator's X phase.
func (tw *Tween[T]) TransformX(a *ChartAnimator) T {
	return tw.Evaluate(a.PhaseX())
}

// TransformY returns the interpolated value at the animator's Y phase.
func (tw *Tween[T]) TransformY(a *ChartAnimator) T {
	return tw.Evaluate(a.PhaseY())
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint linearly interpolates between two points.
func LerpPoint(a, b graphics.Point, t float64) graphics.Point {
	return graphics.Point{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpColor blends two colors in Lab space.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	return a.Lerp(b, t)
}

// LerpValues interpolates two data series element-wise. Missing elements are
// treated as zero, so series of different lengths grow or shrink in place.
func LerpValues(a, b []float64, t float64) []float64 {
	out := make([]float64, max(len(a), len(b)))
	for i := range out {
		var av, bv float64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = LerpFloat64(av, bv, t)
	}
	return out
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenPoint creates a tween for points.
func TweenPoint(begin, end graphics.Point) *Tween[graphics.Point] {
	return &Tween[graphics.Point]{Begin: begin, End: end, Lerp: LerpPoint}
}

// TweenColor creates a tween for colors.
func TweenColor(begin, end graphics.Color) *Tween[graphics.Color] {
	return &Tween[graphics.Color]{Begin: begin, End: end, Lerp: LerpColor}
}

// TweenValues creates a tween between two data series.
func TweenValues(begin, end []float64) *Tween[[]float64] {
	return &Tween[[]float64]{Begin: begin, End: end, Lerp: LerpValues}
}

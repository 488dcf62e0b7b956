package animation

import (
	"sort"

	"github.com/fogleman/ease"
)

// Easing maps linear progress t in [0, 1] to eased progress. Chart
// animations run one easing per axis.
type Easing func(t float64) float64

// Named easings. They match the option names accepted by [EasingByName].
var (
	EaseLinear       Easing = ease.Linear
	EaseInQuad       Easing = ease.InQuad
	EaseOutQuad      Easing = ease.OutQuad
	EaseInOutQuad    Easing = ease.InOutQuad
	EaseInCubic      Easing = ease.InCubic
	EaseOutCubic     Easing = ease.OutCubic
	EaseInOutCubic   Easing = ease.InOutCubic
	EaseInQuart      Easing = ease.InQuart
	EaseOutQuart     Easing = ease.OutQuart
	EaseInOutQuart   Easing = ease.InOutQuart
	EaseInSine       Easing = ease.InSine
	EaseOutSine      Easing = ease.OutSine
	EaseInOutSine    Easing = ease.InOutSine
	EaseInExpo       Easing = ease.InExpo
	EaseOutExpo      Easing = ease.OutExpo
	EaseInOutExpo    Easing = ease.InOutExpo
	EaseInCirc       Easing = ease.InCirc
	EaseOutCirc      Easing = ease.OutCirc
	EaseInOutCirc    Easing = ease.InOutCirc
	EaseInElastic    Easing = ease.InElastic
	EaseOutElastic   Easing = ease.OutElastic
	EaseInOutElastic Easing = ease.InOutElastic
	EaseInBack       Easing = ease.InBack
	EaseOutBack      Easing = ease.OutBack
	EaseInOutBack    Easing = ease.InOutBack
	EaseInBounce     Easing = ease.InBounce
	EaseOutBounce    Easing = ease.OutBounce
	EaseInOutBounce  Easing = ease.InOutBounce
)

var easingsByName = map[string]Easing{
	"linear":              EaseLinear,
	"ease_in_quad":        EaseInQuad,
	"ease_out_quad":       EaseOutQuad,
	"ease_in_out_quad":    EaseInOutQuad,
	"ease_in_cubic":       EaseInCubic,
	"ease_out_cubic":      EaseOutCubic,
	"ease_in_out_cubic":   EaseInOutCubic,
	"ease_in_quart":       EaseInQuart,
	"ease_out_quart":      EaseOutQuart,
	"ease_in_out_quart":   EaseInOutQuart,
	"ease_in_sine":        EaseInSine,
	"ease_out_sine":       EaseOutSine,
	"ease_in_out_sine":    EaseInOutSine,
	"ease_in_expo":        EaseInExpo,
	"ease_out_expo":       EaseOutExpo,
	"ease_in_out_expo":    EaseInOutExpo,
	"ease_in_circ":        EaseInCirc,
	"ease_out_circ":       EaseOutCirc,
	"ease_in_out_circ":    EaseInOutCirc,
	"ease_in_elastic":     EaseInElastic,
	"ease_out_elastic":    EaseOutElastic,
	"ease_in_out_elastic": EaseInOutElastic,
	"ease_in_back":        EaseInBack,
	"ease_out_back":       EaseOutBack,
	"ease_in_out_back":    EaseInOutBack,
	"ease_in_bounce":      EaseInBounce,
	"ease_out_bounce":     EaseOutBounce,
	"ease_in_out_bounce":  EaseInOutBounce,
}

// EasingByName returns the named easing. The empty name is linear.
func EasingByName(name string) (Easing, bool) {
	if name == "" {
		return EaseLinear, true
	}
	e, ok := easingsByName[name]
	return e, ok
}

// EasingNames returns every name EasingByName accepts, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easingsByName))
	for name := range easingsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CubicBezier returns an easing matching CSS cubic-bezier(x1, y1, x2, y2).
// The curve runs from (0,0) to (1,1); x1 and x2 should lie in [0, 1] so that
// x is monotonic and can be solved by bisection.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		lo, hi := 0.0, 1.0
		u := t
		for range 32 {
			x := bezierComponent(x1, x2, u)
			if x > t {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return bezierComponent(y1, y2, u)
	}
}

// bezierComponent evaluates one axis of a cubic with endpoints 0 and 1.
func bezierComponent(p1, p2, u float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

package animation

import (
	"time"

	"github.com/go-drift/chartkit/pkg/platform"
)

// ChartAnimator advances the X and Y phases of a chart animation from
// DisplayClock fires. Phases run from 0 to 1 and rest at 1 when idle, so a
// chart that never animates draws fully.
//
// All methods must be called on the UI goroutine, which is also where
// OnUpdate and OnStop run.
type ChartAnimator struct {
	// OnUpdate runs after each phase change.
	OnUpdate func(a *ChartAnimator)
	// OnStop runs when an animation ends or is stopped.
	OnStop func(a *ChartAnimator)

	phaseX float64
	phaseY float64

	start     time.Duration
	end       time.Duration
	durationX time.Duration
	durationY time.Duration
	easingX   Easing
	easingY   Easing
	enabledX  bool
	enabledY  bool
	running   bool

	clock *DisplayClock[ChartAnimator]
}

// NewChartAnimator creates an animator whose clock is attached to loop under
// mode. display may be nil, which selects the polled timer.
func NewChartAnimator(display platform.Display, loop *platform.RunLoop, mode platform.RunLoopMode, opts ...ClockOption) *ChartAnimator {
	a := &ChartAnimator{phaseX: 1, phaseY: 1}
	a.clock = NewDisplayClock(display, a, (*ChartAnimator).step, opts...)
	a.clock.Attach(loop, mode)
	return a
}

// PhaseX returns the X-axis progress in [0, 1] (easings may overshoot).
func (a *ChartAnimator) PhaseX() float64 { return a.phaseX }

// PhaseY returns the Y-axis progress in [0, 1] (easings may overshoot).
func (a *ChartAnimator) PhaseY() float64 { return a.phaseY }

// IsAnimating reports whether an animation is in progress.
func (a *ChartAnimator) IsAnimating() bool { return a.running }

// Clock exposes the underlying clock, mainly for its mode and timestamps.
func (a *ChartAnimator) Clock() *DisplayClock[ChartAnimator] { return a.clock }

// Animate runs both axes. An axis with a non-positive duration is left
// untouched. A nil easing is linear.
func (a *ChartAnimator) Animate(xDuration, yDuration time.Duration, easingX, easingY Easing) {
	a.Stop()

	a.start = a.clock.Elapsed()
	a.durationX, a.durationY = xDuration, yDuration
	a.end = a.start + max(xDuration, yDuration)
	a.easingX, a.easingY = orLinear(easingX), orLinear(easingY)
	a.enabledX = xDuration > 0
	a.enabledY = yDuration > 0

	if a.enabledX {
		a.phaseX = 0
	}
	if a.enabledY {
		a.phaseY = 0
	}
	if !a.enabledX && !a.enabledY {
		return
	}
	a.running = true
	a.clock.Start()
}

// AnimateX runs the X axis only.
func (a *ChartAnimator) AnimateX(duration time.Duration, easing Easing) {
	a.Animate(duration, 0, easing, nil)
}

// AnimateY runs the Y axis only.
func (a *ChartAnimator) AnimateY(duration time.Duration, easing Easing) {
	a.Animate(0, duration, nil, easing)
}

// Stop ends the animation. An animation interrupted midway jumps both phases
// to 1 so the chart is not left half drawn.
func (a *ChartAnimator) Stop() {
	a.clock.Stop()
	if !a.running {
		return
	}
	a.running = false
	a.enabledX, a.enabledY = false, false

	if a.phaseX != 1 || a.phaseY != 1 {
		a.phaseX, a.phaseY = 1, 1
		a.notifyUpdate()
	}
	if a.OnStop != nil {
		a.OnStop(a)
	}
}

// Close stops the animator and releases its clock.
func (a *ChartAnimator) Close() {
	a.Stop()
	a.clock.Close()
}

// step is the clock selector.
func (a *ChartAnimator) step(timestamp time.Duration) {
	if !a.running {
		return
	}
	if a.enabledX {
		a.phaseX = progress(timestamp-a.start, a.durationX, a.easingX)
	}
	if a.enabledY {
		a.phaseY = progress(timestamp-a.start, a.durationY, a.easingY)
	}
	a.notifyUpdate()

	if timestamp >= a.end {
		a.Stop()
	}
}

func (a *ChartAnimator) notifyUpdate() {
	if a.OnUpdate != nil {
		a.OnUpdate(a)
	}
}

func progress(elapsed, duration time.Duration, easing Easing) float64 {
	if duration <= 0 {
		return 1
	}
	t := float64(elapsed) / float64(duration)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return easing(t)
}

func orLinear(e Easing) Easing {
	if e == nil {
		return EaseLinear
	}
	return e
}

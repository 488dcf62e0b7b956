package animation_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/chartkit/pkg/animation"
	"github.com/go-drift/chartkit/pkg/platform"
	dtesting "github.com/go-drift/chartkit/pkg/testing"
)

type animatorHarness struct {
	fake     *dtesting.FakeClock
	display  *dtesting.ManualDisplay
	loop     *platform.RunLoop
	animator *animation.ChartAnimator
	updates  int
	stops    int
}

func newAnimatorHarness(t *testing.T) *animatorHarness {
	t.Helper()
	h := &animatorHarness{
		fake:    installFakeClock(t),
		display: dtesting.NewManualDisplay(2),
		loop:    platform.NewRunLoop(),
	}
	h.animator = animation.NewChartAnimator(h.display, h.loop, platform.ModeDefault)
	h.animator.OnUpdate = func(*animation.ChartAnimator) { h.updates++ }
	h.animator.OnStop = func(*animation.ChartAnimator) { h.stops++ }
	t.Cleanup(h.animator.Close)
	return h
}

// frame advances fake time by d and delivers one refresh tick.
func (h *animatorHarness) frame(d time.Duration) {
	h.fake.Advance(d)
	h.display.Link.Fire()
	h.loop.RunPending(platform.ModeDefault)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestChartAnimator_IdlePhasesAreComplete(t *testing.T) {
	h := newAnimatorHarness(t)
	if h.animator.PhaseX() != 1 || h.animator.PhaseY() != 1 {
		t.Errorf("idle phases = (%v, %v), want (1, 1)", h.animator.PhaseX(), h.animator.PhaseY())
	}
	if h.animator.IsAnimating() {
		t.Error("new animator reports animating")
	}
	if h.animator.Clock().Mode() != animation.ModeHardwareSynced {
		t.Errorf("clock mode = %v, want hardware_synced", h.animator.Clock().Mode())
	}
}

func TestChartAnimator_LinearProgress(t *testing.T) {
	h := newAnimatorHarness(t)
	h.animator.Animate(time.Second, 2*time.Second, animation.EaseLinear, nil)

	if h.animator.PhaseX() != 0 || h.animator.PhaseY() != 0 {
		t.Fatalf("phases after Animate = (%v, %v), want (0, 0)", h.animator.PhaseX(), h.animator.PhaseY())
	}
	if !h.display.Link.Armed() {
		t.Fatal("Animate did not start the clock")
	}

	h.frame(500 * time.Millisecond)
	if !near(h.animator.PhaseX(), 0.5) || !near(h.animator.PhaseY(), 0.25) {
		t.Errorf("phases at 500ms = (%v, %v), want (0.5, 0.25)", h.animator.PhaseX(), h.animator.PhaseY())
	}

	h.frame(time.Second)
	if !near(h.animator.PhaseX(), 1) || !near(h.animator.PhaseY(), 0.75) {
		t.Errorf("phases at 1.5s = (%v, %v), want (1, 0.75)", h.animator.PhaseX(), h.animator.PhaseY())
	}
	if h.stops != 0 {
		t.Fatal("animator stopped before the longest axis finished")
	}

	h.frame(time.Second)
	if h.animator.PhaseX() != 1 || h.animator.PhaseY() != 1 {
		t.Errorf("final phases = (%v, %v), want (1, 1)", h.animator.PhaseX(), h.animator.PhaseY())
	}
	if h.stops != 1 {
		t.Errorf("OnStop ran %d times, want 1", h.stops)
	}
	if h.animator.IsAnimating() || h.display.Link.Armed() {
		t.Error("animator still running after completion")
	}
	if h.updates != 3 {
		t.Errorf("OnUpdate ran %d times, want 3", h.updates)
	}
}

func TestChartAnimator_EasingApplied(t *testing.T) {
	h := newAnimatorHarness(t)
	h.animator.AnimateY(time.Second, animation.EaseInQuad)

	h.frame(500 * time.Millisecond)
	if !near(h.animator.PhaseY(), 0.25) {
		t.Errorf("PhaseY with in-quad at half time = %v, want 0.25", h.animator.PhaseY())
	}
	if h.animator.PhaseX() != 1 {
		t.Errorf("AnimateY touched PhaseX: %v", h.animator.PhaseX())
	}
}

func TestChartAnimator_StopMidwayCompletesPhases(t *testing.T) {
	h := newAnimatorHarness(t)
	h.animator.AnimateX(time.Second, nil)
	h.frame(250 * time.Millisecond)

	h.animator.Stop()
	if h.animator.PhaseX() != 1 {
		t.Errorf("PhaseX after Stop = %v, want 1", h.animator.PhaseX())
	}
	if h.stops != 1 {
		t.Errorf("OnStop ran %d times, want 1", h.stops)
	}

	h.animator.Stop()
	if h.stops != 1 {
		t.Error("second Stop notified again")
	}

	// Ticks after Stop change nothing.
	h.frame(250 * time.Millisecond)
	if h.animator.PhaseX() != 1 || h.loop.Pending() != 0 {
		t.Error("stopped animator reacted to a tick")
	}
}

func TestChartAnimator_ZeroDurationsDoNothing(t *testing.T) {
	h := newAnimatorHarness(t)
	h.animator.Animate(0, 0, nil, nil)
	if h.animator.IsAnimating() || h.display.Link.Armed() {
		t.Error("zero-duration animation started the clock")
	}
	if h.animator.PhaseX() != 1 || h.animator.PhaseY() != 1 {
		t.Error("zero-duration animation reset the phases")
	}
}

func TestChartAnimator_RestartReplacesAnimation(t *testing.T) {
	h := newAnimatorHarness(t)
	h.animator.AnimateX(time.Second, nil)
	h.frame(500 * time.Millisecond)

	h.animator.AnimateX(time.Second, nil)
	if h.animator.PhaseX() != 0 {
		t.Fatalf("PhaseX after restart = %v, want 0", h.animator.PhaseX())
	}
	h.frame(100 * time.Millisecond)
	if !near(h.animator.PhaseX(), 0.1) {
		t.Errorf("PhaseX = %v, want 0.1 measured from the restart", h.animator.PhaseX())
	}
}

func TestChartAnimator_TimerFallback(t *testing.T) {
	loop := platform.NewRunLoop()
	a := animation.NewChartAnimator(nil, loop, platform.ModeDefault, animation.WithFramesPerSecond(240))
	defer a.Close()
	if a.Clock().Mode() != animation.ModePolledTimer {
		t.Fatalf("Mode() = %v, want polled_timer", a.Clock().Mode())
	}
	done := false
	a.OnStop = func(*animation.ChartAnimator) { done = true }
	a.Animate(30*time.Millisecond, 30*time.Millisecond, nil, nil)

	deadline := time.Now().Add(2 * time.Second)
	for !done && time.Now().Before(deadline) {
		loop.RunPending(platform.ModeDefault)
		time.Sleep(time.Millisecond)
	}
	if !done {
		t.Fatal("timer-driven animation did not finish")
	}
	if a.PhaseX() != 1 || a.PhaseY() != 1 {
		t.Errorf("final phases = (%v, %v), want (1, 1)", a.PhaseX(), a.PhaseY())
	}
}

func TestChartAnimator_StopsOnFinalFrame(t *testing.T) {
	h := newAnimatorHarness(t)
	h.animator.Animate(time.Second, time.Second, nil, nil)

	for i := 1; i < 50; i++ {
		h.fake.AdvanceFrames(1, 50)
		h.display.Link.Fire()
		h.loop.RunPending(platform.ModeDefault)
	}
	if !h.animator.IsAnimating() {
		t.Fatal("animator stopped before its last frame")
	}
	if !near(h.animator.PhaseX(), 0.98) {
		t.Errorf("PhaseX() after 49 frames = %v, want 0.98", h.animator.PhaseX())
	}

	h.fake.AdvanceFrames(1, 50)
	h.display.Link.Fire()
	h.loop.RunPending(platform.ModeDefault)
	if h.animator.IsAnimating() || h.stops != 1 {
		t.Errorf("animating=%v stops=%d after the last frame, want false and 1", h.animator.IsAnimating(), h.stops)
	}
}

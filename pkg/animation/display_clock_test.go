package animation_test

import (
	"bytes"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/chartkit/pkg/animation"
	"github.com/go-drift/chartkit/pkg/errors"
	"github.com/go-drift/chartkit/pkg/platform"
	dtesting "github.com/go-drift/chartkit/pkg/testing"
)

type fireLog struct {
	loop   *platform.RunLoop
	fires  int
	onLoop []bool
	stamps []time.Duration
}

func (p *fireLog) tick(ts time.Duration) {
	p.fires++
	p.stamps = append(p.stamps, ts)
	if p.loop != nil {
		p.onLoop = append(p.onLoop, p.loop.OnLoop())
	}
}

func installFakeClock(t *testing.T) *dtesting.FakeClock {
	t.Helper()
	clk := dtesting.NewFakeClock()
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clk
}

func newHardwareClock(t *testing.T, opts ...animation.ClockOption) (*animation.DisplayClock[fireLog], *fireLog, *dtesting.ManualLink, *platform.RunLoop) {
	t.Helper()
	display := dtesting.NewManualDisplay(2)
	loop := platform.NewRunLoop()
	p := &fireLog{loop: loop}
	clk := animation.NewDisplayClock(display, p, (*fireLog).tick, opts...)
	t.Cleanup(clk.Close)
	clk.Attach(loop, platform.ModeDefault)
	return clk, p, display.Link, loop
}

func TestDisplayClock_ModeSelection(t *testing.T) {
	p := &fireLog{}

	hw := animation.NewDisplayClock(dtesting.NewManualDisplay(1), p, (*fireLog).tick)
	defer hw.Close()
	if hw.Mode() != animation.ModeHardwareSynced {
		t.Errorf("Mode() = %v, want hardware_synced", hw.Mode())
	}

	unavailable := dtesting.NewManualDisplay(1)
	unavailable.Unavailable = true
	fallback := animation.NewDisplayClock(unavailable, p, (*fireLog).tick)
	defer fallback.Close()
	if fallback.Mode() != animation.ModePolledTimer {
		t.Errorf("Mode() = %v, want polled_timer", fallback.Mode())
	}

	headless := animation.NewDisplayClock(&platform.SimulatedDisplay{Headless: true}, p, (*fireLog).tick)
	defer headless.Close()
	if headless.Mode() != animation.ModePolledTimer {
		t.Errorf("headless Mode() = %v, want polled_timer", headless.Mode())
	}

	none := animation.NewDisplayClock[fireLog](nil, p, (*fireLog).tick)
	defer none.Close()
	if none.Mode() != animation.ModePolledTimer {
		t.Errorf("nil display Mode() = %v, want polled_timer", none.Mode())
	}
}

func TestDisplayClock_StopIsAlwaysSafe(t *testing.T) {
	clk, _, link, _ := newHardwareClock(t)

	clk.Stop()
	clk.Stop()
	if clk.IsRunning() || link.Armed() {
		t.Fatal("clock armed after Stop before Start")
	}

	clk.Start()
	if !clk.IsRunning() || !link.Armed() {
		t.Fatal("Start did not arm the refresh link")
	}
	clk.Stop()
	clk.Stop()
	if clk.IsRunning() || link.Armed() {
		t.Error("clock still armed after Stop")
	}

	polled := animation.NewDisplayClock[fireLog](nil, &fireLog{}, (*fireLog).tick)
	defer polled.Close()
	polled.Stop()
	polled.Start()
	polled.Stop()
	polled.Stop()
	if polled.IsRunning() {
		t.Error("polled clock still running after Stop")
	}
}

func TestDisplayClock_FireIsDeliveredOnLoop(t *testing.T) {
	clk, p, link, loop := newHardwareClock(t)
	clk.Start()

	if !link.Fire() {
		t.Fatal("link was not armed")
	}
	if p.fires != 0 {
		t.Fatal("selector ran on the refresh goroutine")
	}
	if loop.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1 posted fire", loop.Pending())
	}

	loop.RunPending(platform.ModeDefault)
	if p.fires != 1 {
		t.Fatalf("fires = %d, want 1", p.fires)
	}
	for i, on := range p.onLoop {
		if !on {
			t.Errorf("fire %d ran outside the run loop", i)
		}
	}
}

func TestDisplayClock_TimestampNeverDecreases(t *testing.T) {
	fake := installFakeClock(t)
	clk, p, link, loop := newHardwareClock(t)
	if clk.Timestamp() != 0 {
		t.Fatalf("initial Timestamp() = %v, want 0", clk.Timestamp())
	}
	clk.Start()

	for i := 1; i <= 3; i++ {
		fake.Advance(16 * time.Millisecond)
		link.Fire()
		loop.RunPending(platform.ModeDefault)
		if want := time.Duration(i) * 16 * time.Millisecond; clk.Timestamp() != want {
			t.Errorf("tick %d: Timestamp() = %v, want %v", i, clk.Timestamp(), want)
		}
	}

	// A clock that jumps backwards must not move the timestamp backwards.
	fake.Advance(-time.Second)
	link.Fire()
	loop.RunPending(platform.ModeDefault)

	for i := 1; i < len(p.stamps); i++ {
		if p.stamps[i] < p.stamps[i-1] {
			t.Fatalf("timestamps decreased: %v", p.stamps)
		}
	}
	if clk.Timestamp() != 48*time.Millisecond {
		t.Errorf("Timestamp() = %v after backwards jump, want 48ms", clk.Timestamp())
	}
}

func TestDisplayClock_DropsTicksWhilePending(t *testing.T) {
	clk, p, link, loop := newHardwareClock(t)
	clk.Start()

	for range 3 {
		link.Fire()
	}
	if loop.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", loop.Pending())
	}
	if clk.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", clk.Dropped())
	}
	loop.RunPending(platform.ModeDefault)
	if p.fires != 1 {
		t.Errorf("fires = %d, want 1", p.fires)
	}

	link.Fire()
	loop.RunPending(platform.ModeDefault)
	if p.fires != 2 {
		t.Errorf("fires = %d after drain, want 2", p.fires)
	}
}

func TestDisplayClock_QueuePolicyPostsEveryTick(t *testing.T) {
	clk, p, link, loop := newHardwareClock(t, animation.WithOverloadPolicy(animation.OverloadQueue))
	clk.Start()

	for range 3 {
		link.Fire()
	}
	loop.RunPending(platform.ModeDefault)
	if p.fires != 3 {
		t.Errorf("fires = %d, want 3", p.fires)
	}
	if clk.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", clk.Dropped())
	}
}

func TestDisplayClock_StopDiscardsPostedFires(t *testing.T) {
	clk, p, link, loop := newHardwareClock(t)
	clk.Start()
	link.Fire()
	clk.Stop()

	loop.RunPending(platform.ModeDefault)
	if p.fires != 0 {
		t.Errorf("fires = %d, want 0 after Stop", p.fires)
	}

	clk.Start()
	link.Fire()
	loop.RunPending(platform.ModeDefault)
	if p.fires != 1 {
		t.Errorf("fires = %d after restart, want 1", p.fires)
	}
}

func TestDisplayClock_ReattachDiscardsFiresOnOldLoop(t *testing.T) {
	clk, p, link, oldLoop := newHardwareClock(t)
	clk.Start()
	link.Fire()
	if oldLoop.Pending() != 1 {
		t.Fatalf("Pending() = %d on the first loop, want 1", oldLoop.Pending())
	}

	newLoop := platform.NewRunLoop()
	clk.Attach(newLoop, platform.ModeDefault)
	if !clk.IsRunning() || !link.Armed() {
		t.Fatal("re-attaching stopped a running clock")
	}

	for range 5 {
		link.Fire()
		newLoop.RunPending(platform.ModeDefault)
	}
	if p.fires != 5 {
		t.Errorf("fires = %d on the new loop, want 5", p.fires)
	}
	if clk.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", clk.Dropped())
	}

	oldLoop.RunPending(platform.ModeDefault)
	if p.fires != 5 {
		t.Errorf("stale fire from the first loop ran: fires = %d", p.fires)
	}
}

func TestDisplayClock_ReattachSameLoopKeepsPendingFire(t *testing.T) {
	clk, p, link, loop := newHardwareClock(t)
	clk.Start()
	link.Fire()

	clk.Attach(loop, platform.ModeCommon)
	loop.RunPending(platform.ModeDefault)
	if p.fires != 1 {
		t.Errorf("fires = %d, want the queued fire to survive a mode change", p.fires)
	}
}

func TestDisplayClock_DroppedTicksAreLogged(t *testing.T) {
	var buf bytes.Buffer
	errors.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { errors.SetLogger(nil) })

	clk, _, link, _ := newHardwareClock(t)
	clk.Start()
	link.Fire()
	link.Fire()

	if clk.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", clk.Dropped())
	}
	if !strings.Contains(buf.String(), "clock tick dropped") {
		t.Errorf("expected a debug record for the dropped tick, got %q", buf.String())
	}
}

func TestDisplayClock_ModeScopedDelivery(t *testing.T) {
	display := dtesting.NewManualDisplay(1)
	loop := platform.NewRunLoop()
	p := &fireLog{}
	clk := animation.NewDisplayClock(display, p, (*fireLog).tick)
	defer clk.Close()
	clk.Attach(loop, platform.ModeTracking)
	clk.Start()

	display.Link.Fire()
	loop.RunPending(platform.ModeDefault)
	if p.fires != 0 {
		t.Fatal("tracking-mode fire ran in default mode")
	}
	loop.RunPending(platform.ModeTracking)
	if p.fires != 1 {
		t.Errorf("fires = %d, want 1", p.fires)
	}
}

func newCollectableClock(display platform.Display, loop *platform.RunLoop, fires *int) *animation.DisplayClock[fireLog] {
	p := &fireLog{}
	clk := animation.NewDisplayClock(display, p, func(*fireLog, time.Duration) { *fires++ })
	clk.Attach(loop, platform.ModeDefault)
	return clk
}

func TestDisplayClock_DeadTargetIsNoop(t *testing.T) {
	display := dtesting.NewManualDisplay(1)
	loop := platform.NewRunLoop()
	fires := 0
	clk := newCollectableClock(display, loop, &fires)
	defer clk.Close()
	clk.Start()

	runtime.GC()
	runtime.GC()

	display.Link.Fire()
	loop.RunPending(platform.ModeDefault)
	if fires != 0 {
		t.Errorf("selector ran %d times for a collected target", fires)
	}
	if clk.Timestamp() < 0 {
		t.Error("timestamp went negative")
	}
}

func TestDisplayClock_DetachedUsesGlobalDispatch(t *testing.T) {
	display := dtesting.NewManualDisplay(1)
	p := &fireLog{}
	clk := animation.NewDisplayClock(display, p, (*fireLog).tick)
	defer clk.Close()
	clk.Start()

	display.Link.Fire()
	if clk.Dropped() != 1 {
		t.Fatalf("Dropped() = %d with no dispatcher, want 1", clk.Dropped())
	}

	loop := platform.NewRunLoop()
	platform.SetupTestDispatch(loop, t.Cleanup)
	display.Link.Fire()
	loop.RunPending(platform.ModeDefault)
	if p.fires != 1 {
		t.Errorf("fires = %d, want 1 via global dispatch", p.fires)
	}
}

func TestDisplayClock_DetachDisarms(t *testing.T) {
	clk, p, link, loop := newHardwareClock(t)
	clk.Start()
	clk.Detach()
	if link.Armed() {
		t.Fatal("Detach left the link armed")
	}
	clk.Start()
	link.Fire()
	if loop.Pending() != 0 {
		t.Error("detached clock posted to its old loop")
	}
	if p.fires != 0 {
		t.Error("detached clock fired synchronously")
	}
}

func TestDisplayClock_CloseReleasesLink(t *testing.T) {
	display := dtesting.NewManualDisplay(1)
	clk := animation.NewDisplayClock(display, &fireLog{}, (*fireLog).tick)
	clk.Start()
	clk.Close()
	if !display.Link.Closed() {
		t.Fatal("Close did not release the refresh link")
	}
	clk.Start()
	if clk.IsRunning() || display.Link.Armed() {
		t.Error("closed clock restarted")
	}
	clk.Close()
}

func TestDisplayClock_PolledTimerFires(t *testing.T) {
	loop := platform.NewRunLoop()
	p := &fireLog{loop: loop}
	clk := animation.NewDisplayClock[fireLog](nil, p, (*fireLog).tick, animation.WithFramesPerSecond(200))
	defer clk.Close()
	clk.Attach(loop, platform.ModeDefault)
	clk.Start()

	deadline := time.Now().Add(2 * time.Second)
	for p.fires < 2 && time.Now().Before(deadline) {
		loop.RunPending(platform.ModeDefault)
		time.Sleep(2 * time.Millisecond)
	}
	clk.Stop()
	if p.fires < 2 {
		t.Fatalf("polled timer fired %d times, want at least 2", p.fires)
	}
	for i := 1; i < len(p.stamps); i++ {
		if p.stamps[i] < p.stamps[i-1] {
			t.Fatalf("timestamps decreased: %v", p.stamps)
		}
	}
	for i, on := range p.onLoop {
		if !on {
			t.Errorf("fire %d ran outside the run loop", i)
		}
	}
}

func TestParseOverloadPolicy(t *testing.T) {
	tests := []struct {
		name    string
		want    animation.OverloadPolicy
		wantErr bool
	}{
		{"", animation.OverloadDrop, false},
		{"drop", animation.OverloadDrop, false},
		{"queue", animation.OverloadQueue, false},
		{"coalesce", animation.OverloadDrop, true},
	}
	for _, tt := range tests {
		got, err := animation.ParseOverloadPolicy(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOverloadPolicy(%q) = %v, %v", tt.name, got, err)
		}
		if !tt.wantErr && tt.name != "" && got.String() != tt.name {
			t.Errorf("String() = %q, want %q", got.String(), tt.name)
		}
	}
}

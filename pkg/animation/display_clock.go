package animation

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"weak"

	"github.com/go-drift/chartkit/pkg/errors"
	"github.com/go-drift/chartkit/pkg/platform"
)

// DefaultFramesPerSecond is the rate of the polled timer used when no
// refresh link is available.
const DefaultFramesPerSecond = 60

// Mode is the firing mechanism a DisplayClock settled on at construction.
type Mode int

const (
	// ModeHardwareSynced fires from a display refresh link.
	ModeHardwareSynced Mode = iota
	// ModePolledTimer fires from a fixed-interval timer.
	ModePolledTimer
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeHardwareSynced:
		return "hardware_synced"
	case ModePolledTimer:
		return "polled_timer"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// OverloadPolicy decides what happens to a tick that arrives while the
// previously posted fire has not run on the UI goroutine yet.
type OverloadPolicy int

const (
	// OverloadDrop discards the tick. At most one fire is pending at a time.
	OverloadDrop OverloadPolicy = iota
	// OverloadQueue posts every tick.
	OverloadQueue
)

// String returns the configuration name of the policy.
func (p OverloadPolicy) String() string {
	switch p {
	case OverloadDrop:
		return "drop"
	case OverloadQueue:
		return "queue"
	default:
		return fmt.Sprintf("OverloadPolicy(%d)", int(p))
	}
}

// ParseOverloadPolicy resolves a policy name. The empty string means drop.
func ParseOverloadPolicy(name string) (OverloadPolicy, error) {
	switch name {
	case "drop", "":
		return OverloadDrop, nil
	case "queue":
		return OverloadQueue, nil
	default:
		return OverloadDrop, fmt.Errorf("unknown overload policy %q", name)
	}
}

// Selector is the callback a DisplayClock invokes on its target. It receives
// the timestamp of the tick, measured from the clock's creation.
//
// A Selector must not capture the target itself, or the clock would keep it
// alive. Method expressions such as (*Chart).step are the usual form.
type Selector[T any] func(target *T, timestamp time.Duration)

// ClockOption configures a DisplayClock.
type ClockOption func(*clockOptions)

type clockOptions struct {
	fps    float64
	policy OverloadPolicy
}

// WithFramesPerSecond sets the polled timer rate. Non-positive values keep
// DefaultFramesPerSecond.
func WithFramesPerSecond(fps float64) ClockOption {
	return func(o *clockOptions) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithOverloadPolicy sets the overload policy. The default is OverloadDrop.
func WithOverloadPolicy(p OverloadPolicy) ClockOption {
	return func(o *clockOptions) { o.policy = p }
}

type attachment struct {
	loop *platform.RunLoop
	mode platform.RunLoopMode
}

// clockCore holds everything the firing goroutines touch. It never points
// back at the DisplayClock handle, so an abandoned handle can be collected
// and its cleanup can release the mechanism.
type clockCore[T any] struct {
	target   weak.Pointer[T]
	selector Selector[T]
	mode     Mode
	policy   OverloadPolicy
	interval time.Duration
	epoch    time.Time

	mu        sync.Mutex
	link      platform.RefreshLink
	timerStop chan struct{}
	timerDone chan struct{}
	running   bool
	closed    bool

	attached   atomic.Pointer[attachment]
	generation atomic.Uint64
	pending    atomic.Bool
	dropped    atomic.Uint64
	timestamp  atomic.Int64
}

// DisplayClock calls a selector on a target once per display refresh, always
// on the UI goroutine.
//
// At construction the clock tries to open a refresh link on the display. If
// that fails (no display, headless, restricted) it falls back to a polled
// timer at DefaultFramesPerSecond. The choice is final.
//
// Ticks arrive on a goroutine owned by the link or timer. Each tick captures
// its timestamp there and posts a fire to the attached RunLoop (or to
// [platform.Dispatch] when detached). The fire records the timestamp and
// invokes the selector if the target is still alive. Fires posted before a
// Stop are discarded when they run.
//
// The target is held weakly. Once it is collected, fires do nothing.
type DisplayClock[T any] struct {
	core    *clockCore[T]
	cleanup runtime.Cleanup
}

// NewDisplayClock creates a clock for target. display may be nil, which
// selects the polled timer.
func NewDisplayClock[T any](display platform.Display, target *T, selector Selector[T], opts ...ClockOption) *DisplayClock[T] {
	o := clockOptions{fps: DefaultFramesPerSecond}
	for _, opt := range opts {
		opt(&o)
	}

	core := &clockCore[T]{
		target:   weak.Make(target),
		selector: selector,
		mode:     ModePolledTimer,
		policy:   o.policy,
		interval: time.Duration(float64(time.Second) / o.fps),
		epoch:    Now(),
	}
	if display != nil {
		link, err := display.OpenRefreshLink()
		if err == nil && link != nil {
			core.link = link
			core.mode = ModeHardwareSynced
		} else {
			errors.Logger().Debug("refresh link unavailable, using polled timer",
				slog.Float64("fps", o.fps), slog.Any("err", err))
		}
	}

	c := &DisplayClock[T]{core: core}
	c.cleanup = runtime.AddCleanup(c, (*clockCore[T]).close, core)
	return c
}

// Mode returns the mechanism chosen at construction.
func (c *DisplayClock[T]) Mode() Mode {
	return c.core.mode
}

// Timestamp returns the timestamp of the most recent fire, or zero if the
// clock has never fired. It never decreases.
func (c *DisplayClock[T]) Timestamp() time.Duration {
	return time.Duration(c.core.timestamp.Load())
}

// Elapsed returns the time since the clock was created, on the same scale as
// Timestamp.
func (c *DisplayClock[T]) Elapsed() time.Duration {
	return Since(c.core.epoch)
}

// Dropped returns the number of ticks discarded by the overload policy or
// because no UI dispatcher was available.
func (c *DisplayClock[T]) Dropped() uint64 {
	return c.core.dropped.Load()
}

// IsRunning reports whether the mechanism is armed.
func (c *DisplayClock[T]) IsRunning() bool {
	c.core.mu.Lock()
	defer c.core.mu.Unlock()
	return c.core.running
}

// Attach routes fires to loop under mode. Attaching twice without Detach
// replaces the previous registration. Fires still queued on a previous loop
// are discarded, and a running clock keeps running on the new loop.
func (c *DisplayClock[T]) Attach(loop *platform.RunLoop, mode platform.RunLoopMode) {
	if loop == nil {
		return
	}
	c.core.attach(&attachment{loop: loop, mode: mode})
}

// Detach stops the clock and removes the run loop registration.
func (c *DisplayClock[T]) Detach() {
	c.core.stop()
	c.core.attached.Store(nil)
}

// Start arms the mechanism. Starting a running clock does nothing, and a
// closed clock never starts.
func (c *DisplayClock[T]) Start() {
	c.core.start()
}

// Stop disarms both mechanisms. It is safe to call at any time, any number
// of times, including before Start.
func (c *DisplayClock[T]) Stop() {
	c.core.stop()
}

// Close stops the clock and releases the refresh link. A clock that is
// garbage collected without Close is closed by a runtime cleanup.
func (c *DisplayClock[T]) Close() {
	c.cleanup.Stop()
	c.core.close()
}

func (c *clockCore[T]) attach(a *attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.attached.Swap(a)
	if prev != nil && prev.loop == a.loop {
		return
	}
	// A fire pending elsewhere may never run and would block every later
	// tick under OverloadDrop.
	if !c.running && !c.pending.Load() {
		return
	}
	wasRunning := c.running
	c.stopLocked()
	if wasRunning {
		c.startLocked()
	}
}

func (c *clockCore[T]) start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked()
}

func (c *clockCore[T]) startLocked() {
	if c.closed || c.running {
		return
	}
	gen := c.generation.Load()
	switch c.mode {
	case ModeHardwareSynced:
		c.link.Start(func() { c.tick(gen) })
	case ModePolledTimer:
		stop, done := make(chan struct{}), make(chan struct{})
		c.timerStop, c.timerDone = stop, done
		go c.poll(gen, stop, done)
	}
	c.running = true
}

func (c *clockCore[T]) poll(gen uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick(gen)
		}
	}
}

// tick runs on the producer goroutine. Apart from atomics it only reads
// immutable fields; all other state is touched by the posted fire.
func (c *clockCore[T]) tick(gen uint64) {
	ts := Since(c.epoch)
	if c.policy == OverloadDrop && !c.pending.CompareAndSwap(false, true) {
		c.drop("previous fire pending", ts)
		return
	}
	task := func() { c.fire(gen, ts) }
	if a := c.attached.Load(); a != nil {
		a.loop.Post(a.mode, task)
		return
	}
	if !platform.Dispatch(task) {
		c.pending.Store(false)
		c.drop("no UI dispatcher", ts)
	}
}

func (c *clockCore[T]) drop(reason string, ts time.Duration) {
	n := c.dropped.Add(1)
	errors.Logger().Debug("clock tick dropped",
		slog.String("reason", reason), slog.Duration("timestamp", ts), slog.Uint64("dropped", n))
}

// fire runs on the UI goroutine.
func (c *clockCore[T]) fire(gen uint64, ts time.Duration) {
	if gen != c.generation.Load() {
		return
	}
	c.pending.Store(false)
	if prev := time.Duration(c.timestamp.Load()); ts < prev {
		ts = prev
	}
	c.timestamp.Store(int64(ts))

	target := c.target.Value()
	if target == nil || c.selector == nil {
		return
	}
	c.selector(target, ts)
}

func (c *clockCore[T]) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *clockCore[T]) stopLocked() {
	c.generation.Add(1)
	if c.link != nil {
		c.link.Stop()
	}
	if c.timerStop != nil {
		close(c.timerStop)
		<-c.timerDone
		c.timerStop, c.timerDone = nil, nil
	}
	c.pending.Store(false)
	c.running = false
}

func (c *clockCore[T]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopLocked()
	c.closed = true
	if c.link == nil {
		return
	}
	if err := c.link.Close(); err != nil {
		errors.Report(&errors.ChartError{
			Op:   "animation.DisplayClock.Close",
			Kind: errors.KindPlatform,
			Err:  err,
		})
	}
}

package platform

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-drift/chartkit/pkg/errors"
)

// RunLoopMode names a scheduling mode. Tasks posted under a mode only run
// when the loop is drained in that mode, except [ModeCommon] tasks which run
// in every mode.
type RunLoopMode string

const (
	// ModeDefault is the mode the host drains while idle.
	ModeDefault RunLoopMode = "default"
	// ModeTracking is the mode the host drains while tracking a gesture or scroll.
	ModeTracking RunLoopMode = "tracking"
	// ModeCommon tasks run in every mode.
	ModeCommon RunLoopMode = "common"
)

type runLoopTask struct {
	mode RunLoopMode
	fn   func()
}

// RunLoop is the single-consumer work queue owned by the UI (main) goroutine.
//
// Post is safe to call from any goroutine. RunPending and Run must only be
// called from the goroutine that owns the loop; every task runs there.
type RunLoop struct {
	mu       sync.Mutex
	queue    []runLoopTask
	wake     chan struct{}
	draining atomic.Int32 // nested drain depth
}

// NewRunLoop creates an empty run loop.
func NewRunLoop() *RunLoop {
	return &RunLoop{wake: make(chan struct{}, 1)}
}

// Post schedules fn to run on the loop's goroutine under the given mode.
// Nil callbacks are ignored.
func (l *RunLoop) Post(mode RunLoopMode, fn func()) {
	if fn == nil {
		return
	}
	if mode == "" {
		mode = ModeDefault
	}
	l.mu.Lock()
	l.queue = append(l.queue, runLoopTask{mode: mode, fn: fn})
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Dispatch posts fn under [ModeCommon]. It matches the signature expected by
// [RegisterDispatch].
func (l *RunLoop) Dispatch(fn func()) {
	l.Post(ModeCommon, fn)
}

// Pending returns the number of queued tasks across all modes.
func (l *RunLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// RunPending runs every queued task eligible for mode, in posting order, and
// returns how many ran. Tasks posted while draining wait for the next call.
func (l *RunLoop) RunPending(mode RunLoopMode) int {
	l.mu.Lock()
	var ready []runLoopTask
	kept := l.queue[:0]
	for _, task := range l.queue {
		if task.mode == mode || task.mode == ModeCommon {
			ready = append(ready, task)
		} else {
			kept = append(kept, task)
		}
	}
	// Clear the tail so dropped closures can be collected.
	for i := len(kept); i < len(l.queue); i++ {
		l.queue[i] = runLoopTask{}
	}
	l.queue = kept
	l.mu.Unlock()

	l.draining.Add(1)
	defer l.draining.Add(-1)
	for _, task := range ready {
		l.runTask(task.fn)
	}
	return len(ready)
}

func (l *RunLoop) runTask(fn func()) {
	defer errors.Recover("platform.RunLoop")
	fn()
}

// Run drains the loop in mode every time work is posted, until ctx is done.
func (l *RunLoop) Run(ctx context.Context, mode RunLoopMode) error {
	for {
		l.RunPending(mode)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// OnLoop reports whether a drain of this loop is in progress, counting
// drains nested inside a task. It is a drain check, not a goroutine identity
// check: another goroutine calling it during a drain also sees true. Only
// code running inside a task can rely on it to mean "on the loop goroutine".
func (l *RunLoop) OnLoop() bool {
	return l.draining.Load() > 0
}

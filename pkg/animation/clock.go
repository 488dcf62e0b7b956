package animation

import (
	"sync/atomic"
	"time"
)

// Clock provides time for animations. The default implementation uses
// system time. Tests can inject a fake clock via SetClock to control
// animation timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time, which carries a monotonic reading.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type clockBox struct{ c Clock }

// clock is the package-level time source, replaceable for testing. Refresh
// links read it from their own goroutines, so it is swapped atomically.
var clock atomic.Pointer[clockBox]

func init() {
	clock.Store(&clockBox{c: realClock{}})
}

// SetClock replaces the animation clock. Returns the previous clock
// so callers can restore it during cleanup. Nil restores system time.
func SetClock(c Clock) Clock {
	if c == nil {
		c = realClock{}
	}
	return clock.Swap(&clockBox{c: c}).c
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Load().c.Now() }

// Since returns the time elapsed since t according to the active clock.
func Since(t time.Time) time.Duration { return Now().Sub(t) }

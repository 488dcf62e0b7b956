package testing

import (
	"sync/atomic"
	"time"
)

var fakeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeClock is an animation clock that only moves when a test moves it.
// It reads as a fixed epoch plus an offset, so refresh links on their own
// goroutines can read it while the test goroutine advances it.
type FakeClock struct {
	offset atomic.Int64
}

// NewFakeClock returns a FakeClock at the fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return fakeEpoch.Add(c.Elapsed())
}

// Elapsed returns how far the clock has moved since it was created.
func (c *FakeClock) Elapsed() time.Duration {
	return time.Duration(c.offset.Load())
}

// Advance moves the clock by d. A negative d steps it backwards, like a wall
// clock adjustment.
func (c *FakeClock) Advance(d time.Duration) {
	c.offset.Add(int64(d))
}

// AdvanceFrames moves the clock by n refresh intervals at fps and returns
// the distance moved. A non-positive fps means 60.
func (c *FakeClock) AdvanceFrames(n int, fps float64) time.Duration {
	if !(fps > 0) {
		fps = 60
	}
	d := time.Duration(float64(n) * float64(time.Second) / fps)
	c.Advance(d)
	return d
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.offset.Store(int64(t.Sub(fakeEpoch)))
}

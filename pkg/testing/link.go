package testing

import (
	"sync"

	"github.com/go-drift/chartkit/pkg/platform"
)

// ManualLink is a platform.RefreshLink that only fires when a test calls Fire.
type ManualLink struct {
	mu      sync.Mutex
	handler func()
	closed  bool
	starts  int
	stops   int
}

// Start arms the link with handler.
func (l *ManualLink) Start(handler func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.handler = handler
	l.starts++
}

// Stop disarms the link. It waits for an in-flight Fire to finish.
func (l *ManualLink) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = nil
	l.stops++
}

// Close disarms the link permanently.
func (l *ManualLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = nil
	l.closed = true
	return nil
}

// Fire runs the armed handler on a new goroutine, the way a display refresh
// thread would, and waits for it to return. It reports whether the link was
// armed.
func (l *ManualLink) Fire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := l.handler
	if h == nil {
		return false
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		h()
	}()
	<-done
	return true
}

// Armed reports whether a handler is installed.
func (l *ManualLink) Armed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handler != nil
}

// Closed reports whether Close was called.
func (l *ManualLink) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Starts returns how many times Start armed the link.
func (l *ManualLink) Starts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.starts
}

// ManualDisplay is a platform.Display whose refresh link is a ManualLink.
// With Unavailable set, OpenRefreshLink fails like a headless display.
type ManualDisplay struct {
	PixelScale  float64
	Link        *ManualLink
	Unavailable bool
}

// NewManualDisplay returns a display with the given pixel density.
func NewManualDisplay(scale float64) *ManualDisplay {
	return &ManualDisplay{PixelScale: scale, Link: &ManualLink{}}
}

// Scale returns the configured pixel density.
func (d *ManualDisplay) Scale() float64 { return d.PixelScale }

// RefreshRate reports 60 Hz.
func (d *ManualDisplay) RefreshRate() float64 { return 60 }

// OpenRefreshLink returns the display's ManualLink.
func (d *ManualDisplay) OpenRefreshLink() (platform.RefreshLink, error) {
	if d.Unavailable || d.Link == nil {
		return nil, platform.ErrNoRefreshLink
	}
	return d.Link, nil
}

package platform

import (
	stderrors "errors"
	"sync"
	"time"
)

// ErrNoRefreshLink is returned by displays that cannot provide a hardware
// refresh callback, for example when no display is active.
var ErrNoRefreshLink = stderrors.New("platform: refresh link unavailable")

// Display describes a physical screen.
type Display interface {
	// Scale returns the pixel density (device pixels per logical unit).
	Scale() float64
	// RefreshRate returns the refresh rate in hertz.
	RefreshRate() float64
	// OpenRefreshLink acquires a callback source synced to the display's
	// refresh. The caller owns the link and must Close it.
	OpenRefreshLink() (RefreshLink, error)
}

// RefreshLink invokes a handler once per display refresh.
//
// The handler runs on a goroutine owned by the link, never on the UI
// goroutine. Start on a running link replaces the handler. Stop and Close are
// safe to call repeatedly.
type RefreshLink interface {
	Start(handler func())
	Stop()
	Close() error
}

var (
	mainDisplayMu sync.RWMutex
	mainDisplay   Display = &SimulatedDisplay{PixelScale: 1, Rate: 60}
)

// MainDisplay returns the primary display.
func MainDisplay() Display {
	mainDisplayMu.RLock()
	defer mainDisplayMu.RUnlock()
	return mainDisplay
}

// SetMainDisplay replaces the primary display and returns the previous one so
// tests can restore it. Nil is ignored.
func SetMainDisplay(d Display) Display {
	mainDisplayMu.Lock()
	defer mainDisplayMu.Unlock()
	prev := mainDisplay
	if d != nil {
		mainDisplay = d
	}
	return prev
}

// SimulatedDisplay is a software display whose refresh link is driven by a
// goroutine ticking at Rate. A Headless display has no refresh link.
type SimulatedDisplay struct {
	PixelScale float64
	Rate       float64
	Headless   bool
}

// Scale returns the configured pixel density, defaulting to 1.
func (d *SimulatedDisplay) Scale() float64 {
	if d.PixelScale <= 0 {
		return 1
	}
	return d.PixelScale
}

// RefreshRate returns the configured rate, defaulting to 60 Hz.
func (d *SimulatedDisplay) RefreshRate() float64 {
	if d.Rate <= 0 {
		return 60
	}
	return d.Rate
}

// OpenRefreshLink returns a goroutine-backed refresh link, or
// ErrNoRefreshLink for headless displays.
func (d *SimulatedDisplay) OpenRefreshLink() (RefreshLink, error) {
	if d.Headless {
		return nil, ErrNoRefreshLink
	}
	interval := time.Duration(float64(time.Second) / d.RefreshRate())
	return &vsyncLink{interval: interval}, nil
}

type vsyncLink struct {
	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	closed   bool
}

func (l *vsyncLink) Start(handler func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || handler == nil {
		return
	}
	l.stopLocked()
	stop := make(chan struct{})
	done := make(chan struct{})
	l.stop, l.done = stop, done
	go func() {
		defer close(done)
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				handler()
			}
		}
	}()
}

func (l *vsyncLink) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// stopLocked waits for the link goroutine to exit so no handler call can
// start after Stop returns.
func (l *vsyncLink) stopLocked() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop, l.done = nil, nil
}

func (l *vsyncLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
	l.closed = true
	return nil
}

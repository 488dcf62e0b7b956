package rendering

import (
	"image"
	"log/slog"
	"math"

	"github.com/go-drift/chartkit/pkg/errors"
	"github.com/go-drift/chartkit/pkg/graphics"
	"github.com/go-drift/chartkit/pkg/platform"
)

// AutomaticScale asks Push to use the display's pixel density.
const AutomaticScale = 0

// maxSurfaceDimension bounds offscreen buffers; larger requests are treated
// like degenerate ones.
const maxSurfaceDimension = 1 << 14

// stackEntry is one pending offscreen session. It owns its surface.
type stackEntry struct {
	scale   float64
	surface *Surface
}

// ContextStack redirects drawing into nested offscreen surfaces.
//
// Push allocates a surface and makes it current; Pop releases it and
// restores whatever was current before. With nothing pushed, the current
// context is the on-screen surface.
//
// A ContextStack has no locking. Use it only from the UI goroutine.
type ContextStack struct {
	toolkit  platform.Toolkit
	display  platform.Display
	onscreen *Surface
	entries  []stackEntry
}

// NewContextStack creates an empty stack. display supplies the automatic
// scale; nil means platform.MainDisplay(). onscreen may be nil for headless
// rendering.
func NewContextStack(toolkit platform.Toolkit, display platform.Display, onscreen *Surface) *ContextStack {
	return &ContextStack{toolkit: toolkit, display: display, onscreen: onscreen}
}

// SetOnscreen replaces the on-screen surface returned when the stack is empty.
func (s *ContextStack) SetOnscreen(surface *Surface) {
	s.onscreen = surface
}

// Depth returns the number of pushed surfaces.
func (s *ContextStack) Depth() int {
	return len(s.entries)
}

// Push starts an offscreen session of the given logical size. A scale of
// AutomaticScale (or any non-positive value) uses the display's density.
//
// The buffer is ceil(size*scale) pixels on each side. If either side is not
// positive (or is too large to allocate) nothing happens and the stack is
// unchanged.
func (s *ContextStack) Push(size graphics.Size, opaque bool, scale float64) {
	if scale <= 0 || math.IsNaN(scale) {
		scale = s.displayScale()
	}
	fw := math.Ceil(size.Width * scale)
	fh := math.Ceil(size.Height * scale)
	if !(fw > 0 && fh > 0) || fw > maxSurfaceDimension || fh > maxSurfaceDimension {
		errors.Logger().Debug("offscreen push ignored",
			slog.Float64("width", size.Width), slog.Float64("height", size.Height), slog.Float64("scale", scale))
		return
	}
	surface := newOffscreenSurface(int(fw), int(fh), scale, opaque, s.toolkit.NativeOrigin())
	s.entries = append(s.entries, stackEntry{scale: scale, surface: surface})
	errors.Logger().Debug("offscreen push",
		slog.Int("width", int(fw)), slog.Int("height", int(fh)), slog.Float64("scale", scale), slog.Int("depth", len(s.entries)))
}

// Pop ends the most recent offscreen session and releases its surface. A
// caller still holding the surface can keep calling it; drawing does
// nothing. Popping an empty stack does nothing.
func (s *ContextStack) Pop() {
	n := len(s.entries)
	if n == 0 {
		return
	}
	s.entries[n-1].surface.release()
	s.entries[n-1] = stackEntry{}
	s.entries = s.entries[:n-1]
	errors.Logger().Debug("offscreen pop", slog.Int("depth", len(s.entries)))
}

// CurrentContext returns the active drawing target: the most recently pushed
// surface, or the on-screen surface when the stack is empty.
func (s *ContextStack) CurrentContext() *Surface {
	if n := len(s.entries); n > 0 {
		return s.entries[n-1].surface
	}
	return s.onscreen
}

// CurrentImage snapshots the top offscreen surface. The image reports its
// size in logical units (pixels divided by the entry's scale) while keeping
// the full-resolution pixels. It returns nil when nothing is pushed.
func (s *ContextStack) CurrentImage() *Image {
	n := len(s.entries)
	if n == 0 {
		return nil
	}
	top := s.entries[n-1]
	if top.surface == nil || top.surface.pixels == nil {
		return nil
	}
	src := top.surface.pixels
	pixels := image.NewRGBA(src.Bounds())
	copy(pixels.Pix, src.Pix)
	return NewImage(pixels, top.scale)
}

func (s *ContextStack) displayScale() float64 {
	d := s.display
	if d == nil {
		d = platform.MainDisplay()
	}
	if scale := d.Scale(); scale > 0 {
		return scale
	}
	return 1
}

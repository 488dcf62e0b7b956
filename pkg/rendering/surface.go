package rendering

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/chartkit/pkg/graphics"
	"github.com/go-drift/chartkit/pkg/platform"
)

// curveSegments is how many line segments a curve is split into when a
// stroke is flattened.
const curveSegments = 16

// Surface is a drawing target backed by an 8-bit RGBA pixel buffer.
//
// Drawing calls take logical coordinates with the origin at the top left.
// The surface transform maps them into the toolkit's device space (pixels,
// with the toolkit's native origin); the buffer itself is always stored top
// row first.
type Surface struct {
	pixels    *image.RGBA
	scale     float64
	origin    platform.Origin
	transform f64.Aff3
	opaque    bool
	offscreen bool
}

// NewWindowSurface wraps an on-screen buffer owned by the host. The window
// surface uses a top-left device origin.
func NewWindowSurface(pixels *image.RGBA, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	return &Surface{
		pixels:    pixels,
		scale:     scale,
		origin:    platform.OriginTopLeft,
		transform: deviceTransform(platform.OriginTopLeft, scale, pixels.Bounds().Dy()),
		opaque:    true,
	}
}

func newOffscreenSurface(width, height int, scale float64, opaque bool, origin platform.Origin) *Surface {
	s := &Surface{
		pixels:    image.NewRGBA(image.Rect(0, 0, width, height)),
		scale:     scale,
		origin:    origin,
		transform: deviceTransform(origin, scale, height),
		opaque:    opaque,
		offscreen: true,
	}
	if opaque {
		s.Clear(graphics.ColorWhite)
	}
	return s
}

// deviceTransform maps logical top-left coordinates into device pixels. For
// a bottom-left device origin the y axis is flipped about the buffer height
// before scaling.
func deviceTransform(origin platform.Origin, scale float64, heightPx int) f64.Aff3 {
	if origin == platform.OriginBottomLeft {
		return f64.Aff3{
			scale, 0, 0,
			0, -scale, float64(heightPx),
		}
	}
	return f64.Aff3{
		scale, 0, 0,
		0, scale, 0,
	}
}

// Pixels returns the backing buffer, or nil once the surface is released.
func (s *Surface) Pixels() *image.RGBA { return s.pixels }

// IsReleased reports whether the surface's buffer has been released by
// [ContextStack.Pop]. Drawing on a released surface does nothing.
func (s *Surface) IsReleased() bool { return s.pixels == nil }

func (s *Surface) release() { s.pixels = nil }

// Scale returns the pixels-per-logical-unit factor.
func (s *Surface) Scale() float64 { return s.scale }

// Transform returns the logical-to-device transform.
func (s *Surface) Transform() f64.Aff3 { return s.transform }

// Origin returns the device-space origin.
func (s *Surface) Origin() platform.Origin { return s.origin }

// IsOpaque reports whether the surface was created without alpha.
func (s *Surface) IsOpaque() bool { return s.opaque }

// IsOffscreen reports whether the surface was allocated by a ContextStack.
func (s *Surface) IsOffscreen() bool { return s.offscreen }

// PixelSize returns the buffer dimensions. A released surface is 0x0.
func (s *Surface) PixelSize() (width, height int) {
	if s.pixels == nil {
		return 0, 0
	}
	b := s.pixels.Bounds()
	return b.Dx(), b.Dy()
}

// LogicalSize returns the buffer dimensions in logical units.
func (s *Surface) LogicalSize() graphics.Size {
	w, h := s.PixelSize()
	return graphics.Size{Width: float64(w) / s.scale, Height: float64(h) / s.scale}
}

// bufferTransform maps logical coordinates straight to buffer pixels by
// undoing the device flip, if any.
func (s *Surface) bufferTransform() f64.Aff3 {
	m := s.transform
	if s.origin == platform.OriginBottomLeft {
		_, h := s.PixelSize()
		// device (x, y) -> buffer (x, h-y)
		m = f64.Aff3{
			m[0], m[1], m[2],
			-m[3], -m[4], float64(h) - m[5],
		}
	}
	return m
}

// Clear fills the whole surface with c, replacing existing pixels.
func (s *Surface) Clear(c graphics.Color) {
	if s.pixels == nil {
		return
	}
	draw.Draw(s.pixels, s.pixels.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills a logical rectangle.
func (s *Surface) FillRect(r graphics.Rect, c graphics.Color) {
	p := NewPath()
	p.AddRect(r)
	s.FillPath(p, c)
}

// FillPath fills p with c using the nonzero rule, compositing over the
// existing pixels.
func (s *Surface) FillPath(p *Path, c graphics.Color) {
	if p == nil || p.IsEmpty() {
		return
	}
	w, h := s.PixelSize()
	if w <= 0 || h <= 0 {
		return
	}
	z := vector.NewRasterizer(w, h)
	rasterize(z, p.Transformed(s.bufferTransform()))
	z.Draw(s.pixels, s.pixels.Bounds(), image.NewUniform(c), image.Point{})
}

// StrokePath strokes p with c at the given logical line width. Curves are
// flattened and each segment is filled as a quad, so joins are not rounded.
func (s *Surface) StrokePath(p *Path, c graphics.Color, width float64) {
	if p == nil || p.IsEmpty() || width <= 0 {
		return
	}
	outline := NewPath()
	half := width / 2
	for _, line := range flatten(p) {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			dx, dy := b.X-a.X, b.Y-a.Y
			length := math.Hypot(dx, dy)
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*half, dx/length*half
			outline.MoveTo(a.X+nx, a.Y+ny)
			outline.LineTo(b.X+nx, b.Y+ny)
			outline.LineTo(b.X-nx, b.Y-ny)
			outline.LineTo(a.X-nx, a.Y-ny)
			outline.Close()
		}
	}
	s.FillPath(outline, c)
}

// DrawImage draws img scaled into the logical rectangle dst.
func (s *Surface) DrawImage(img *Image, dst graphics.Rect) {
	if img == nil || img.pixels == nil || s.pixels == nil {
		return
	}
	m := s.bufferTransform()
	x0, y0 := apply(m, dst.Left, dst.Top)
	x1, y1 := apply(m, dst.Right, dst.Bottom)
	r := image.Rect(
		int(math.Round(math.Min(x0, x1))), int(math.Round(math.Min(y0, y1))),
		int(math.Round(math.Max(x0, x1))), int(math.Round(math.Max(y0, y1))),
	)
	if r.Empty() {
		return
	}
	draw.ApproxBiLinear.Scale(s.pixels, r, img.pixels, img.pixels.Bounds(), draw.Over, nil)
}

// DrawText draws text with its baseline starting at the logical point p.
// Glyphs keep the face's own pixel size.
func (s *Surface) DrawText(text string, f graphics.Font, p graphics.Point, c graphics.Color) {
	if text == "" || f.Face == nil || s.pixels == nil {
		return
	}
	x, y := apply(s.bufferTransform(), p.X, p.Y)
	d := font.Drawer{
		Dst:  s.pixels,
		Src:  image.NewUniform(c),
		Face: f.Face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(text)
}

// MeasureText returns the advance width of text in pixels.
func MeasureText(text string, f graphics.Font) float64 {
	if f.Face == nil {
		return 0
	}
	return float64(font.MeasureString(f.Face, text)) / 64
}

// rasterize feeds p into z, closing each subpath so fills accumulate
// correctly.
func rasterize(z *vector.Rasterizer, p *Path) {
	open := false
	for _, cmd := range p.Commands {
		if len(cmd.Args) < cmd.Op.argCount() {
			continue
		}
		a := cmd.Args
		switch cmd.Op {
		case PathOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(float32(a[0]), float32(a[1]))
			open = true
		case PathOpLineTo:
			z.LineTo(float32(a[0]), float32(a[1]))
		case PathOpQuadTo:
			z.QuadTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]))
		case PathOpCubicTo:
			z.CubeTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]), float32(a[4]), float32(a[5]))
		case PathOpClose:
			if open {
				z.ClosePath()
				open = false
			}
		}
	}
	if open {
		z.ClosePath()
	}
}

// flatten converts p into polylines, one per subpath.
func flatten(p *Path) [][]graphics.Point {
	var lines [][]graphics.Point
	var line []graphics.Point
	var current, start graphics.Point
	flush := func() {
		if len(line) > 1 {
			lines = append(lines, line)
		}
		line = nil
	}
	for _, cmd := range p.Commands {
		if len(cmd.Args) < cmd.Op.argCount() {
			continue
		}
		a := cmd.Args
		switch cmd.Op {
		case PathOpMoveTo:
			flush()
			current = graphics.Point{X: a[0], Y: a[1]}
			start = current
			line = []graphics.Point{current}
		case PathOpLineTo:
			current = graphics.Point{X: a[0], Y: a[1]}
			line = append(line, current)
		case PathOpQuadTo:
			p0 := current
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				u := 1 - t
				line = append(line, graphics.Point{
					X: u*u*p0.X + 2*u*t*a[0] + t*t*a[2],
					Y: u*u*p0.Y + 2*u*t*a[1] + t*t*a[3],
				})
			}
			current = graphics.Point{X: a[2], Y: a[3]}
		case PathOpCubicTo:
			p0 := current
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / curveSegments
				u := 1 - t
				line = append(line, graphics.Point{
					X: u*u*u*p0.X + 3*u*u*t*a[0] + 3*u*t*t*a[2] + t*t*t*a[4],
					Y: u*u*u*p0.Y + 3*u*u*t*a[1] + 3*u*t*t*a[3] + t*t*t*a[5],
				})
			}
			current = graphics.Point{X: a[4], Y: a[5]}
		case PathOpClose:
			line = append(line, start)
			current = start
			flush()
			line = []graphics.Point{start}
		}
	}
	flush()
	return lines
}

// Package demo draws the sample bar chart rendered by the CLI.
package demo

import (
	"github.com/go-drift/chartkit/pkg/animation"
	"github.com/go-drift/chartkit/pkg/graphics"
	"github.com/go-drift/chartkit/pkg/rendering"
	"github.com/go-drift/chartkit/pkg/semantics"
)

// BarChart is a minimal vertical bar chart.
type BarChart struct {
	Title  string
	Values []float64
	Font   graphics.Font

	Background graphics.Color
	BarFrom    graphics.Color
	BarTo      graphics.Color
	Axis       graphics.Color

	accessibility *semantics.Element
}

// NewBarChart returns a chart with the default palette.
func NewBarChart(title string, values []float64) *BarChart {
	c := &BarChart{
		Title:      title,
		Values:     values,
		Font:       graphics.DefaultFont(),
		Background: graphics.ColorWhite,
		BarFrom:    graphics.RGB(0x42, 0x85, 0xF4),
		BarTo:      graphics.RGB(0xDB, 0x44, 0x37),
		Axis:       graphics.RGB(0x60, 0x60, 0x60),
	}
	c.accessibility = semantics.NewElement(title, nil)
	c.accessibility.SetRole(semantics.RoleChart)
	return c
}

// Accessibility returns the chart's accessibility element.
func (c *BarChart) Accessibility() *semantics.Element {
	return c.accessibility
}

// Draw renders the chart into s with the title centred above the plot.
// phaseX reveals bars left to right and phaseY grows them from the baseline.
func (c *BarChart) Draw(s *rendering.Surface, phaseX, phaseY float64) {
	size := s.LogicalSize()
	s.Clear(c.Background)

	lineHeight := c.Font.LineHeight()
	top := 8.0
	if c.Title != "" {
		x := max((size.Width-rendering.MeasureText(c.Title, c.Font))/2, 8)
		s.DrawText(c.Title, c.Font, graphics.Point{X: x, Y: top + c.Font.Ascent()}, c.Axis)
		top += lineHeight + 4
	}
	plot := graphics.Rect{Left: 8, Top: top, Right: size.Width - 8, Bottom: size.Height - 8}
	c.accessibility.Rect = plot

	axis := rendering.NewPath()
	axis.MoveTo(plot.Left, plot.Top)
	axis.LineTo(plot.Left, plot.Bottom)
	axis.LineTo(plot.Right, plot.Bottom)
	s.StrokePath(axis, c.Axis, 1)

	n := len(c.Values)
	if n == 0 || plot.Width() <= 0 || plot.Height() <= 0 {
		return
	}
	peak := 0.0
	for _, v := range c.Values {
		peak = max(peak, v)
	}
	if peak <= 0 {
		return
	}

	visible := int(float64(n)*clamp01(phaseX) + 0.5)
	palette := animation.TweenColor(c.BarFrom, c.BarTo)
	slot := plot.Width() / float64(n)
	gap := slot * 0.2
	for i := range visible {
		h := c.Values[i] / peak * plot.Height() * clamp01(phaseY)
		if h <= 0 {
			continue
		}
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		bar := graphics.RectFromLTWH(plot.Left+float64(i)*slot+gap/2, plot.Bottom-h, slot-gap, h)
		s.FillRect(bar, palette.Evaluate(t))
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

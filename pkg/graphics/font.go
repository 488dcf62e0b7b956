package graphics

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font wraps a font face so chart code can ask for metrics without caring
// which toolkit produced it.
type Font struct {
	Face font.Face
}

// DefaultFont returns the bundled fixed-size bitmap font.
func DefaultFont() Font {
	return Font{Face: basicfont.Face7x13}
}

// LineHeight returns the recommended distance between baselines in logical units.
// A Font without a face reports zero.
func (f Font) LineHeight() float64 {
	if f.Face == nil {
		return 0
	}
	return fixedToFloat(f.Face.Metrics().Height)
}

// Ascent returns the distance from the baseline to the top of the face.
func (f Font) Ascent() float64 {
	if f.Face == nil {
		return 0
	}
	return fixedToFloat(f.Face.Metrics().Ascent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

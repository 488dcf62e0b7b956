package graphics

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA constructs a Color from red, green, blue bytes and alpha (0-1).
func RGBA(r, g, b uint8, a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// FromComponents builds a Color from normalized components (0.0 to 1.0),
// the form both toolkits use for their native color objects.
func FromComponents(r, g, b, a float64) Color {
	return RGBA8(unitToByte(r), unitToByte(g), unitToByte(b), unitToByte(a))
}

// ParseHex parses "#rrggbb" into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorTransparent, err
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return c.Red(), c.Green(), c.Blue(), c.Alpha()
}

// Red returns the red component from 0.0 to 1.0.
func (c Color) Red() float64 { return float64(uint8(c>>16)) / maxByte }

// Green returns the green component from 0.0 to 1.0.
func (c Color) Green() float64 { return float64(uint8(c>>8)) / maxByte }

// Blue returns the blue component from 0.0 to 1.0.
func (c Color) Blue() float64 { return float64(uint8(c)) / maxByte }

// Alpha returns the alpha component as a value from 0.0 (transparent) to 1.0 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// WithAlpha returns a copy of the color with the given alpha (0-1).
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// WithAlpha8 returns a copy of the color with the given alpha byte (0-255).
func (c Color) WithAlpha8(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// Lerp blends c toward other in CIE-L*a*b* space. Alpha is interpolated
// linearly. t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	t = clamp01(t)
	blended := c.colorful().BlendLab(other.colorful(), t).Clamped()
	r, g, b := blended.RGB255()
	a := c.Alpha() + (other.Alpha()-c.Alpha())*t
	return RGBA(r, g, b, a)
}

// NRGBA converts the color to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

// RGBA implements color.Color with premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.Red(), G: c.Green(), B: c.Blue()}
}

// alpha01ToByte converts a 0-1 alpha to 0-255 with proper rounding.
func alpha01ToByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * maxByte))
}

// clamp01 clamps a value to the range [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)

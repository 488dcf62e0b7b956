package rendering

import (
	"bytes"
	stderrors "errors"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"

	"github.com/go-drift/chartkit/pkg/errors"
	"github.com/go-drift/chartkit/pkg/graphics"
)

// DefaultJPEGQuality is the quality EncodeJPEG uses for negative inputs.
const DefaultJPEGQuality = 0.9

// ErrNoImage is returned when encoding a nil or empty image.
var ErrNoImage = stderrors.New("rendering: no image")

// Image is a rasterized chart. Its size is reported in logical units while
// the pixels stay at device resolution.
type Image struct {
	pixels *image.RGBA
	scale  float64
}

// NewImage wraps pixels rendered at scale. A non-positive scale means 1.
func NewImage(pixels *image.RGBA, scale float64) *Image {
	if scale <= 0 {
		scale = 1
	}
	return &Image{pixels: pixels, scale: scale}
}

// Size returns the logical size: pixel dimensions divided by scale.
func (i *Image) Size() graphics.Size {
	w, h := i.PixelSize()
	return graphics.Size{Width: float64(w) / i.scale, Height: float64(h) / i.scale}
}

// PixelSize returns the dimensions of the pixel buffer.
func (i *Image) PixelSize() (width, height int) {
	if i.pixels == nil {
		return 0, 0
	}
	b := i.pixels.Bounds()
	return b.Dx(), b.Dy()
}

// Scale returns the pixels-per-logical-unit factor.
func (i *Image) Scale() float64 { return i.scale }

// Pixels returns the pixel buffer.
func (i *Image) Pixels() *image.RGBA { return i.pixels }

// PNG encodes the image as PNG.
func (i *Image) PNG() ([]byte, error) {
	if i == nil || i.pixels == nil {
		return nil, errors.New("rendering.Image.PNG", errors.KindEncode, ErrNoImage)
	}
	return EncodePNG(i.pixels)
}

// JPEG encodes the image as JPEG. quality is in [0, 1]; negative values use
// DefaultJPEGQuality.
func (i *Image) JPEG(quality float64) ([]byte, error) {
	if i == nil || i.pixels == nil {
		return nil, errors.New("rendering.Image.JPEG", errors.KindEncode, ErrNoImage)
	}
	return EncodeJPEG(i.pixels, quality)
}

// EncodePNG draws img into a temporary surface and encodes it as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	tmp, err := prepare(img, false)
	if err != nil {
		return nil, errors.New("rendering.EncodePNG", errors.KindEncode, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, tmp); err != nil {
		return nil, errors.New("rendering.EncodePNG", errors.KindEncode, err)
	}
	return buf.Bytes(), nil
}

// EncodeJPEG draws img over white into a temporary surface and encodes it
// as JPEG. quality is clamped to [0, 1]; negative values use
// DefaultJPEGQuality.
func EncodeJPEG(img image.Image, quality float64) ([]byte, error) {
	tmp, err := prepare(img, true)
	if err != nil {
		return nil, errors.New("rendering.EncodeJPEG", errors.KindEncode, err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, tmp, &jpeg.Options{Quality: jpegQuality(quality)}); err != nil {
		return nil, errors.New("rendering.EncodeJPEG", errors.KindEncode, err)
	}
	return buf.Bytes(), nil
}

// jpegQuality maps [0, 1] onto the encoder's 1-100 range.
func jpegQuality(q float64) int {
	if q < 0 || math.IsNaN(q) {
		q = DefaultJPEGQuality
	}
	if q > 1 {
		q = 1
	}
	return max(1, int(math.Round(q*100)))
}

// prepare copies img into a fresh RGBA buffer anchored at the origin.
// JPEG has no alpha channel, so opaque copies start from white.
func prepare(img image.Image, opaque bool) (*image.RGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	b := img.Bounds()
	tmp := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	op := draw.Src
	if opaque {
		draw.Draw(tmp, tmp.Bounds(), image.NewUniform(graphics.ColorWhite), image.Point{}, draw.Src)
		op = draw.Over
	}
	draw.Draw(tmp, tmp.Bounds(), img, b.Min, op)
	return tmp, nil
}

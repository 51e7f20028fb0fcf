package stereogram

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidArgument is wrapped by every validation failure in this package.
var ErrInvalidArgument = errors.New("stereogram: invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// DepthBuffer is an immutable grid of 8-bit depth samples.
// 0 is the farthest plane and 255 the nearest.
type DepthBuffer struct {
	w, h int
	pix  []uint8 // row-major, len = w*h
}

// NewDepthBuffer copies pix into a new w×h depth buffer.
func NewDepthBuffer(w, h int, pix []uint8) (*DepthBuffer, error) {
	if w <= 0 || h <= 0 {
		return nil, invalidf("depth buffer size %dx%d", w, h)
	}
	if len(pix) != w*h {
		return nil, invalidf("depth buffer has %d samples, want %d", len(pix), w*h)
	}
	return &DepthBuffer{w: w, h: h, pix: append([]uint8(nil), pix...)}, nil
}

// DepthFromGray copies a grayscale image into a depth buffer.
func DepthFromGray(g *image.Gray) (*DepthBuffer, error) {
	if g == nil {
		return nil, invalidf("nil gray image")
	}
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, invalidf("depth buffer size %dx%d", w, h)
	}
	pix := make([]uint8, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := g.PixOffset(b.Min.X, y)
		pix = append(pix, g.Pix[off:off+w]...)
	}
	return &DepthBuffer{w: w, h: h, pix: pix}, nil
}

func (d *DepthBuffer) Width() int  { return d.w }
func (d *DepthBuffer) Height() int { return d.h }

func (d *DepthBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, d.w, d.h) }

// At returns the sample at (x, y). Coordinates must be inside the buffer.
func (d *DepthBuffer) At(x, y int) uint8 { return d.pix[y*d.w+x] }

// Gray returns a copy of the buffer as a grayscale image.
func (d *DepthBuffer) Gray() *image.Gray {
	g := image.NewGray(d.Bounds())
	copy(g.Pix, d.pix)
	return g
}

// RGB is a single opaque pixel.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 255}.RGBA()
}

// RGBImage is a W×H grid of RGB pixels. It holds both pattern strips and
// synthesized stereograms.
type RGBImage struct {
	W, H int
	Pix  []uint8 // Interleaved RGB, len = W*H*3
}

// NewRGBImage returns a black w×h image.
func NewRGBImage(w, h int) (*RGBImage, error) {
	if w <= 0 || h <= 0 {
		return nil, invalidf("image size %dx%d", w, h)
	}
	return &RGBImage{W: w, H: h, Pix: make([]uint8, w*h*3)}, nil
}

func (m *RGBImage) offset(x, y int) int { return (y*m.W + x) * 3 }

// RGBAt returns the pixel at (x, y).
func (m *RGBImage) RGBAt(x, y int) RGB {
	i := m.offset(x, y)
	return RGB{m.Pix[i], m.Pix[i+1], m.Pix[i+2]}
}

func (m *RGBImage) SetRGB(x, y int, c RGB) {
	i := m.offset(x, y)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = c.R, c.G, c.B
}

// Clone returns a deep copy.
func (m *RGBImage) Clone() *RGBImage {
	return &RGBImage{W: m.W, H: m.H, Pix: append([]uint8(nil), m.Pix...)}
}

func (m *RGBImage) ColorModel() color.Model { return color.RGBAModel }

func (m *RGBImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.W, m.H) }

func (m *RGBImage) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return color.RGBA{}
	}
	return m.RGBAt(x, y)
}

// ToRGBA converts the image for encoders and drawing code.
func (m *RGBImage) ToRGBA() *image.RGBA {
	out := image.NewRGBA(m.Bounds())
	for i, j := 0, 0; i < len(m.Pix); i, j = i+3, j+4 {
		out.Pix[j] = m.Pix[i]
		out.Pix[j+1] = m.Pix[i+1]
		out.Pix[j+2] = m.Pix[i+2]
		out.Pix[j+3] = 255
	}
	return out
}

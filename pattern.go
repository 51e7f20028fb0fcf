package stereogram

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// GeneratePattern returns a width×height strip of random dots. Every channel
// of every pixel is an independent uniform draw from r.
func GeneratePattern(height, width int, r *rand.Rand) (*RGBImage, error) {
	if err := checkPatternArgs(height, width, r); err != nil {
		return nil, err
	}
	p, err := NewRGBImage(width, height)
	if err != nil {
		return nil, err
	}
	for i := range p.Pix {
		p.Pix[i] = uint8(r.UintN(256))
	}
	return p, nil
}

// GeneratePalettePattern is like GeneratePattern but picks each pixel
// uniformly from palette.
func GeneratePalettePattern(height, width int, palette []colorful.Color, r *rand.Rand) (*RGBImage, error) {
	if err := checkPatternArgs(height, width, r); err != nil {
		return nil, err
	}
	if len(palette) == 0 {
		return nil, invalidf("empty palette")
	}
	colors := make([]RGB, len(palette))
	for i, c := range palette {
		cr, cg, cb := c.Clamped().RGB255()
		colors[i] = RGB{cr, cg, cb}
	}
	p, err := NewRGBImage(width, height)
	if err != nil {
		return nil, err
	}
	for y := range height {
		for x := range width {
			p.SetRGB(x, y, colors[r.IntN(len(colors))])
		}
	}
	return p, nil
}

func checkPatternArgs(height, width int, r *rand.Rand) error {
	if height <= 0 {
		return invalidf("pattern height %d", height)
	}
	if width <= 0 {
		return invalidf("pattern width %d", width)
	}
	if r == nil {
		return invalidf("nil random source")
	}
	return nil
}

package utils

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

type weightedColor struct {
	col colorful.Color
	w   float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	luma := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		return cmp.Compare(luma(a), luma(b))
	})
}

// ExtractPalette picks k well separated colors of img to colour random dots.
func ExtractPalette(img image.Image, k int, method PaletteMethod) ([]colorful.Color, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size %d", k)
	}
	var cands []weightedColor
	switch method {
	case PaletteMethodKMeans:
		var err error
		if cands, err = kmeansCandidates(img, k); err != nil {
			return nil, err
		}
	default:
		cands = dominantCandidates(img, k)
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("no colors found with %s", method)
	}
	return selectDiverse(cands, k), nil
}

func dominantCandidates(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	out := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, weightedColor{col: col.Clamped(), w: max(c.Weight, 1e-6)})
	}
	return out
}

func kmeansCandidates(img image.Image, k int) ([]weightedColor, error) {
	const maxSamples = 12000
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return nil, nil
	}
	step := 1
	if n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}
	var data clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			data = append(data, clusters.Coordinates{float64(r) / 65535, float64(g) / 65535, float64(bl) / 65535})
		}
	}
	if len(data) == 0 {
		return nil, nil
	}
	cc, err := kmeans.New().Partition(data, min(k*4, len(data)))
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}
	out := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		out = append(out, weightedColor{col: col, w: float64(len(c.Observations))})
	}
	return out, nil
}

// selectDiverse starts from the heaviest candidate and then repeatedly adds
// the one farthest (in Lab) from everything chosen, biased by weight.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	k = min(k, len(cands))
	maxW := slices.MaxFunc(cands, func(a, b weightedColor) int { return cmp.Compare(a.w, b.w) }).w

	chosen := make([]bool, len(cands))
	out := make([]colorful.Color, 0, k)
	pick := func(i int) {
		chosen[i] = true
		out = append(out, cands[i].col)
	}
	pick(slices.IndexFunc(cands, func(c weightedColor) bool { return c.w == maxW }))

	for len(out) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if chosen[i] {
				continue
			}
			d := math.MaxFloat64
			for _, o := range out {
				d = min(d, c.col.DistanceLab(o))
			}
			score := d * (0.55 + 0.45*math.Sqrt(c.w/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		pick(best)
	}
	return out
}

// SavePalette writes the palette as a row of tileSize squares.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		fill := color.RGBA{R: r, G: g, B: b, A: 255}
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return SaveImage(img, filename)
}

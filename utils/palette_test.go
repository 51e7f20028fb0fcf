package utils

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadrants returns an image split into four solid colours.
func quadrants() image.Image {
	cols := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			img.SetRGBA(x, y, cols[(y/32)*2+x/32])
		}
	}
	return img
}

func TestParsePaletteMethod(t *testing.T) {
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		got, err := ParsePaletteMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParsePaletteMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaletteMethodDominantColor, got)

	_, err = ParsePaletteMethod("octree")
	assert.Error(t, err)
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []colorful.Color{
		{R: 1, G: 1, B: 1},
		{R: 0, G: 0, B: 0},
		{R: 0, G: 0, B: 1},
		{R: 0, G: 1, B: 0},
	}
	SortPaletteByBrightness(p)
	assert.Equal(t, []colorful.Color{
		{R: 0, G: 0, B: 0},
		{R: 0, G: 0, B: 1},
		{R: 0, G: 1, B: 0},
		{R: 1, G: 1, B: 1},
	}, p)
}

func TestExtractPalette(t *testing.T) {
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(m.String(), func(t *testing.T) {
			p, err := ExtractPalette(quadrants(), 3, m)
			require.NoError(t, err)
			assert.NotEmpty(t, p)
			assert.LessOrEqual(t, len(p), 3)
			for _, c := range p {
				assert.True(t, c.IsValid(), "%v", c)
			}
		})
	}

	_, err := ExtractPalette(quadrants(), 0, PaletteMethodKMeans)
	assert.Error(t, err)
}

func TestSelectDiverseStartsFromHeaviest(t *testing.T) {
	cands := []weightedColor{
		{col: colorful.Color{R: 0.5, G: 0.5, B: 0.5}, w: 1},
		{col: colorful.Color{R: 1}, w: 10},
		{col: colorful.Color{R: 0.98}, w: 5},
		{col: colorful.Color{B: 1}, w: 2},
	}
	got := selectDiverse(cands, 2)
	assert.Equal(t, []colorful.Color{{R: 1}, {B: 1}}, got)

	assert.Len(t, selectDiverse(cands, 10), 4)
}

func TestSavePalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	require.NoError(t, SavePalette([]colorful.Color{{R: 1}, {B: 1}}, 8, path))

	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(12, 4)))

	assert.Error(t, SavePalette(nil, 8, path))
}

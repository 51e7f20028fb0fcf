package main

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/stereogram/utils"
)

func writeDepth(t *testing.T, dir string) string {
	t.Helper()
	g := image.NewGray(image.Rect(0, 0, 60, 30))
	for y := 10; y < 20; y++ {
		for x := 20; x < 40; x++ {
			g.Pix[y*g.Stride+x] = 255
		}
	}
	path := filepath.Join(dir, "depth.png")
	require.NoError(t, utils.SaveImage(g, path))
	return path
}

func TestParseFlagsRequiresDepth(t *testing.T) {
	_, err := parseFlags([]string{"-out", "x.png"})
	assert.Error(t, err)
}

func TestParseFlagsConfigPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"patternWidth": 90, "maxDepthShift": 20, "seed": 5}`), 0o644))

	f, err := parseFlags([]string{"-depth", "d.png", "-config", cfgPath, "-max-shift", "25"})
	require.NoError(t, err)
	assert.Equal(t, 90, f.cfg.PatternWidth, "from file")
	assert.Equal(t, 25, f.cfg.MaxDepthShift, "flag wins")
	assert.Equal(t, uint64(5), f.cfg.Seed)
	assert.Equal(t, 600, f.cfg.Width, "default")
}

func TestParseFlagsValidates(t *testing.T) {
	_, err := parseFlags([]string{"-depth", "d.png", "-guide-radius", "-1"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	hist := filepath.Join(dir, "hist.png")
	pat := filepath.Join(dir, "pattern.png")

	f, err := parseFlags([]string{
		"-depth", writeDepth(t, dir), "-out", out,
		"-width", "120", "-height", "60", "-pattern-width", "30", "-max-shift", "10",
		"-seed", "3", "-histogram", hist, "-pattern-out", pat,
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	require.NoError(t, run(f, slog.New(slog.NewTextHandler(&logs, nil))))
	assert.Contains(t, logs.String(), "seed=3")

	img, err := utils.ReadImage(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 60), img.Bounds())

	p, err := utils.ReadImage(pat)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 60), p.Bounds())

	_, err = os.Stat(hist)
	assert.NoError(t, err)
}

func TestRunWritesDepthAndPalette(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			if x < 16 {
				src.SetRGBA(x, y, color.RGBA{200, 30, 30, 255})
			} else {
				src.SetRGBA(x, y, color.RGBA{30, 30, 200, 255})
			}
		}
	}
	srcPath := filepath.Join(dir, "src.png")
	require.NoError(t, utils.SaveImage(src, srcPath))
	depthOut := filepath.Join(dir, "depth-out.png")
	paletteOut := filepath.Join(dir, "palette.png")

	f, err := parseFlags([]string{
		"-depth", writeDepth(t, dir), "-out", filepath.Join(dir, "out.png"),
		"-width", "120", "-height", "60", "-pattern-width", "30", "-max-shift", "10", "-seed", "1",
		"-palette-from", srcPath, "-palette-size", "2", "-palette-out", paletteOut,
		"-depth-out", depthOut,
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	require.NoError(t, run(f, slog.New(slog.NewTextHandler(&logs, nil))))
	assert.Contains(t, logs.String(), "guideColor=#000000")

	d, err := utils.ReadImage(depthOut)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 60), d.Bounds())
	// The 60x30 map doubles to fill the canvas; its near block lands in the middle.
	assert.Equal(t, color.Gray{Y: 255}, color.GrayModel.Convert(d.At(60, 30)))
	assert.Equal(t, color.Gray{Y: 0}, color.GrayModel.Convert(d.At(2, 2)))

	p, err := utils.ReadImage(paletteOut)
	require.NoError(t, err)
	assert.Equal(t, 64, p.Bounds().Dy())
	assert.Positive(t, p.Bounds().Dx())
	assert.Zero(t, p.Bounds().Dx()%64)
}

func TestRunMissingDepth(t *testing.T) {
	f, err := parseFlags([]string{"-depth", filepath.Join(t.TempDir(), "none.png")})
	require.NoError(t, err)
	assert.Error(t, run(f, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
}

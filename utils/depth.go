package utils

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/setanarut/stereogram"
)

const (
	DefaultCanvasWidth  = 600
	DefaultCanvasHeight = 300
)

// LoadDepthMap reads an image and prepares it as a width×height depth buffer.
// See DepthFromImage.
func LoadDepthMap(path string, width, height int, invert bool) (*stereogram.DepthBuffer, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return DepthFromImage(img, width, height, invert)
}

// DepthFromImage converts img to grayscale, scales it bicubically to fit
// inside width×height keeping its aspect ratio, and centres it on a black
// (far) canvas of exactly that size. With invert, bright means far.
func DepthFromImage(img image.Image, width, height int, invert bool) (*stereogram.DepthBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", stereogram.ErrInvalidArgument, width, height)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty depth image", stereogram.ErrInvalidArgument)
	}

	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if invert {
				v = 255 - v
			}
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: v})
		}
	}

	scale := min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	nw := max(1, int(float64(b.Dx())*scale))
	nh := max(1, int(float64(b.Dy())*scale))
	ox := (width - nw) / 2
	oy := (height - nh) / 2

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(canvas, image.Rect(ox, oy, ox+nw, oy+nh), gray, gray.Bounds(), draw.Src, nil)
	return stereogram.DepthFromGray(canvas)
}

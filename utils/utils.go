package utils

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/stereogram"
)

// ReadImage decodes any registered format (PNG, JPEG, GIF, BMP, WebP).
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img by file extension. PNG is used for anything that is
// not .jpg or .jpeg, keeping stereograms lossless by default.
func SaveImage(img image.Image, filename string) error {
	if m, ok := img.(*stereogram.RGBImage); ok {
		img = m.ToRGBA() // encoders have fast paths for *image.RGBA
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

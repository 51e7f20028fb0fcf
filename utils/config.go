package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/setanarut/stereogram"
)

// Config is the on-disk rendering configuration. Fields absent from a file
// keep their defaults; fields present, including explicit zeros, replace them.
type Config struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	PatternWidth  int    `json:"patternWidth"`
	MaxDepthShift int    `json:"maxDepthShift"`
	Seed          uint64 `json:"seed"`
	Invert        bool   `json:"invert"`

	Guide struct {
		Separation int    `json:"separation"`
		Radius     int    `json:"radius"`
		Y          int    `json:"y"`
		Color      string `json:"color"`
		Disabled   bool   `json:"disabled"`
	} `json:"guide"`

	Palette struct {
		From   string `json:"from"`
		Size   int    `json:"size"`
		Method string `json:"method"`
	} `json:"palette"`
}

// DefaultConfig returns a Config populated with the stereogram defaults.
func DefaultConfig() Config {
	opt := stereogram.DefaultOptions()
	var c Config
	c.Width = DefaultCanvasWidth
	c.Height = DefaultCanvasHeight
	c.PatternWidth = opt.PatternWidth
	c.MaxDepthShift = opt.MaxDepthShift
	c.Guide.Radius = opt.GuideRadius
	c.Guide.Y = opt.GuideY
	c.Guide.Color = "#000000"
	c.Palette.Size = 8
	c.Palette.Method = PaletteMethodDominantColor.String()
	return c
}

// LoadConfig reads a JSON config on top of DefaultConfig. Unknown fields are
// rejected so that typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("canvas size %dx%d", c.Width, c.Height)
	case c.PatternWidth <= 0:
		return fmt.Errorf("patternWidth %d must be positive", c.PatternWidth)
	case c.PatternWidth > c.Width:
		return fmt.Errorf("patternWidth %d exceeds width %d", c.PatternWidth, c.Width)
	case c.MaxDepthShift < 0:
		return fmt.Errorf("maxDepthShift %d must not be negative", c.MaxDepthShift)
	case c.Guide.Separation < 0:
		return fmt.Errorf("guide separation %d must not be negative", c.Guide.Separation)
	case c.Guide.Radius < 0:
		return fmt.Errorf("guide radius %d must not be negative", c.Guide.Radius)
	case c.Palette.From != "" && c.Palette.Size <= 0:
		return fmt.Errorf("palette size %d must be positive", c.Palette.Size)
	}
	if _, err := ParsePaletteMethod(c.Palette.Method); err != nil {
		return err
	}
	_, err := ParseColor(c.Guide.Color)
	return err
}

// Options converts the config into rendering options. The palette is not
// loaded here; see ExtractPalette.
func (c Config) Options() (stereogram.Options, error) {
	col, err := ParseColor(c.Guide.Color)
	if err != nil {
		return stereogram.Options{}, err
	}
	return stereogram.Options{
		PatternWidth:    c.PatternWidth,
		MaxDepthShift:   c.MaxDepthShift,
		GuideSeparation: c.Guide.Separation,
		GuideRadius:     c.Guide.Radius,
		GuideY:          c.Guide.Y,
		GuideColor:      col,
		NoGuide:         c.Guide.Disabled,
	}, nil
}

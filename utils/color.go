package utils

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/stereogram"
)

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(s string) (stereogram.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return stereogram.RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return stereogram.RGB{R: r, G: g, B: b}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c stereogram.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

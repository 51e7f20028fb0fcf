// Package stereogram renders single-image random-dot stereograms from
// grayscale depth maps.
package stereogram

import (
	"image"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Width of the random seed strip and the base repetition period.
	// Ideal start: about 1/6 of the image width (100 for a 600px canvas).
	// Should stay larger than MaxDepthShift.
	PatternWidth int
	// Shift assigned to the nearest depth (255).
	// Ideal start: 30-40% of PatternWidth. Higher => stronger depth, but
	// more visible artifacts at depth edges.
	MaxDepthShift int
	// Distance between the guide dots. Zero means 2*MaxDepthShift, so
	// coincident dots cannot be requested here; build a GuideDots directly
	// for that.
	GuideSeparation int
	GuideRadius     int
	GuideY          int
	GuideColor      RGB
	// Skip the guide dot overlay.
	NoGuide bool
	// When non-empty, dots are drawn from these colors instead of uniform RGB noise.
	Palette []colorful.Color
}

func DefaultOptions() Options {
	return Options{
		PatternWidth:  100,
		MaxDepthShift: 40,
		GuideRadius:   4,
		GuideY:        10,
	}
}

// OptionsFromSize scales pattern width and depth shift to the canvas width.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	opt.PatternWidth = max(40, min(200, size.X/6))
	opt.PatternWidth = min(opt.PatternWidth, size.X)
	opt.MaxDepthShift = opt.PatternWidth * 2 / 5
	return opt
}

// GuideDots returns the overlay described by the options. A zero
// GuideSeparation is replaced by 2*MaxDepthShift.
func (o Options) GuideDots() GuideDots {
	sep := o.GuideSeparation
	if sep == 0 {
		sep = 2 * o.MaxDepthShift
	}
	return GuideDots{Separation: sep, Radius: o.GuideRadius, Y: o.GuideY, Color: o.GuideColor}
}

// Builder runs the full pipeline for one depth buffer and keeps the
// intermediate images around for inspection.
type Builder struct {
	Depth   *DepthBuffer
	Rand    *rand.Rand
	Pattern *RGBImage // seed strip of the last Build
	Raw     *RGBImage // stereogram before the guide dot overlay
	Result  *RGBImage
}

func NewBuilder(depth *DepthBuffer, r *rand.Rand) *Builder {
	return &Builder{Depth: depth, Rand: r}
}

// Build generates a pattern, synthesizes the stereogram and overlays the
// guide dots. Each call draws a fresh pattern from b.Rand.
func (b *Builder) Build(opt Options) (*RGBImage, error) {
	if b.Depth == nil {
		return nil, invalidf("nil depth buffer")
	}
	log := Logger()
	h := b.Depth.Height()

	var (
		pattern *RGBImage
		err     error
	)
	if len(opt.Palette) > 0 {
		pattern, err = GeneratePalettePattern(h, opt.PatternWidth, opt.Palette, b.Rand)
	} else {
		pattern, err = GeneratePattern(h, opt.PatternWidth, b.Rand)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("pattern generated", "width", pattern.W, "height", pattern.H, "palette", len(opt.Palette))

	raw, err := Synthesize(b.Depth, pattern, opt.PatternWidth, opt.MaxDepthShift)
	if err != nil {
		return nil, err
	}
	log.Debug("stereogram synthesized", "width", raw.W, "height", raw.H, "maxShift", opt.MaxDepthShift)

	result := raw
	if !opt.NoGuide {
		g := opt.GuideDots()
		if result, err = g.Apply(raw); err != nil {
			return nil, err
		}
		left, right := g.Centers(raw.W)
		log.Debug("guide dots applied", "left", left, "right", right, "y", g.Y, "radius", g.Radius)
	}

	b.Pattern, b.Raw, b.Result = pattern, raw, result
	return result, nil
}

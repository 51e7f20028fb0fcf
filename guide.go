package stereogram

// GuideDots describes the pair of fixation dots stamped on top of a
// stereogram to help the viewer converge their eyes.
type GuideDots struct {
	// Horizontal distance between the two dot centres, in pixels.
	Separation int
	// Disc radius in pixels. Zero stamps a single pixel.
	Radius int
	// Vertical position of both centres, from the top.
	Y     int
	Color RGB
}

// DefaultGuideDots returns black dots of radius 4, 10 pixels from the top.
func DefaultGuideDots(separation int) GuideDots {
	return GuideDots{Separation: separation, Radius: 4, Y: 10}
}

// Centers returns the x coordinates of the left and right dot for an image
// of the given width. Each half of the separation is floored on its own, so
// an odd separation places the dots separation-1 pixels apart.
func (g GuideDots) Centers(width int) (left, right int) {
	cx := width / 2
	return cx - g.Separation/2, cx + g.Separation/2
}

// Apply returns a copy of img with both dots drawn as flat discs. Pixels
// outside the discs are unchanged and img itself is never modified.
func (g GuideDots) Apply(img *RGBImage) (*RGBImage, error) {
	if img == nil {
		return nil, invalidf("nil image")
	}
	if g.Separation < 0 {
		return nil, invalidf("guide dot separation %d", g.Separation)
	}
	if g.Radius < 0 {
		return nil, invalidf("guide dot radius %d", g.Radius)
	}
	out := img.Clone()
	left, right := g.Centers(img.W)
	fillDisc(out, left, g.Y, g.Radius, g.Color)
	fillDisc(out, right, g.Y, g.Radius, g.Color)
	return out, nil
}

func fillDisc(m *RGBImage, cx, cy, r int, c RGB) {
	r2 := r * r
	for y := max(0, cy-r); y <= min(m.H-1, cy+r); y++ {
		dy := y - cy
		for x := max(0, cx-r); x <= min(m.W-1, cx+r); x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				m.SetRGB(x, y, c)
			}
		}
	}
}

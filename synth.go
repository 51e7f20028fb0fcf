package stereogram

// Shift maps a depth sample to a horizontal displacement in [0, maxShift].
// It is sample/255*maxShift rounded half up, computed in integers so that
// the result never depends on floating point rounding.
func Shift(sample uint8, maxShift int) int {
	return (2*int(sample)*maxShift + 255) / 510
}

// Synthesize renders a stereogram from depth and a seed pattern strip.
//
// Each row is scanned left to right. The first patternWidth columns copy the
// pattern. Every later pixel copies the pixel at x-patternWidth+shift of the
// same row; when that column is outside the row the pattern is tiled instead.
// With patternWidth <= maxShift the source column can lie at or right of x
// and still be black, since the output starts zeroed.
// Rows are independent of each other.
func Synthesize(depth *DepthBuffer, pattern *RGBImage, patternWidth, maxShift int) (*RGBImage, error) {
	if err := checkSynthArgs(depth, pattern, patternWidth, maxShift); err != nil {
		return nil, err
	}
	out, err := NewRGBImage(depth.w, depth.h)
	if err != nil {
		return nil, err
	}
	for y := range depth.h {
		synthesizeRow(out, depth, pattern, y, patternWidth, maxShift)
	}
	return out, nil
}

func synthesizeRow(out *RGBImage, depth *DepthBuffer, pattern *RGBImage, y, patternWidth, maxShift int) {
	w := depth.w
	row := out.Pix[y*w*3 : (y+1)*w*3]
	prow := pattern.Pix[y*patternWidth*3 : (y+1)*patternWidth*3]
	drow := depth.pix[y*w : (y+1)*w]
	for x := range w {
		if x < patternWidth {
			copy(row[x*3:x*3+3], prow[x*3:x*3+3])
			continue
		}
		src := x - patternWidth + Shift(drow[x], maxShift)
		if src >= 0 && src < w {
			copy(row[x*3:x*3+3], row[src*3:src*3+3])
			continue
		}
		px := x % patternWidth
		copy(row[x*3:x*3+3], prow[px*3:px*3+3])
	}
}

func checkSynthArgs(depth *DepthBuffer, pattern *RGBImage, patternWidth, maxShift int) error {
	switch {
	case depth == nil:
		return invalidf("nil depth buffer")
	case pattern == nil:
		return invalidf("nil pattern")
	case patternWidth <= 0:
		return invalidf("pattern width %d", patternWidth)
	case maxShift < 0:
		return invalidf("max depth shift %d", maxShift)
	case patternWidth > depth.w:
		return invalidf("pattern width %d exceeds depth width %d", patternWidth, depth.w)
	case pattern.W != patternWidth:
		return invalidf("pattern is %d wide, want %d", pattern.W, patternWidth)
	case pattern.H != depth.h:
		return invalidf("pattern is %d high, depth buffer is %d", pattern.H, depth.h)
	case len(pattern.Pix) != pattern.W*pattern.H*3:
		return invalidf("pattern has %d bytes, want %d", len(pattern.Pix), pattern.W*pattern.H*3)
	}
	return nil
}

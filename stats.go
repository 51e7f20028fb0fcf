package stereogram

import (
	"gonum.org/v1/gonum/stat"
)

// DepthStats summarises a depth buffer and the shifts it produces.
type DepthStats struct {
	Mean, StdDev float64
	Median       float64
	// Fraction of samples in front of the far plane (depth > 0).
	Foreground float64
	// Shifts[s] counts the samples mapped to shift s.
	Shifts []int
}

// AnalyzeDepth computes statistics of d for the given max depth shift.
func AnalyzeDepth(d *DepthBuffer, maxShift int) (DepthStats, error) {
	if d == nil {
		return DepthStats{}, invalidf("nil depth buffer")
	}
	if maxShift < 0 {
		return DepthStats{}, invalidf("max depth shift %d", maxShift)
	}
	var hist [256]float64
	for _, v := range d.pix {
		hist[v]++
	}
	values := make([]float64, 256)
	for i := range values {
		values[i] = float64(i)
	}
	weights := hist[:]

	var st DepthStats
	st.Mean, st.StdDev = stat.MeanStdDev(values, weights)
	if len(d.pix) == 1 {
		st.StdDev = 0 // unbiased estimate is undefined for one sample
	}
	st.Median = stat.Quantile(0.5, stat.Empirical, values, weights)
	st.Foreground = 1 - hist[0]/float64(len(d.pix))
	st.Shifts = make([]int, maxShift+1)
	for v, n := range hist {
		st.Shifts[Shift(uint8(v), maxShift)] += int(n)
	}
	return st, nil
}

package utils

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/setanarut/stereogram"
)

// SaveShiftHistogram plots how many pixels land on each shift value.
// The output format follows the file extension (png, svg, pdf).
func SaveShiftHistogram(st stereogram.DepthStats, filename string) error {
	if len(st.Shifts) == 0 {
		return fmt.Errorf("empty shift histogram")
	}
	values := make(plotter.Values, len(st.Shifts))
	for i, n := range st.Shifts {
		values[i] = float64(n)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shift histogram (mean depth %.1f, foreground %.0f%%)", st.Mean, st.Foreground*100)
	p.X.Label.Text = "shift (px)"
	p.Y.Label.Text = "pixels"

	bars, err := plotter.NewBarChart(values, vg.Points(6))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/statanim/internal/geometry"
)

const (
	PlotHeight = 15
	PlotWidth  = 80
)

// Sample evaluates pdf at n evenly spaced points of r. Non-finite values are
// clamped to the largest finite sample so a pole at the boundary stays on
// the chart.
func Sample(pdf func(float64) float64, r geometry.Range, n int) ([]float64, error) {
	_, ys, err := sampleXY(pdf, r, n)
	return ys, err
}

func sampleXY(pdf func(float64) float64, r geometry.Range, n int) ([]float64, []float64, error) {
	if n < 2 {
		return nil, nil, geometry.ErrTooFewSamples
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	peak := 0.0
	for i := range ys {
		xs[i] = r.Min + r.Span()*float64(i)/float64(n-1)
		y := pdf(xs[i])
		ys[i] = y
		if !math.IsInf(y, 0) && !math.IsNaN(y) && y > peak {
			peak = y
		}
	}
	for i, y := range ys {
		if math.IsInf(y, 0) || math.IsNaN(y) {
			ys[i] = peak
		}
	}
	return xs, ys, nil
}

// PlotDensity draws pdf over r as an ASCII line chart.
func PlotDensity(pdf func(float64) float64, r geometry.Range, caption string) (string, error) {
	data, err := Sample(pdf, r, PlotWidth)
	if err != nil {
		return "", err
	}
	return asciigraph.Plot(data,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s  x ∈ [%g, %g]", caption, r.Min, r.Max)),
	), nil
}

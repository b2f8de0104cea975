package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/stats"
)

func TestSampleClampsPoles(t *testing.T) {
	pdf := func(x float64) float64 {
		if x == 0 {
			return math.Inf(1)
		}
		return 1 - x
	}
	data, err := Sample(pdf, geometry.Range{Min: 0, Max: 1}, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.75, 0.75, 0.5, 0.25, 0}
	for i := range want {
		if math.Abs(data[i]-want[i]) > 1e-12 {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want[i])
		}
	}

	if _, err := Sample(pdf, geometry.Range{Max: 1}, 1); err != geometry.ErrTooFewSamples {
		t.Errorf("n=1 error = %v, want ErrTooFewSamples", err)
	}
}

func TestPlotDensity(t *testing.T) {
	out, err := PlotDensity(func(x float64) float64 { return stats.ChiSquaredPDF(x, 2) }, geometry.Range{Min: 0, Max: 8}, "chi-squared df=2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "chi-squared df=2") {
		t.Error("caption missing")
	}
	if rows := strings.Count(out, "\n"); rows < PlotHeight {
		t.Errorf("plot has %d rows, want at least %d", rows, PlotHeight)
	}
}

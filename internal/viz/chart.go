package viz

import (
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/geometry"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Curve is one density on a chart.
type Curve struct {
	Name  string
	PDF   func(float64) float64
	Range geometry.Range
	Color geometry.Color
}

// ChartOptions size and annotate a density chart.
type ChartOptions struct {
	Title         string
	Width, Height int
	Samples       int
	// Marker draws a dashed vertical line at x when set, for example at a
	// critical value.
	Marker      *float64
	MarkerName  string
	MarkerColor geometry.Color
}

// DensityChart renders curves as a PNG line chart.
func DensityChart(w io.Writer, curves []Curve, opts ChartOptions) error {
	if len(curves) == 0 {
		return errors.New("chart: no curves")
	}
	n := opts.Samples
	if n == 0 {
		n = geometry.DefaultSamples
	}

	series := make([]chart.Series, 0, len(curves)+1)
	top := 0.0
	for _, c := range curves {
		xs, ys, err := sampleXY(c.PDF, c.Range, n)
		if err != nil {
			return err
		}
		for _, y := range ys {
			top = math.Max(top, y)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chartColor(c.Color),
				StrokeWidth: 2,
			},
		})
	}

	if opts.Marker != nil {
		x := *opts.Marker
		series = append(series, chart.ContinuousSeries{
			Name:    opts.MarkerName,
			XValues: []float64{x, x},
			YValues: []float64{0, top},
			Style: chart.Style{
				StrokeColor:     chartColor(opts.MarkerColor),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5, 4},
			},
		})
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "x"},
		YAxis:      chart.YAxis{Name: "density", Range: &chart.ContinuousRange{Min: 0, Max: top * 1.05}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return errors.Wrap(ch.Render(chart.PNG, w), "render chart")
}

func chartColor(c geometry.Color) drawing.Color {
	if c == "" {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(string(c), "#"))
}

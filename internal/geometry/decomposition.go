package geometry

import (
	"github.com/san-kum/statanim/internal/dataset"
	"github.com/san-kum/statanim/internal/stats"
)

// RegressionLines holds the deviation lines of a regression decomposition.
type RegressionLines struct {
	Mean float64
	Fit  dataset.Line

	MeanLine Primitive
	FitLine  Primitive

	// Total runs from the mean to each point, Residual from the fitted
	// value to each point, Model from the mean to the fitted value.
	Total    Group
	Residual Group
	Model    Group
}

// NewRegressionLines derives the mean and fitted references from points.
func NewRegressionLines(points []dataset.Point, fit dataset.Line, pal Palette) (RegressionLines, error) {
	mean, err := stats.Mean(dataset.Ys(points))
	if err != nil {
		return RegressionLines{}, err
	}
	xs := Span(points, 0)
	fitted := make([]dataset.Point, len(points))
	for i, p := range points {
		fitted[i] = dataset.Point{X: p.X, Y: fit.At(p.X)}
	}
	return RegressionLines{
		Mean:     mean,
		Fit:      fit,
		MeanLine: ReferenceLine(mean, Range{Min: xs.Min - 1, Max: xs.Max + 1}, pal.GrandMean),
		FitLine:  Segment(Vec2{xs.Min, fit.At(xs.Min)}, Vec2{xs.Max, fit.At(xs.Max)}, pal.Fitted),
		Total:    DeviationLines(points, Constant(mean), pal.Total),
		Residual: DeviationLines(points, Fitted(fit), pal.Residual),
		Model:    DeviationLines(fitted, Constant(mean), pal.Model),
	}, nil
}

// ANOVALines holds the mean markers and deviation lines of a one-way ANOVA.
type ANOVALines struct {
	GrandMean  float64
	GroupMeans []float64

	GroupMeanLines Group
	GrandMeanLine  Primitive

	// ToGroupMean runs from each point's group mean to the point,
	// ToGrandMean from the grand mean to the point, and GroupToGrand from
	// the grand mean to the point's group mean.
	ToGroupMean  Group
	ToGrandMean  Group
	GroupToGrand Group
}

// groupMeanHalfWidth is half the width of the short segment marking a group mean.
const groupMeanHalfWidth = 0.3

// NewANOVALines derives group and grand means from groups.
func NewANOVALines(groups dataset.Groups, pal Palette) (ANOVALines, error) {
	if err := groups.Validate(); err != nil {
		return ANOVALines{}, stats.ErrEmptyDataset
	}
	all := groups.All()
	grand, err := stats.Mean(dataset.Ys(all))
	if err != nil {
		return ANOVALines{}, err
	}

	out := ANOVALines{
		GrandMean:     grand,
		GroupMeans:    make([]float64, len(groups)),
		GrandMeanLine: ReferenceLine(grand, Span(all, 0.4), pal.GrandMean),
	}
	for i, g := range groups {
		m, err := stats.Mean(g.Ys())
		if err != nil {
			return ANOVALines{}, err
		}
		out.GroupMeans[i] = m

		centre, _ := stats.Mean(dataset.Xs(g.Points))
		span := Range{Min: centre - groupMeanHalfWidth, Max: centre + groupMeanHalfWidth}
		out.GroupMeanLines = append(out.GroupMeanLines, ReferenceLine(m, span, pal.GroupMean))

		onMean := make([]dataset.Point, len(g.Points))
		for j, p := range g.Points {
			onMean[j] = dataset.Point{X: p.X, Y: m}
		}
		out.ToGroupMean = append(out.ToGroupMean, DeviationLines(g.Points, Constant(m), pal.ToGroup)...)
		out.ToGrandMean = append(out.ToGrandMean, DeviationLines(g.Points, Constant(grand), pal.ToGrand)...)
		out.GroupToGrand = append(out.GroupToGrand, DeviationLines(onMean, Constant(grand), pal.GroupGrand)...)
	}
	return out, nil
}

// SumSquaredLengths adds up the squared lengths of the segments in g.
func SumSquaredLengths(g Group) float64 {
	sum := 0.0
	for _, p := range g {
		if p.Kind != KindSegment {
			continue
		}
		d := p.Points[0].Dist(p.Points[1])
		sum += d * d
	}
	return sum
}

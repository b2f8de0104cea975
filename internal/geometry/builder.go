package geometry

import (
	"errors"
	"math"

	"github.com/san-kum/statanim/internal/dataset"
)

// ErrTooFewSamples is returned when a curve is requested with fewer than two samples.
var ErrTooFewSamples = errors.New("geometry: density curve needs at least 2 samples")

// DefaultSamples is enough for a visually smooth density over [0, 10].
const DefaultSamples = 300

// Range is a closed interval on the x axis.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (r Range) Span() float64 { return r.Max - r.Min }

// Reference maps a sample point to the level its deviation is measured from.
type Reference func(p dataset.Point) float64

// Constant is a Reference that ignores the point, used for grand means.
func Constant(y float64) Reference {
	return func(dataset.Point) float64 { return y }
}

// Fitted is a Reference that evaluates a regression line at the point's x.
func Fitted(l dataset.Line) Reference {
	return func(p dataset.Point) float64 { return l.At(p.X) }
}

func Dot(at Vec2, color Color) Primitive {
	return Primitive{Kind: KindDot, Points: []Vec2{at}, Color: color}
}

func Segment(from, to Vec2, color Color) Primitive {
	return Primitive{Kind: KindSegment, Points: []Vec2{from, to}, Color: color}
}

func DashedSegment(from, to Vec2, color Color) Primitive {
	s := Segment(from, to, color)
	s.Dashed = true
	return s
}

// Text is a plain caption centred on at.
func Text(s string, at Vec2, size float64, color Color) Primitive {
	return Primitive{Kind: KindText, Points: []Vec2{at}, Color: color, Text: s, Size: size}
}

// Formula is a TeX caption centred on at.
func Formula(tex string, at Vec2, size float64, color Color) Primitive {
	return Primitive{Kind: KindFormula, Points: []Vec2{at}, Color: color, Text: tex, Size: size}
}

// Scatter draws one dot per point.
func Scatter(points []dataset.Point, color Color) Group {
	g := make(Group, len(points))
	for i, p := range points {
		g[i] = Dot(Vec2{p.X, p.Y}, color)
	}
	return g
}

// ReferenceLine is a horizontal segment at height y across span.
func ReferenceLine(y float64, span Range, color Color) Primitive {
	return Segment(Vec2{span.Min, y}, Vec2{span.Max, y}, color)
}

// DeviationLines draws a dashed vertical segment from (x, ref(p)) to (x, y)
// for every point p.
func DeviationLines(points []dataset.Point, ref Reference, color Color) Group {
	g := make(Group, len(points))
	for i, p := range points {
		g[i] = DashedSegment(Vec2{p.X, ref(p)}, Vec2{p.X, p.Y}, color)
	}
	return g
}

// DensityCurve samples pdf at evenly spaced x across r. Samples where the
// density is not finite are skipped.
func DensityCurve(pdf func(float64) float64, r Range, samples int, color Color) (Primitive, error) {
	if samples < 2 {
		return Primitive{}, ErrTooFewSamples
	}
	pts := make([]Vec2, 0, samples)
	step := r.Span() / float64(samples-1)
	for i := 0; i < samples; i++ {
		x := r.Min + float64(i)*step
		y := pdf(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, Vec2{x, y})
	}
	return Primitive{Kind: KindCurve, Points: pts, Color: color}, nil
}

// Span returns the x extent of points padded by pad on both sides.
func Span(points []dataset.Point, pad float64) Range {
	if len(points) == 0 {
		return Range{}
	}
	r := Range{Min: points[0].X, Max: points[0].X}
	for _, p := range points[1:] {
		r.Min = math.Min(r.Min, p.X)
		r.Max = math.Max(r.Max, p.X)
	}
	return Range{Min: r.Min - pad, Max: r.Max + pad}
}

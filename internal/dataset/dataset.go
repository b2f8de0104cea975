package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty is returned when a dataset or one of its groups has no points.
	ErrEmpty = errors.New("dataset: empty")
	// ErrDegenerate is returned when no unique line fits the points.
	ErrDegenerate = errors.New("dataset: all points share one x")
)

// DefaultJitter is the horizontal spread applied to grouped points.
const DefaultJitter = 0.1

type Point struct {
	X, Y float64
}

type Group struct {
	Name   string
	Points []Point
}

// Groups keeps group order stable so that scenes draw them left to right.
type Groups []Group

// RegressionSample returns the five-point sample used by the regression scene.
func RegressionSample() []Point {
	return []Point{
		{1, 2}, {2, 3}, {3, 2.5}, {4, 4}, {5, 5},
	}
}

// ANOVAGroups returns three groups of three observations centred on x = 1, 2, 3.
// Points inside a group are spread by jitter so they do not overlap.
func ANOVAGroups(jitter float64) Groups {
	ys := [][]float64{
		{2, 2.5, 3},
		{3, 3.5, 4},
		{4, 4.5, 5},
	}
	groups := make(Groups, len(ys))
	for i, vals := range ys {
		groups[i] = Jitter(fmt.Sprintf("Group %d", i+1), float64(i+1), jitter, vals)
	}
	return groups
}

// Jitter places values around centre, one jitter step apart.
func Jitter(name string, centre, jitter float64, values []float64) Group {
	g := Group{Name: name, Points: make([]Point, len(values))}
	offset := -jitter * float64(len(values)-1) / 2
	for i, y := range values {
		g.Points[i] = Point{X: centre + offset + float64(i)*jitter, Y: y}
	}
	return g
}

func Xs(points []Point) []float64 {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
	}
	return xs
}

func Ys(points []Point) []float64 {
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	return ys
}

func (g Group) Ys() []float64 {
	return Ys(g.Points)
}

// All flattens the groups in order.
func (gs Groups) All() []Point {
	n := 0
	for _, g := range gs {
		n += len(g.Points)
	}
	all := make([]Point, 0, n)
	for _, g := range gs {
		all = append(all, g.Points...)
	}
	return all
}

func (gs Groups) Validate() error {
	if len(gs) == 0 {
		return ErrEmpty
	}
	for _, g := range gs {
		if len(g.Points) == 0 {
			return fmt.Errorf("group %q: %w", g.Name, ErrEmpty)
		}
	}
	return nil
}

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `yaml:"slope" json:"slope"`
	Intercept float64 `yaml:"intercept" json:"intercept"`
}

// At is the linear estimate Slope*x + Intercept. Every fitted value and
// stats.LinearEstimate go through it.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Fit returns the ordinary least squares line through points.
func Fit(points []Point) (Line, error) {
	if len(points) < 2 {
		return Line{}, fmt.Errorf("fit needs at least 2 points: %w", ErrEmpty)
	}
	xs := Xs(points)
	if !spread(xs) {
		return Line{}, fmt.Errorf("fit through x = %v: %w", xs[0], ErrDegenerate)
	}
	alpha, beta := stat.LinearRegression(xs, Ys(points), nil, false)
	return Line{Slope: beta, Intercept: alpha}, nil
}

func spread(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return true
		}
	}
	return false
}

package stats

import (
	"math"

	"github.com/san-kum/statanim/internal/dataset"
)

// Decomposition splits the total sum of squares of a regression.
type Decomposition struct {
	Total    float64 `json:"ss_total"`
	Residual float64 `json:"ss_residual"`
	Model    float64 `json:"ss_model"`
}

// Gap is Total - (Residual + Model). It is zero, up to rounding, only for the
// least squares line.
func (d Decomposition) Gap() float64 {
	return d.Total - d.Residual - d.Model
}

// Regression computes the sums of squares of points around line.
func Regression(points []dataset.Point, line dataset.Line) (Decomposition, error) {
	ys := dataset.Ys(points)
	mean, err := Mean(ys)
	if err != nil {
		return Decomposition{}, err
	}
	fitted := make([]float64, len(points))
	for i, p := range points {
		fitted[i] = line.At(p.X)
	}
	return Decomposition{
		Total:    SumOfSquares(ys, func(int) float64 { return mean }),
		Residual: SumOfSquares(ys, func(i int) float64 { return fitted[i] }),
		Model:    SumOfSquares(fitted, func(int) float64 { return mean }),
	}, nil
}

// Source is one row of an analysis of variance table.
type Source struct {
	SS float64 `json:"ss"`
	DF int     `json:"df"`
	MS float64 `json:"ms"`
}

func newSource(ss float64, df int) Source {
	s := Source{SS: ss, DF: df, MS: math.NaN()}
	if df > 0 {
		s.MS = ss / float64(df)
	}
	return s
}

// Table is an F test table. For a regression Model/Error are the explained and
// residual rows; for a one-way ANOVA they are the between and within rows.
type Table struct {
	Model Source  `json:"model"`
	Error Source  `json:"error"`
	Total Source  `json:"total"`
	F     float64 `json:"f"`
	P     float64 `json:"p"`
}

func newTable(ssModel, ssError, ssTotal float64, dfModel, dfError int) Table {
	t := Table{
		Model: newSource(ssModel, dfModel),
		Error: newSource(ssError, dfError),
		Total: newSource(ssTotal, dfModel+dfError),
		F:     math.NaN(),
		P:     math.NaN(),
	}
	if dfModel > 0 && dfError > 0 && t.Error.MS > 0 {
		t.F = t.Model.MS / t.Error.MS
		t.P, _ = FPValue(t.F, dfModel, dfError)
	}
	return t
}

// RegressionTable is the F test of a simple linear regression with one slope
// and one intercept.
func RegressionTable(points []dataset.Point, line dataset.Line) (Table, error) {
	d, err := Regression(points, line)
	if err != nil {
		return Table{}, err
	}
	const params = 2
	return newTable(d.Model, d.Residual, d.Total, params-1, len(points)-params), nil
}

// ANOVA holds a one-way analysis of variance.
type ANOVA struct {
	Table
	GrandMean  float64   `json:"grand_mean"`
	GroupMeans []float64 `json:"group_means"`
}

// Between is SS_between = sum n_i (mean_i - grand)^2.
func (a ANOVA) Between() float64 { return a.Model.SS }

// Within is SS_within = sum (y_ij - mean_i)^2.
func (a ANOVA) Within() float64 { return a.Error.SS }

// OneWay runs a one-way ANOVA over groups.
func OneWay(groups dataset.Groups) (ANOVA, error) {
	if err := groups.Validate(); err != nil {
		return ANOVA{}, ErrEmptyDataset
	}
	all := dataset.Ys(groups.All())
	grand, err := Mean(all)
	if err != nil {
		return ANOVA{}, err
	}

	means := make([]float64, len(groups))
	var between, within float64
	for i, g := range groups {
		ys := g.Ys()
		m, err := Mean(ys)
		if err != nil {
			return ANOVA{}, err
		}
		means[i] = m
		between += float64(len(ys)) * (m - grand) * (m - grand)
		within += SumOfSquares(ys, func(int) float64 { return m })
	}
	total := SumOfSquares(all, func(int) float64 { return grand })

	return ANOVA{
		Table:      newTable(between, within, total, len(groups)-1, len(all)-len(groups)),
		GrandMean:  grand,
		GroupMeans: means,
	}, nil
}

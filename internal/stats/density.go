package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalPDF is the standard normal density.
func NormalPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}

// ChiSquaredPDF is the chi-squared density with df degrees of freedom.
// It is zero for x < 0 and NaN for df < 1.
func ChiSquaredPDF(x float64, df int) float64 {
	if df < 1 {
		return math.NaN()
	}
	if x < 0 {
		return 0
	}
	if x == 0 {
		return atZero(df, 0.5)
	}
	return distuv.ChiSquared{K: float64(df)}.Prob(x)
}

// FPDF is the F density with df1 numerator and df2 denominator degrees of
// freedom. It is zero for x < 0 and NaN for non-positive df.
func FPDF(x float64, df1, df2 int) float64 {
	if df1 < 1 || df2 < 1 {
		return math.NaN()
	}
	if x < 0 {
		return 0
	}
	if x == 0 {
		return atZero(df1, 1)
	}
	return distuv.F{D1: float64(df1), D2: float64(df2)}.Prob(x)
}

// atZero is the limit at x = 0 of densities shaped like x^(df/2-1):
// unbounded below two degrees of freedom, finite at two, zero above.
// distuv evaluates 0*log(0) there and returns NaN.
func atZero(df int, atTwo float64) float64 {
	switch {
	case df < 2:
		return math.Inf(1)
	case df == 2:
		return atTwo
	default:
		return 0
	}
}

// ChiSquaredDensity returns the chi-squared density for df as a function of x.
func ChiSquaredDensity(df int) (func(float64) float64, error) {
	if df < 1 {
		return nil, ErrDegreesOfFreedom
	}
	return func(x float64) float64 { return ChiSquaredPDF(x, df) }, nil
}

// FDensity returns the F density for (df1, df2) as a function of x.
func FDensity(df1, df2 int) (func(float64) float64, error) {
	if df1 < 1 || df2 < 1 {
		return nil, ErrDegreesOfFreedom
	}
	return func(x float64) float64 { return FPDF(x, df1, df2) }, nil
}

// FCritical returns the value the F statistic must exceed to reject at
// significance level alpha.
func FCritical(alpha float64, df1, df2 int) (float64, error) {
	if df1 < 1 || df2 < 1 {
		return 0, ErrDegreesOfFreedom
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, ErrProbability
	}
	return distuv.F{D1: float64(df1), D2: float64(df2)}.Quantile(1 - alpha), nil
}

// FPValue returns P(F > f) under the null hypothesis.
func FPValue(f float64, df1, df2 int) (float64, error) {
	if df1 < 1 || df2 < 1 {
		return 0, ErrDegreesOfFreedom
	}
	if f <= 0 {
		return 1, nil
	}
	return distuv.F{D1: float64(df1), D2: float64(df2)}.Survival(f), nil
}

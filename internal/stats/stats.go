package stats

import (
	"github.com/san-kum/statanim/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyDataset
	}
	return stat.Mean(values, nil), nil
}

// LinearEstimate returns slope*x + intercept, the value dataset.Line.At
// gives for the same line.
func LinearEstimate(x, slope, intercept float64) float64 {
	return dataset.Line{Slope: slope, Intercept: intercept}.At(x)
}

// SumOfSquares returns sum((values[i] - reference(i))^2).
func SumOfSquares(values []float64, reference func(i int) float64) float64 {
	sum := 0.0
	for i, v := range values {
		d := v - reference(i)
		sum += d * d
	}
	return sum
}

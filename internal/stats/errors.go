package stats

import "errors"

var (
	// ErrEmptyDataset indicates a mean or sum of squares over no values.
	ErrEmptyDataset = errors.New("stats: empty dataset")

	// ErrDegreesOfFreedom indicates a non-positive degrees-of-freedom parameter.
	ErrDegreesOfFreedom = errors.New("stats: degrees of freedom must be positive")

	// ErrProbability indicates a probability outside (0, 1).
	ErrProbability = errors.New("stats: probability out of range")
)

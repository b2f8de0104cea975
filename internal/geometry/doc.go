// Package geometry turns datasets and densities into drawable primitives.
//
// Every builder is a pure function of its arguments and returns plain value
// records:
//
//   - [Scatter]: one dot per sample point
//   - [ReferenceLine]: a horizontal segment marking a mean or fitted level
//   - [DeviationLines]: dashed vertical segments from a reference to each point
//   - [DensityCurve]: a polyline sampled from a probability density
//
// The decomposition helpers ([NewRegressionLines], [NewANOVALines]) derive
// every reference value from the same dataset their lines are drawn from, so
// the number of lines always matches the number of points.
//
// Coordinates are scene units: the visible frame spans [FrameWidth] by
// [FrameHeight] centred on the origin, with y pointing up.
package geometry

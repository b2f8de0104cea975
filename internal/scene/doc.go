// Package scene sequences geometry into ordered animation timelines.
//
// A [Script] registers entities (named groups of primitives) and appends
// steps. Each step either plays a set of animations in parallel, holds for a
// fixed duration, or clears the frame. Steps run strictly in order.
//
//	s := scene.NewScript("demo", scene.DefaultRunTime)
//	dots := s.Add("dots", geometry.Scatter(points, geometry.Blue))
//	s.Play(scene.Create(dots))
//	s.Wait(1)
//	tl, err := s.Timeline()
//
// [Timeline.Validate] replays the steps and rejects references to entities
// registered after the step that uses them, appearing something already on
// screen, and removing or transforming something that is not.
//
// The presentations ([Regression], [ANOVA], [FStatistic]) are fixed scripts;
// the first two are configurations of the shared [Decomposition] builder.
package scene

// Package viz draws presentation frames in the terminal.
//
// Frames are rasterised onto a Braille [Canvas] through a [Viewport] that
// maps the scene frame to sub-pixels; formula and text labels are printed
// over it as plain text. [Previewer] is a Bubble Tea program that steps
// through a timeline frame by frame, and [PlotDensity] draws a single
// density with asciigraph.
//
// # Key Bindings
//
//	→ l n   - Next step
//	← h p   - Previous step
//	g G     - First / last step
//	Space   - Toggle autoplay
//	t       - Cycle themes
//	q       - Quit
package viz

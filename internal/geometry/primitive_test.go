package geometry

import (
	"encoding/json"
	"testing"

	"github.com/san-kum/statanim/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupTranslate_DoesNotMutate(t *testing.T) {
	g := Group{Segment(Vec2{0, 0}, Vec2{1, 1}, White)}
	moved := g.Translate(Down.Scale(3))

	assert.Equal(t, Vec2{0, 0}, g[0].Points[0])
	assert.Equal(t, Vec2{0, -3}, moved[0].Points[0])
	assert.Equal(t, Vec2{1, -2}, moved[0].Points[1])
}

func TestGroupScaleAndMove(t *testing.T) {
	g := Group{Segment(Vec2{-2, -1}, Vec2{2, 1}, White)}
	half := g.Scale(0.5)
	assert.InDelta(t, 2.0, half.Width(), 1e-12)
	assert.InDelta(t, 1.0, half.Height(), 1e-12)

	moved := half.MoveTo(Vec2{3, 3})
	c := moved.Center()
	assert.InDelta(t, 3.0, c.X, 1e-12)
	assert.InDelta(t, 3.0, c.Y, 1e-12)
}

func TestGroupToEdge(t *testing.T) {
	g := Group{Segment(Vec2{-1, 0}, Vec2{1, 0}, White)}
	left := g.ToEdge(Left, 1)
	lo, _ := left.Bounds()
	assert.InDelta(t, -FrameWidth/2+1, lo.X, 1e-12)

	up := g.ToEdge(Up, 0.5)
	_, hi := up.Bounds()
	assert.InDelta(t, FrameHeight/2-0.5, hi.Y, 1e-12)
}

func TestGroupNextTo(t *testing.T) {
	ref := Group{Formula("abcd", Vec2{0, 0}, 0.5, White)}
	below := Group{Formula("ab", Vec2{5, 5}, 0.5, White)}.NextTo(ref, Down, 0.25, true)

	rlo, _ := ref.Bounds()
	blo, bhi := below.Bounds()
	assert.InDelta(t, rlo.X, blo.X, 1e-12, "left aligned")
	assert.InDelta(t, rlo.Y-0.25, bhi.Y, 1e-12)
}

func TestKindJSON(t *testing.T) {
	p := DashedSegment(Vec2{0, 0}, Vec2{0, 1}, Red)
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"segment"`)

	var back Primitive
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("hexagon")))
}

func TestPaletteMerge(t *testing.T) {
	p := Palette{Data: "#000000"}.Merge(DefaultPalette())
	assert.Equal(t, Color("#000000"), p.Data)
	assert.Equal(t, DefaultPalette().Fitted, p.Fitted)
}

func TestAxes(t *testing.T) {
	a := Axes{X: Range{0, 10}, Y: Range{0, 0.5}, XStep: 1, YStep: 0.1, Width: 7, Height: 4}
	assert.Equal(t, Vec2{-3.5, -2}, a.ToScene(0, 0))
	assert.Equal(t, Vec2{3.5, 2}, a.ToScene(10, 0.5))

	shapes := a.Shapes()
	// two axis lines, 11 x ticks, 6 y ticks
	assert.Len(t, shapes, 2+11+6)

	g, err := a.Graph(func(float64) float64 { return 0.25 }, Range{0, 10}, 5, Red)
	require.NoError(t, err)
	curve := g[len(g)-1]
	assert.Equal(t, KindCurve, curve.Kind)
	for _, p := range curve.Points {
		assert.InDelta(t, 0.0, p.Y, 1e-12)
	}
}

func TestAxesPlot_ClipsToRange(t *testing.T) {
	a := Axes{X: Range{0, 10}, Y: Range{0, 0.5}, Width: 7, Height: 4}
	chi1, err := stats.ChiSquaredDensity(1)
	require.NoError(t, err)

	curve, err := a.Plot(chi1, Range{0.01, 10}, 200, Red)
	require.NoError(t, err)
	require.NotEmpty(t, curve.Points)

	top := a.ToScene(0, a.Y.Max).Y
	for _, p := range curve.Points {
		assert.LessOrEqual(t, p.Y, top+1e-9)
	}
	// the curve enters at the top edge where the density falls to 0.5
	assert.InDelta(t, top, curve.Points[0].Y, 1e-9)
	assert.Greater(t, curve.Points[0].X, a.ToScene(0.01, 0).X)
}

func TestClipY(t *testing.T) {
	pts := []Vec2{{0, 0.2}, {1, 1.2}, {2, 0.2}}
	got := clipY(pts, Range{0, 0.7})
	require.Len(t, got, 4)
	assert.Equal(t, Vec2{0, 0.2}, got[0])
	assert.InDelta(t, 0.5, got[1].X, 1e-9)
	assert.InDelta(t, 0.7, got[1].Y, 1e-9)
	assert.InDelta(t, 1.5, got[2].X, 1e-9)
	assert.InDelta(t, 0.7, got[2].Y, 1e-9)
	assert.Equal(t, Vec2{2, 0.2}, got[3])
}

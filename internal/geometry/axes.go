package geometry

import "math"

const tickLength = 0.1

// Axes maps data coordinates onto a rectangle of the scene.
type Axes struct {
	X      Range
	Y      Range
	XStep  float64
	YStep  float64
	Width  float64
	Height float64
	Center Vec2
	Color  Color
}

func (a Axes) ToScene(x, y float64) Vec2 {
	return Vec2{
		X: a.Center.X - a.Width/2 + (x-a.X.Min)/a.X.Span()*a.Width,
		Y: a.Center.Y - a.Height/2 + (y-a.Y.Min)/a.Y.Span()*a.Height,
	}
}

// origin is where the axis lines cross: zero when it is in range, the lower
// bound otherwise.
func (a Axes) origin() (float64, float64) {
	clamp := func(r Range) float64 {
		return math.Max(r.Min, math.Min(r.Max, 0))
	}
	return clamp(a.X), clamp(a.Y)
}

// Shapes returns the two axis lines and their tick marks.
func (a Axes) Shapes() Group {
	ox, oy := a.origin()
	g := Group{
		Segment(a.ToScene(a.X.Min, oy), a.ToScene(a.X.Max, oy), a.Color),
		Segment(a.ToScene(ox, a.Y.Min), a.ToScene(ox, a.Y.Max), a.Color),
	}
	if a.XStep > 0 {
		for x := a.X.Min; x <= a.X.Max+1e-9; x += a.XStep {
			p := a.ToScene(x, oy)
			g = append(g, Segment(p.Add(Vec2{0, -tickLength}), p.Add(Vec2{0, tickLength}), a.Color))
		}
	}
	if a.YStep > 0 {
		for y := a.Y.Min; y <= a.Y.Max+1e-9; y += a.YStep {
			p := a.ToScene(ox, y)
			g = append(g, Segment(p.Add(Vec2{-tickLength, 0}), p.Add(Vec2{tickLength, 0}), a.Color))
		}
	}
	return g
}

// Plot samples pdf over r in data coordinates and maps it into the scene.
// The curve is clipped to the y range, so a pole runs into the top of the
// axes instead of off the frame.
func (a Axes) Plot(pdf func(float64) float64, r Range, samples int, color Color) (Primitive, error) {
	c, err := DensityCurve(pdf, r, samples, color)
	if err != nil {
		return Primitive{}, err
	}
	c.Points = clipY(c.Points, a.Y)
	return c.mapPoints(func(v Vec2) Vec2 { return a.ToScene(v.X, v.Y) }), nil
}

// clipY drops the points outside r and puts a point on the boundary wherever
// the polyline crosses it.
func clipY(pts []Vec2, r Range) []Vec2 {
	inside := func(v Vec2) bool { return v.Y >= r.Min && v.Y <= r.Max }
	// crossing is where the segment from in (inside) to out leaves r.
	crossing := func(in, out Vec2) Vec2 {
		y := r.Max
		if out.Y < r.Min {
			y = r.Min
		}
		t := (y - in.Y) / (out.Y - in.Y)
		return Vec2{in.X + t*(out.X-in.X), y}
	}

	clipped := make([]Vec2, 0, len(pts))
	for i, p := range pts {
		in := inside(p)
		if i > 0 && inside(pts[i-1]) != in {
			if in {
				clipped = append(clipped, crossing(p, pts[i-1]))
			} else {
				clipped = append(clipped, crossing(pts[i-1], p))
			}
		}
		if in {
			clipped = append(clipped, p)
		}
	}
	return clipped
}

// Graph is the axes together with one plotted density.
func (a Axes) Graph(pdf func(float64) float64, r Range, samples int, color Color) (Group, error) {
	curve, err := a.Plot(pdf, r, samples, color)
	if err != nil {
		return nil, err
	}
	return append(a.Shapes(), curve), nil
}

package geometry

import (
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	FrameWidth  = 14.222
	FrameHeight = 8.0

	// DefaultTextSize is the height of a text label in scene units.
	DefaultTextSize = 0.5
	// glyphAspect is the estimated width of one character relative to its height.
	glyphAspect = 0.5
)

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

var (
	Up    = Vec2{0, 1}
	Down  = Vec2{0, -1}
	Left  = Vec2{-1, 0}
	Right = Vec2{1, 0}
)

type Kind int

const (
	KindDot Kind = iota
	KindSegment
	KindCurve
	KindText
	KindFormula
)

var kindNames = [...]string{"dot", "segment", "curve", "text", "formula"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("geometry: unknown kind %q", b)
}

// Primitive is a single drawable shape. Dots and labels carry one anchor
// point, segments two, curves any number.
type Primitive struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Points []Vec2  `json:"points" yaml:"points"`
	Color  Color   `json:"color" yaml:"color"`
	Dashed bool    `json:"dashed,omitempty" yaml:"dashed,omitempty"`
	Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
	Size   float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

func (p Primitive) IsLabel() bool {
	return p.Kind == KindText || p.Kind == KindFormula
}

// Translate returns a copy of p moved by d.
func (p Primitive) Translate(d Vec2) Primitive {
	return p.mapPoints(func(v Vec2) Vec2 { return v.Add(d) })
}

func (p Primitive) mapPoints(fn func(Vec2) Vec2) Primitive {
	out := p
	out.Points = make([]Vec2, len(p.Points))
	for i, v := range p.Points {
		out.Points[i] = fn(v)
	}
	return out
}

// Bounds returns the lower-left and upper-right corners. Label extents are
// estimated from the character count.
func (p Primitive) Bounds() (Vec2, Vec2) {
	lo := Vec2{math.Inf(1), math.Inf(1)}
	hi := Vec2{math.Inf(-1), math.Inf(-1)}
	half := Vec2{}
	if p.IsLabel() {
		half = Vec2{float64(utf8.RuneCountInString(p.Text)) * glyphAspect * p.Size / 2, p.Size / 2}
	}
	for _, v := range p.Points {
		lo.X = math.Min(lo.X, v.X-half.X)
		lo.Y = math.Min(lo.Y, v.Y-half.Y)
		hi.X = math.Max(hi.X, v.X+half.X)
		hi.Y = math.Max(hi.Y, v.Y+half.Y)
	}
	return lo, hi
}

// Group is a set of primitives moved and scaled together.
type Group []Primitive

func (g Group) Translate(d Vec2) Group {
	out := make(Group, len(g))
	for i, p := range g {
		out[i] = p.Translate(d)
	}
	return out
}

func (g Group) Bounds() (Vec2, Vec2) {
	lo := Vec2{math.Inf(1), math.Inf(1)}
	hi := Vec2{math.Inf(-1), math.Inf(-1)}
	for _, p := range g {
		plo, phi := p.Bounds()
		lo = Vec2{math.Min(lo.X, plo.X), math.Min(lo.Y, plo.Y)}
		hi = Vec2{math.Max(hi.X, phi.X), math.Max(hi.Y, phi.Y)}
	}
	return lo, hi
}

func (g Group) Center() Vec2 {
	lo, hi := g.Bounds()
	return lo.Add(hi).Scale(0.5)
}

func (g Group) Width() float64 {
	lo, hi := g.Bounds()
	return hi.X - lo.X
}

func (g Group) Height() float64 {
	lo, hi := g.Bounds()
	return hi.Y - lo.Y
}

// Scale resizes g about its centre. Label sizes scale with it.
func (g Group) Scale(f float64) Group {
	c := g.Center()
	out := make(Group, len(g))
	for i, p := range g {
		out[i] = p.mapPoints(func(v Vec2) Vec2 { return c.Add(v.Sub(c).Scale(f)) })
		out[i].Size = p.Size * f
	}
	return out
}

// MoveTo translates g so that its centre lands on c.
func (g Group) MoveTo(c Vec2) Group {
	return g.Translate(c.Sub(g.Center()))
}

// ToEdge moves g against one edge of the frame leaving buff units of margin.
// dir must be one of Up, Down, Left, Right.
func (g Group) ToEdge(dir Vec2, buff float64) Group {
	lo, hi := g.Bounds()
	var d Vec2
	switch dir {
	case Up:
		d.Y = FrameHeight/2 - buff - hi.Y
	case Down:
		d.Y = -FrameHeight/2 + buff - lo.Y
	case Left:
		d.X = -FrameWidth/2 + buff - lo.X
	case Right:
		d.X = FrameWidth/2 - buff - hi.X
	}
	return g.Translate(d)
}

// NextTo places g beside ref in direction dir with buff units between them.
// Vertically placed groups are left-aligned with ref when alignLeft is set,
// otherwise centred.
func (g Group) NextTo(ref Group, dir Vec2, buff float64, alignLeft bool) Group {
	glo, ghi := g.Bounds()
	rlo, rhi := ref.Bounds()
	gc, rc := g.Center(), ref.Center()
	var d Vec2
	switch dir {
	case Up:
		d = Vec2{rc.X - gc.X, rhi.Y + buff - glo.Y}
	case Down:
		d = Vec2{rc.X - gc.X, rlo.Y - buff - ghi.Y}
	case Left:
		d = Vec2{rlo.X - buff - ghi.X, rc.Y - gc.Y}
	case Right:
		d = Vec2{rhi.X + buff - glo.X, rc.Y - gc.Y}
	}
	if alignLeft && (dir == Up || dir == Down) {
		d.X = rlo.X - glo.X
	}
	return g.Translate(d)
}

package viz

import (
	"math"
	"strings"

	"github.com/san-kum/statanim/internal/geometry"
)

// Viewport maps scene coordinates onto a canvas. The scene frame is centred
// on the origin and spans geometry.FrameWidth by geometry.FrameHeight.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

func NewViewport(cols, rows int) Viewport {
	return Viewport{Cols: cols, Rows: rows, Width: geometry.FrameWidth, Height: geometry.FrameHeight}
}

// Pixel returns the sub-pixel position of a scene point.
func (v Viewport) Pixel(p geometry.Vec2) (int, int) {
	w, h := float64(v.Cols*2-1), float64(v.Rows*4-1)
	x := (p.X/v.Width + 0.5) * w
	y := (0.5 - p.Y/v.Height) * h
	return int(math.Round(x)), int(math.Round(y))
}

// Cell returns the character cell holding a scene point.
func (v Viewport) Cell(p geometry.Vec2) (int, int) {
	x, y := v.Pixel(p)
	return x / 2, y / 4
}

// Render draws g on a fresh canvas of the viewport's size.
func (v Viewport) Render(g geometry.Group) *Canvas {
	c := NewCanvas(v.Cols, v.Rows)
	for _, p := range g {
		if p.IsLabel() {
			continue
		}
		v.draw(c, p)
	}
	// labels last so that lines never cut through them
	for _, p := range g {
		if p.IsLabel() && len(p.Points) > 0 {
			col, row := v.Cell(p.Points[0])
			c.Label(col, row, PlainText(p.Text))
		}
	}
	return c
}

func (v Viewport) draw(c *Canvas, p geometry.Primitive) {
	switch p.Kind {
	case geometry.KindDot:
		for _, pt := range p.Points {
			x, y := v.Pixel(pt)
			c.Set(x, y)
			c.Set(x+1, y)
			c.Set(x, y+1)
			c.Set(x+1, y+1)
		}
	case geometry.KindSegment, geometry.KindCurve:
		for i := 1; i < len(p.Points); i++ {
			x0, y0 := v.Pixel(p.Points[i-1])
			x1, y1 := v.Pixel(p.Points[i])
			if p.Dashed {
				c.DrawDashed(x0, y0, x1, y1)
			} else {
				c.DrawLine(x0, y0, x1, y1)
			}
		}
	}
}

// RenderFrame draws g at the given size and returns the text picture.
func RenderFrame(g geometry.Group, cols, rows int) string {
	return NewViewport(cols, rows).Render(g).String()
}

var texReplacer = strings.NewReplacer(
	`\hat{Y}`, "Ŷ",
	`\hat{y}`, "ŷ",
	`\overline{Y}`, "Ȳ",
	`\overline{y}`, "ȳ",
	`\bar{Y}`, "Ȳ",
	`\sum`, "Σ",
	`\alpha`, "α",
	`\chi`, "χ",
	`\cdot`, "·",
	`\times`, "×",
	`\sim`, "~",
	`\left`, "",
	`\right`, "",
	`\text`, "",
	`\mathrm`, "",
	`\frac`, "",
	`\quad`, " ",
	`\,`, " ",
	`\\`, " ",
	"&", "",
	"_", "",
	"}{", "/",
	"{", "",
	"}", "",
)

// PlainText strips TeX markup from a formula so it can be printed in a
// terminal cell row.
func PlainText(tex string) string {
	return strings.Join(strings.Fields(texReplacer.Replace(tex)), " ")
}

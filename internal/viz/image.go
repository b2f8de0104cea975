package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/san-kum/statanim/internal/geometry"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Cell size in image pixels when a canvas is rasterised.
const (
	CellWidth  = 8
	CellHeight = 16
)

var imagePalette = color.Palette{color.Black, color.White}

// basicfont only covers Latin-1.
var asciiReplacer = strings.NewReplacer(
	"Σ", "sum ",
	"Ŷ", "Y^",
	"ŷ", "y^",
	"Ȳ", "Ybar",
	"ȳ", "ybar",
	"α", "alpha",
	"χ", "chi",
	"·", "*",
	"→", "->",
)

// Image rasterises the Braille layer of c, two by four blocks per cell.
// Labels are not drawn.
func (c *Canvas) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*CellWidth, c.Height*CellHeight), imagePalette)
	dotW, dotH := CellWidth/2, CellHeight/4
	for y := 0; y < c.Height*4; y++ {
		for x := 0; x < c.Width*2; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

// Image renders g as a bitmap with its labels drawn in a 7x13 font over a
// cleared background.
func (v Viewport) Image(g geometry.Group) *image.Paletted {
	img := v.Render(g).Image()
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: face}

	for _, p := range g {
		if !p.IsLabel() || len(p.Points) == 0 {
			continue
		}
		text := asciiReplacer.Replace(PlainText(p.Text))
		col, row := v.Cell(p.Points[0])
		w := dr.MeasureString(text).Ceil()
		x := col*CellWidth + CellWidth/2 - w/2
		y := row*CellHeight + (CellHeight+ascent)/2

		bg := image.Rect(x-2, y-ascent-1, x+w+2, y+3)
		draw.Draw(img, bg, image.NewUniform(color.Black), image.Point{}, draw.Src)
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(text)
	}
	return img
}

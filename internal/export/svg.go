package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/statanim/internal/geometry"
	"github.com/san-kum/statanim/internal/viz"
)

const (
	svgBackground  = "#000000"
	svgStrokeWidth = 2.0
	svgDotRadius   = 0.08
	svgDash        = "6 4"
)

// FrameToSVG draws g as a standalone SVG document of the given pixel width.
// The height follows the aspect ratio of the scene frame.
func FrameToSVG(g geometry.Group, width int) string {
	scale := float64(width) / geometry.FrameWidth
	height := int(geometry.FrameHeight*scale + 0.5)
	px := func(v geometry.Vec2) (float64, float64) {
		return (v.X + geometry.FrameWidth/2) * scale, (geometry.FrameHeight/2 - v.Y) * scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	for _, p := range g {
		if len(p.Points) == 0 {
			continue
		}
		switch p.Kind {
		case geometry.KindDot:
			x, y := px(p.Points[0])
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, svgDotRadius*scale, p.Color))
		case geometry.KindSegment, geometry.KindCurve:
			if len(p.Points) < 2 {
				continue
			}
			sb.WriteString(`<path fill="none" stroke="` + string(p.Color) + `"`)
			sb.WriteString(fmt.Sprintf(` stroke-width="%.1f"`, svgStrokeWidth))
			if p.Dashed {
				sb.WriteString(` stroke-dasharray="` + svgDash + `"`)
			}
			sb.WriteString(` d="M`)
			for i, v := range p.Points {
				x, y := px(v)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		case geometry.KindText, geometry.KindFormula:
			x, y := px(p.Points[0])
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>
`, x, y, p.Color, p.Size*scale, html.EscapeString(viz.PlainText(p.Text))))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

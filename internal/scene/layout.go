package scene

import "github.com/san-kum/statanim/internal/geometry"

const (
	formulaSize = 0.6
	captionSize = 0.45
	labelSize   = 0.3

	// nextToBuff and edgeBuff are the default gaps between placed groups
	// and between a group and the frame edge.
	nextToBuff = 0.25
	edgeBuff   = 0.5
)

func formula(tex string, size float64, color geometry.Color) geometry.Group {
	return geometry.Group{geometry.Formula(tex, geometry.Vec2{}, size, color)}
}

func text(s string, size float64, color geometry.Color) geometry.Group {
	return geometry.Group{geometry.Text(s, geometry.Vec2{}, size, color)}
}

// block stacks formula lines top to bottom, left aligned.
func block(lines []string, size float64, color geometry.Color) geometry.Group {
	var g geometry.Group
	var prev geometry.Group
	for _, l := range lines {
		f := formula(l, size, color)
		if prev != nil {
			f = f.NextTo(prev, geometry.Down, nextToBuff/2, true)
		}
		g = append(g, f...)
		prev = f
	}
	return g
}

func caption(s string, color geometry.Color) geometry.Group {
	return text(s, captionSize, color).ToEdge(geometry.Up, edgeBuff)
}

func toCorner(g geometry.Group, vertical, horizontal geometry.Vec2) geometry.Group {
	return g.ToEdge(vertical, edgeBuff).ToEdge(horizontal, edgeBuff)
}

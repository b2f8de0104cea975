package export

import (
	"image"
	"image/gif"
	"io"

	"github.com/pkg/errors"
	"github.com/san-kum/statanim/internal/scene"
	"github.com/san-kum/statanim/internal/viz"
)

// minDelay is the shortest frame delay in hundredths of a second.
const minDelay = 10

// WriteGIF encodes one image per step of tl, each shown for the step's
// running time.
func WriteGIF(w io.Writer, tl *scene.Timeline, cols, rows int) error {
	frames, err := tl.Frames()
	if err != nil {
		return errors.Wrapf(err, "gif %s", tl.Name)
	}
	if len(frames) == 0 {
		return errors.Errorf("gif %s: no steps", tl.Name)
	}
	view := viz.NewViewport(cols, rows)
	anim := gif.GIF{LoopCount: 0}
	for _, f := range frames {
		anim.Image = append(anim.Image, view.Image(tl.Shapes(f)))
		anim.Delay = append(anim.Delay, delay(f))
	}
	anim.Config = image.Config{
		ColorModel: anim.Image[0].Palette,
		Width:      cols * viz.CellWidth,
		Height:     rows * viz.CellHeight,
	}
	return errors.Wrap(gif.EncodeAll(w, &anim), "encode gif")
}

func delay(f scene.Frame) int {
	d := int((f.End - f.Start) * 100)
	if d < minDelay {
		return minDelay
	}
	return d
}

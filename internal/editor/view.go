package editor

import (
	"image/color"
	"strconv"

	"github.com/Faultbox/pxref/internal/drag"
	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
	"github.com/Faultbox/pxref/internal/resolve"
)

// Canvas is the drawing surface the view renders to.
type Canvas interface {
	FillRect(x, y, w, h float32, c color.RGBA)
	StrokeRect(x, y, w, h, thickness float32, c color.RGBA)
	Text(x, y float32, s string, scale float32, c color.RGBA)
	MeasureText(s string, scale float32) float32
}

// Colors used by the view.
var (
	Background   = color.RGBA{27, 27, 27, 255}
	CheckerLight = color.RGBA{220, 220, 220, 255}
	CheckerDark  = color.RGBA{160, 160, 160, 255}
	LabelLight   = color.RGBA{255, 255, 255, 255}
	LabelDark    = color.RGBA{96, 96, 96, 255}

	buttonIdle    = color.RGBA{220, 220, 220, 255}
	buttonHover   = color.RGBA{160, 160, 160, 255}
	buttonCurrent = color.RGBA{96, 96, 96, 255}
	buttonRemove  = color.RGBA{200, 60, 60, 255}
	buttonText    = color.RGBA{20, 20, 20, 255}
	previewBorder = color.RGBA{0, 0, 0, 255}
)

// Font pixel sizes.
const (
	labelScale  = 1
	buttonScale = 3
)

// Draw renders the whole editor.
func (e *Editor) Draw(c Canvas) {
	preview, dragging := e.drag.Preview()

	e.drawFrame(c, preview, dragging)
	e.drawPalette(c)
	e.drawTimeline(c)
	e.drawPlayButton(c)

	if dragging {
		size := e.layout.CellSize
		x, y := preview.At.X-size/2, preview.At.Y-size/2
		c.FillRect(x, y, size, size, preview.Color)
		c.StrokeRect(x, y, size, size, 1, previewBorder)
	}
}

func checker(x, y int) color.RGBA {
	if resolve.Checker(x, y) {
		return CheckerLight
	}
	return CheckerDark
}

func labelColor(c color.RGBA) color.RGBA {
	if c.R > 200 && c.G > 200 && c.B > 200 {
		return LabelDark
	}
	return LabelLight
}

func (e *Editor) drawFrame(c Canvas, preview drag.Preview, dragging bool) {
	f := e.Frame()
	size := e.layout.CellSize

	for x := 0; x < frame.Size; x++ {
		for y := 0; y < frame.Size; y++ {
			at := e.layout.FrameCellRect(x, y)

			res := resolve.Cell(f, x, y, e.palette)
			if dragging && preview.HideStart && preview.StartX == x && preview.StartY == y {
				res = resolve.Result{}
			}
			if !res.OK {
				c.FillRect(at.X, at.Y, size, size, checker(x, y))
				continue
			}
			c.FillRect(at.X, at.Y, size, size, res.Color)
			c.Text(at.X+1, at.Y+1, res.Label, labelScale, labelColor(res.Color))
		}
	}
}

func (e *Editor) drawPalette(c Canvas) {
	size := e.layout.CellSize

	for x := 0; x < palette.Size; x++ {
		for y := 0; y < palette.Size; y++ {
			at := e.layout.PaletteCellRect(x, y)
			col, ok := e.palette.Get(x, y)
			if !ok {
				col = checker(x, y)
			}
			c.FillRect(at.X, at.Y, size, size, col)
		}
	}
}

func (e *Editor) drawTimeline(c Canvas) {
	n := e.timeline.Len()
	for j := 0; j <= n; j++ {
		r := frameButton(j)
		hover := r.contains(e.pointer)

		label := "+"
		fill := buttonIdle
		if j < n {
			label = strconv.Itoa(j + 1)
			switch {
			case hover && e.mods.Shift:
				fill = buttonRemove
			case j == e.timeline.Index():
				fill = buttonCurrent
			case hover:
				fill = buttonHover
			}
		} else if hover {
			fill = buttonHover
		}

		c.FillRect(r.X, r.Y, r.W, r.H, fill)
		e.drawCentered(c, r, label, labelColor(fill))
	}
}

func (e *Editor) drawCentered(c Canvas, r rect, s string, col color.RGBA) {
	scale := float32(buttonScale)
	if w := c.MeasureText(s, scale); w > r.W-4 {
		scale = 2
	}
	w := c.MeasureText(s, scale)
	h := 5 * scale
	c.Text(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, s, scale, col)
}

func (e *Editor) drawPlayButton(c Canvas) {
	r := playButton()
	fill := buttonIdle
	if r.contains(e.pointer) {
		fill = buttonHover
	}
	c.FillRect(r.X, r.Y, r.W, r.H, fill)

	if e.timeline.Playing() {
		// pause: two bars
		c.FillRect(r.X+9, r.Y+8, 5, 16, buttonText)
		c.FillRect(r.X+18, r.Y+8, 5, 16, buttonText)
		return
	}
	// play: a right-pointing triangle made of shrinking columns
	for i := 0; i < 8; i++ {
		inset := float32(i)
		c.FillRect(r.X+10+float32(i)*2, r.Y+8+inset, 2, 16-2*inset, buttonText)
	}
}

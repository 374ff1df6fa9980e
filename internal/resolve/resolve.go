// Package resolve follows frame references into the palette.
package resolve

import (
	"image/color"
	"strconv"

	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
)

// Result is a resolved frame cell.
type Result struct {
	Color color.RGBA
	Label string // 1-based palette index, empty when unresolved
	OK    bool
}

// Resolve returns the color a frame cell points at.
// Empty cells and dangling refs both resolve to false.
func Resolve(f *frame.Frame, x, y int, p *palette.Palette) (color.RGBA, bool) {
	if f == nil {
		return color.RGBA{}, false
	}
	c := f.Get(x, y)
	if !c.Set {
		return color.RGBA{}, false
	}
	return p.Get(c.X, c.Y)
}

// Cell resolves a frame cell together with its on-canvas label.
func Cell(f *frame.Frame, x, y int, p *palette.Palette) Result {
	col, ok := Resolve(f, x, y, p)
	if !ok {
		return Result{}
	}
	return Result{Color: col, Label: Label(f.Get(x, y).Ref), OK: true}
}

// Label returns the 1-based annotation for a ref.
func Label(r frame.Ref) string {
	return strconv.Itoa(r.Index() + 1)
}

// Checker reports whether (x, y) is a light square of the empty-cell checkerboard.
func Checker(x, y int) bool {
	return (x+y)%2 == 0
}

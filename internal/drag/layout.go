package drag

import (
	"math"

	"github.com/Faultbox/pxref/internal/frame"
)

// Point is a pointer position in window pixels.
type Point struct {
	X, Y float32
}

// Side is the region a drag started in.
type Side int

const (
	SideNone Side = iota
	SideFrame
	SidePalette
)

func (s Side) String() string {
	switch s {
	case SideFrame:
		return "frame"
	case SidePalette:
		return "palette"
	default:
		return "none"
	}
}

// Layout maps window positions onto the two grids.
type Layout struct {
	CellSize      float32
	FrameOrigin   Point
	PaletteOrigin Point
	// Boundary is the x coordinate right of which a press belongs to the palette.
	Boundary float32
}

// DefaultLayout returns the editor's fixed geometry: a frame grid at (16, 32),
// a 16px gap, then the palette grid.
func DefaultLayout() Layout {
	const cell = 16
	return Layout{
		CellSize:      cell,
		FrameOrigin:   Point{X: 16, Y: 32},
		PaletteOrigin: Point{X: 32 + cell*frame.Size, Y: 32},
		Boundary:      32 + cell*frame.Size,
	}
}

// Side classifies a press position.
func (l Layout) Side(p Point) Side {
	if p.X > l.Boundary {
		return SidePalette
	}
	return SideFrame
}

// FrameCell returns the frame grid cell under p.
func (l Layout) FrameCell(p Point) (x, y int, ok bool) {
	return l.cell(l.FrameOrigin, p)
}

// PaletteCell returns the palette grid cell under p.
func (l Layout) PaletteCell(p Point) (x, y int, ok bool) {
	return l.cell(l.PaletteOrigin, p)
}

// FrameCellRect returns the top-left corner of a frame grid cell.
func (l Layout) FrameCellRect(x, y int) Point {
	return Point{X: l.FrameOrigin.X + float32(x)*l.CellSize, Y: l.FrameOrigin.Y + float32(y)*l.CellSize}
}

// PaletteCellRect returns the top-left corner of a palette grid cell.
func (l Layout) PaletteCellRect(x, y int) Point {
	return Point{X: l.PaletteOrigin.X + float32(x)*l.CellSize, Y: l.PaletteOrigin.Y + float32(y)*l.CellSize}
}

func (l Layout) cell(origin, p Point) (int, int, bool) {
	if l.CellSize <= 0 {
		return 0, 0, false
	}
	x := int(math.Floor(float64((p.X - origin.X) / l.CellSize)))
	y := int(math.Floor(float64((p.Y - origin.Y) / l.CellSize)))
	ok := x >= 0 && y >= 0 && x < frame.Size && y < frame.Size
	return x, y, ok
}

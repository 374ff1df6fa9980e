// Package palette holds the 16x16 color grid that sprite frames reference.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Size is the width and height of the palette grid.
const Size = 16

// MaxPixels caps the decoded image area. Larger headers are rejected before
// any pixel buffer is allocated.
const MaxPixels = 4096 * 4096

// ErrDecode is returned when a palette image cannot be read or decoded.
var ErrDecode = errors.New("palette: cannot decode image")

// Palette is a Size x Size grid of optional colors addressed [x][y].
// A slot with zero alpha is empty; imported colors are always fully opaque.
type Palette struct {
	slots [Size][Size]color.RGBA
}

// New returns an empty palette.
func New() *Palette {
	return &Palette{}
}

// Get returns the color at (x, y). The bool is false for empty or out-of-range slots.
func (p *Palette) Get(x, y int) (color.RGBA, bool) {
	if p == nil || x < 0 || y < 0 || x >= Size || y >= Size {
		return color.RGBA{}, false
	}
	c := p.slots[x][y]
	return c, c.A != 0
}

// Count returns the number of filled slots.
func (p *Palette) Count() int {
	n := 0
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			if p.slots[x][y].A != 0 {
				n++
			}
		}
	}
	return n
}

// Import builds a palette from a decoded image.
//
// Pixels are read in row-major order and then transposed so the palette is
// addressed [x][y]. Fully transparent pixels become empty slots, every other
// pixel becomes an opaque color. Only the top-left Size x Size region is used.
func Import(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDecode)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: zero dimensions %dx%d", ErrDecode, b.Dx(), b.Dy())
	}

	rows := make([][]color.RGBA, min(b.Dy(), Size))
	for row := range rows {
		rows[row] = make([]color.RGBA, min(b.Dx(), Size))
		for col := range rows[row] {
			nc := color.NRGBAModel.Convert(img.At(b.Min.X+col, b.Min.Y+row)).(color.NRGBA)
			if nc.A == 0 {
				continue
			}
			rows[row][col] = color.RGBA{R: nc.R, G: nc.G, B: nc.B, A: 0xff}
		}
	}

	p := New()
	for x, column := range transpose(rows) {
		copy(p.slots[x][:], column)
	}
	return p, nil
}

// Decode reads an encoded image and imports it.
func Decode(r io.Reader) (*Palette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxPixels/cfg.Height {
		return nil, fmt.Errorf("%w: unsupported dimensions %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	p, err := Import(img)
	if err != nil {
		return nil, fmt.Errorf("importing %s image: %w", format, err)
	}
	return p, nil
}

// Load reads and imports a palette image from disk.
func Load(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Decode(bytes.NewReader(data))
}

// transpose turns a [row][col] matrix into [col][row].
func transpose[T any](m [][]T) [][]T {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil
	}
	out := make([][]T, len(m[0]))
	for col := range out {
		out[col] = make([]T, len(m))
		for row := range m {
			out[col][row] = m[row][col]
		}
	}
	return out
}

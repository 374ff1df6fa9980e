package pxref

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/Faultbox/pxref/internal/frame"
	"github.com/Faultbox/pxref/internal/palette"
	"github.com/Faultbox/pxref/internal/resolve"
)

// Render lays frames out left to right in a single strip 16*len(frames) wide
// and 16 high. Unresolved cells are fully transparent.
func Render(frames []frame.Frame, p *palette.Palette) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, frame.Size*len(frames), frame.Size))
	for k := range frames {
		for x := 0; x < frame.Size; x++ {
			for y := 0; y < frame.Size; y++ {
				c, ok := resolve.Resolve(&frames[k], x, y, p)
				if !ok {
					continue
				}
				img.SetNRGBA(k*frame.Size+x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
			}
		}
	}
	return img
}

// Scale enlarges img by factor using nearest-neighbor sampling.
// Factors of 1 or less return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.NearestNeighbor)
}

// ExportPNG renders frames, scales them and writes a PNG, appending ".png" if
// missing. It returns the final path and the number of bytes written.
func ExportPNG(path string, frames []frame.Frame, p *palette.Palette, scale int) (string, int64, error) {
	path = WithExtension(path, ".png")

	var buf bytes.Buffer
	if err := png.Encode(&buf, Scale(Render(frames, p), scale)); err != nil {
		return "", 0, fmt.Errorf("encoding PNG: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return path, int64(buf.Len()), nil
}

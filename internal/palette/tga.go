package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

func init() {
	// TGA has no magic number; match on "no color map" plus a true-color type.
	image.RegisterFormat("tga", "?\x00\x02", decodeTGA, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGA, decodeTGAConfig)
}

type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bytesPerPix int
	topDown     bool
}

func readTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errors.New("tga: header too short")
	}
	h := tgaHeader{
		idLength:  int(data[0]),
		imageType: data[2],
		width:     int(data[12]) | int(data[13])<<8,
		height:    int(data[14]) | int(data[15])<<8,
		// Bit 5 of the descriptor: rows stored top to bottom.
		topDown: data[17]&0x20 != 0,
	}
	if data[1] != 0 {
		return tgaHeader{}, errors.New("tga: color-mapped images not supported")
	}
	if h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE {
		return tgaHeader{}, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	}
	switch bpp := int(data[16]); bpp {
	case 24, 32:
		h.bytesPerPix = bpp / 8
	default:
		return tgaHeader{}, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	return h, nil
}

// minDataSize is the fewest pixel bytes that can cover the whole image.
// An RLE packet holds at most 128 pixels.
func (h tgaHeader) minDataSize() int {
	total := h.width * h.height
	if h.imageType == tgaTrueColorRLE {
		return (total + 127) / 128 * (1 + h.bytesPerPix)
	}
	return total * h.bytesPerPix
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	var buf [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, err
	}
	h, err := readTGAHeader(buf[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

func decodeTGA(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, err := readTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) || len(data)-offset < h.minDataSize() {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		h:   h,
		src: data[offset:],
		img: image.NewNRGBA(image.Rect(0, 0, h.width, h.height)),
	}
	if h.imageType == tgaTrueColor {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	h   tgaHeader
	src []byte
	pos int
	n   int // pixels written
	img *image.NRGBA
}

// pixel reads one BGR(A) pixel from src.
func (d *tgaDecoder) pixel() (color.NRGBA, error) {
	if d.pos+d.h.bytesPerPix > len(d.src) {
		return color.NRGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.h.bytesPerPix]
	d.pos += d.h.bytesPerPix

	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	if d.h.bytesPerPix == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (d *tgaDecoder) put(c color.NRGBA) {
	x, y := d.n%d.h.width, d.n/d.h.width
	if !d.h.topDown {
		y = d.h.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
	d.n++
}

func (d *tgaDecoder) total() int {
	return d.h.width * d.h.height
}

func (d *tgaDecoder) raw() error {
	for d.n < d.total() {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	for d.n < d.total() {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.n < d.total(); i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.n < d.total(); i++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}

// Package texture decodes texture images and uploads them to OpenGL.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrTGATruncated is returned when the pixel data ends early.
var ErrTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes uncompressed (type 2) and RLE (type 10) true-color TGA
// files at 24 or 32 bits per pixel. The result is top-down regardless of
// the file's origin bit.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	// Reject headers the payload cannot fill before allocating.
	src := data[offset:]
	if width*height > maxTGAPixels(imageType, len(src), bpp/8) {
		return nil, ErrTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         src,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		for d.n < width*height {
			d.put(d.next())
		}
	} else {
		d.decodeRLE()
	}

	return d.img, nil
}

// maxTGAPixels returns how many pixels n bytes of pixel data can describe.
// An RLE run packet is one header byte plus one pixel and repeats it at most
// 128 times.
func maxTGAPixels(imageType byte, n, bpp int) int {
	if imageType == TGATypeRLE {
		return n / (1 + bpp) * 128
	}
	return n / bpp
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int // read offset into src
	n           int // pixels written
	bpp         int
	topToBottom bool
}

// next reads one BGR(A) pixel. Callers check that a full pixel remains.
func (d *tgaDecoder) next() color.RGBA {
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c
}

func (d *tgaDecoder) put(c color.RGBA) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := d.n%w, d.n/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.n++
}

// decodeRLE stops quietly at the end of input, leaving the remaining
// pixels transparent.
func (d *tgaDecoder) decodeRLE() {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()

	for d.n < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if d.pos+d.bpp > len(d.src) {
				return
			}
			c := d.next()
			for i := 0; i < count && d.n < total; i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.n < total; i++ {
			if d.pos+d.bpp > len(d.src) {
				return
			}
			d.put(d.next())
		}
	}
}

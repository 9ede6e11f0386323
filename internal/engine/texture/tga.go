package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-colour TGA (24 or 32 bpp).
// The result is top-down like every other decoded image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	// Check the header against the payload before allocating the image.
	if minTGAPayload(imageType, width*height, bpp/8) > len(data)-offset {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw(width * height)
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

// minTGAPayload returns the smallest pixel payload that can describe pixels
// pixels. An RLE packet is a header byte plus at least one pixel and covers
// at most 128 pixels.
func minTGAPayload(imageType, pixels, stride int) int {
	if imageType == TGATypeRLE {
		packets := (pixels + 127) / 128
		return packets * (1 + stride)
	}
	return pixels * stride
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	stride      int
	pixel       int
	topToBottom bool
}

// next reads one BGR(A) pixel from the stream.
func (d *tgaDecoder) next() (color.RGBA, error) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the current pixel and advances.
func (d *tgaDecoder) put(c color.RGBA) {
	w := d.img.Rect.Dx()
	x, y := d.pixel%w, d.pixel/w
	if !d.topToBottom {
		y = d.img.Rect.Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) raw(count int) error {
	for i := 0; i < count; i++ {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()
	for d.pixel < total {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := min(int(header&0x7F)+1, total-d.pixel)

		if header&0x80 == 0 {
			if err := d.raw(count); err != nil {
				return err
			}
			continue
		}

		c, err := d.next()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			d.put(c)
		}
	}
	return nil
}

// Package texture decodes image files into GPU-ready RGBA pixels and manages
// the viewer's per-slot textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"path"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Decode decodes PNG, JPEG, BMP or TGA data into RGBA. The format is taken
// from the content, except TGA which has no signature and is chosen by name.
func Decode(data []byte, name string) (*image.RGBA, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img mirrored top to bottom. GL expects the
// first row of texture data to be the bottom of the image.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	h := float64(b.Dy())
	// (x, y) -> (x - minX, h - (y - minY))
	m := f64.Aff3{
		1, 0, -float64(b.Min.X),
		0, -1, h + float64(b.Min.Y),
	}
	draw.NearestNeighbor.Transform(out, m, img, b, draw.Src, nil)
	return out
}

// Load reads and decodes name from fsys and flips it for upload.
func Load(fsys fs.FS, name string) (*image.RGBA, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, name)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return FlipVertical(img), nil
}

package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/engine/gpu/gputest"
	"github.com/Faultbox/house-viewer/internal/engine/model"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoRows returns a 2x2 image with a red top row and a blue bottom row.
func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, blue)
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestFlipVertical(t *testing.T) {
	flipped := FlipVertical(twoRows())

	for x := 0; x < 2; x++ {
		if got := flipped.RGBAAt(x, 0); got != blue {
			t.Errorf("(%d,0) = %v, want blue", x, got)
		}
		if got := flipped.RGBAAt(x, 1); got != red {
			t.Errorf("(%d,1) = %v, want red", x, got)
		}
	}
}

func TestFlipVerticalOffsetBounds(t *testing.T) {
	src := twoRows()
	sub := src.SubImage(image.Rect(1, 0, 2, 2)).(*image.RGBA)

	flipped := FlipVertical(sub)
	if flipped.Rect != image.Rect(0, 0, 1, 2) {
		t.Fatalf("bounds = %v", flipped.Rect)
	}
	if flipped.RGBAAt(0, 0) != blue || flipped.RGBAAt(0, 1) != red {
		t.Errorf("pixels = %v %v", flipped.RGBAAt(0, 0), flipped.RGBAAt(0, 1))
	}
}

func TestDecodeFormats(t *testing.T) {
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, twoRows()); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"png", "walls.png", encodePNG(t, twoRows())},
		{"bmp", "walls.bmp", bmpBuf.Bytes()},
		{"tga", "walls.TGA", tgaBytes(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(tt.data, tt.file)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if img.RGBAAt(0, 0) != red || img.RGBAAt(1, 1) != blue {
				t.Errorf("pixels = %v %v, want red top and blue bottom", img.RGBAAt(0, 0), img.RGBAAt(1, 1))
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "walls.png"); err == nil {
		t.Error("expected error")
	}
}

func TestLoadFlips(t *testing.T) {
	fsys := fstest.MapFS{"textures/i.png": {Data: encodePNG(t, twoRows())}}

	img, err := Load(fsys, "textures/i.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if img.RGBAAt(0, 0) != blue {
		t.Errorf("first row = %v, want blue (bottom of the file)", img.RGBAAt(0, 0))
	}

	if _, err := Load(fsys, "textures/missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}
}

func houseFS(t *testing.T) fstest.MapFS {
	t.Helper()
	data := encodePNG(t, twoRows())
	return fstest.MapFS{
		"textures/i.png":    {Data: data},
		"textures/wood.png": {Data: data},
		"textures/rock.png": {Data: data},
	}
}

func TestLoadSet(t *testing.T) {
	dev := gputest.New()
	specs := DefaultSpecs("textures/i.png", "textures/wood.png", "textures/rock.png")

	set, err := LoadSet(dev, houseFS(t), specs)
	if err != nil {
		t.Fatalf("load set: %v", err)
	}

	if len(dev.Textures) != 3 {
		t.Fatalf("textures = %d, want 3", len(dev.Textures))
	}
	for _, spec := range specs {
		tex, ok := dev.Textures[set.Handle(spec.Slot)]
		if !ok {
			t.Fatalf("%s: no texture", spec.Slot)
		}
		if tex.Unit != spec.Slot.Unit() {
			t.Errorf("%s: unit = %d", spec.Slot, tex.Unit)
		}
		if tex.Width != 2 || tex.Height != 2 || len(tex.Pixels) != 16 {
			t.Errorf("%s: %dx%d with %d bytes", spec.Slot, tex.Width, tex.Height, len(tex.Pixels))
		}
	}

	stone := dev.Textures[set.Handle(model.SlotStone)].Params
	if stone != (gpu.TextureParams{Filter: gpu.FilterLinear, Mipmaps: true}) {
		t.Errorf("stone params = %+v", stone)
	}
	walls := dev.Textures[set.Handle(model.SlotWalls)].Params
	if walls != (gpu.TextureParams{Filter: gpu.FilterNearest}) {
		t.Errorf("walls params = %+v", walls)
	}

	set.Bind(model.SlotWood)
	want := []string{"ActiveTexture 1", "BindTexture " + strconv.FormatUint(uint64(set.Handle(model.SlotWood)), 10)}
	got := dev.Calls[len(dev.Calls)-2:]
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("bind calls = %v, want %v", got, want)
	}

	set.Release()
	set.Release()
	if dev.Deleted["texture"] != 3 {
		t.Errorf("deleted = %d, want 3", dev.Deleted["texture"])
	}
}

func TestLoadSetFailureReleases(t *testing.T) {
	dev := gputest.New()
	fsys := houseFS(t)
	delete(fsys, "textures/rock.png")

	_, err := LoadSet(dev, fsys, DefaultSpecs("textures/i.png", "textures/wood.png", "textures/rock.png"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "stone texture textures/rock.png") {
		t.Errorf("error = %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error does not wrap fs.ErrNotExist: %v", err)
	}
	if dev.Deleted["texture"] != 2 {
		t.Errorf("deleted = %d, want the 2 already created", dev.Deleted["texture"])
	}
}

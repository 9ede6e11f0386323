package renderer

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/house-viewer/internal/engine/gpu/gputest"
	"github.com/Faultbox/house-viewer/internal/engine/texture"
)

func newTextureSet(t *testing.T, dev *gputest.Device) *texture.Set {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	fsys := fstest.MapFS{
		"walls.png": {Data: buf.Bytes()},
		"wood.png":  {Data: buf.Bytes()},
		"stone.png": {Data: buf.Bytes()},
	}
	set, err := texture.LoadSet(dev, fsys, texture.DefaultSpecs("walls.png", "wood.png", "stone.png"))
	if err != nil {
		t.Fatalf("load textures: %v", err)
	}
	return set
}

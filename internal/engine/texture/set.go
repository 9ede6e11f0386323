package texture

import (
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/logger"
)

// Spec describes the texture loaded into one slot.
type Spec struct {
	Slot   model.TextureSlot
	Path   string
	Params gpu.TextureParams
}

// DefaultSpecs returns the house textures: walls and wood sampled nearest,
// stone linear with mipmaps.
func DefaultSpecs(walls, wood, stone string) []Spec {
	return []Spec{
		{Slot: model.SlotWalls, Path: walls, Params: gpu.TextureParams{Filter: gpu.FilterNearest}},
		{Slot: model.SlotWood, Path: wood, Params: gpu.TextureParams{Filter: gpu.FilterNearest}},
		{Slot: model.SlotStone, Path: stone, Params: gpu.TextureParams{Filter: gpu.FilterLinear, Mipmaps: true}},
	}
}

// Set owns one texture per slot.
type Set struct {
	dev      gpu.Device
	handles  [model.SlotCount]uint32
	released bool
}

// LoadSet loads every spec from fsys and uploads it to its slot's unit.
// On failure the textures created so far are deleted and the error names the
// slot and path.
func LoadSet(dev gpu.Device, fsys fs.FS, specs []Spec) (*Set, error) {
	s := &Set{dev: dev}
	for _, spec := range specs {
		img, err := Load(fsys, spec.Path)
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("loading %s texture %s: %w", spec.Slot, spec.Path, err)
		}

		b := img.Bounds()
		s.handles[spec.Slot] = dev.CreateTexture(spec.Slot.Unit(), b.Dx(), b.Dy(), img.Pix, spec.Params)

		logger.Debug("Texture loaded",
			zap.Stringer("slot", spec.Slot),
			zap.String("path", spec.Path),
			zap.Int("width", b.Dx()),
			zap.Int("height", b.Dy()),
		)
	}
	return s, nil
}

// Handle returns the texture bound to slot, or 0.
func (s *Set) Handle(slot model.TextureSlot) uint32 {
	return s.handles[slot]
}

// Bind activates slot's texture unit and binds its texture there.
func (s *Set) Bind(slot model.TextureSlot) {
	s.dev.ActiveTexture(slot.Unit())
	s.dev.BindTexture(s.handles[slot])
}

// Release deletes the textures. Calls after the first are no-ops.
func (s *Set) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	for i, h := range s.handles {
		if h != 0 {
			s.dev.DeleteTexture(h)
			s.handles[i] = 0
		}
	}
}

// Package model holds the static house mesh and its partition into draw ranges.
package model

import (
	"github.com/Faultbox/house-viewer/pkg/math"
)

// TextureSlot is the texture unit a draw range samples from.
type TextureSlot int

// Texture slots used by the house.
const (
	SlotWalls TextureSlot = iota
	SlotWood
	SlotStone

	SlotCount = 3
)

// String returns the slot name.
func (s TextureSlot) String() string {
	switch s {
	case SlotWalls:
		return "walls"
	case SlotWood:
		return "wood"
	case SlotStone:
		return "stone"
	default:
		return "unknown"
	}
}

// Unit returns the slot as a texture unit index.
func (s TextureSlot) Unit() uint32 {
	return uint32(s)
}

// Part names a contiguous run of indices and the texture it is drawn with.
// Parts are listed in emission order; offsets are derived by Partition.
type Part struct {
	Name    string
	Count   uint32
	Texture TextureSlot
}

// DrawRange is a sub-mesh issued as one indexed draw call.
type DrawRange struct {
	Name    string
	Offset  uint32 // first index
	Count   uint32 // number of indices
	Texture TextureSlot
}

// End returns the index one past the last index of the range.
func (r DrawRange) End() uint32 {
	return r.Offset + r.Count
}

// ByteOffset returns the offset into a uint32 index buffer in bytes.
func (r DrawRange) ByteOffset() uintptr {
	return uintptr(r.Offset) * 4
}

// Model is an immutable mesh with parallel attribute slices.
type Model struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32
	Ranges    []DrawRange
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int {
	return len(m.Positions)
}

// IndexCount returns the number of indices.
func (m *Model) IndexCount() int {
	return len(m.Indices)
}

// Range returns the draw range with the given name.
func (m *Model) Range(name string) (DrawRange, bool) {
	for _, r := range m.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return DrawRange{}, false
}

// RangeIndices returns the slice of the index buffer covered by r.
func (m *Model) RangeIndices(r DrawRange) []uint32 {
	return m.Indices[r.Offset:r.End()]
}

// Bounds returns the bounding box of all vertex positions.
func (m *Model) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

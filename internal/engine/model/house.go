package model

import (
	"fmt"

	"github.com/Faultbox/house-viewer/pkg/math"
)

// Draw range names, in emission order.
const (
	RangeWalls        = "walls"
	RangeFloorCeiling = "floor_ceiling"
	RangeRoof         = "roof"
	RangeRoofGables   = "roof_gables"
	RangeChimney      = "chimney"
)

// House dimensions.
const (
	bodyHalfWidth = 0.75
	bodyHalfDepth = 0.5
	bodyBottom    = -1.0
	bodyTop       = 1.0

	roofHalfWidth = 1.0
	roofHalfDepth = 0.6
	roofApex      = 2.0
)

var (
	quadUV = [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	triUV  = [3]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}}
)

// House returns the authored house mesh. Every face owns its vertices so each
// carries its own normal and texture coordinates.
func House() *Model {
	var b builder

	w, d := float32(bodyHalfWidth), float32(bodyHalfDepth)
	lo, hi := float32(bodyBottom), float32(bodyTop)

	// Walls
	b.quad(v(-w, lo, d), v(w, lo, d), v(w, hi, d), v(-w, hi, d), v(0, 0, 1))
	b.quad(v(-w, lo, -d), v(w, lo, -d), v(w, hi, -d), v(-w, hi, -d), v(0, 0, -1))
	b.quad(v(-w, lo, -d), v(-w, lo, d), v(-w, hi, d), v(-w, hi, -d), v(-1, 0, 0))
	b.quad(v(w, lo, d), v(w, lo, -d), v(w, hi, -d), v(w, hi, d), v(1, 0, 0))
	b.part(RangeWalls, SlotWalls)

	// Floor and ceiling
	b.quad(v(-w, lo, d), v(w, lo, d), v(w, lo, -d), v(-w, lo, -d), v(0, -1, 0))
	b.quad(v(-w, hi, d), v(w, hi, d), v(w, hi, -d), v(-w, hi, -d), v(0, 1, 0))
	b.part(RangeFloorCeiling, SlotWood)

	rw, rd := float32(roofHalfWidth), float32(roofHalfDepth)
	apex := v(0, roofApex, 0)

	// Roof: front slope, back slope, underside
	b.tri(v(-rw, hi, rd), v(rw, hi, rd), apex, v(0, 0.6, 1).Normalize())
	b.tri(v(-rw, hi, -rd), v(rw, hi, -rd), apex, v(0, 0.6, -1).Normalize())
	b.quad(v(-rw, hi, rd), v(rw, hi, rd), v(rw, hi, -rd), v(-rw, hi, -rd), v(0, -1, 0))
	b.part(RangeRoof, SlotWood)

	// Gables
	b.tri(v(-rw, hi, rd), v(-rw, hi, -rd), apex, v(-1, 1, 0).Normalize())
	b.tri(v(rw, hi, rd), v(rw, hi, -rd), apex, v(1, 1, 0).Normalize())
	b.part(RangeRoofGables, SlotWood)

	// Chimney
	x0, x1 := float32(0.3), float32(0.7)
	y0, y1 := float32(1.0), float32(1.8)
	z0, z1 := float32(-0.2), float32(0.2)
	b.quad(v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1), v(0, 0, 1))
	b.quad(v(x1, y0, z0), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), v(0, 0, -1))
	b.quad(v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0), v(-1, 0, 0))
	b.quad(v(x1, y0, z1), v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(1, 0, 0))
	b.quad(v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0), v(x0, y1, z0), v(0, 1, 0))
	b.quad(v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1), v(0, -1, 0))
	b.part(RangeChimney, SlotStone)

	m, err := New(b.positions, b.normals, b.texCoords, b.indices, b.parts)
	if err != nil {
		panic(fmt.Sprintf("house mesh: %v", err))
	}
	return m
}

func v(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

// builder accumulates flat-shaded faces and closes them into parts.
type builder struct {
	positions []math.Vec3
	normals   []math.Vec3
	texCoords []math.Vec2
	indices   []uint32
	parts     []Part
	partStart int
}

// quad appends a four-vertex face drawn as (a,b,c) (c,d,a).
func (b *builder) quad(p0, p1, p2, p3, normal math.Vec3) {
	base := uint32(len(b.positions))
	for i, p := range [4]math.Vec3{p0, p1, p2, p3} {
		b.positions = append(b.positions, p)
		b.normals = append(b.normals, normal)
		b.texCoords = append(b.texCoords, quadUV[i])
	}
	b.indices = append(b.indices, base, base+1, base+2, base+2, base+3, base)
}

// tri appends a triangular face.
func (b *builder) tri(p0, p1, p2, normal math.Vec3) {
	base := uint32(len(b.positions))
	for i, p := range [3]math.Vec3{p0, p1, p2} {
		b.positions = append(b.positions, p)
		b.normals = append(b.normals, normal)
		b.texCoords = append(b.texCoords, triUV[i])
	}
	b.indices = append(b.indices, base, base+1, base+2)
}

// part closes every face added since the previous part.
func (b *builder) part(name string, slot TextureSlot) {
	b.parts = append(b.parts, Part{
		Name:    name,
		Count:   uint32(len(b.indices) - b.partStart),
		Texture: slot,
	})
	b.partStart = len(b.indices)
}

package model

import (
	"testing"

	"github.com/Faultbox/house-viewer/pkg/math"
)

func TestHouseRanges(t *testing.T) {
	m := House()

	want := []DrawRange{
		{Name: RangeWalls, Offset: 0, Count: 24, Texture: SlotWalls},
		{Name: RangeFloorCeiling, Offset: 24, Count: 12, Texture: SlotWood},
		{Name: RangeRoof, Offset: 36, Count: 12, Texture: SlotWood},
		{Name: RangeRoofGables, Offset: 48, Count: 6, Texture: SlotWood},
		{Name: RangeChimney, Offset: 54, Count: 36, Texture: SlotStone},
	}

	if len(m.Ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d", len(want), len(m.Ranges))
	}
	for i, r := range m.Ranges {
		if r != want[i] {
			t.Errorf("range %d: got %+v, want %+v", i, r, want[i])
		}
	}
}

func TestHouseCoverage(t *testing.T) {
	m := House()

	var sum uint32
	for _, r := range m.Ranges {
		sum += r.Count
	}
	if sum != 90 {
		t.Errorf("range counts sum to %d, want 90", sum)
	}
	if m.IndexCount() != int(sum) {
		t.Errorf("index buffer has %d indices, ranges cover %d", m.IndexCount(), sum)
	}
	if m.VertexCount() != 64 {
		t.Errorf("expected 64 vertices, got %d", m.VertexCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("house should validate: %v", err)
	}
}

func TestHouseAttributesAligned(t *testing.T) {
	m := House()
	if len(m.Normals) != len(m.Positions) || len(m.TexCoords) != len(m.Positions) {
		t.Fatalf("attribute lengths: %d positions, %d normals, %d texcoords",
			len(m.Positions), len(m.Normals), len(m.TexCoords))
	}
}

func TestHouseNormalsFlat(t *testing.T) {
	m := House()

	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := m.Normals[a]
		if m.Normals[b] != n || m.Normals[c] != n {
			t.Errorf("triangle %d does not share one normal", i/3)
			continue
		}
		if l := n.Length(); l < 0.999 || l > 1.001 {
			t.Errorf("triangle %d normal %v is not unit length", i/3, n)
		}

		e1 := m.Positions[b].Sub(m.Positions[a])
		e2 := m.Positions[c].Sub(m.Positions[a])
		if d := n.Dot(e1); d > 1e-4 || d < -1e-4 {
			t.Errorf("triangle %d normal not perpendicular to edge ab (dot %f)", i/3, d)
		}
		if d := n.Dot(e2); d > 1e-4 || d < -1e-4 {
			t.Errorf("triangle %d normal not perpendicular to edge ac (dot %f)", i/3, d)
		}
	}
}

func TestHouseChimneyUsesStone(t *testing.T) {
	m := House()
	r, ok := m.Range(RangeChimney)
	if !ok {
		t.Fatal("chimney range missing")
	}
	if r.Texture != SlotStone {
		t.Errorf("chimney texture = %v, want stone", r.Texture)
	}
	// six faces, two triangles each
	if len(m.RangeIndices(r)) != 36 {
		t.Errorf("chimney indices = %d, want 36", len(m.RangeIndices(r)))
	}
}

func TestHouseBounds(t *testing.T) {
	b := House().Bounds()
	wantMin := math.Vec3{X: -1, Y: -1, Z: -0.6}
	wantMax := math.Vec3{X: 1, Y: 2, Z: 0.6}
	if b.Min != wantMin || b.Max != wantMax {
		t.Errorf("bounds = %+v, want min %v max %v", b, wantMin, wantMax)
	}
}

func TestTextureSlotString(t *testing.T) {
	tests := map[TextureSlot]string{
		SlotWalls:      "walls",
		SlotWood:       "wood",
		SlotStone:      "stone",
		TextureSlot(9): "unknown",
	}
	for slot, want := range tests {
		if got := slot.String(); got != want {
			t.Errorf("TextureSlot(%d).String() = %q, want %q", int(slot), got, want)
		}
	}
	if SlotStone.Unit() != 2 {
		t.Errorf("stone unit = %d, want 2", SlotStone.Unit())
	}
}

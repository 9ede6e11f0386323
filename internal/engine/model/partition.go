package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/house-viewer/pkg/math"
)

// Validation errors.
var (
	ErrAttributeMismatch = errors.New("vertex attribute lengths differ")
	ErrNotTriangles      = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrRangeCoverage     = errors.New("draw ranges do not cover the index buffer")
)

// Partition lays parts out back to back and returns their draw ranges.
func Partition(parts []Part) []DrawRange {
	ranges := make([]DrawRange, 0, len(parts))
	var offset uint32
	for _, p := range parts {
		ranges = append(ranges, DrawRange{
			Name:    p.Name,
			Offset:  offset,
			Count:   p.Count,
			Texture: p.Texture,
		})
		offset += p.Count
	}
	return ranges
}

// New builds a validated model. Ranges are computed from parts with Partition.
func New(positions, normals []math.Vec3, texCoords []math.Vec2, indices []uint32, parts []Part) (*Model, error) {
	m := &Model{
		Positions: positions,
		Normals:   normals,
		TexCoords: texCoords,
		Indices:   indices,
		Ranges:    Partition(parts),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks attribute lengths, index bounds and range coverage.
func (m *Model) Validate() error {
	n := len(m.Positions)
	if len(m.Normals) != n || len(m.TexCoords) != n {
		return fmt.Errorf("%w: %d positions, %d normals, %d texcoords",
			ErrAttributeMismatch, n, len(m.Normals), len(m.TexCoords))
	}

	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangles, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", ErrIndexOutOfRange, i, idx, n)
		}
	}

	return checkCoverage(m.Ranges, uint32(len(m.Indices)))
}

// checkCoverage verifies that ranges, sorted by offset, tile [0, total) exactly.
func checkCoverage(ranges []DrawRange, total uint32) error {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b DrawRange) int {
		return int(a.Offset) - int(b.Offset)
	})

	var next uint32
	for _, r := range sorted {
		if r.Count == 0 || r.Count%3 != 0 {
			return fmt.Errorf("%w: range %q has %d indices", ErrRangeCoverage, r.Name, r.Count)
		}
		if r.Offset != next {
			return fmt.Errorf("%w: range %q starts at %d, expected %d", ErrRangeCoverage, r.Name, r.Offset, next)
		}
		next = r.End()
	}
	if next != total {
		return fmt.Errorf("%w: ranges end at %d, index buffer has %d", ErrRangeCoverage, next, total)
	}
	return nil
}

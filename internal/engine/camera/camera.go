// Package camera provides the fixed observer the house is viewed through.
//
// The camera never rotates: it sits at a fixed depth looking down -Z and all
// apparent motion comes from rotating the model matrix instead.
package camera

import (
	"github.com/Faultbox/house-viewer/pkg/math"
)

// Projection parameters.
const (
	FieldOfView = 60.0 // vertical, degrees
	NearPlane   = 0.1
	FarPlane    = 100.0

	// Depth is the Z coordinate every camera is pinned to at construction.
	Depth = 1.0
)

// Camera is a fixed observer with a static orientation.
type Camera struct {
	Position math.Vec3

	up    math.Vec3
	front math.Vec3

	width  int
	height int
}

// New creates a camera for a viewport of the given size.
// The Z component of position is always replaced with Depth.
func New(width, height int, position math.Vec3) *Camera {
	c := &Camera{
		Position: position,
		up:       math.Vec3{X: 0, Y: 1, Z: 0},
		front:    math.Vec3{X: 0, Y: 0, Z: -1},
	}
	c.Position.Z = Depth
	c.Resize(width, height)
	return c
}

// Up returns the fixed up vector (+Y).
func (c *Camera) Up() math.Vec3 {
	return c.up
}

// Front returns the fixed viewing direction (-Z).
func (c *Camera) Front() math.Vec3 {
	return c.front
}

// ViewMatrix returns lookAt(position, position+front, up).
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection for the current aspect ratio.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(FieldOfView), c.AspectRatio(), NearPlane, FarPlane)
}

// Resize updates the viewport size used for the aspect ratio.
// Sizes below one pixel (a minimized window) are clamped to one.
func (c *Camera) Resize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
}

// Size returns the viewport size.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// AspectRatio returns width/height.
func (c *Camera) AspectRatio() float32 {
	return float32(c.width) / float32(c.height)
}

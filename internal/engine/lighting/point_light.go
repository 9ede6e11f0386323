// Package lighting holds the scene's single point light.
package lighting

import (
	"github.com/Faultbox/house-viewer/pkg/math"
)

// PointLight is a light placed at a fixed offset from the viewer. Its
// intensity is adjusted in steps and kept within [MinIntensity, MaxIntensity].
type PointLight struct {
	Offset       math.Vec3
	Intensity    float32
	MinIntensity float32
	MaxIntensity float32
	Step         float32 // intensity per scroll unit
}

// Position returns the light position for a viewer at eye.
func (l *PointLight) Position(eye math.Vec3) math.Vec3 {
	return eye.Add(l.Offset)
}

// Adjust changes the intensity by delta steps and clamps it. It reports
// whether the intensity changed.
func (l *PointLight) Adjust(delta float32) bool {
	prev := l.Intensity
	l.Intensity = Clamp(l.Intensity+delta*l.Step, l.MinIntensity, l.MaxIntensity)
	return l.Intensity != prev
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}

// Package renderer draws the house each frame and owns the rotation and
// brightness state the input tick mutates.
package renderer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/engine/camera"
	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/engine/input"
	"github.com/Faultbox/house-viewer/internal/engine/lighting"
	"github.com/Faultbox/house-viewer/internal/engine/mesh"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/engine/shader"
	"github.com/Faultbox/house-viewer/internal/engine/texture"
	"github.com/Faultbox/house-viewer/internal/logger"
	"github.com/Faultbox/house-viewer/pkg/math"
)

// Config holds the scene constants.
type Config struct {
	ClearColor [4]float32

	// CubeDistance pushes the object away from the camera along -Z.
	CubeDistance float32

	// LightOffset is added to the camera position to place the point light.
	LightOffset math.Vec3

	RotationSpeed     float32 // degrees per tick
	ScrollStep        float32 // brightness per scroll unit
	MinBrightness     float32
	MaxBrightness     float32
	InitialBrightness float32
}

// DefaultConfig returns the house scene settings.
func DefaultConfig() Config {
	return Config{
		ClearColor:        [4]float32{0.3, 0.3, 1.0, 1.0},
		CubeDistance:      3,
		LightOffset:       math.V3(2, 2, 0),
		RotationSpeed:     0.5,
		ScrollStep:        0.1,
		MinBrightness:     0,
		MaxBrightness:     3,
		InitialBrightness: 1,
	}
}

// RotationState is the object orientation in degrees plus the light intensity.
// Angles are unbounded.
type RotationState struct {
	XRot       float32
	YRot       float32
	Brightness float32
}

// FrameRenderer issues one frame of draw calls.
type FrameRenderer struct {
	config Config
	state  RotationState
	light  lighting.PointLight

	dev      gpu.Device
	camera   *camera.Camera
	program  *shader.Program
	buffers  *mesh.Buffers
	textures *texture.Set
	ranges   []model.DrawRange
}

// New creates a renderer over already-initialized GPU resources. ranges are
// drawn in order on every frame. The initial brightness is clamped to the
// configured range.
func New(cfg Config, dev gpu.Device, cam *camera.Camera, program *shader.Program,
	buffers *mesh.Buffers, textures *texture.Set, ranges []model.DrawRange) *FrameRenderer {
	brightness := lighting.Clamp(cfg.InitialBrightness, cfg.MinBrightness, cfg.MaxBrightness)
	return &FrameRenderer{
		config: cfg,
		state:  RotationState{Brightness: brightness},
		light: lighting.PointLight{
			Offset:       cfg.LightOffset,
			Intensity:    brightness,
			MinIntensity: cfg.MinBrightness,
			MaxIntensity: cfg.MaxBrightness,
			Step:         cfg.ScrollStep,
		},
		dev:      dev,
		camera:   cam,
		program:  program,
		buffers:  buffers,
		textures: textures,
		ranges:   ranges,
	}
}

// Rotation returns the current state.
func (r *FrameRenderer) Rotation() RotationState {
	return r.state
}

// Update applies one tick of held keys. Opposing keys cancel out.
func (r *FrameRenderer) Update(keys input.KeyState) {
	speed := r.config.RotationSpeed
	if keys.IsKeyDown(input.KeyW) {
		r.state.XRot += speed
	}
	if keys.IsKeyDown(input.KeyS) {
		r.state.XRot -= speed
	}
	if keys.IsKeyDown(input.KeyA) {
		r.state.YRot += speed
	}
	if keys.IsKeyDown(input.KeyD) {
		r.state.YRot -= speed
	}
}

// Scroll changes brightness by delta steps, clamped to the configured range.
func (r *FrameRenderer) Scroll(delta float32) {
	if delta == 0 || !r.light.Adjust(delta) {
		return
	}
	r.state.Brightness = r.light.Intensity
	logger.Debug("Brightness changed", zap.Float32("brightness", r.state.Brightness))
}

// Resize updates the viewport and the camera aspect ratio.
func (r *FrameRenderer) Resize(width, height int) {
	r.dev.Viewport(0, 0, int32(width), int32(height))
	r.camera.Resize(width, height)
	logger.Debug("Renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// ModelMatrix rotates the object about its own X then Y axis and then moves
// it CubeDistance units down -Z.
func (r *FrameRenderer) ModelMatrix() math.Mat4 {
	rx := math.RotateX(math.Radians(r.state.XRot))
	ry := math.RotateY(math.Radians(r.state.YRot))
	t := math.Translate(0, 0, -r.config.CubeDistance)
	return t.Mul(ry).Mul(rx)
}

// LightPosition returns the point light position in world space.
func (r *FrameRenderer) LightPosition() math.Vec3 {
	return r.light.Position(r.camera.Position)
}

// Render clears the frame and draws every range. Presenting is left to the caller.
func (r *FrameRenderer) Render() {
	c := r.config.ClearColor
	r.dev.ClearColor(c[0], c[1], c[2], c[3])
	r.dev.Clear()

	r.program.Use()
	r.program.SetMat4(shader.UniformModel, r.ModelMatrix())
	r.program.SetMat4(shader.UniformView, r.camera.ViewMatrix())
	r.program.SetMat4(shader.UniformProjection, r.camera.ProjectionMatrix())
	r.program.SetVec3(shader.UniformLightPos, r.LightPosition())
	r.program.SetFloat(shader.UniformLightIntensity, r.state.Brightness)

	r.buffers.Bind()
	for _, rng := range r.ranges {
		r.textures.Bind(rng.Texture)
		r.program.SetInt(shader.UniformTexture, int32(rng.Texture.Unit()))
		r.buffers.Draw(rng)
	}
	r.buffers.Unbind()
}

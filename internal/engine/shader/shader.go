// Package shader loads the viewer's GLSL program and sets its uniforms.
package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/logger"
	"github.com/Faultbox/house-viewer/pkg/math"
)

// Source file names requested from the SourceProvider.
const (
	VertexFile   = "shader.vert"
	FragmentFile = "shader.frag"
)

// Uniform names the program is driven with.
const (
	UniformModel          = "model"
	UniformView           = "view"
	UniformProjection     = "projection"
	UniformLightPos       = "lightPos"
	UniformLightIntensity = "lightIntensity"
	UniformTexture        = "texture0"
)

// SourceProvider returns GLSL source by file name. An unreadable file yields "".
type SourceProvider interface {
	ShaderSource(name string) string
}

// Program is a linked shader program with a uniform location cache.
type Program struct {
	dev gpu.Device
	id  uint32

	locations map[string]int32
	deleted   bool
}

// Load compiles and links the vertex and fragment shaders. Failures are
// logged and loading continues with whatever handle the device produced, so a
// broken shader renders incorrectly instead of stopping the viewer.
func Load(dev gpu.Device, src SourceProvider) *Program {
	vert := compile(dev, gpu.VertexStage, VertexFile, src.ShaderSource(VertexFile))
	frag := compile(dev, gpu.FragmentStage, FragmentFile, src.ShaderSource(FragmentFile))

	id, err := dev.LinkProgram(vert, frag)
	if err != nil {
		logger.Warn("Shader program link failed", zap.Uint32("program", id), zap.Error(err))
	} else {
		logger.Debug("Shader program linked", zap.Uint32("program", id))
	}

	// Linked programs keep their own copy of the stages.
	dev.DeleteShader(vert)
	dev.DeleteShader(frag)

	return &Program{
		dev:       dev,
		id:        id,
		locations: make(map[string]int32),
	}
}

func compile(dev gpu.Device, stage gpu.ShaderStage, file, source string) uint32 {
	id, err := dev.CompileShader(stage, source)
	if err != nil {
		logger.Warn("Shader compile failed",
			zap.String("file", file),
			zap.Stringer("stage", stage),
			zap.Error(err),
		)
	}
	return id
}

// ID returns the program handle.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// location resolves and caches a uniform location. Unknown names cache -1
// and are reported once.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.dev.UniformLocation(p.id, name)
	if loc < 0 {
		logger.Debug("Uniform not found", zap.String("name", name), zap.Uint32("program", p.id))
	}
	p.locations[name] = loc
	return loc
}

// SetMat4 uploads a column-major matrix.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.location(name); loc >= 0 {
		p.dev.UniformMatrix4(loc, (*[16]float32)(&m))
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, f float32) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform1f(loc, f)
	}
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, i int32) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform1i(loc, i)
	}
}

// Delete frees the program. Calls after the first are no-ops.
func (p *Program) Delete() {
	if p == nil || p.deleted {
		return
	}
	p.deleted = true
	p.dev.DeleteProgram(p.id)
}

// Package gpu defines the narrow graphics-device boundary the renderer talks to,
// and its OpenGL implementation.
package gpu

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

// Shader stages.
const (
	VertexStage ShaderStage = iota
	FragmentStage
)

// String returns the stage name.
func (s ShaderStage) String() string {
	if s == FragmentStage {
		return "fragment"
	}
	return "vertex"
}

// Filter selects texture sampling.
type Filter int

// Texture filters.
const (
	FilterNearest Filter = iota
	FilterLinear
)

// TextureParams configures a texture upload.
type TextureParams struct {
	Filter  Filter
	Mipmaps bool
}

// Device is the subset of a GPU API the viewer needs.
//
// Object handles are plain uint32 names. A uniform location of -1 means the
// name did not resolve; setting it must be a silent no-op.
type Device interface {
	// State
	EnableDepthTest()
	EnableBlending()
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()

	// Vertex state
	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	CreateArrayBuffer(data []float32) uint32
	CreateIndexBuffer(data []uint32) uint32
	VertexAttrib(slot uint32, components int32)
	DeleteBuffer(buffer uint32)

	// Textures
	CreateTexture(unit uint32, width, height int, pixels []byte, params TextureParams) uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	DeleteTexture(texture uint32)

	// Programs
	CompileShader(stage ShaderStage, source string) (uint32, error)
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteShader(shader uint32)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	UniformMatrix4(location int32, m *[16]float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)

	// Drawing
	DrawElements(count int32, byteOffset uintptr)
	// ReadPixels reads the frame being drawn. It must run before the swap.
	ReadPixels(width, height int32) []byte
}

package gpu

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/logger"
)

// GL is the OpenGL 4.1 core implementation of Device.
type GL struct{}

// NewGL loads the OpenGL function pointers.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return &GL{}, nil
}

func (*GL) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func (*GL) EnableBlending() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (*GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*GL) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (*GL) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (*GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

// CreateArrayBuffer uploads data into a new buffer and leaves it bound.
func (*GL) CreateArrayBuffer(data []float32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	return buf
}

// CreateIndexBuffer uploads indices into a new element buffer and leaves it
// bound to the current vertex array.
func (*GL) CreateIndexBuffer(data []uint32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf)
	if len(data) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	return buf
}

// VertexAttrib points slot at the bound array buffer as tightly packed floats.
func (*GL) VertexAttrib(slot uint32, components int32) {
	gl.VertexAttribPointerWithOffset(slot, components, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(slot)
}

func (*GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (*GL) CreateTexture(unit uint32, width, height int, pixels []byte, params TextureParams) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	minFilter, magFilter := int32(gl.NEAREST), int32(gl.NEAREST)
	if params.Filter == FilterLinear {
		minFilter, magFilter = gl.LINEAR, gl.LINEAR
		if params.Mipmaps {
			minFilter = gl.LINEAR_MIPMAP_LINEAR
		}
	} else if params.Mipmaps {
		minFilter = gl.NEAREST_MIPMAP_NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = unsafe.Pointer(&pixels[0])
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	if params.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (*GL) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (*GL) BindTexture(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (*GL) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

// CompileShader compiles source for stage. On failure the shader handle is
// still returned along with the info log as the error.
func (*GL) CompileShader(stage ShaderStage, source string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return shader, fmt.Errorf("%s shader: %s", stage, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// LinkProgram links the shaders into a program. On failure the program handle
// is still returned along with the info log as the error.
func (*GL) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		return program, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func (*GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (*GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GL) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*GL) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (*GL) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (*GL) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (*GL) DrawElements(count int32, byteOffset uintptr) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, byteOffset)
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row
// first. Call it after drawing and before the swap; the back buffer is
// undefined once it has been presented.
func (*GL) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

var _ Device = (*GL)(nil)

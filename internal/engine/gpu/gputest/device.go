// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"strings"

	"github.com/Faultbox/house-viewer/internal/engine/gpu"
)

// Draw records one DrawElements call together with the state it saw.
type Draw struct {
	Count      int32
	ByteOffset uintptr
	Unit       uint32 // active texture unit
	Texture    uint32 // texture bound on that unit
	VAO        uint32
	Program    uint32
	Sampler    int32 // last value set on the "texture0" uniform
}

// Texture records an uploaded texture.
type Texture struct {
	Unit   uint32
	Width  int
	Height int
	Pixels []byte
	Params gpu.TextureParams
}

// Device records calls instead of talking to a GPU.
type Device struct {
	// Calls is the ordered list of operation names.
	Calls []string

	Draws    []Draw
	Uniforms map[string]any // last value per uniform name

	Buffers      map[uint32][]float32
	IndexBuffers map[uint32][]uint32
	Attribs      map[uint32]int32 // slot -> components
	Textures     map[uint32]Texture
	Deleted      map[string]int // kind -> delete count

	ViewportSize [2]int32
	ClearRGBA    [4]float32
	DepthTest    bool
	Blending     bool

	// Failure injection
	FailCompile map[gpu.ShaderStage]string
	FailLink    string
	Pixels      []byte

	// Uniform names that resolve. Empty means every name resolves.
	KnownUniforms []string

	next      uint32
	locations map[string]int32
	names     map[int32]string

	vao     uint32
	unit    uint32
	bound   map[uint32]uint32
	program uint32
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Uniforms:     make(map[string]any),
		Buffers:      make(map[uint32][]float32),
		IndexBuffers: make(map[uint32][]uint32),
		Attribs:      make(map[uint32]int32),
		Textures:     make(map[uint32]Texture),
		Deleted:      make(map[string]int),
		FailCompile:  make(map[gpu.ShaderStage]string),
		locations:    make(map[string]int32),
		names:        make(map[int32]string),
		bound:        make(map[uint32]uint32),
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// CallsWithPrefix returns the recorded calls starting with prefix.
func (d *Device) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range d.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls and draws but keeps created objects.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
	d.Uniforms = make(map[string]any)
}

func (d *Device) EnableDepthTest() {
	d.DepthTest = true
	d.record("EnableDepthTest")
}

func (d *Device) EnableBlending() {
	d.Blending = true
	d.record("EnableBlending")
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportSize = [2]int32{width, height}
	d.record("Viewport %d %d %d %d", x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.ClearRGBA = [4]float32{r, g, b, a}
	d.record("ClearColor")
}

func (d *Device) Clear() {
	d.record("Clear")
}

func (d *Device) CreateVertexArray() uint32 {
	h := d.handle()
	d.record("CreateVertexArray %d", h)
	return h
}

func (d *Device) BindVertexArray(vao uint32) {
	d.vao = vao
	d.record("BindVertexArray %d", vao)
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.Deleted["vao"]++
	d.record("DeleteVertexArray %d", vao)
}

func (d *Device) CreateArrayBuffer(data []float32) uint32 {
	h := d.handle()
	d.Buffers[h] = append([]float32(nil), data...)
	d.record("CreateArrayBuffer %d", h)
	return h
}

func (d *Device) CreateIndexBuffer(data []uint32) uint32 {
	h := d.handle()
	d.IndexBuffers[h] = append([]uint32(nil), data...)
	d.record("CreateIndexBuffer %d", h)
	return h
}

func (d *Device) VertexAttrib(slot uint32, components int32) {
	d.Attribs[slot] = components
	d.record("VertexAttrib %d %d", slot, components)
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.Deleted["buffer"]++
	d.record("DeleteBuffer %d", buffer)
}

func (d *Device) CreateTexture(unit uint32, width, height int, pixels []byte, params gpu.TextureParams) uint32 {
	h := d.handle()
	d.Textures[h] = Texture{
		Unit:   unit,
		Width:  width,
		Height: height,
		Pixels: append([]byte(nil), pixels...),
		Params: params,
	}
	d.record("CreateTexture %d unit=%d", h, unit)
	return h
}

func (d *Device) ActiveTexture(unit uint32) {
	d.unit = unit
	d.record("ActiveTexture %d", unit)
}

func (d *Device) BindTexture(texture uint32) {
	d.bound[d.unit] = texture
	d.record("BindTexture %d", texture)
}

func (d *Device) DeleteTexture(texture uint32) {
	d.Deleted["texture"]++
	d.record("DeleteTexture %d", texture)
}

func (d *Device) CompileShader(stage gpu.ShaderStage, source string) (uint32, error) {
	h := d.handle()
	d.record("CompileShader %s", stage)
	if msg, ok := d.FailCompile[stage]; ok {
		return h, fmt.Errorf("%s shader: %s", stage, msg)
	}
	if source == "" {
		return h, fmt.Errorf("%s shader: empty source", stage)
	}
	return h, nil
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	h := d.handle()
	d.record("LinkProgram %d", h)
	if d.FailLink != "" {
		return h, fmt.Errorf("link: %s", d.FailLink)
	}
	return h, nil
}

func (d *Device) DeleteShader(shader uint32) {
	d.Deleted["shader"]++
	d.record("DeleteShader %d", shader)
}

func (d *Device) UseProgram(program uint32) {
	d.program = program
	d.record("UseProgram %d", program)
}

func (d *Device) DeleteProgram(program uint32) {
	d.Deleted["program"]++
	d.record("DeleteProgram %d", program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation %s", name)
	if len(d.KnownUniforms) > 0 && !contains(d.KnownUniforms, name) {
		return -1
	}
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	loc := int32(len(d.locations))
	d.locations[name] = loc
	d.names[loc] = name
	return loc
}

func (d *Device) setUniform(location int32, v any) {
	if location < 0 {
		return
	}
	name := d.names[location]
	d.Uniforms[name] = v
	d.record("Uniform %s", name)
}

func (d *Device) UniformMatrix4(location int32, m *[16]float32) {
	d.setUniform(location, *m)
}

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.setUniform(location, [3]float32{x, y, z})
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.setUniform(location, v)
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.setUniform(location, v)
}

func (d *Device) DrawElements(count int32, byteOffset uintptr) {
	sampler, _ := d.Uniforms["texture0"].(int32)
	d.Draws = append(d.Draws, Draw{
		Count:      count,
		ByteOffset: byteOffset,
		Unit:       d.unit,
		Texture:    d.bound[d.unit],
		VAO:        d.vao,
		Program:    d.program,
		Sampler:    sampler,
	})
	d.record("DrawElements %d %d", count, byteOffset)
}

func (d *Device) ReadPixels(width, height int32) []byte {
	d.record("ReadPixels %d %d", width, height)
	if d.Pixels != nil {
		return d.Pixels
	}
	return make([]byte, int(width)*int(height)*4)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ gpu.Device = (*Device)(nil)

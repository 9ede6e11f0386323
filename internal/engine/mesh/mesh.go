// Package mesh uploads a model to the GPU and issues its per-range draws.
package mesh

import (
	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/logger"
	"github.com/Faultbox/house-viewer/pkg/math"
)

// Vertex attribute slots. Must match the layout qualifiers in shader.vert.
const (
	SlotPosition uint32 = 0
	SlotTexCoord uint32 = 1
	SlotNormal   uint32 = 2
)

// Buffers holds the GPU objects for one model: a vertex array, one buffer per
// attribute and the element buffer.
type Buffers struct {
	dev gpu.Device

	vao       uint32
	positions uint32
	texCoords uint32
	normals   uint32
	ebo       uint32

	indexCount int
	released   bool
}

// Upload creates the vertex array and buffers for m. It is called once;
// motion is expressed through the model matrix, never by re-uploading.
func Upload(dev gpu.Device, m *model.Model) *Buffers {
	b := &Buffers{dev: dev, indexCount: m.IndexCount()}

	b.vao = dev.CreateVertexArray()
	dev.BindVertexArray(b.vao)

	b.positions = dev.CreateArrayBuffer(flatten3(m.Positions))
	dev.VertexAttrib(SlotPosition, 3)

	texCoords := make([]float32, 0, len(m.TexCoords)*2)
	for _, t := range m.TexCoords {
		texCoords = append(texCoords, t.X, t.Y)
	}
	b.texCoords = dev.CreateArrayBuffer(texCoords)
	dev.VertexAttrib(SlotTexCoord, 2)

	b.normals = dev.CreateArrayBuffer(flatten3(m.Normals))
	dev.VertexAttrib(SlotNormal, 3)

	// The element buffer binding is captured by the bound vertex array.
	b.ebo = dev.CreateIndexBuffer(m.Indices)

	dev.BindVertexArray(0)

	logger.Debug("Mesh uploaded",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()),
		zap.Int("ranges", len(m.Ranges)),
	)
	return b
}

func flatten3(vs []math.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		a := v.Array()
		out = append(out, a[:]...)
	}
	return out
}

// Bind makes the vertex array current.
func (b *Buffers) Bind() {
	b.dev.BindVertexArray(b.vao)
}

// Unbind clears the current vertex array.
func (b *Buffers) Unbind() {
	b.dev.BindVertexArray(0)
}

// Draw issues one indexed triangle draw for r. Bind must have been called.
func (b *Buffers) Draw(r model.DrawRange) {
	b.dev.DrawElements(int32(r.Count), r.ByteOffset())
}

// IndexCount returns the number of uploaded indices.
func (b *Buffers) IndexCount() int {
	return b.indexCount
}

// Release deletes the GPU objects. Calls after the first are no-ops.
func (b *Buffers) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true

	b.dev.DeleteVertexArray(b.vao)
	b.dev.DeleteBuffer(b.positions)
	b.dev.DeleteBuffer(b.texCoords)
	b.dev.DeleteBuffer(b.normals)
	b.dev.DeleteBuffer(b.ebo)
}

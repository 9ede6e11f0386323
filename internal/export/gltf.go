// Package export writes the house mesh as a binary glTF (GLB) file with one
// primitive per draw range.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io/fs"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/engine/texture"
	"github.com/Faultbox/house-viewer/internal/logger"
)

// RangeExtra is the primitive extras key holding the draw range name.
const RangeExtra = "range"

// Build converts m into a glTF document. Vertex attributes are shared by all
// primitives; each draw range gets its own index accessor and the material
// of its texture slot. When files is not nil the slot textures are read from
// it and embedded as PNG.
func Build(m *model.Model, files fs.FS, specs []texture.Spec) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "house-viewer"

	positions := make([][3]float32, len(m.Positions))
	normals := make([][3]float32, len(m.Normals))
	uvs := make([][2]float32, len(m.TexCoords))
	for i := range m.Positions {
		positions[i] = m.Positions[i].Array()
		normals[i] = m.Normals[i].Array()
		// glTF puts v=0 at the top of the image; GL data here has it at the bottom.
		uvs[i] = [2]float32{m.TexCoords[i].X, 1 - m.TexCoords[i].Y}
	}

	attrs := gltf.PrimitiveAttributes{
		gltf.POSITION:   modeler.WritePosition(doc, positions),
		gltf.NORMAL:     modeler.WriteNormal(doc, normals),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
	}

	materials, err := writeMaterials(doc, files, specs)
	if err != nil {
		return nil, err
	}

	mesh := &gltf.Mesh{Name: "house"}
	for _, r := range m.Ranges {
		indices := modeler.WriteIndices(doc, m.RangeIndices(r))
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Attributes: attrs,
			Indices:    gltf.Index(indices),
			Material:   gltf.Index(materials[r.Texture]),
			Mode:       gltf.PrimitiveTriangles,
			Extras:     map[string]any{RangeExtra: r.Name},
		})
	}
	doc.Meshes = append(doc.Meshes, mesh)

	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "house", Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	return doc, nil
}

// writeMaterials adds one material per texture slot and returns their indices.
func writeMaterials(doc *gltf.Document, files fs.FS, specs []texture.Spec) ([model.SlotCount]int, error) {
	var out [model.SlotCount]int
	for slot := model.TextureSlot(0); slot < model.SlotCount; slot++ {
		mat := &gltf.Material{
			Name:        slot.String(),
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				MetallicFactor: gltf.Float(0),
			},
		}
		doc.Materials = append(doc.Materials, mat)
		out[slot] = len(doc.Materials) - 1
	}

	if files == nil {
		return out, nil
	}

	for _, spec := range specs {
		tex, err := writeTexture(doc, files, spec)
		if err != nil {
			return out, fmt.Errorf("embedding %s texture %s: %w", spec.Slot, spec.Path, err)
		}
		doc.Materials[out[spec.Slot]].PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: tex}
	}
	return out, nil
}

// writeTexture re-encodes spec's image as PNG so every input format ends up
// in a format glTF viewers accept.
func writeTexture(doc *gltf.Document, files fs.FS, spec texture.Spec) (int, error) {
	data, err := fs.ReadFile(files, spec.Path)
	if err != nil {
		return 0, err
	}
	img, err := texture.Decode(data, spec.Path)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, err
	}
	imgIdx, err := modeler.WriteImage(doc, spec.Slot.String(), "image/png", &buf)
	if err != nil {
		return 0, err
	}

	sampler := &gltf.Sampler{MagFilter: gltf.MagNearest, MinFilter: gltf.MinNearest}
	if spec.Params.Filter == gpu.FilterLinear {
		sampler.MagFilter = gltf.MagLinear
		sampler.MinFilter = gltf.MinLinear
		if spec.Params.Mipmaps {
			sampler.MinFilter = gltf.MinLinearMipMapLinear
		}
	}
	doc.Samplers = append(doc.Samplers, sampler)
	doc.Textures = append(doc.Textures, &gltf.Texture{
		Sampler: gltf.Index(len(doc.Samplers) - 1),
		Source:  gltf.Index(imgIdx),
	})

	logger.Debug("Texture embedded",
		zap.Stringer("slot", spec.Slot),
		zap.String("path", spec.Path),
		zap.Int("bytes", buf.Len()),
	)
	return len(doc.Textures) - 1, nil
}

// WriteFile builds the document and saves it as GLB.
func WriteFile(path string, m *model.Model, files fs.FS, specs []texture.Spec) error {
	doc, err := Build(m, files, specs)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("Exported glTF",
		zap.String("path", path),
		zap.Int("primitives", len(m.Ranges)),
		zap.Int("vertices", m.VertexCount()),
	)
	return nil
}

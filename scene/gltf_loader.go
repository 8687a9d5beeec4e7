package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .glb or .gltf file and returns every triangle primitive
// as MeshData, in mesh then primitive order.
func LoadGLTF(path string) ([]MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	meshes, err := ReadGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	return meshes, nil
}

// ReadGLTF converts the triangle primitives of an already decoded document.
// Primitives in other modes are skipped; non-indexed primitives get a
// sequential index list.
func ReadGLTF(doc *gltf.Document) ([]MeshData, error) {
	var out []MeshData
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			data, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d (%s) primitive %d: %w", mi, mesh.Name, pi, err)
			}
			out = append(out, data)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no triangle primitives")
	}
	return out, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (MeshData, error) {
	var d MeshData

	// Positions are required
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return d, fmt.Errorf("no POSITION attribute")
	}
	acc, err := accessor(doc, posIdx)
	if err != nil {
		return d, fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return d, fmt.Errorf("positions: %w", err)
	}
	d.Positions = make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		d.Positions = append(d.Positions, p[0], p[1], p[2])
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acc, err := accessor(doc, idx)
		if err != nil {
			return d, fmt.Errorf("normals: %w", err)
		}
		normals, err := modeler.ReadNormal(doc, acc, nil)
		if err != nil {
			return d, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			for _, n := range normals {
				d.Normals = append(d.Normals, n[0], n[1], n[2])
			}
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := accessor(doc, idx)
		if err != nil {
			return d, fmt.Errorf("texcoords: %w", err)
		}
		uvs, err := modeler.ReadTextureCoord(doc, acc, nil)
		if err != nil {
			return d, fmt.Errorf("texcoords: %w", err)
		}
		if len(uvs) == len(positions) {
			for _, uv := range uvs {
				// glTF puts the UV origin top-left; textures are uploaded bottom row first.
				d.TexCoords = append(d.TexCoords, uv[0], 1-uv[1])
			}
		}
	}

	if prim.Indices != nil {
		acc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return d, fmt.Errorf("indices: %w", err)
		}
		d.Indices, err = modeler.ReadIndices(doc, acc, nil)
		if err != nil {
			return d, fmt.Errorf("indices: %w", err)
		}
	} else {
		d.Indices = make([]uint32, len(positions))
		for i := range d.Indices {
			d.Indices[i] = uint32(i)
		}
	}
	return d, nil
}

// accessor looks up an accessor index taken from the file.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

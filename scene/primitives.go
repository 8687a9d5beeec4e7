package scene

import (
	"fmt"

	"cube-renderer/assets"
	"cube-renderer/geometry"
	"cube-renderer/gpu"
)

// MeshData is the CPU copy of a mesh as separate attribute arrays. Normals
// and TexCoords may be empty.
type MeshData struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint32
}

// Blocks returns the attribute blocks in their fixed order: position, then
// normal, then texcoord. Texcoords without normals are dropped because every
// shader that samples a texture also lights it.
func (d MeshData) Blocks() []geometry.Block {
	blocks := []geometry.Block{geometry.Positions(d.Positions)}
	if len(d.Normals) > 0 {
		blocks = append(blocks, geometry.Normals(d.Normals))
		if len(d.TexCoords) > 0 {
			blocks = append(blocks, geometry.TexCoords(d.TexCoords))
		}
	}
	return blocks
}

// VertexCount is the number of positions.
func (d MeshData) VertexCount() int { return len(d.Positions) / geometry.PositionStride }

// CreateCubeCorners generates the 8-corner unit cube with 12 triangles. It has
// no normals: corners are shared between faces.
func CreateCubeCorners() MeshData {
	return MeshData{
		// Close face top-right, bottom-right, bottom-left, top-left, then
		// far face top-left, bottom-left, bottom-right, top-right.
		Positions: []float32{
			0.5, 0.5, 0.5,
			0.5, -0.5, 0.5,
			-0.5, -0.5, 0.5,
			-0.5, 0.5, 0.5,
			-0.5, 0.5, -0.5,
			-0.5, -0.5, -0.5,
			0.5, -0.5, -0.5,
			0.5, 0.5, -0.5,
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3, // close
			0, 3, 4, 0, 4, 7, // top
			4, 5, 6, 4, 6, 7, // far
			4, 3, 2, 4, 2, 5, // left
			6, 1, 2, 6, 2, 5, // bottom
			6, 1, 0, 6, 0, 7, // right
		},
	}
}

// cubeFaces lists each face's outward normal and its corners counter-clockwise
// seen from outside, starting at the corner that gets UV (0,0).
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

var quadUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// CreateCube generates a cube with the given edge length and 24 vertices, four
// per face, so every face has its own normal and full 0..1 texture square.
func CreateCube(size float32) MeshData {
	half := size / 2
	d := MeshData{
		Positions: make([]float32, 0, 24*3),
		Normals:   make([]float32, 0, 24*3),
		TexCoords: make([]float32, 0, 24*2),
		Indices:   make([]uint32, 0, 36),
	}
	for f, face := range cubeFaces {
		for i, c := range face.corners {
			d.Positions = append(d.Positions, c[0]*half, c[1]*half, c[2]*half)
			d.Normals = append(d.Normals, face.normal[:]...)
			d.TexCoords = append(d.TexCoords, quadUVs[i][:]...)
		}
		base := uint32(f * 4)
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}

// shaderFor picks the built-in program matching the attribute blocks.
func shaderFor(blocks int) (vertex, fragment string) {
	switch blocks {
	case 1:
		return assets.BasicVertex, assets.BasicFragment
	case 2:
		return assets.LitVertex, assets.LitFragment
	default:
		return assets.TexturedVertex, assets.TexturedFragment
	}
}

func materialFor(blocks int) MaterialKind {
	switch blocks {
	case 1:
		return MaterialNone
	case 2:
		return MaterialLit
	default:
		return MaterialTextured
	}
}

// NewMeshModel uploads data and binds the built-in program for its blocks:
// positions only draw flat, positions+normals take a LightingMaterial and
// all three take a TexturedMaterial. mat must match.
func NewMeshModel(ctx *gpu.Context, programs *gpu.ProgramCache, cam *Camera, name string, data MeshData, mat Material) (*Model, error) {
	blocks := data.Blocks()
	if want := materialFor(len(blocks)); mat.Kind != want {
		return nil, fmt.Errorf("%s: %d attribute blocks need a %s material, got %s", name, len(blocks), want, mat.Kind)
	}

	prog, err := programs.Get(shaderFor(len(blocks)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	buf, err := gpu.NewBuffer(ctx, data.Indices, blocks...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	m, err := NewModel(name, buf, prog, cam, mat)
	if err != nil {
		buf.Release()
		return nil, err
	}
	return m, nil
}

// NewBasicCube is the flat-coloured 8-corner cube.
func NewBasicCube(ctx *gpu.Context, programs *gpu.ProgramCache, cam *Camera) (*Model, error) {
	return NewMeshModel(ctx, programs, cam, "basic cube", CreateCubeCorners(), NoMaterial())
}

// NewLitCube is a unit cube shaded by a point light.
func NewLitCube(ctx *gpu.Context, programs *gpu.ProgramCache, cam *Camera, mat LightingMaterial) (*Model, error) {
	data := CreateCube(1)
	data.TexCoords = nil
	return NewMeshModel(ctx, programs, cam, "lit cube", data, Lit(mat))
}

// NewTexturedCube is a unit cube with diffuse and specular maps.
func NewTexturedCube(ctx *gpu.Context, programs *gpu.ProgramCache, cam *Camera, mat TexturedMaterial) (*Model, error) {
	return NewMeshModel(ctx, programs, cam, "textured cube", CreateCube(1), Textured(mat))
}

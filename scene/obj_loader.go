package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadMesh reads every triangle mesh in a .obj, .gltf or .glb file.
func LoadMesh(path string) ([]MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("mesh %q: unsupported format", path)
	}
}

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	refs [3]objRef
}

// objRef holds 0-based position / UV / normal indices (-1 = absent).
type objRef struct{ v, vt, vn int }

// LoadOBJ parses a Wavefront .obj file and returns one MeshData per
// object/group. Materials (mtllib, usemtl) are ignored.
func LoadOBJ(path string) ([]MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	meshes, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return meshes, nil
}

// ReadOBJ parses OBJ text. Polygons are fan-triangulated and negative
// (relative) indices are resolved.
func ReadOBJ(r io.Reader) ([]MeshData, error) {
	var positions, normals []mgl32.Vec3
	var uvs []mgl32.Vec2

	// One face list per object/group.
	var objects [][]objFace
	var cur []objFace

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if fields[0] == "v" {
				positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
			} else {
				normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
			}

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})

		case "o", "g":
			if len(cur) > 0 {
				objects = append(objects, cur)
			}
			cur = nil

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3 vertices", lineNo)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				refs = append(refs, ref)
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(refs); i++ {
				cur = append(cur, objFace{refs: [3]objRef{refs[0], refs[i], refs[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	if len(cur) > 0 {
		objects = append(objects, cur)
	}
	if len(objects) == 0 {
		return nil, errors.New("no faces")
	}

	meshes := make([]MeshData, 0, len(objects))
	for _, faces := range objects {
		meshes = append(meshes, buildMeshFromOBJ(faces, positions, normals, uvs))
	}
	return meshes, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// OBJ is 1-based; negative indices count back from the latest element.
func parseFaceVertex(tok string, nv, nvt, nvn int) (objRef, error) {
	parse := func(s string, n int) (int, error) {
		if s == "" {
			return -1, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("face index %q: %w", s, err)
		}
		if i < 0 {
			i += n
		} else {
			i--
		}
		if i < 0 || i >= n {
			return 0, fmt.Errorf("face index %s out of range", s)
		}
		return i, nil
	}

	parts := strings.Split(tok, "/")
	ref := objRef{v: -1, vt: -1, vn: -1}
	var err error
	if ref.v, err = parse(parts[0], nv); err != nil {
		return ref, err
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face vertex %q has no position", tok)
	}
	if len(parts) > 1 {
		if ref.vt, err = parse(parts[1], nvt); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 {
		if ref.vn, err = parse(parts[2], nvn); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// buildMeshFromOBJ converts parsed face data into deduplicated vertices. UVs
// are only kept when every vertex has one; missing normals are generated.
func buildMeshFromOBJ(faces []objFace, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) MeshData {
	vertMap := map[objRef]uint32{}
	var refs []objRef
	var d MeshData

	hasNormals, hasUVs := true, true
	for _, face := range faces {
		for _, ref := range face.refs {
			hasNormals = hasNormals && ref.vn >= 0
			hasUVs = hasUVs && ref.vt >= 0
			if idx, ok := vertMap[ref]; ok {
				d.Indices = append(d.Indices, idx)
				continue
			}
			idx := uint32(len(refs))
			vertMap[ref] = idx
			refs = append(refs, ref)
			d.Indices = append(d.Indices, idx)
		}
	}

	pos := make([]mgl32.Vec3, len(refs))
	for i, ref := range refs {
		pos[i] = positions[ref.v]
		d.Positions = append(d.Positions, pos[i][:]...)
	}

	if hasNormals {
		for _, ref := range refs {
			d.Normals = append(d.Normals, normals[ref.vn][:]...)
		}
	} else {
		for _, n := range generateNormals(pos, d.Indices) {
			d.Normals = append(d.Normals, n[:]...)
		}
	}

	if hasUVs {
		for _, ref := range refs {
			d.TexCoords = append(d.TexCoords, uvs[ref.vt][:]...)
		}
	}
	return d
}

// generateNormals computes area-weighted vertex normals.
func generateNormals(pos []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	accum := make([]mgl32.Vec3, len(pos))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		n := pos[i1].Sub(pos[i0]).Cross(pos[i2].Sub(pos[i0])) // area-weighted normal
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i, n := range accum {
		if n.Len() > 0 {
			accum[i] = n.Normalize()
		} else {
			accum[i] = WorldUp
		}
	}
	return accum
}

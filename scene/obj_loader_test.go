package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestReadOBJTriangulatesAndDeduplicates(t *testing.T) {
	meshes, err := ReadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	d := meshes[0]
	assert.Equal(t, 4, d.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, d.Indices)
	assert.Len(t, d.Normals, 12)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 1}, d.TexCoords)
	assert.Len(t, d.Blocks(), 3)
}

func TestReadOBJGeneratesNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	meshes, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	d := meshes[0]
	assert.Empty(t, d.TexCoords)
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, d.Normals[i*3:i*3+3], 1e-6)
	}
}

func TestReadOBJNegativeIndicesAndGroups(t *testing.T) {
	src := `g a
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
g b
v 0 0 1
v 1 0 1
v 0 1 1
f 4 5 6
`
	meshes, err := ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, meshes, 2)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, meshes[0].Positions)
	assert.Equal(t, []float32{0, 0, 1, 1, 0, 1, 0, 1, 1}, meshes[1].Positions)
}

func TestReadOBJErrors(t *testing.T) {
	for name, src := range map[string]string{
		"empty":        "# nothing\n",
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"bad number":   "v 0 x 0\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadMeshByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.OBJ")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	meshes, err := LoadMesh(path)
	require.NoError(t, err)
	assert.Len(t, meshes, 1)

	_, err = LoadMesh("model.fbx")
	assert.Error(t, err)
}

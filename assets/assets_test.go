package assets

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"cube-renderer/gpu/gputest"
)

func TestShadersAreEmbedded(t *testing.T) {
	for _, name := range []string{
		BasicVertex, BasicFragment,
		LitVertex, LitFragment,
		TexturedVertex, TexturedFragment,
	} {
		src, err := fs.ReadFile(Shaders(), name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "#version 410 core", name)
		assert.Contains(t, string(src), "void main", name)
	}
}

func TestShaderUniforms(t *testing.T) {
	read := func(name string) string {
		b, err := fs.ReadFile(Shaders(), name)
		require.NoError(t, err)
		return string(b)
	}

	assert.Equal(t, []string{"projection", "transform", "view"},
		gputest.ActiveUniforms(read(BasicVertex), read(BasicFragment)))

	assert.Equal(t, []string{
		"lightPos",
		"material.ambient", "material.diffuse", "material.shininess", "material.specular",
		"projection", "transform", "view", "viewPos",
	}, gputest.ActiveUniforms(read(LitVertex), read(LitFragment)))

	assert.Equal(t, []string{
		"light.direction",
		"material.diffuse", "material.shininess", "material.specular",
		"projection", "transform", "view", "viewPos",
	}, gputest.ActiveUniforms(read(TexturedVertex), read(TexturedFragment)))
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	src := Checkerboard(4, 2, color.White, color.Black)

	pngPath := filepath.Join(dir, "a.png")
	f, err := os.Create(pngPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	bmpPath := filepath.Join(dir, "a.bmp")
	f, err = os.Create(bmpPath)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, src))
	require.NoError(t, f.Close())

	gifPath := filepath.Join(dir, "a.gif")
	f, err = os.Create(gifPath)
	require.NoError(t, err)
	require.NoError(t, gif.Encode(f, src, nil))
	require.NoError(t, f.Close())

	for _, p := range []string{pngPath, bmpPath, gifPath} {
		img, err := LoadImage(p)
		require.NoError(t, err, p)
		assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds(), p)
	}

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = LoadImage(junk)
	assert.Error(t, err)
}

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(8, 4, color.White, color.Black)
	white := color.RGBAModel.Convert(color.White)
	black := color.RGBAModel.Convert(color.Black)

	assert.Equal(t, white, img.At(0, 0))
	assert.Equal(t, black, img.At(2, 0))
	assert.Equal(t, black, img.At(0, 2))
	assert.Equal(t, white, img.At(3, 3))
}

func TestFrameMap(t *testing.T) {
	img := FrameMap(10, 2)
	assert.Equal(t, color.RGBAModel.Convert(color.White), img.At(0, 0))
	assert.Equal(t, color.RGBAModel.Convert(color.White), img.At(9, 5))
	assert.Equal(t, color.RGBAModel.Convert(color.Black), img.At(5, 5))
}

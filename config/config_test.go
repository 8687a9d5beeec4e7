package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Window", cfg.Window.Title)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "app.yaml", `
window:
  width: 1024
  height: 768
  title: Cubes
camera:
  position: [1, 2, 5]
  fov: 60
scene:
  clear_color: [0, 0, 0, 1]
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, "Cubes", cfg.Window.Title)
	assert.True(t, cfg.Window.VSync, "unset keys keep their defaults")
	assert.Equal(t, []float32{1, 2, 5}, cfg.Camera.Position)
	assert.Equal(t, float32(60), cfg.Camera.FOV)
	assert.Equal(t, float32(-90), cfg.Camera.Yaw)
	assert.Equal(t, []float32{0, 0, 0, 1}, cfg.Scene.ClearColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "app.toml", `
log_level = "warn"

[window]
width = 640
height = 480
vsync = false

[scene]
diffuse_texture = "container.png"
light_pos = [0.0, 3.0, 0.0]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, "container.png", cfg.Scene.DiffuseTexture)
	assert.Equal(t, []float32{0, 3, 0}, cfg.Scene.LightPos)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Load(writeFile(t, "app.json", `{}`))
	assert.ErrorContains(t, err, "unsupported format")

	_, err = Load(writeFile(t, "bad.yaml", "window: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "[window]\nwidth = -1\n"))
	assert.ErrorContains(t, err, "window size")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = 0
	cfg.Camera.FOV = 120
	cfg.Camera.Pitch = 95
	cfg.Scene.ClearColor = []float32{1, 1}
	cfg.LogLevel = "chatty"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"window size", "camera.fov", "camera.pitch", "clear_color", "log_level"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestSceneShaders(t *testing.T) {
	_, err := fs.ReadFile(Scene{}.Shaders(), "basic.vert")
	assert.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.vert"), []byte("#version 410 core\nvoid main() {}\n"), 0o644))
	_, err = fs.ReadFile(Scene{ShaderDir: dir}.Shaders(), "custom.vert")
	assert.NoError(t, err)
}

func TestVec3(t *testing.T) {
	assert.Equal(t, [3]float32{1, 2, 3}, Vec3([]float32{1, 2, 3}))
}

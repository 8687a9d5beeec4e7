// Package config holds the application settings: window, camera, scene
// contents and logging. Settings come from Default, optionally overlaid by a
// YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"cube-renderer/assets"
)

type Config struct {
	Window   Window `yaml:"window" toml:"window"`
	Camera   Camera `yaml:"camera" toml:"camera"`
	Scene    Scene  `yaml:"scene" toml:"scene"`
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

type Window struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Title     string `yaml:"title" toml:"title"`
	VSync     bool   `yaml:"vsync" toml:"vsync"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
}

type Camera struct {
	Position         []float32 `yaml:"position" toml:"position"`
	Yaw              float32   `yaml:"yaw" toml:"yaw"`
	Pitch            float32   `yaml:"pitch" toml:"pitch"`
	FOV              float32   `yaml:"fov" toml:"fov"`
	MoveSpeed        float32   `yaml:"move_speed" toml:"move_speed"`               // units per second
	MouseSensitivity float32   `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"` // degrees per pixel
	ZoomSpeed        float32   `yaml:"zoom_speed" toml:"zoom_speed"`               // degrees per scroll step
}

type Scene struct {
	ClearColor      []float32 `yaml:"clear_color" toml:"clear_color"`
	ShaderDir       string    `yaml:"shader_dir" toml:"shader_dir"`
	DiffuseTexture  string    `yaml:"diffuse_texture" toml:"diffuse_texture"`
	SpecularTexture string    `yaml:"specular_texture" toml:"specular_texture"`
	LightPos        []float32 `yaml:"light_pos" toml:"light_pos"`
	Mesh            string    `yaml:"mesh" toml:"mesh"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "Window",
			VSync:     true,
			Resizable: true,
		},
		Camera: Camera{
			Position:         []float32{0, 0, 3},
			Yaw:              -90,
			Pitch:            0,
			FOV:              45,
			MoveSpeed:        2.5,
			MouseSensitivity: 0.1,
			ZoomSpeed:        1,
		},
		Scene: Scene{
			ClearColor: []float32{0.2, 0.3, 0.3, 1.0},
			LightPos:   []float32{1.2, 1.0, 2.0},
		},
		LogLevel: "info",
	}
}

// Load overlays the file at path onto Default. The format is picked from the
// extension: .yaml, .yml or .toml. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %q: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if len(c.Camera.Position) != 3 {
		errs = append(errs, fmt.Errorf("camera.position needs 3 components, got %d", len(c.Camera.Position)))
	}
	if c.Camera.Pitch < -89 || c.Camera.Pitch > 89 {
		errs = append(errs, fmt.Errorf("camera.pitch %v outside [-89, 89]", c.Camera.Pitch))
	}
	if c.Camera.FOV < 1 || c.Camera.FOV > 90 {
		errs = append(errs, fmt.Errorf("camera.fov %v outside [1, 90]", c.Camera.FOV))
	}
	if c.Camera.MoveSpeed < 0 || c.Camera.MouseSensitivity < 0 || c.Camera.ZoomSpeed < 0 {
		errs = append(errs, errors.New("camera speeds must not be negative"))
	}
	if len(c.Scene.ClearColor) != 4 {
		errs = append(errs, fmt.Errorf("scene.clear_color needs 4 components, got %d", len(c.Scene.ClearColor)))
	}
	if len(c.Scene.LightPos) != 3 {
		errs = append(errs, fmt.Errorf("scene.light_pos needs 3 components, got %d", len(c.Scene.LightPos)))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Shaders returns the shader sources: ShaderDir when set, the built-in
// sources otherwise.
func (s Scene) Shaders() fs.FS {
	if s.ShaderDir != "" {
		return os.DirFS(s.ShaderDir)
	}
	return assets.Shaders()
}

// Vec3 converts a validated 3-component setting.
func Vec3(v []float32) [3]float32 {
	var out [3]float32
	copy(out[:], v)
	return out
}

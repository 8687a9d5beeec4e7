package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cube-renderer/assets"
	"cube-renderer/config"
	"cube-renderer/core"
	"cube-renderer/gpu"
	"cube-renderer/internal/logger"
	"cube-renderer/internal/opengl"
	"cube-renderer/renderer"
	"cube-renderer/scene"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("cubes", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("cubes", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "YAML or TOML settings file")
	width := flags.Int("width", 0, "window width in pixels")
	height := flags.Int("height", 0, "window height in pixels")
	title := flags.String("title", "", "window title")
	mesh := flags.String("mesh", "", "OBJ, glTF or GLB file to show below the cubes")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// Flags override the file.
	if flags.Changed("width") {
		cfg.Window.Width = *width
	}
	if flags.Changed("height") {
		cfg.Window.Height = *height
	}
	if flags.Changed("title") {
		cfg.Window.Title = *title
	}
	if flags.Changed("mesh") {
		cfg.Scene.Mesh = *mesh
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	windowConfig := core.DefaultWindowConfig()
	windowConfig.Width = cfg.Window.Width
	windowConfig.Height = cfg.Window.Height
	windowConfig.Title = cfg.Window.Title
	windowConfig.VSync = cfg.Window.VSync
	windowConfig.Resizable = cfg.Window.Resizable

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	log.Info("window created",
		zap.Int("width", window.Width),
		zap.Int("height", window.Height),
		zap.String("title", window.Title))

	drv, err := opengl.NewDriver(log)
	if err != nil {
		return err
	}
	ctx := gpu.NewContext(drv, log)

	fbWidth, fbHeight := window.GetFramebufferSize()
	camera := scene.NewCamera(mgl32.Vec3(config.Vec3(cfg.Camera.Position)), 1)
	camera.UpdateAspectRatio(fbWidth, fbHeight)
	camera.SetYaw(cfg.Camera.Yaw)
	camera.SetPitch(cfg.Camera.Pitch)
	camera.SetFOV(cfg.Camera.FOV)

	engine := renderer.NewRenderEngine(ctx, gpu.NewProgramCache(ctx, cfg.Scene.Shaders()), camera, fbWidth, fbHeight)
	defer engine.Destroy()
	if c := cfg.Scene.ClearColor; len(c) == 4 {
		engine.SetClearColor(mgl32.Vec4{c[0], c[1], c[2], c[3]})
	}

	cubes, err := buildScene(engine, cfg.Scene)
	if err != nil {
		return err
	}

	window.SetResizeCallback(engine.SetViewport)
	controller := NewCameraController(cfg.Camera)
	window.SetScrollCallback(controller.OnScroll)

	log.Info("controls: WASD move, Space/E up, Ctrl/Q down, Shift faster, right-drag look, scroll zoom, Esc quit")

	last := window.Time()
	statsAt, frames := last, 0
	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			window.Close()
			continue
		}

		now := window.Time()
		dt := float32(now - last)
		last = now

		controller.Update(window, camera, dt)
		for i, m := range cubes {
			m.Rotate(dt*mgl32.DegToRad(float32(20*(i+1))), mgl32.Vec3{0.5, 1, 0})
		}

		if err := engine.Render(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		window.SwapBuffers()

		// Frame rate and draw stats in the title, once a second.
		frames++
		if now-statsAt >= 1 {
			_, draws, triangles := engine.DrawStats()
			window.SetTitle(fmt.Sprintf("%s | %.0f fps | %d draws | %d triangles",
				cfg.Window.Title, float64(frames)/(now-statsAt), draws, triangles))
			statsAt, frames = now, 0
		}
	}
	return nil
}

// buildScene places a basic, a lit and a textured cube side by side, plus the
// configured mesh file. It returns the cubes that spin.
func buildScene(engine *renderer.RenderEngine, cfg config.Scene) ([]*scene.Model, error) {
	ctx, programs, camera := engine.Context(), engine.Programs(), engine.Camera()
	lightPos := mgl32.Vec3(config.Vec3(cfg.LightPos))

	basic, err := scene.NewBasicCube(ctx, programs, camera)
	if err != nil {
		return nil, err
	}
	engine.AddModel(basic)
	basic.Translate(mgl32.Vec3{-1.5, 0, 0})

	lit, err := scene.NewLitCube(ctx, programs, camera, scene.DefaultLightingMaterial(lightPos))
	if err != nil {
		return nil, err
	}
	engine.AddModel(lit)

	diffuse, err := loadTexture(ctx, cfg.DiffuseTexture, func() image.Image {
		return assets.Checkerboard(256, 8, color.RGBA{R: 181, G: 137, B: 84, A: 255}, color.RGBA{R: 96, G: 64, B: 32, A: 255})
	})
	if err != nil {
		return nil, err
	}
	engine.AddTexture(diffuse)
	specular, err := loadTexture(ctx, cfg.SpecularTexture, func() image.Image {
		return assets.FrameMap(256, 24)
	})
	if err != nil {
		return nil, err
	}
	engine.AddTexture(specular)

	textured, err := scene.NewTexturedCube(ctx, programs, camera, scene.TexturedMaterial{
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: 32,
	})
	if err != nil {
		return nil, err
	}
	engine.AddModel(textured)
	textured.Translate(mgl32.Vec3{1.5, 0, 0})

	if cfg.Mesh != "" {
		meshes, err := scene.LoadMesh(cfg.Mesh)
		if err != nil {
			return nil, err
		}
		for i, data := range meshes {
			mat := scene.NoMaterial()
			switch len(data.Blocks()) {
			case 2:
				mat = scene.Lit(scene.DefaultLightingMaterial(lightPos))
			case 3:
				mat = scene.Textured(scene.TexturedMaterial{Diffuse: diffuse, Specular: specular, Shininess: 32})
			}
			m, err := scene.NewMeshModel(ctx, programs, camera, fmt.Sprintf("%s#%d", cfg.Mesh, i), data, mat)
			if err != nil {
				return nil, err
			}
			engine.AddModel(m)
			m.Transform = scene.BoundsOf(data.Positions).FitMatrix(1)
			m.Translate(mgl32.Vec3{0, -1.5, 0})
		}
	}

	return []*scene.Model{basic, lit, textured}, nil
}

func loadTexture(ctx *gpu.Context, path string, fallback func() image.Image) (*gpu.Texture, error) {
	img := fallback()
	if path != "" {
		loaded, err := assets.LoadImage(path)
		if err != nil {
			return nil, err
		}
		img = loaded
	}
	tex, err := gpu.NewTexture(ctx, img)
	if err != nil {
		return nil, err
	}
	w, h := tex.Size()
	ctx.Logger().Debug("texture ready", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
	return tex, nil
}

package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"cube-renderer/gpu"
	"cube-renderer/scene"
)

// RenderEngine owns everything drawn in a session: the models, their
// textures and the shader programs they share. It drives one frame per
// Render call on the thread that owns the GL context.
type RenderEngine struct {
	ctx      *gpu.Context
	programs *gpu.ProgramCache
	camera   *scene.Camera
	log      *zap.Logger

	models   []*scene.Model
	textures []*gpu.Texture

	clear     mgl32.Vec4
	destroyed bool

	// Per-frame stats (populated during Render)
	lastModels    int
	lastDraws     int
	lastTriangles int
}

// NewRenderEngine enables depth testing and sizes the viewport. The engine
// takes ownership of programs.
func NewRenderEngine(ctx *gpu.Context, programs *gpu.ProgramCache, camera *scene.Camera, width, height int) *RenderEngine {
	re := &RenderEngine{
		ctx:      ctx,
		programs: programs,
		camera:   camera,
		log:      ctx.Logger(),
		clear:    mgl32.Vec4{0.2, 0.3, 0.3, 1.0},
	}
	ctx.EnableDepthTest()
	re.SetViewport(width, height)
	re.log.Info("render engine initialized", zap.Int("width", width), zap.Int("height", height))
	return re
}

func (re *RenderEngine) Camera() *scene.Camera          { return re.camera }
func (re *RenderEngine) Programs() *gpu.ProgramCache    { return re.programs }
func (re *RenderEngine) Models() []*scene.Model         { return re.models }
func (re *RenderEngine) Context() *gpu.Context          { return re.ctx }
func (re *RenderEngine) ClearColor() mgl32.Vec4         { return re.clear }
func (re *RenderEngine) SetClearColor(color mgl32.Vec4) { re.clear = color }

// AddModel hands ownership of m to the engine.
func (re *RenderEngine) AddModel(m *scene.Model) {
	re.models = append(re.models, m)
}

// AddTexture hands ownership of t to the engine. Textures may be shared by
// several models and are released after all of them.
func (re *RenderEngine) AddTexture(t *gpu.Texture) {
	re.textures = append(re.textures, t)
}

// SetViewport follows a framebuffer resize. A zero size, as reported for a
// minimised window, is ignored.
func (re *RenderEngine) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	re.ctx.Viewport(width, height)
	re.camera.UpdateAspectRatio(width, height)
}

// Render clears the frame and draws every model once. When a model fails
// the stats describe the models drawn before it.
func (re *RenderEngine) Render() error {
	re.lastModels, re.lastDraws, re.lastTriangles = 0, 0, 0
	if re.destroyed {
		return fmt.Errorf("render after destroy: %w", gpu.ErrReleased)
	}
	re.ctx.Clear(re.clear[0], re.clear[1], re.clear[2], re.clear[3])

	re.lastModels = len(re.models)
	for _, m := range re.models {
		if err := m.Draw(true); err != nil {
			return err
		}
		re.lastDraws++
		re.lastTriangles += m.Triangles()
	}
	return nil
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (models, draws, triangles int) {
	return re.lastModels, re.lastDraws, re.lastTriangles
}

// Destroy releases models, then textures, then programs. Calling it again
// does nothing.
func (re *RenderEngine) Destroy() {
	if re.destroyed {
		return
	}
	for _, m := range re.models {
		m.Release()
	}
	for _, t := range re.textures {
		t.Release()
	}
	re.programs.Release()
	re.log.Info("render engine destroyed",
		zap.Int("models", len(re.models)),
		zap.Int("textures", len(re.textures)))
	re.models, re.textures = nil, nil
	re.destroyed = true
}

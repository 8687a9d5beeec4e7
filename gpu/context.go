package gpu

import "go.uber.org/zap"

// Context is the render context threaded through every GPU resource. It
// mirrors the driver's "current program" and "bound vertex array" so callers
// can check binding order without querying the driver.
type Context struct {
	drv Driver
	log *zap.Logger

	program     uint32
	vertexArray uint32
	textures    map[uint32]uint32 // unit -> texture
}

// NewContext wraps drv. A nil logger disables logging.
func NewContext(drv Driver, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		drv:      drv,
		log:      log,
		textures: make(map[uint32]uint32),
	}
}

func (c *Context) Driver() Driver      { return c.drv }
func (c *Context) Logger() *zap.Logger { return c.log }

// UseProgram makes program current. Repeated calls for the current program
// do not reach the driver.
func (c *Context) UseProgram(program uint32) {
	if c.program == program {
		return
	}
	c.drv.UseProgram(program)
	c.program = program
}

// CurrentProgram returns the program made current by the last UseProgram.
func (c *Context) CurrentProgram() uint32 { return c.program }

// BindVertexArray binds vao as the active attribute layout.
func (c *Context) BindVertexArray(vao uint32) {
	if c.vertexArray == vao {
		return
	}
	c.drv.BindVertexArray(vao)
	c.vertexArray = vao
}

// BoundVertexArray returns the currently bound attribute layout.
func (c *Context) BoundVertexArray() uint32 { return c.vertexArray }

// BindTexture binds texture to the given unit.
func (c *Context) BindTexture(unit, texture uint32) {
	c.drv.ActiveTexture(unit)
	c.drv.BindTexture2D(texture)
	c.textures[unit] = texture
}

// BoundTexture returns the texture bound to unit, or zero.
func (c *Context) BoundTexture(unit uint32) uint32 { return c.textures[unit] }

// Viewport sets the drawable area in pixels.
func (c *Context) Viewport(width, height int) {
	c.drv.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears colour and depth with the given colour.
func (c *Context) Clear(r, g, b, a float32) {
	c.drv.ClearColor(r, g, b, a)
	c.drv.Clear()
}

// EnableDepthTest turns on depth testing for every later draw.
func (c *Context) EnableDepthTest() { c.drv.EnableDepthTest() }

// forgetProgram resets the tracked binding when a program is deleted.
func (c *Context) forgetProgram(program uint32) {
	if c.program == program {
		c.program = 0
	}
}

func (c *Context) forgetVertexArray(vao uint32) {
	if c.vertexArray == vao {
		c.vertexArray = 0
	}
}

func (c *Context) forgetTexture(texture uint32) {
	for unit, t := range c.textures {
		if t == texture {
			delete(c.textures, unit)
		}
	}
}

package gpu

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Program is a linked vertex+fragment shader program with its active
// uniforms cached by name. A Program is shared by every model that draws with
// it and must outlive them.
type Program struct {
	ctx      *Context
	handle   uint32
	uniforms map[string]int32
}

// NewProgram compiles both stages and links them. On failure every driver
// object created so far is deleted and the returned error is a *CompileError
// or *LinkError wrapped with context.
func NewProgram(ctx *Context, vertexSrc, fragmentSrc string) (*Program, error) {
	drv := ctx.Driver()

	vert, err := compileShader(ctx, VertexStage, vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(ctx, FragmentStage, fragmentSrc)
	if err != nil {
		drv.DeleteShader(vert)
		return nil, fmt.Errorf("fragment: %w", err)
	}

	prog := drv.CreateProgram()
	drv.AttachShader(prog, vert)
	drv.AttachShader(prog, frag)
	drv.LinkProgram(prog)
	linked := drv.ProgramLinked(prog)

	// Stages are no longer needed once linking has been attempted.
	drv.DetachShader(prog, vert)
	drv.DetachShader(prog, frag)
	drv.DeleteShader(vert)
	drv.DeleteShader(frag)

	if !linked {
		log := drv.ProgramInfoLog(prog)
		drv.DeleteProgram(prog)
		ctx.Logger().Error("program link failed", zap.String("log", log))
		return nil, &LinkError{Log: log}
	}

	p := &Program{
		ctx:      ctx,
		handle:   prog,
		uniforms: make(map[string]int32),
	}
	n := drv.ActiveUniformCount(prog)
	for i := 0; i < n; i++ {
		name := drv.ActiveUniformName(prog, i)
		p.uniforms[name] = drv.UniformLocation(prog, name)
	}
	ctx.Logger().Debug("program linked",
		zap.Uint32("program", prog),
		zap.Int("uniforms", len(p.uniforms)))
	return p, nil
}

func compileShader(ctx *Context, stage Stage, src string) (uint32, error) {
	drv := ctx.Driver()
	shader := drv.CreateShader(stage)
	drv.ShaderSource(shader, src)
	drv.CompileShader(shader)
	if !drv.ShaderCompiled(shader) {
		log := drv.ShaderInfoLog(shader)
		drv.DeleteShader(shader)
		ctx.Logger().Error("shader compile failed",
			zap.Stringer("stage", stage),
			zap.String("log", log))
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// Handle returns the driver program name, or zero once released.
func (p *Program) Handle() uint32 { return p.handle }

// Use makes the program current.
func (p *Program) Use() error {
	if p.handle == 0 {
		return ErrReleased
	}
	p.ctx.UseProgram(p.handle)
	return nil
}

// Uniforms returns the names of the active uniforms, sorted.
func (p *Program) Uniforms() []string {
	names := make([]string, 0, len(p.uniforms))
	for name := range p.uniforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasUniform reports whether name survived compilation as an active uniform.
func (p *Program) HasUniform(name string) bool {
	_, ok := p.uniforms[name]
	return ok
}

// Location returns the cached location of an active uniform.
func (p *Program) Location(name string) (int32, error) {
	if p.handle == 0 {
		return -1, ErrReleased
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return -1, &UnknownUniformError{Program: p.handle, Name: name}
	}
	return loc, nil
}

// bind makes the program current and resolves name.
func (p *Program) bind(name string) (int32, error) {
	loc, err := p.Location(name)
	if err != nil {
		return -1, err
	}
	p.ctx.UseProgram(p.handle)
	return loc, nil
}

func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.bind(name)
	if err != nil {
		return err
	}
	p.ctx.Driver().Uniform1i(loc, v)
	return nil
}

func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.bind(name)
	if err != nil {
		return err
	}
	p.ctx.Driver().Uniform1f(loc, v)
	return nil
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) error {
	loc, err := p.bind(name)
	if err != nil {
		return err
	}
	p.ctx.Driver().Uniform3f(loc, v[0], v[1], v[2])
	return nil
}

// SetMat4 uploads m as stored. mgl32 matrices are column-major, which is what
// the driver expects, so no transpose is requested.
func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := p.bind(name)
	if err != nil {
		return err
	}
	arr := [16]float32(m)
	p.ctx.Driver().UniformMatrix4fv(loc, false, &arr)
	return nil
}

// Release deletes the program. It is safe to call more than once.
func (p *Program) Release() {
	if p.handle == 0 {
		return
	}
	p.ctx.Driver().DeleteProgram(p.handle)
	p.ctx.forgetProgram(p.handle)
	p.ctx.Logger().Debug("program released", zap.Uint32("program", p.handle))
	p.handle = 0
}

package gpu

import (
	"fmt"
	"io/fs"

	"go.uber.org/zap"
)

// ShaderPair names the two source files of a program.
type ShaderPair struct {
	Vertex   string
	Fragment string
}

// ProgramCache compiles each shader pair once and hands out the shared
// program on later requests.
type ProgramCache struct {
	ctx      *Context
	fsys     fs.FS
	programs map[ShaderPair]*Program
}

// NewProgramCache reads shader sources from fsys.
func NewProgramCache(ctx *Context, fsys fs.FS) *ProgramCache {
	return &ProgramCache{
		ctx:      ctx,
		fsys:     fsys,
		programs: make(map[ShaderPair]*Program),
	}
}

// Get returns the program for the given vertex and fragment sources,
// building it on first use.
func (c *ProgramCache) Get(vertex, fragment string) (*Program, error) {
	key := ShaderPair{Vertex: vertex, Fragment: fragment}
	if p, ok := c.programs[key]; ok {
		return p, nil
	}

	vs, err := fs.ReadFile(c.fsys, vertex)
	if err != nil {
		return nil, fmt.Errorf("read shader: %w", err)
	}
	fsrc, err := fs.ReadFile(c.fsys, fragment)
	if err != nil {
		return nil, fmt.Errorf("read shader: %w", err)
	}

	p, err := NewProgram(c.ctx, string(vs), string(fsrc))
	if err != nil {
		return nil, fmt.Errorf("program %s+%s: %w", vertex, fragment, err)
	}
	c.programs[key] = p
	c.ctx.Logger().Info("shader program ready",
		zap.String("vertex", vertex),
		zap.String("fragment", fragment),
		zap.Strings("uniforms", p.Uniforms()))
	return p, nil
}

// Len returns the number of programs built so far.
func (c *ProgramCache) Len() int { return len(c.programs) }

// Release deletes every cached program.
func (c *ProgramCache) Release() {
	for key, p := range c.programs {
		p.Release()
		delete(c.programs, key)
	}
}

// Package gputest provides a recording gpu.Driver for tests. It needs no GPU:
// handles are counters, compile status is decided from the source text, and
// active uniforms are parsed out of the GLSL the way a compiler would report
// them, including dropping uniforms the source never reads.
package gputest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cube-renderer/gpu"
)

// Call is one recorded driver call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

type shader struct {
	stage    gpu.Stage
	src      string
	compiled bool
	log      string
}

type program struct {
	attached map[uint32]bool
	sources  []string
	linked   bool
	log      string
	uniforms []string
	values   map[int32]any
}

// Recorder implements gpu.Driver.
type Recorder struct {
	// CompileFails forces a compile failure for matching sources.
	CompileFails func(stage gpu.Stage, src string) bool
	// LinkFails makes every link fail.
	LinkFails bool

	calls []Call
	next  uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	vaos     map[uint32]bool
	buffers  map[uint32]bool
	textures map[uint32]bool

	current     uint32
	vertexArray uint32
	unit        uint32
	units       map[uint32]uint32
}

var _ gpu.Driver = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		vaos:     make(map[uint32]bool),
		buffers:  make(map[uint32]bool),
		textures: make(map[uint32]bool),
		units:    make(map[uint32]uint32),
	}
}

func (r *Recorder) record(op string, args ...any) {
	r.calls = append(r.calls, Call{Op: op, Args: args})
}

func (r *Recorder) alloc() uint32 {
	r.next++
	return r.next
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call { return r.calls }

// Ops returns the recorded operation names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was called.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns the recorded calls named op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded calls but keeps object state.
func (r *Recorder) Reset() { r.calls = nil }

// Live returns the number of driver objects not yet deleted.
func (r *Recorder) Live() int {
	return len(r.shaders) + len(r.programs) + len(r.vaos) + len(r.buffers) + len(r.textures)
}

// CurrentProgram is the program last passed to UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.current }

// BoundVertexArray is the vertex array last bound.
func (r *Recorder) BoundVertexArray() uint32 { return r.vertexArray }

// TextureAt returns the texture bound to a unit.
func (r *Recorder) TextureAt(unit uint32) uint32 { return r.units[unit] }

// UniformValue returns the last value uploaded to name in prog.
func (r *Recorder) UniformValue(prog uint32, name string) (any, bool) {
	p, ok := r.programs[prog]
	if !ok {
		return nil, false
	}
	for i, u := range p.uniforms {
		if u == name {
			v, ok := p.values[int32(i)]
			return v, ok
		}
	}
	return nil, false
}

// Shaders.

func (r *Recorder) CreateShader(stage gpu.Stage) uint32 {
	h := r.alloc()
	r.shaders[h] = &shader{stage: stage}
	r.record("CreateShader", stage, h)
	return h
}

func (r *Recorder) ShaderSource(s uint32, src string) {
	r.record("ShaderSource", s)
	if sh, ok := r.shaders[s]; ok {
		sh.src = src
	}
}

func (r *Recorder) CompileShader(s uint32) {
	r.record("CompileShader", s)
	sh, ok := r.shaders[s]
	if !ok {
		return
	}
	switch {
	case r.CompileFails != nil && r.CompileFails(sh.stage, sh.src):
		sh.log = "0:1(1): error: forced failure"
	case !strings.Contains(sh.src, "#version"):
		sh.log = "0:1(1): error: missing #version directive"
	case !strings.Contains(sh.src, "void main"):
		sh.log = "0:1(1): error: entry point main not found"
	default:
		sh.compiled = true
	}
}

func (r *Recorder) ShaderCompiled(s uint32) bool {
	sh, ok := r.shaders[s]
	return ok && sh.compiled
}

func (r *Recorder) ShaderInfoLog(s uint32) string {
	if sh, ok := r.shaders[s]; ok {
		return sh.log
	}
	return ""
}

func (r *Recorder) DeleteShader(s uint32) {
	r.record("DeleteShader", s)
	delete(r.shaders, s)
}

// Programs.

func (r *Recorder) CreateProgram() uint32 {
	h := r.alloc()
	r.programs[h] = &program{attached: make(map[uint32]bool), values: make(map[int32]any)}
	r.record("CreateProgram", h)
	return h
}

func (r *Recorder) AttachShader(p, s uint32) {
	r.record("AttachShader", p, s)
	if pr, ok := r.programs[p]; ok {
		pr.attached[s] = true
	}
}

func (r *Recorder) DetachShader(p, s uint32) {
	r.record("DetachShader", p, s)
	if pr, ok := r.programs[p]; ok {
		delete(pr.attached, s)
	}
}

func (r *Recorder) LinkProgram(p uint32) {
	r.record("LinkProgram", p)
	pr, ok := r.programs[p]
	if !ok {
		return
	}
	pr.sources = pr.sources[:0]
	stages := map[gpu.Stage]bool{}
	for s := range pr.attached {
		sh := r.shaders[s]
		if sh == nil || !sh.compiled {
			pr.log = fmt.Sprintf("error: shader %d is not compiled", s)
			return
		}
		stages[sh.stage] = true
		pr.sources = append(pr.sources, sh.src)
	}
	if r.LinkFails {
		pr.log = "error: forced link failure"
		return
	}
	if !stages[gpu.VertexStage] || !stages[gpu.FragmentStage] {
		pr.log = "error: program needs a vertex and a fragment shader"
		return
	}
	pr.linked = true
	pr.uniforms = ActiveUniforms(pr.sources...)
}

func (r *Recorder) ProgramLinked(p uint32) bool {
	pr, ok := r.programs[p]
	return ok && pr.linked
}

func (r *Recorder) ProgramInfoLog(p uint32) string {
	if pr, ok := r.programs[p]; ok {
		return pr.log
	}
	return ""
}

func (r *Recorder) ActiveUniformCount(p uint32) int {
	if pr, ok := r.programs[p]; ok {
		return len(pr.uniforms)
	}
	return 0
}

func (r *Recorder) ActiveUniformName(p uint32, i int) string {
	pr, ok := r.programs[p]
	if !ok || i < 0 || i >= len(pr.uniforms) {
		return ""
	}
	return pr.uniforms[i]
}

func (r *Recorder) UniformLocation(p uint32, name string) int32 {
	if pr, ok := r.programs[p]; ok {
		for i, u := range pr.uniforms {
			if u == name {
				return int32(i)
			}
		}
	}
	return -1
}

func (r *Recorder) UseProgram(p uint32) {
	r.record("UseProgram", p)
	r.current = p
}

func (r *Recorder) DeleteProgram(p uint32) {
	r.record("DeleteProgram", p)
	delete(r.programs, p)
	if r.current == p {
		r.current = 0
	}
}

// Uniforms.

func (r *Recorder) setUniform(op string, loc int32, v any) {
	r.record(op, r.current, loc, v)
	if pr, ok := r.programs[r.current]; ok && loc >= 0 {
		pr.values[loc] = v
	}
}

func (r *Recorder) Uniform1i(loc int32, v int32)   { r.setUniform("Uniform1i", loc, v) }
func (r *Recorder) Uniform1f(loc int32, v float32) { r.setUniform("Uniform1f", loc, v) }
func (r *Recorder) Uniform3f(loc int32, x, y, z float32) {
	r.setUniform("Uniform3f", loc, [3]float32{x, y, z})
}

func (r *Recorder) UniformMatrix4fv(loc int32, transpose bool, m *[16]float32) {
	r.record("UniformMatrix4fv", r.current, loc, *m, transpose)
	if pr, ok := r.programs[r.current]; ok && loc >= 0 {
		pr.values[loc] = *m
	}
}

// Buffers.

func (r *Recorder) GenVertexArray() uint32 {
	h := r.alloc()
	r.vaos[h] = true
	r.record("GenVertexArray", h)
	return h
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
	r.vertexArray = vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record("DeleteVertexArray", vao)
	delete(r.vaos, vao)
	if r.vertexArray == vao {
		r.vertexArray = 0
	}
}

func (r *Recorder) GenBuffer() uint32 {
	h := r.alloc()
	r.buffers[h] = true
	r.record("GenBuffer", h)
	return h
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, b uint32) {
	r.record("BindBuffer", target, b)
}

func (r *Recorder) BufferFloat32(target gpu.BufferTarget, data []float32) {
	r.record("BufferFloat32", target, append([]float32(nil), data...))
}

func (r *Recorder) BufferUint32(target gpu.BufferTarget, data []uint32) {
	r.record("BufferUint32", target, append([]uint32(nil), data...))
}

func (r *Recorder) DeleteBuffer(b uint32) {
	r.record("DeleteBuffer", b)
	delete(r.buffers, b)
}

func (r *Recorder) VertexAttribPointer(slot uint32, components, stride int32, offset int) {
	r.record("VertexAttribPointer", slot, components, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(slot uint32) {
	r.record("EnableVertexAttribArray", slot)
}

// DrawTriangles records the index count with the bound vertex array and
// current program.
func (r *Recorder) DrawTriangles(count int32) {
	r.record("DrawTriangles", count, r.vertexArray, r.current)
}

// Textures.

func (r *Recorder) GenTexture() uint32 {
	h := r.alloc()
	r.textures[h] = true
	r.record("GenTexture", h)
	return h
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
	r.unit = unit
}

func (r *Recorder) BindTexture2D(t uint32) {
	r.record("BindTexture2D", t)
	r.units[r.unit] = t
}

func (r *Recorder) TexImage2DRGBA(w, h int32, pixels []byte) {
	r.record("TexImage2DRGBA", w, h, append([]byte(nil), pixels...))
}

func (r *Recorder) DeleteTexture(t uint32) {
	r.record("DeleteTexture", t)
	delete(r.textures, t)
	for unit, bound := range r.units {
		if bound == t {
			delete(r.units, unit)
		}
	}
}

// Frame.

func (r *Recorder) Viewport(x, y, w, h int32)         { r.record("Viewport", x, y, w, h) }
func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.record("ClearColor", cr, cg, cb, ca) }
func (r *Recorder) Clear()                            { r.record("Clear") }
func (r *Recorder) EnableDepthTest()                  { r.record("EnableDepthTest") }

var (
	commentRe = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	structRe  = regexp.MustCompile(`(?s)struct\s+(\w+)\s*\{([^}]*)\}`)
	memberRe  = regexp.MustCompile(`(\w+)\s+(\w+)\s*;`)
	uniformRe = regexp.MustCompile(`uniform\s+(\w+)\s+(\w+)\s*;`)
)

// ActiveUniforms returns the uniforms a GLSL compiler would report for the
// given stage sources: declared uniforms that are read somewhere, with struct
// uniforms expanded to "name.member". The result is sorted.
func ActiveUniforms(sources ...string) []string {
	src := commentRe.ReplaceAllString(strings.Join(sources, "\n"), "")

	structs := map[string][]string{}
	for _, m := range structRe.FindAllStringSubmatch(src, -1) {
		for _, f := range memberRe.FindAllStringSubmatch(m[2], -1) {
			structs[m[1]] = append(structs[m[1]], f[2])
		}
	}

	seen := map[string]bool{}
	for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
		typ, name := m[1], m[2]
		if members, ok := structs[typ]; ok {
			for _, member := range members {
				full := name + "." + member
				if uses(src, regexp.QuoteMeta(name)+`\s*\.\s*`+regexp.QuoteMeta(member)+`\b`) > 0 {
					seen[full] = true
				}
			}
			continue
		}
		// One occurrence per declaring stage; anything beyond that is a read.
		declRe := regexp.MustCompile(`uniform\s+\w+\s+` + regexp.QuoteMeta(name) + `\s*;`)
		decls := len(declRe.FindAllStringIndex(src, -1))
		if uses(src, `\b`+regexp.QuoteMeta(name)+`\b`) > decls {
			seen[name] = true
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func uses(src, pattern string) int {
	return len(regexp.MustCompile(pattern).FindAllStringIndex(src, -1))
}

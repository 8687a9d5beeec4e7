// Package gpu wraps the graphics driver behind owning resource types:
// geometry buffers, shader programs and textures. Every call goes through a
// Context, which tracks the bound program and vertex array so that binding
// order is an explicit, checkable precondition instead of hidden driver state.
package gpu

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// BufferTarget selects the binding point of a buffer object.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Texture units used by the materials.
const (
	DiffuseUnit  uint32 = 0
	SpecularUnit uint32 = 1
)

// Driver is the raw graphics API. Handles are driver object names; zero is
// never a valid object. Implementations are not safe for concurrent use and
// must be called from the goroutine that owns the context.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	ActiveUniformCount(program uint32) int
	ActiveUniformName(program uint32, index int) string
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, transpose bool, m *[16]float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint32(target BufferTarget, data []uint32)
	DeleteBuffer(buffer uint32)
	VertexAttribPointer(slot uint32, components int32, stride int32, offset int)
	EnableVertexAttribArray(slot uint32)
	DrawTriangles(indexCount int32)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture2D(texture uint32)
	TexImage2DRGBA(width, height int32, pixels []byte)
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	EnableDepthTest()
}

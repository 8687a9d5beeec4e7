// Package opengl implements gpu.Driver on OpenGL 4.1 core through go-gl.
// Every method must be called on the thread that owns the GL context.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"cube-renderer/gpu"
)

// Driver is the go-gl backed gpu.Driver.
type Driver struct{}

var _ gpu.Driver = (*Driver)(nil)

// NewDriver loads the GL function pointers for the current context.
func NewDriver(log *zap.Logger) (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	if log != nil {
		log.Info("OpenGL ready",
			zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
			zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	}
	return &Driver{}, nil
}

func stageEnum(s gpu.Stage) uint32 {
	if s == gpu.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func targetEnum(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// ── Shaders ───────────────────────────────────────────────────────────────────

func (d *Driver) CreateShader(stage gpu.Stage) uint32 { return gl.CreateShader(stageEnum(stage)) }

func (d *Driver) ShaderSource(shader uint32, source string) {
	csrc, free := gl.Strs(cstr(source))
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (d *Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Driver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

// ── Programs ──────────────────────────────────────────────────────────────────

func (d *Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }
func (d *Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (d *Driver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) ActiveUniformCount(program uint32) int {
	var n int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &n)
	return int(n)
}

// ActiveUniformName reports array uniforms by their base name.
func (d *Driver) ActiveUniformName(program uint32, index int) string {
	var maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if maxLen == 0 {
		return ""
	}
	buf := make([]uint8, maxLen)
	var (
		length int32
		size   int32
		xtype  uint32
	)
	gl.GetActiveUniform(program, uint32(index), maxLen, &length, &size, &xtype, &buf[0])
	return strings.TrimSuffix(string(buf[:length]), "[0]")
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(cstr(name)))
}

func (d *Driver) UseProgram(program uint32)    { gl.UseProgram(program) }
func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

// ── Uniforms ──────────────────────────────────────────────────────────────────

func (d *Driver) Uniform1i(location int32, v int32)         { gl.Uniform1i(location, v) }
func (d *Driver) Uniform1f(location int32, v float32)       { gl.Uniform1f(location, v) }
func (d *Driver) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (d *Driver) UniformMatrix4fv(location int32, transpose bool, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &m[0])
}

// ── Buffers ───────────────────────────────────────────────────────────────────

func (d *Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Driver) BindVertexArray(vao uint32)   { gl.BindVertexArray(vao) }
func (d *Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Driver) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (d *Driver) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	gl.BindBuffer(targetEnum(target), buffer)
}

func (d *Driver) BufferFloat32(target gpu.BufferTarget, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(targetEnum(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Driver) BufferUint32(target gpu.BufferTarget, data []uint32) {
	if len(data) == 0 {
		return
	}
	gl.BufferData(targetEnum(target), len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Driver) VertexAttribPointer(slot uint32, components int32, stride int32, offset int) {
	gl.VertexAttribPointer(slot, components, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (d *Driver) EnableVertexAttribArray(slot uint32) { gl.EnableVertexAttribArray(slot) }

func (d *Driver) DrawTriangles(indexCount int32) {
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (d *Driver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Driver) ActiveTexture(unit uint32)    { gl.ActiveTexture(gl.TEXTURE0 + unit) }
func (d *Driver) BindTexture2D(texture uint32) { gl.BindTexture(gl.TEXTURE_2D, texture) }

// TexImage2DRGBA uploads to the bound texture with repeat wrapping and
// trilinear filtering.
func (d *Driver) TexImage2DRGBA(width, height int32, pixels []byte) {
	if len(pixels) == 0 {
		return
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&pixels[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (d *Driver) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

// ── Frame ─────────────────────────────────────────────────────────────────────

func (d *Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (d *Driver) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (d *Driver) Clear()                             { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (d *Driver) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

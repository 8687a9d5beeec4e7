package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"cube-renderer/gpu"
)

// Drawable produces one frame's draw. With finalize false every uniform is
// uploaded and every resource bound, but the terminal draw call is not
// issued.
type Drawable interface {
	Draw(finalize bool) error
}

// Model is one mesh placed in the world. It owns its geometry; the program
// and camera are shared with other models and must outlive it.
type Model struct {
	Name      string
	Transform mgl32.Mat4

	geometry *gpu.Buffer
	program  *gpu.Program
	camera   *Camera
	material Material
}

var _ Drawable = (*Model)(nil)

// NewModel takes ownership of geometry.
func NewModel(name string, geometry *gpu.Buffer, program *gpu.Program, camera *Camera, material Material) (*Model, error) {
	if geometry == nil || program == nil || camera == nil {
		return nil, errors.New("model needs geometry, a program and a camera")
	}
	return &Model{
		Name:      name,
		Transform: mgl32.Ident4(),
		geometry:  geometry,
		program:   program,
		camera:    camera,
		material:  material,
	}, nil
}

func (m *Model) Geometry() *gpu.Buffer { return m.geometry }
func (m *Model) Program() *gpu.Program { return m.program }
func (m *Model) Camera() *Camera       { return m.camera }
func (m *Model) Material() Material    { return m.material }

// Draw binds the geometry and program, uploads the matrices and the material
// and, when finalize is set, draws.
func (m *Model) Draw(finalize bool) error {
	if err := m.drawBase(); err != nil {
		return fmt.Errorf("model %q: %w", m.Name, err)
	}

	var err error
	switch m.material.Kind {
	case MaterialTextured:
		err = m.applyTextured(m.material.Textured)
	case MaterialLit:
		err = m.applyLit(m.material.Lit)
	}
	if err != nil {
		return fmt.Errorf("model %q: %s material: %w", m.Name, m.material.Kind, err)
	}

	if !finalize {
		return nil
	}
	if err := m.geometry.Draw(); err != nil {
		return fmt.Errorf("model %q: %w", m.Name, err)
	}
	return nil
}

func (m *Model) drawBase() error {
	if err := m.geometry.Bind(); err != nil {
		return err
	}
	if err := m.program.Use(); err != nil {
		return err
	}
	if err := m.program.SetMat4("transform", m.Transform); err != nil {
		return err
	}
	if err := m.program.SetMat4("view", m.camera.ViewMatrix()); err != nil {
		return err
	}
	return m.program.SetMat4("projection", m.camera.ProjectionMatrix())
}

func (m *Model) applyTextured(t TexturedMaterial) error {
	if t.Diffuse == nil || t.Specular == nil {
		return errors.New("diffuse and specular textures are required")
	}
	if err := t.Diffuse.Bind(gpu.DiffuseUnit); err != nil {
		return err
	}
	if err := t.Specular.Bind(gpu.SpecularUnit); err != nil {
		return err
	}
	if err := m.program.SetInt("material.diffuse", int32(gpu.DiffuseUnit)); err != nil {
		return err
	}
	if err := m.program.SetInt("material.specular", int32(gpu.SpecularUnit)); err != nil {
		return err
	}
	if err := m.program.SetFloat("material.shininess", t.Shininess); err != nil {
		return err
	}
	dir := DefaultLightDirection
	if t.LightDir != nil {
		dir = *t.LightDir
	}
	if err := m.program.SetVec3("light.direction", dir); err != nil {
		return err
	}
	return m.program.SetVec3("viewPos", m.camera.Position)
}

func (m *Model) applyLit(l LightingMaterial) error {
	if err := m.program.SetVec3("lightPos", l.LightPos); err != nil {
		return err
	}
	if err := m.program.SetVec3("viewPos", m.camera.Position); err != nil {
		return err
	}
	if err := m.program.SetVec3("material.ambient", l.Ambient); err != nil {
		return err
	}
	if err := m.program.SetVec3("material.diffuse", l.Diffuse); err != nil {
		return err
	}
	if err := m.program.SetVec3("material.specular", l.Specular); err != nil {
		return err
	}
	return m.program.SetFloat("material.shininess", l.Shininess)
}

// SetLightPos moves the point light of a lit model.
func (m *Model) SetLightPos(pos mgl32.Vec3) {
	m.material.Lit.LightPos = pos
}

// Translate moves the model in world space.
func (m *Model) Translate(v mgl32.Vec3) {
	m.Transform = mgl32.Translate3D(v[0], v[1], v[2]).Mul4(m.Transform)
}

// Rotate spins the model by angle radians about a local axis.
func (m *Model) Rotate(angle float32, axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	m.Transform = m.Transform.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

// Triangles is the number of triangles one Draw(true) submits.
func (m *Model) Triangles() int { return m.geometry.Triangles() }

// Release frees the geometry. Shared program and textures are left alone.
func (m *Model) Release() {
	m.geometry.Release()
}

package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"cube-renderer/gpu"
)

// MaterialKind tags which material parameters a Model carries.
type MaterialKind int

const (
	MaterialNone MaterialKind = iota
	MaterialTextured
	MaterialLit
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialNone:
		return "none"
	case MaterialTextured:
		return "textured"
	case MaterialLit:
		return "lit"
	}
	return "unknown"
}

// DefaultLightDirection is used by textured materials with no LightDir.
var DefaultLightDirection = mgl32.Vec3{-0.2, -1.0, -0.3}

// TexturedMaterial samples a diffuse map on unit 0 and a specular map on
// unit 1 under a directional light.
type TexturedMaterial struct {
	Diffuse   *gpu.Texture
	Specular  *gpu.Texture
	LightDir  *mgl32.Vec3
	Shininess float32
}

// LightingMaterial is Phong shading with a point light and constant colours.
type LightingMaterial struct {
	LightPos  mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// DefaultLightingMaterial is the orange "coral" material lit from lightPos.
func DefaultLightingMaterial(lightPos mgl32.Vec3) LightingMaterial {
	return LightingMaterial{
		LightPos:  lightPos,
		Ambient:   mgl32.Vec3{1.0, 0.5, 0.31},
		Diffuse:   mgl32.Vec3{1.0, 0.5, 0.31},
		Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
		Shininess: 32,
	}
}

// Material is exactly one of: nothing, a TexturedMaterial, a LightingMaterial.
type Material struct {
	Kind     MaterialKind
	Textured TexturedMaterial
	Lit      LightingMaterial
}

func NoMaterial() Material { return Material{Kind: MaterialNone} }

func Textured(m TexturedMaterial) Material {
	return Material{Kind: MaterialTextured, Textured: m}
}

func Lit(m LightingMaterial) Material {
	return Material{Kind: MaterialLit, Lit: m}
}

// Package shading is the CPU counterpart of the surface shader pair: it
// evaluates the same vertex transform and fragment lighting so frames can be
// rendered without a GPU and the lighting model can be tested.
package shading

import (
	"image/color"
	gomath "math"

	"github.com/Faultbox/surfaceview/internal/engine/lighting"
	"github.com/Faultbox/surfaceview/internal/engine/texture"
	"github.com/Faultbox/surfaceview/pkg/math"
)

// Ambient and Diffuse weight the final color:
// color = tex.r * (Ambient + Diffuse * Σ light_color * lambert).
const (
	Ambient = 0.25
	Diffuse = 0.75
)

// Transforms are the four matrices the shaders consume.
type Transforms struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
	Normal     math.Mat4 // inverse-transpose of View * Model
}

// Program mirrors the GLSL program: it holds the uniforms and runs the
// vertex and fragment stages.
type Program struct {
	transforms Transforms
	viewModel  math.Mat4
	mvp        math.Mat4

	lights  lighting.Set
	texture *texture.Sampler
}

// NewProgram creates a program with fixed lights and texture. Transforms
// start as identity until SetTransforms is called.
func NewProgram(lights lighting.Set, tex *texture.Sampler) *Program {
	p := &Program{
		lights:  lights,
		texture: tex,
	}
	p.SetTransforms(Transforms{
		Model:      math.Identity(),
		View:       math.Identity(),
		Projection: math.Identity(),
		Normal:     math.Identity(),
	})
	return p
}

// SetTransforms updates the matrix uniforms.
func (p *Program) SetTransforms(t Transforms) {
	p.transforms = t
	p.viewModel = t.View.Mul(t.Model)
	p.mvp = t.Projection.Mul(p.viewModel)
}

// Transforms returns the current matrix uniforms.
func (p *Program) Transforms() Transforms {
	return p.transforms
}

// Lights returns the bound lights.
func (p *Program) Lights() lighting.Set {
	return p.lights
}

// Vertex returns the clip-space position of a model-space point.
func (p *Program) Vertex(position math.Vec3) math.Vec4 {
	return p.mvp.MulVec4(math.Point(position))
}

// FragmentInput holds the interpolated vertex attributes for one fragment.
type FragmentInput struct {
	Normal   math.Vec3 // model space, not normalized
	Position math.Vec3 // model space
	TexCoord math.Vec2
}

// Fragment computes the fragment color. Channels may exceed 1; callers
// saturate them when writing pixels.
func (p *Program) Fragment(in FragmentInput) math.Vec4 {
	n := p.transforms.Normal.MulVec4(math.Vec4{in.Normal.X, in.Normal.Y, in.Normal.Z, 1}).XYZ().Normalize()
	pos := p.viewModel.MulVec4(math.Point(in.Position)).XYZ()

	var sum math.Vec3
	for _, l := range p.lights {
		sum = sum.Add(l.Color.Scale(Lambert(n, pos, l.Position)))
	}

	var r float32
	if p.texture != nil {
		r = p.texture.Red(in.TexCoord)
	}

	// each light also contributes w=1, so alpha ends up above 1 and saturates
	alpha := float32(Ambient + Diffuse*lighting.Count)
	return math.Vec4{
		r * (Ambient + Diffuse*sum.X),
		r * (Ambient + Diffuse*sum.Y),
		r * (Ambient + Diffuse*sum.Z),
		alpha,
	}
}

// Lambert returns the cosine between the normal n and the direction from
// the surface point to the light, clamped to [0, 1].
func Lambert(n, surface, light math.Vec3) float32 {
	toLight := light.Sub(surface)
	denom := toLight.Length() * n.Length()
	if denom == 0 {
		return 0
	}
	b := n.Dot(toLight) / denom
	if gomath.IsNaN(float64(b)) {
		return 0
	}
	return max(min(b, 1), 0)
}

// ToRGBA saturates a shaded color into 8-bit channels.
func ToRGBA(c math.Vec4) color.RGBA {
	return color.RGBA{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: channel(c[3]),
	}
}

func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

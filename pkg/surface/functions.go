package surface

import (
	gomath "math"

	"github.com/Faultbox/surfaceview/pkg/math"
)

// Klein evaluates the classic Klein bottle immersion.
//
// Domain: u in [0, 2π] runs along the tube, v in [0, 2π) around it. The
// function is piecewise in u: for u < π the tube bends out through the body,
// from u = π on it runs back through the handle. Both pieces agree at u = π
// so the branch adds no seam. The ends u = 0 and u = 2π meet with v mirrored,
// so u must not be sampled as a wrapped axis. The result is scaled by 1/5.
func Klein(u, v float64) math.Vec3 {
	cu, su := gomath.Cos(u), gomath.Sin(u)
	r := 2 * (1 - cu/2)

	var x, z float64
	if u < gomath.Pi {
		x = 3*cu*(1+su) + r*cu*gomath.Cos(v)
		z = -8*su - r*su*gomath.Cos(v)
	} else {
		x = 3*cu*(1+su) + r*gomath.Cos(v+gomath.Pi)
		z = -8 * su
	}
	y := -r * gomath.Sin(v)

	return math.Vec3{X: float32(x / 5), Y: float32(y / 5), Z: float32(z / 5)}
}

// Torus returns a ring torus around the Z axis with major radius R and tube
// radius r. Both u and v are periodic over [0, 2π).
func Torus(R, r float64) Func {
	return func(u, v float64) math.Vec3 {
		ring := R + r*gomath.Cos(v)
		return math.Vec3{
			X: float32(ring * gomath.Cos(u)),
			Y: float32(ring * gomath.Sin(u)),
			Z: float32(r * gomath.Sin(v)),
		}
	}
}

// Sphere returns a sphere of radius r. u in [0, 2π) is the longitude,
// v in [0, π] runs from the south pole to the north pole.
func Sphere(r float64) Func {
	return func(u, v float64) math.Vec3 {
		sv := gomath.Sin(v)
		return math.Vec3{
			X: float32(r * sv * gomath.Cos(u)),
			Y: float32(r * sv * gomath.Sin(u)),
			Z: float32(-r * gomath.Cos(v)),
		}
	}
}

// Preset is a named surface function with the options it needs to be
// sampled correctly.
type Preset struct {
	Name    string
	Func    Func
	Options []Option
}

// Presets lists the built-in surfaces.
var Presets = []Preset{
	{Name: "klein", Func: Klein, Options: []Option{WithWrap(false, true)}},
	{Name: "torus", Func: Torus(1, 0.4), Options: []Option{WithWrap(true, true)}},
	{Name: "sphere", Func: Sphere(1), Options: []Option{
		WithDomain(0, 2*gomath.Pi, 0, gomath.Pi),
		WithWrap(true, false),
	}},
}

// Named returns a built-in preset by name.
func Named(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Build creates a Surface from the preset. Extra options are applied after
// the preset's own, so they win.
func (p Preset) Build(opts ...Option) *Surface {
	all := make([]Option, 0, len(p.Options)+len(opts))
	all = append(all, p.Options...)
	all = append(all, opts...)
	return New(p.Func, all...)
}

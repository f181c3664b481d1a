// Package surface tessellates parametric surfaces into indexed triangle meshes.
package surface

import (
	gomath "math"

	"github.com/Faultbox/surfaceview/pkg/math"
)

// Func maps a parameter pair to a point in 3D space.
// It must be pure: the same (u, v) always yields the same point.
type Func func(u, v float64) math.Vec3

// DefaultResolution is the grid size used when none is given.
const DefaultResolution = 64

// Surface is a parametric function plus the grid it is sampled on.
// A Surface is immutable once built by New.
type Surface struct {
	fn Func

	uRepeat float64
	nu, nv  int

	uMin, uMax float64
	vMin, vMax float64
	domainSet  bool

	wrapU, wrapV bool

	texRepeatU, texRepeatV float32
}

// Option configures a Surface in New.
type Option func(*Surface)

// WithResolution sets the number of grid samples along u and v.
// Values below 2 are raised to 2.
func WithResolution(nu, nv int) Option {
	return func(s *Surface) {
		s.nu = nu
		s.nv = nv
	}
}

// WithURepeat sets how many 2π periods the u axis spans.
func WithURepeat(n float64) Option {
	return func(s *Surface) {
		s.uRepeat = n
	}
}

// WithDomain replaces the default [0, 2π·urepeat) x [0, 2π) parameter domain.
func WithDomain(uMin, uMax, vMin, vMax float64) Option {
	return func(s *Surface) {
		s.uMin, s.uMax = uMin, uMax
		s.vMin, s.vMax = vMin, vMax
		s.domainSet = true
	}
}

// WithWrap marks axes whose end meets their start. A wrapped axis samples
// the half-open interval and stitches its last column back to the first.
func WithWrap(u, v bool) Option {
	return func(s *Surface) {
		s.wrapU = u
		s.wrapV = v
	}
}

// WithTextureRepeat scales the generated texture coordinates.
func WithTextureRepeat(u, v float32) Option {
	return func(s *Surface) {
		s.texRepeatU = u
		s.texRepeatV = v
	}
}

// New builds a Surface over fn. By default the grid is 64x64, u spans one
// period and is open, v is wrapped.
func New(fn Func, opts ...Option) *Surface {
	s := &Surface{
		fn:         fn,
		uRepeat:    1,
		nu:         DefaultResolution,
		nv:         DefaultResolution,
		wrapV:      true,
		texRepeatU: 1,
		texRepeatV: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.nu < 2 {
		s.nu = 2
	}
	if s.nv < 2 {
		s.nv = 2
	}
	if !s.domainSet {
		s.uMin, s.uMax = 0, 2*gomath.Pi*s.uRepeat
		s.vMin, s.vMax = 0, 2*gomath.Pi
	}
	return s
}

// Resolution returns the number of samples along u and v.
func (s *Surface) Resolution() (nu, nv int) {
	return s.nu, s.nv
}

// Domain returns the parameter bounds.
func (s *Surface) Domain() (uMin, uMax, vMin, vMax float64) {
	return s.uMin, s.uMax, s.vMin, s.vMax
}

// Wrap reports which axes are periodic.
func (s *Surface) Wrap() (u, v bool) {
	return s.wrapU, s.wrapV
}

// Cells returns the number of quad cells along u and v.
func (s *Surface) Cells() (cu, cv int) {
	return cells(s.nu, s.wrapU), cells(s.nv, s.wrapV)
}

// Eval evaluates the surface function at grid sample (i, j).
func (s *Surface) Eval(i, j int) math.Vec3 {
	return s.fn(s.U(i), s.V(j))
}

// U returns the u parameter of grid column i.
func (s *Surface) U(i int) float64 {
	return sample(s.uMin, s.uMax, i, s.nu, s.wrapU)
}

// V returns the v parameter of grid row j.
func (s *Surface) V(j int) float64 {
	return sample(s.vMin, s.vMax, j, s.nv, s.wrapV)
}

func cells(n int, wrap bool) int {
	if wrap {
		return n
	}
	return n - 1
}

// sample places n points on [lo, hi] (open axis) or [lo, hi) (wrapped axis).
func sample(lo, hi float64, i, n int, wrap bool) float64 {
	return lo + (hi-lo)*float64(i)/float64(cells(n, wrap))
}

package surface

import (
	"github.com/Faultbox/surfaceview/pkg/math"
)

// Tessellate samples the surface on its grid and triangulates it.
//
// Vertex (i, j) is stored at index i*nv + j. Each quad cell becomes two
// triangles wound so that their face normal agrees with ∂f/∂u × ∂f/∂v.
// Non-finite positions from the surface function are kept as they are.
func (s *Surface) Tessellate() *Mesh {
	nu, nv := s.nu, s.nv

	positions := make([]math.Vec3, nu*nv)
	for i := range nu {
		for j := range nv {
			positions[i*nv+j] = s.Eval(i, j)
		}
	}

	vertices := make([]Vertex, nu*nv)
	for i := range nu {
		for j := range nv {
			du := s.tangentU(positions, i, j)
			dv := s.tangentV(positions, i, j)
			vertices[i*nv+j] = Vertex{
				Position: positions[i*nv+j],
				Normal:   du.Cross(dv),
				TexCoord: math.Vec2{
					X: float32(i) / float32(nu) * s.texRepeatU,
					Y: float32(j) / float32(nv) * s.texRepeatV,
				},
			}
		}
	}

	cu, cv := s.Cells()
	indices := make([]uint32, 0, cu*cv*6)
	for i := range cu {
		i1 := (i + 1) % nu
		for j := range cv {
			j1 := (j + 1) % nv

			a := uint32(i*nv + j)
			b := uint32(i1*nv + j)
			c := uint32(i1*nv + j1)
			d := uint32(i*nv + j1)

			indices = append(indices,
				a, b, c,
				a, c, d,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
	}
}

// tangentU approximates ∂f/∂u at grid point (i, j).
func (s *Surface) tangentU(p []math.Vec3, i, j int) math.Vec3 {
	prev, next, steps := neighbours(i, s.nu, s.wrapU)
	h := (s.uMax - s.uMin) / float64(cells(s.nu, s.wrapU))
	return difference(p[prev*s.nv+j], p[next*s.nv+j], h*float64(steps))
}

// tangentV approximates ∂f/∂v at grid point (i, j).
func (s *Surface) tangentV(p []math.Vec3, i, j int) math.Vec3 {
	prev, next, steps := neighbours(j, s.nv, s.wrapV)
	h := (s.vMax - s.vMin) / float64(cells(s.nv, s.wrapV))
	return difference(p[i*s.nv+prev], p[i*s.nv+next], h*float64(steps))
}

// neighbours picks the samples used to difference index k: central in the
// interior, one-sided at open ends, wrapping around on periodic axes.
// steps is the number of grid steps between prev and next.
func neighbours(k, n int, wrap bool) (prev, next, steps int) {
	switch {
	case wrap:
		return (k - 1 + n) % n, (k + 1) % n, 2
	case k == 0:
		return 0, 1, 1
	case k == n-1:
		return n - 2, n - 1, 1
	default:
		return k - 1, k + 1, 2
	}
}

func difference(a, b math.Vec3, span float64) math.Vec3 {
	if span == 0 {
		return b.Sub(a)
	}
	return b.Sub(a).Scale(float32(1 / span))
}

package surface

import (
	gomath "math"
	"reflect"
	"testing"

	"github.com/Faultbox/surfaceview/pkg/math"
)

func TestTessellateCounts(t *testing.T) {
	tests := []struct {
		name         string
		nu, nv       int
		wrapU, wrapV bool
		wantTris     int
	}{
		{"open 2x2", 2, 2, false, false, 2},
		{"open 8x5", 8, 5, false, false, 2 * 7 * 4},
		{"wrap v", 8, 5, false, true, 2 * 7 * 5},
		{"wrap u", 8, 5, true, false, 2 * 8 * 4},
		{"wrap both", 16, 12, true, true, 2 * 16 * 12},
		{"klein default", 64, 64, false, true, 2 * 63 * 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Klein, WithResolution(tt.nu, tt.nv), WithWrap(tt.wrapU, tt.wrapV))
			m := s.Tessellate()

			if got := len(m.Vertices); got != tt.nu*tt.nv {
				t.Errorf("vertex count = %d, want %d", got, tt.nu*tt.nv)
			}
			if got := m.TriangleCount(); got != tt.wantTris {
				t.Errorf("triangle count = %d, want %d", got, tt.wantTris)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestTessellateClampsResolution(t *testing.T) {
	m := New(Klein, WithResolution(0, 1)).Tessellate()
	if len(m.Vertices) != 4 {
		t.Errorf("vertex count = %d, want 4", len(m.Vertices))
	}
}

func TestTessellateDeterministic(t *testing.T) {
	s := New(Klein, WithResolution(24, 18), WithURepeat(1))
	a := s.Tessellate()
	b := s.Tessellate()
	if !reflect.DeepEqual(a, b) {
		t.Error("two tessellations of the same surface differ")
	}
}

func TestTessellateLayout(t *testing.T) {
	var calls int
	fn := func(u, v float64) math.Vec3 {
		calls++
		return math.Vec3{X: float32(u), Y: float32(v)}
	}
	s := New(fn, WithResolution(5, 4), WithDomain(0, 4, 0, 4), WithWrap(false, true))
	m := s.Tessellate()

	if calls != 20 {
		t.Errorf("surface function called %d times, want 20 (one per grid point)", calls)
	}

	// open u includes the end point, wrapped v stops one step short
	if got := m.Vertices[4*4+0].Position.X; got != 4 {
		t.Errorf("last u sample = %v, want 4", got)
	}
	if got := m.Vertices[3].Position.Y; got != 3 {
		t.Errorf("last v sample = %v, want 3", got)
	}

	for i := range 5 {
		for j := range 4 {
			tc := m.Vertices[i*4+j].TexCoord
			want := math.Vec2{X: float32(i) / 5, Y: float32(j) / 4}
			if tc != want {
				t.Errorf("texcoord(%d,%d) = %v, want %v", i, j, tc, want)
			}
		}
	}
}

func TestTessellateTextureRepeat(t *testing.T) {
	m := New(Klein, WithResolution(4, 4), WithTextureRepeat(3, 2)).Tessellate()
	tc := m.Vertices[3*4+3].TexCoord
	want := math.Vec2{X: 3.0 / 4 * 3, Y: 3.0 / 4 * 2}
	if tc != want {
		t.Errorf("texcoord = %v, want %v", tc, want)
	}
}

func TestTessellateWindingMatchesNormals(t *testing.T) {
	m := New(Torus(2, 0.5), WithResolution(32, 24), WithWrap(true, true)).Tessellate()

	for tri := range m.TriangleCount() {
		a, b, c := m.Triangle(tri)
		pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		face := pb.Sub(pa).Cross(pc.Sub(pa))

		if face.Length() < 1e-6 {
			t.Fatalf("triangle %d is degenerate", tri)
		}

		n := m.Vertices[a].Normal
		if face.Dot(n) <= 0 {
			t.Fatalf("triangle %d winding disagrees with the vertex normal", tri)
		}

		// outward: away from the tube centre line
		centre := pa.Add(pb).Add(pc).Scale(1.0 / 3)
		ring := math.Vec3{X: centre.X, Y: centre.Y}.Normalize().Scale(2)
		if face.Dot(centre.Sub(ring)) <= 0 {
			t.Fatalf("triangle %d faces inward", tri)
		}
	}
}

func TestTessellateSphereNormalsRadial(t *testing.T) {
	p, _ := Named("sphere")
	s := p.Build(WithResolution(24, 13))
	m := s.Tessellate()
	_, nv := s.Resolution()

	for i := range 24 {
		// skip the poles, where ∂f/∂u vanishes
		for j := 1; j < nv-1; j++ {
			v := m.Vertices[i*nv+j]
			cos := v.Normal.Normalize().Dot(v.Position.Normalize())
			if cos < 0.95 {
				t.Errorf("normal at (%d,%d) is not radial: cos = %v", i, j, cos)
			}
		}
	}
}

func TestTessellateNormalsNotNormalized(t *testing.T) {
	m := New(Torus(2, 0.5), WithResolution(16, 16), WithWrap(true, true)).Tessellate()
	var nonUnit int
	for _, v := range m.Vertices {
		if l := v.Normal.Length(); l < 0.99 || l > 1.01 {
			nonUnit++
		}
	}
	if nonUnit == 0 {
		t.Error("expected raw (non-unit) normals from tessellation")
	}
}

func TestTessellatePropagatesNaN(t *testing.T) {
	nan := float32(gomath.NaN())
	fn := func(u, v float64) math.Vec3 {
		if u > 1 && u < 2 {
			return math.Vec3{X: nan, Y: nan, Z: nan}
		}
		return math.Vec3{X: float32(u), Y: float32(v)}
	}

	m := New(fn, WithResolution(10, 10), WithDomain(0, 3, 0, 3), WithWrap(false, false)).Tessellate()

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	var bad int
	for _, v := range m.Vertices {
		if !v.Position.IsFinite() {
			bad++
		}
	}
	if bad == 0 {
		t.Error("expected NaN positions to be kept")
	}

	b := m.Bounds()
	if b.Min.X != 0 || b.Max.X != 3 {
		t.Errorf("Bounds should ignore NaN positions, got %+v", b)
	}
}

func TestValidate(t *testing.T) {
	m := &Mesh{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 3}}
	if err := m.Validate(); err == nil {
		t.Error("expected out-of-range index error")
	}
	m.Indices = []uint32{0, 1}
	if err := m.Validate(); err == nil {
		t.Error("expected partial triangle error")
	}
}

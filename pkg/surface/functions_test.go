package surface

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/surfaceview/pkg/math"
)

func near(a, b math.Vec3, eps float32) bool {
	d := a.Sub(b)
	return d.Length() <= eps
}

func TestKleinKnownPoints(t *testing.T) {
	tests := []struct {
		name string
		u, v float64
		want math.Vec3
	}{
		{"origin", 0, 0, math.Vec3{X: 0.8, Y: 0, Z: 0}},
		{"branch", gomath.Pi, 0, math.Vec3{X: -1.2, Y: 0, Z: 0}},
		{"quarter v", 0, gomath.Pi / 2, math.Vec3{X: 0.6, Y: -0.2, Z: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Klein(tt.u, tt.v)
			if !near(got, tt.want, 1e-5) {
				t.Errorf("Klein(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestKleinContinuousAtBranch(t *testing.T) {
	const eps = 1e-7
	for _, v := range []float64{0, 0.7, 1.9, gomath.Pi, 4.4, 6} {
		below := Klein(gomath.Pi-eps, v)
		at := Klein(gomath.Pi, v)
		if !near(below, at, 1e-4) {
			t.Errorf("seam at v=%v: %v vs %v", v, below, at)
		}
	}
}

func TestKleinPeriodicInV(t *testing.T) {
	for _, u := range []float64{0.3, 2, 4, 5.5} {
		a := Klein(u, 0)
		b := Klein(u, 2*gomath.Pi)
		if !near(a, b, 1e-5) {
			t.Errorf("Klein(%v, 0) = %v, Klein(%v, 2π) = %v", u, a, u, b)
		}
	}
}

func TestNamedPresets(t *testing.T) {
	for _, name := range []string{"klein", "torus", "sphere"} {
		p, ok := Named(name)
		if !ok {
			t.Fatalf("preset %q not found", name)
		}
		m := p.Build(WithResolution(8, 8)).Tessellate()
		if err := m.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", name, err)
		}
	}

	if _, ok := Named("mobius"); ok {
		t.Error("unknown preset should not be found")
	}
}

func TestPresetOptionsOverride(t *testing.T) {
	p, _ := Named("torus")
	s := p.Build(WithWrap(false, false))
	if u, v := s.Wrap(); u || v {
		t.Errorf("Wrap() = %v, %v, want caller override to win", u, v)
	}
}

func TestDefaultDomain(t *testing.T) {
	s := New(Klein, WithURepeat(3))
	uMin, uMax, vMin, vMax := s.Domain()
	if uMin != 0 || gomath.Abs(uMax-6*gomath.Pi) > 1e-12 {
		t.Errorf("u domain = [%v, %v], want [0, 6π]", uMin, uMax)
	}
	if vMin != 0 || gomath.Abs(vMax-2*gomath.Pi) > 1e-12 {
		t.Errorf("v domain = [%v, %v], want [0, 2π]", vMin, vMax)
	}
}

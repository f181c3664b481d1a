// Package frame drives the per-frame transform state of the viewer: the
// accumulated rotation of the model and the projection for the current
// window size.
package frame

import (
	"github.com/Faultbox/surfaceview/internal/engine/shading"
	"github.com/Faultbox/surfaceview/pkg/math"
)

// Frame driver constants.
const (
	Step = 0.5  // degrees added to theta and phi per tick
	FovY = 45.0 // vertical field of view, degrees
	Near = 2.0
	Far  = 100.0
	Back = 5.0 // distance from the camera to the model origin
)

// DefaultView places the camera Back units in front of the origin.
func DefaultView() math.Mat4 {
	return math.Translate(0, 0, -Back)
}

// State is the render state owned by the frame loop. It is not safe for
// concurrent use; the event loop updates it from a single goroutine.
type State struct {
	theta, phi float32
	ticks      int

	view       math.Mat4
	model      math.Mat4
	projection math.Mat4
	normal     math.Mat4
}

// NewState returns a state with the given view, an identity model and an
// identity projection until the first Resize.
func NewState(view math.Mat4) *State {
	s := &State{
		view:       view,
		model:      math.Identity(),
		projection: math.Identity(),
	}
	s.updateNormal()
	return s
}

// Tick advances both angles by Step and rebuilds the model and normal
// matrices. Angles accumulate without wrapping.
func (s *State) Tick() {
	s.theta += Step
	s.phi += Step
	s.ticks++

	s.model = math.Identity().
		Rotate(s.theta, 0, 0, 1).
		Rotate(s.phi, 0, 1, 0)
	s.updateNormal()
}

// Resize rebuilds the projection for a width x height viewport. Sizes that
// are not positive (a minimized window) keep the previous projection and
// report false.
func (s *State) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	aspect := float32(width) / float32(height)
	s.projection = math.PerspectiveDeg(FovY, aspect, Near, Far)
	return true
}

// SetView replaces the view matrix and rebuilds the normal matrix.
func (s *State) SetView(view math.Mat4) {
	s.view = view
	s.updateNormal()
}

func (s *State) updateNormal() {
	s.normal = s.view.Mul(s.model).InverseTranspose()
}

// Theta returns the accumulated rotation about Z, in degrees.
func (s *State) Theta() float32 { return s.theta }

// Phi returns the accumulated rotation about Y, in degrees.
func (s *State) Phi() float32 { return s.phi }

// Ticks returns the number of Tick calls so far.
func (s *State) Ticks() int { return s.ticks }

// Model returns the model matrix.
func (s *State) Model() math.Mat4 { return s.model }

// View returns the view matrix.
func (s *State) View() math.Mat4 { return s.view }

// Projection returns the projection matrix.
func (s *State) Projection() math.Mat4 { return s.projection }

// Normal returns the inverse-transpose of View * Model.
func (s *State) Normal() math.Mat4 { return s.normal }

// Transforms returns the matrices in the form the shaders consume.
func (s *State) Transforms() shading.Transforms {
	return shading.Transforms{
		Model:      s.model,
		View:       s.view,
		Projection: s.projection,
		Normal:     s.normal,
	}
}

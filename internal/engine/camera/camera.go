// Package camera moves the eye along the viewing axis in front of the
// surface.
package camera

import (
	"github.com/Faultbox/surfaceview/pkg/math"
)

// DollyCamera looks down -Z at the origin from Distance units away.
type DollyCamera struct {
	Distance float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Fraction of the current distance moved per wheel step
	ZoomSensitivity float32
}

// NewDollyCamera creates a camera at the given distance. The limits keep
// the surface between the near and far planes.
func NewDollyCamera(distance, near, far float32) *DollyCamera {
	c := &DollyCamera{
		Distance:        distance,
		MinDistance:     near + 1,
		MaxDistance:     far / 2,
		ZoomSensitivity: 0.1,
	}
	c.clamp()
	return c
}

// ViewMatrix returns the view matrix for this camera.
func (c *DollyCamera) ViewMatrix() math.Mat4 {
	return math.Translate(0, 0, -c.Distance)
}

// HandleZoom updates distance based on scroll wheel delta. Positive delta
// moves closer.
func (c *DollyCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

func (c *DollyCamera) clamp() {
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

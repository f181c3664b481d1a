// Package lighting describes the point lights that illuminate a surface.
package lighting

import (
	"fmt"

	"github.com/Faultbox/surfaceview/pkg/math"
)

// Count is the number of point lights the surface shader declares.
const Count = 3

// PointLight is a point light in view space.
type PointLight struct {
	Position math.Vec3
	Color    math.Vec3 // RGB, 0-1 per channel
}

// Set holds the lights bound to the shader. It is fixed after setup.
type Set [Count]PointLight

// Defaults returns the red, green and blue lights placed in front of the
// camera, to the right, above, and down-left.
func Defaults() Set {
	return Set{
		{Position: math.Vec3{X: 3, Y: 0, Z: 5}, Color: math.Vec3{X: 1, Y: 0, Z: 0}},
		{Position: math.Vec3{X: 0, Y: 3, Z: 5}, Color: math.Vec3{X: 0, Y: 1, Z: 0}},
		{Position: math.Vec3{X: -3, Y: -3, Z: 5}, Color: math.Vec3{X: 0, Y: 0, Z: 1}},
	}
}

// PositionUniform returns the shader uniform name of light i's position.
func PositionUniform(i int) string {
	return fmt.Sprintf("light%d_position", i+1)
}

// ColorUniform returns the shader uniform name of light i's color.
func ColorUniform(i int) string {
	return fmt.Sprintf("light%d_color", i+1)
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (s Set) Positions() []float32 {
	result := make([]float32, 0, Count*3)
	for _, l := range s {
		result = append(result, l.Position.X, l.Position.Y, l.Position.Z)
	}
	return result
}

// Colors returns colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (s Set) Colors() []float32 {
	result := make([]float32, 0, Count*3)
	for _, l := range s {
		result = append(result, l.Color.X, l.Color.Y, l.Color.Z)
	}
	return result
}

// FromConfig builds a light set from position/color triples, keeping the
// defaults for any light not given.
func FromConfig(positions, colors [][3]float32) Set {
	s := Defaults()
	for i := 0; i < Count && i < len(positions); i++ {
		p := positions[i]
		s[i].Position = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	for i := 0; i < Count && i < len(colors); i++ {
		c := colors[i]
		s[i].Color = math.Vec3{X: clamp01(c[0]), Y: clamp01(c[1]), Z: clamp01(c[2])}
	}
	return s
}

func clamp01(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

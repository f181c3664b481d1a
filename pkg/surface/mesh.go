package surface

import (
	"fmt"

	"github.com/Faultbox/surfaceview/pkg/math"
)

// Vertex is one grid sample. Field order matches the GPU attribute layout.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3 // not normalized
	TexCoord math.Vec2
}

// Mesh holds the tessellated surface ready for upload. It is never mutated
// after Tessellate returns it.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c uint32) {
	return m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
}

// Validate checks that the index buffer describes whole triangles and only
// references existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (vertex count %d)", idx, i, n)
		}
	}
	return nil
}

// Bounds returns the bounding box of all finite vertex positions.
func (m *Mesh) Bounds() Bounds {
	b := Bounds{
		Min: math.Vec3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: math.Vec3{X: -1e30, Y: -1e30, Z: -1e30},
	}
	for _, v := range m.Vertices {
		p := v.Position
		if !p.IsFinite() {
			continue
		}
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}

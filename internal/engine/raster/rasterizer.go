// Package raster renders a surface mesh on the CPU through a shading.Program.
// It backs headless rendering and produces the same image layout as a
// screenshot of the GL window: row 0 is the top of the frame.
package raster

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/Faultbox/surfaceview/internal/engine/shading"
	"github.com/Faultbox/surfaceview/pkg/math"
	"github.com/Faultbox/surfaceview/pkg/surface"
)

// Stats counts the work done by one Draw call.
type Stats struct {
	Triangles int // rasterized
	Clipped   int // skipped because a vertex was behind the eye or not finite
	Fragments int // passed the depth test
}

// Rasterizer owns a color target and a depth buffer of the same size.
type Rasterizer struct {
	img   *image.RGBA
	depth []float32
}

// New creates a rasterizer with a width x height target.
func New(width, height int) *Rasterizer {
	r := &Rasterizer{}
	r.Resize(width, height)
	return r
}

// Resize reallocates the targets. Contents are undefined until Clear.
func (r *Rasterizer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.depth = make([]float32, width*height)
}

// Width returns the target width.
func (r *Rasterizer) Width() int { return r.img.Rect.Dx() }

// Height returns the target height.
func (r *Rasterizer) Height() int { return r.img.Rect.Dy() }

// Image returns the color target.
func (r *Rasterizer) Image() *image.RGBA { return r.img }

// Clear fills the color target with bg and resets the depth buffer to the
// far plane.
func (r *Rasterizer) Clear(bg color.RGBA) {
	pix := r.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = bg.R, bg.G, bg.B, bg.A
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}

	r.depth[0] = 1
	for i := 1; i < len(r.depth); i *= 2 {
		copy(r.depth[i:], r.depth[:i])
	}
}

// screenVertex is a vertex after the vertex stage and viewport mapping.
type screenVertex struct {
	x, y, z float64
	invW    float64
	attr    shading.FragmentInput
}

// Draw rasterizes every triangle of m. Both faces are drawn and the depth
// test passes for strictly nearer fragments in [-1, 1] NDC depth.
func (r *Rasterizer) Draw(p *shading.Program, m *surface.Mesh) Stats {
	var stats Stats
	for t := range m.TriangleCount() {
		a, b, c := m.Triangle(t)
		var sv [3]screenVertex
		ok := r.project(p, m.Vertices[a], &sv[0]) &&
			r.project(p, m.Vertices[b], &sv[1]) &&
			r.project(p, m.Vertices[c], &sv[2])
		if !ok {
			stats.Clipped++
			continue
		}
		stats.Triangles++
		stats.Fragments += r.fill(p, &sv)
	}
	return stats
}

// project runs the vertex stage. It reports false for vertices that would
// need clipping against the near plane.
func (r *Rasterizer) project(p *shading.Program, v surface.Vertex, out *screenVertex) bool {
	if !v.Position.IsFinite() {
		return false
	}
	clip := p.Vertex(v.Position)
	w := float64(clip[3])
	if !(w > 0) {
		return false
	}

	ndcX := float64(clip[0]) / w
	ndcY := float64(clip[1]) / w
	out.x = (ndcX + 1) * 0.5 * float64(r.Width())
	out.y = (1 - ndcY) * 0.5 * float64(r.Height())
	out.z = float64(clip[2]) / w
	out.invW = 1 / w
	out.attr = shading.FragmentInput{
		Normal:   v.Normal,
		Position: v.Position,
		TexCoord: v.TexCoord,
	}
	return true
}

// fill scans the bounding box of the triangle and returns the number of
// fragments written.
func (r *Rasterizer) fill(p *shading.Program, sv *[3]screenVertex) int {
	w, h := r.Width(), r.Height()

	minX := int(gomath.Max(0, gomath.Floor(min(sv[0].x, sv[1].x, sv[2].x))))
	maxX := int(gomath.Min(float64(w-1), gomath.Ceil(max(sv[0].x, sv[1].x, sv[2].x))))
	minY := int(gomath.Max(0, gomath.Floor(min(sv[0].y, sv[1].y, sv[2].y))))
	maxY := int(gomath.Min(float64(h-1), gomath.Ceil(max(sv[0].y, sv[1].y, sv[2].y))))

	var written int
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			b0, b1, b2, inside := barycentric(
				sv[0].x, sv[0].y,
				sv[1].x, sv[1].y,
				sv[2].x, sv[2].y,
				px, py,
			)
			if !inside {
				continue
			}

			z := b0*sv[0].z + b1*sv[1].z + b2*sv[2].z
			if z < -1 || z > 1 {
				continue
			}
			di := y*w + x
			if float32(z) >= r.depth[di] {
				continue
			}

			// perspective-correct weights
			w0, w1, w2 := b0*sv[0].invW, b1*sv[1].invW, b2*sv[2].invW
			sum := w0 + w1 + w2
			if sum == 0 {
				continue
			}
			in := interpolate(sv, float32(w0/sum), float32(w1/sum), float32(w2/sum))

			r.depth[di] = float32(z)
			r.img.SetRGBA(x, y, shading.ToRGBA(p.Fragment(in)))
			written++
		}
	}
	return written
}

// barycentric returns the weights of (px, py) relative to the triangle and
// whether the point lies inside it. Either winding is accepted.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) (b0, b1, b2 float64, inside bool) {
	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if area == 0 || gomath.IsNaN(area) {
		return 0, 0, 0, false
	}
	b1 = ((px-x0)*(y2-y0) - (x2-x0)*(py-y0)) / area
	b2 = ((x1-x0)*(py-y0) - (px-x0)*(y1-y0)) / area
	b0 = 1 - b1 - b2
	return b0, b1, b2, b0 >= 0 && b1 >= 0 && b2 >= 0
}

func interpolate(sv *[3]screenVertex, w0, w1, w2 float32) shading.FragmentInput {
	a, b, c := sv[0].attr, sv[1].attr, sv[2].attr
	return shading.FragmentInput{
		Normal:   blend3(a.Normal, b.Normal, c.Normal, w0, w1, w2),
		Position: blend3(a.Position, b.Position, c.Position, w0, w1, w2),
		TexCoord: a.TexCoord.Scale(w0).Add(b.TexCoord.Scale(w1)).Add(c.TexCoord.Scale(w2)),
	}
}

func blend3(a, b, c math.Vec3, w0, w1, w2 float32) math.Vec3 {
	return a.Scale(w0).Add(b.Scale(w1)).Add(c.Scale(w2))
}

package texture

import (
	"image"
	gomath "math"

	"github.com/Faultbox/surfaceview/pkg/math"
)

// Filter selects how texels are combined when sampling.
type Filter int

const (
	// Nearest picks the closest texel.
	Nearest Filter = iota
	// Linear blends the four closest texels.
	Linear
)

// Sampler reads the red channel of a single-channel image with repeat-wrap
// addressing. Row 0 of the image is t = 0, matching a GL upload of Pix.
type Sampler struct {
	img    *image.Gray
	w, h   int
	Filter Filter
}

// NewSampler wraps img for sampling.
func NewSampler(img *image.Gray, filter Filter) *Sampler {
	b := img.Bounds()
	return &Sampler{
		img:    img,
		w:      b.Dx(),
		h:      b.Dy(),
		Filter: filter,
	}
}

// Image returns the sampled image.
func (s *Sampler) Image() *image.Gray {
	return s.img
}

// Red returns the red channel at uv in [0, 1]. Coordinates outside [0, 1)
// repeat. Non-finite coordinates sample as black.
func (s *Sampler) Red(uv math.Vec2) float32 {
	if s.w == 0 || s.h == 0 || !finite(uv.X) || !finite(uv.Y) {
		return 0
	}
	uv = uv.Fract()

	if s.Filter == Nearest {
		x := min(int(uv.X*float32(s.w)), s.w-1)
		y := min(int(uv.Y*float32(s.h)), s.h-1)
		return s.texel(x, y)
	}

	fx := uv.X*float32(s.w) - 0.5
	fy := uv.Y*float32(s.h) - 0.5
	x0 := int(gomath.Floor(float64(fx)))
	y0 := int(gomath.Floor(float64(fy)))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	t00 := s.texel(wrap(x0, s.w), wrap(y0, s.h))
	t10 := s.texel(wrap(x0+1, s.w), wrap(y0, s.h))
	t01 := s.texel(wrap(x0, s.w), wrap(y0+1, s.h))
	t11 := s.texel(wrap(x0+1, s.w), wrap(y0+1, s.h))

	top := t00 + (t10-t00)*ax
	bottom := t01 + (t11-t01)*ax
	return top + (bottom-top)*ay
}

func (s *Sampler) texel(x, y int) float32 {
	b := s.img.Bounds()
	return float32(s.img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func finite(f float32) bool {
	return !gomath.IsNaN(float64(f)) && !gomath.IsInf(float64(f), 0)
}

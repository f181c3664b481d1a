// Package app assembles the surface, texture and lights described by the
// configuration, and renders them without a window when asked to.
package app

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/surfaceview/internal/config"
	"github.com/Faultbox/surfaceview/internal/engine/lighting"
	"github.com/Faultbox/surfaceview/internal/engine/shading"
	"github.com/Faultbox/surfaceview/internal/engine/texture"
	"github.com/Faultbox/surfaceview/internal/logger"
	"github.com/Faultbox/surfaceview/pkg/math"
	"github.com/Faultbox/surfaceview/pkg/surface"
)

// Scene is everything uploaded once at startup.
type Scene struct {
	Surface    *surface.Surface
	Mesh       *surface.Mesh
	Checker    *image.Gray
	Filter     texture.Filter
	Lights     lighting.Set
	Background color.RGBA
}

// NewScene tessellates the configured surface and builds its texture and
// lights.
func NewScene(cfg *config.Config) (*Scene, error) {
	preset, ok := surface.Named(cfg.Surface.Preset)
	if !ok {
		return nil, fmt.Errorf("unknown surface preset %q", cfg.Surface.Preset)
	}

	s := preset.Build(
		surface.WithResolution(cfg.Surface.UCount, cfg.Surface.VCount),
		surface.WithURepeat(cfg.Surface.URepeat),
		surface.WithTextureRepeat(cfg.Surface.TexRepeatU, cfg.Surface.TexRepeatV),
	)
	mesh := s.Tessellate()
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("tessellating %s: %w", preset.Name, err)
	}

	filter := texture.Linear
	if cfg.Render.Filter == "nearest" {
		filter = texture.Nearest
	}

	bg := cfg.Graphics.Background
	scene := &Scene{
		Surface:    s,
		Mesh:       mesh,
		Checker:    texture.Checkerboard(cfg.Render.CheckerCells, cfg.Render.CheckerCellSize),
		Filter:     filter,
		Lights:     lighting.FromConfig(cfg.LightPositions(), cfg.LightColors()),
		Background: shading.ToRGBA(math.Vec4(bg)),
	}

	nu, nv := s.Resolution()
	b := mesh.Bounds()
	lo, hi := b.Min.Array(), b.Max.Array()
	logger.Info("surface tessellated",
		zap.String("preset", preset.Name),
		zap.Int("u_count", nu),
		zap.Int("v_count", nv),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float32s("bounds_min", lo[:]),
		zap.Float32s("bounds_max", hi[:]),
	)

	return scene, nil
}

// Sampler returns a CPU sampler over the checker texture.
func (s *Scene) Sampler() *texture.Sampler {
	return texture.NewSampler(s.Checker, s.Filter)
}

package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/surfaceview/internal/engine/debug"
	"github.com/Faultbox/surfaceview/internal/engine/frame"
	"github.com/Faultbox/surfaceview/internal/engine/raster"
	"github.com/Faultbox/surfaceview/internal/engine/shading"
	"github.com/Faultbox/surfaceview/internal/logger"
)

// HeadlessResult describes a software-rendered frame written to disk.
type HeadlessResult struct {
	Path  string
	Frame int
	Stats raster.Stats
}

// RenderHeadless advances the frame state by frames ticks, renders the
// scene at width x height on the CPU and writes it to path as PNG.
func RenderHeadless(scene *Scene, width, height, frames int, path string) (*HeadlessResult, error) {
	state := frame.NewState(frame.DefaultView())
	if !state.Resize(width, height) {
		return nil, fmt.Errorf("invalid output size %dx%d", width, height)
	}
	for range frames {
		state.Tick()
	}

	program := shading.NewProgram(scene.Lights, scene.Sampler())
	program.SetTransforms(state.Transforms())

	r := raster.New(width, height)
	r.Clear(scene.Background)
	stats := r.Draw(program, scene.Mesh)

	if err := debug.SavePNG(path, r.Image()); err != nil {
		return nil, fmt.Errorf("writing headless frame: %w", err)
	}

	logger.Info("headless frame written",
		zap.String("path", path),
		zap.Int("frame", frames),
		zap.Float32("theta", state.Theta()),
		zap.Float32("phi", state.Phi()),
		zap.Int("triangles", stats.Triangles),
		zap.Int("clipped", stats.Clipped),
		zap.Int("fragments", stats.Fragments),
	)

	return &HeadlessResult{Path: path, Frame: frames, Stats: stats}, nil
}

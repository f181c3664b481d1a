// Package viewer runs the interactive window: it draws the surface every
// frame, advances the rotation, and follows window resizes.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/surfaceview/internal/app"
	"github.com/Faultbox/surfaceview/internal/config"
	"github.com/Faultbox/surfaceview/internal/engine/camera"
	"github.com/Faultbox/surfaceview/internal/engine/debug"
	"github.com/Faultbox/surfaceview/internal/engine/frame"
	"github.com/Faultbox/surfaceview/internal/engine/input"
	"github.com/Faultbox/surfaceview/internal/engine/renderer"
	"github.com/Faultbox/surfaceview/internal/engine/window"
	"github.com/Faultbox/surfaceview/internal/logger"
)

// Viewer is the interactive viewer instance.
type Viewer struct {
	running     bool
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	camera      *camera.DollyCamera
	state       *frame.State
	screenshots *debug.ScreenshotCapture
}

// New opens the window and uploads the scene.
func New(cfg *config.Config, scene *app.Scene) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	cam := camera.NewDollyCamera(frame.Back, frame.Near, frame.Far)
	v := &Viewer{
		input:       input.New(),
		camera:      cam,
		state:       frame.NewState(cam.ViewMatrix()),
		screenshots: debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, "surfaceview"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "surfaceview - " + cfg.Surface.Preset,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Background: cfg.Graphics.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: v.window.Background(),
		Filter:     scene.Filter,
	}, scene.Mesh, scene.Checker, scene.Lights)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.state.Resize(width, height)

	logger.Info("viewer initialized")
	return v, nil
}

// Run drives the event loop until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		capture := false
		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.resize()
			case input.EventMouseWheel:
				v.camera.HandleZoom(event.WheelY)
				v.state.SetView(v.camera.ViewMatrix())
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					v.running = false
				case sdl.SCANCODE_F12:
					capture = true
				}
			}
		}

		v.renderer.Begin()
		v.renderer.Draw(v.state.Transforms())
		if capture {
			v.screenshot()
		}
		v.state.Tick()

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Float32("theta", v.state.Theta()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// resize follows the drawable size, which differs from the event size on
// high-DPI displays.
func (v *Viewer) resize() {
	width, height := v.window.DrawableSize()
	if !v.state.Resize(width, height) {
		logger.Debug("ignoring empty resize", zap.Int("width", width), zap.Int("height", height))
		return
	}
	v.renderer.Resize(width, height)
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

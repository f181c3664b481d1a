// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Surface  SurfaceConfig  `yaml:"surface"`
	Render   RenderConfig   `yaml:"render"`
	Tools    ToolsConfig    `yaml:"tools"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [4]float32 `yaml:"background"` // RGBA, 0-1
}

// SurfaceConfig selects the parametric surface and how it is sampled.
type SurfaceConfig struct {
	Preset     string  `yaml:"preset"` // klein, torus or sphere
	UCount     int     `yaml:"u_count"`
	VCount     int     `yaml:"v_count"`
	URepeat    float64 `yaml:"u_repeat"` // turns of 2π along u
	TexRepeatU float32 `yaml:"tex_repeat_u"`
	TexRepeatV float32 `yaml:"tex_repeat_v"`
}

// LightConfig is one point light in view space.
type LightConfig struct {
	Position [3]float32 `yaml:"position"`
	Color    [3]float32 `yaml:"color"`
}

// RenderConfig holds texture, lighting and output settings.
type RenderConfig struct {
	CheckerCells    int           `yaml:"checker_cells"`     // cells per side
	CheckerCellSize int           `yaml:"checker_cell_size"` // pixels per cell
	Filter          string        `yaml:"filter"`            // linear or nearest
	Lights          []LightConfig `yaml:"lights"`
	ScreenshotDir   string        `yaml:"screenshot_dir"`

	// Headless renders Frames ticks on the CPU and writes Output as PNG.
	Headless bool   `yaml:"headless"`
	Frames   int    `yaml:"frames"`
	Output   string `yaml:"output"`
}

// ToolsConfig holds the external binary settings. "auto-detect" searches
// the PATH; any other value is a path that must run.
type ToolsConfig struct {
	FFmpeg       string `yaml:"ffmpeg"`
	ImageMagick  string `yaml:"imagemagick"`
	SettingsFile string `yaml:"settings_file"` // extra YAML overrides
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     1024,
			Fullscreen: false,
			VSync:      true,
			Background: [4]float32{1, 1, 1, 1},
		},
		Surface: SurfaceConfig{
			Preset:     "klein",
			UCount:     64,
			VCount:     64,
			URepeat:    1,
			TexRepeatU: 3,
			TexRepeatV: 1,
		},
		Render: RenderConfig{
			CheckerCells:    16,
			CheckerCellSize: 24,
			Filter:          "linear",
			Lights: []LightConfig{
				{Position: [3]float32{3, 0, 5}, Color: [3]float32{1, 0, 0}},
				{Position: [3]float32{0, 3, 5}, Color: [3]float32{0, 1, 0}},
				{Position: [3]float32{-3, -3, 5}, Color: [3]float32{0, 0, 1}},
			},
			ScreenshotDir: "screenshots",
			Headless:      false,
			Frames:        0,
			Output:        "surface.png",
		},
		Tools: ToolsConfig{
			FFmpeg:      "auto-detect",
			ImageMagick: "auto-detect",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	switch c.Surface.Preset {
	case "klein", "torus", "sphere":
	default:
		errs = append(errs, fmt.Errorf("surface: unknown preset %q", c.Surface.Preset))
	}
	if c.Surface.URepeat <= 0 {
		errs = append(errs, fmt.Errorf("surface: u_repeat %v must be positive", c.Surface.URepeat))
	}
	if c.Render.CheckerCells <= 0 || c.Render.CheckerCellSize <= 0 {
		errs = append(errs, errors.New("render: checker cells and cell size must be positive"))
	}
	switch c.Render.Filter {
	case "linear", "nearest":
	default:
		errs = append(errs, fmt.Errorf("render: unknown filter %q", c.Render.Filter))
	}
	if len(c.Render.Lights) > 3 {
		errs = append(errs, fmt.Errorf("render: %d lights configured, the shader takes 3", len(c.Render.Lights)))
	}
	if c.Render.Frames < 0 {
		errs = append(errs, fmt.Errorf("render: frames %d must not be negative", c.Render.Frames))
	}
	if c.Render.Headless && c.Render.Output == "" {
		errs = append(errs, errors.New("render: headless mode needs an output path"))
	}

	return errors.Join(errs...)
}

// LightPositions returns the configured light positions.
func (c *Config) LightPositions() [][3]float32 {
	out := make([][3]float32, len(c.Render.Lights))
	for i, l := range c.Render.Lights {
		out[i] = l.Position
	}
	return out
}

// LightColors returns the configured light colors.
func (c *Config) LightColors() [][3]float32 {
	out := make([][3]float32, len(c.Render.Lights))
	for i, l := range c.Render.Lights {
		out[i] = l.Color
	}
	return out
}

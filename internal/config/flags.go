package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagNoVSync     = flag.Bool("novsync", false, "Disable vertical sync")
	flagSurface     = flag.String("surface", "", "Surface preset: klein, torus or sphere")
	flagUCount      = flag.Int("ucount", 0, "Grid samples along u")
	flagVCount      = flag.Int("vcount", 0, "Grid samples along v")
	flagURepeat     = flag.Float64("urepeat", 0, "Turns of 2π along u")
	flagHeadless    = flag.Bool("headless", false, "Render on the CPU and write a PNG instead of opening a window")
	flagFrames      = flag.Int("frames", -1, "Frame ticks to advance before a headless render")
	flagOut         = flag.String("out", "", "Headless output PNG path")
	flagFFmpeg      = flag.String("ffmpeg", "", "ffmpeg binary path or auto-detect")
	flagImageMagick = flag.String("imagemagick", "", "ImageMagick convert binary path or auto-detect")
	flagTools       = flag.String("tools", "", "YAML file with extra tool settings")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagNoVSync {
		cfg.Graphics.VSync = false
	}
	if *flagSurface != "" {
		cfg.Surface.Preset = *flagSurface
	}
	if *flagUCount > 0 {
		cfg.Surface.UCount = *flagUCount
	}
	if *flagVCount > 0 {
		cfg.Surface.VCount = *flagVCount
	}
	if *flagURepeat > 0 {
		cfg.Surface.URepeat = *flagURepeat
	}
	if *flagHeadless {
		cfg.Render.Headless = true
	}
	if *flagFrames >= 0 {
		cfg.Render.Frames = *flagFrames
	}
	if *flagOut != "" {
		cfg.Render.Output = *flagOut
	}
	if *flagFFmpeg != "" {
		cfg.Tools.FFmpeg = *flagFFmpeg
	}
	if *flagImageMagick != "" {
		cfg.Tools.ImageMagick = *flagImageMagick
	}
	if *flagTools != "" {
		cfg.Tools.SettingsFile = *flagTools
	}
}

package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/surfaceview/internal/config"
	"github.com/Faultbox/surfaceview/internal/engine/texture"
	"github.com/Faultbox/surfaceview/internal/tools"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Graphics.Width = 64
	cfg.Graphics.Height = 64
	cfg.Surface.UCount = 24
	cfg.Surface.VCount = 24
	return cfg
}

func TestNewSceneDefaults(t *testing.T) {
	scene, err := NewScene(config.Default())
	if err != nil {
		t.Fatalf("NewScene() error = %v", err)
	}

	if got := len(scene.Mesh.Vertices); got != 64*64 {
		t.Errorf("vertex count = %d, want %d", got, 64*64)
	}
	// klein: open along u, wrapped along v
	if got, want := scene.Mesh.TriangleCount(), 2*63*64; got != want {
		t.Errorf("triangle count = %d, want %d", got, want)
	}
	if b := scene.Checker.Bounds(); b.Dx() != 384 || b.Dy() != 384 {
		t.Errorf("checker size = %v, want 384x384", b)
	}
	if scene.Filter != texture.Linear {
		t.Errorf("filter = %v, want Linear", scene.Filter)
	}
	if scene.Background != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("background = %v, want white", scene.Background)
	}
	if scene.Lights[0].Color.X != 1 || scene.Lights[1].Color.Y != 1 || scene.Lights[2].Color.Z != 1 {
		t.Errorf("lights = %+v, want red, green, blue", scene.Lights)
	}
}

func TestNewSceneOptions(t *testing.T) {
	cfg := smallConfig()
	cfg.Surface.Preset = "torus"
	cfg.Render.Filter = "nearest"
	cfg.Render.Lights = []config.LightConfig{{Position: [3]float32{0, 0, 9}, Color: [3]float32{2, 1, 0}}}

	scene, err := NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene() error = %v", err)
	}
	if got, want := scene.Mesh.TriangleCount(), 2*24*24; got != want {
		t.Errorf("torus triangle count = %d, want %d", got, want)
	}
	if scene.Filter != texture.Nearest {
		t.Errorf("filter = %v, want Nearest", scene.Filter)
	}
	if l := scene.Lights[0]; l.Position.Z != 9 || l.Color.X != 1 {
		t.Errorf("first light = %+v, want z=9 with clamped red", l)
	}
}

func TestNewSceneUnknownPreset(t *testing.T) {
	cfg := smallConfig()
	cfg.Surface.Preset = "mobius"
	if _, err := NewScene(cfg); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

func TestRenderHeadless(t *testing.T) {
	cfg := smallConfig()
	scene, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out", "klein.png")
	res, err := RenderHeadless(scene, 64, 48, 10, path)
	if err != nil {
		t.Fatalf("RenderHeadless() error = %v", err)
	}
	if res.Path != path || res.Frame != 10 {
		t.Errorf("result = %+v", res)
	}
	if res.Stats.Fragments == 0 {
		t.Error("no fragments rendered")
	}

	img := readPNG(t, path)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("image size = %v, want 64x48", b)
	}
	white := color.RGBAModel.Convert(color.White)
	for _, p := range []image.Point{{0, 0}, {63, 0}, {0, 47}, {63, 47}} {
		if got := color.RGBAModel.Convert(img.At(p.X, p.Y)); got != white {
			t.Errorf("corner %v = %v, want background", p, got)
		}
	}
}

func TestRenderHeadlessFramesRotate(t *testing.T) {
	scene, err := NewScene(smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	a, err := RenderHeadless(scene, 48, 48, 0, filepath.Join(dir, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderHeadless(scene, 48, 48, 90, filepath.Join(dir, "b.png"))
	if err != nil {
		t.Fatal(err)
	}

	imgA, imgB := readPNG(t, a.Path), readPNG(t, b.Path)
	var differ bool
	for y := 0; y < 48 && !differ; y++ {
		for x := 0; x < 48; x++ {
			if imgA.At(x, y) != imgB.At(x, y) {
				differ = true
				break
			}
		}
	}
	if !differ {
		t.Error("frames 0 and 90 rendered identically")
	}
}

func TestRenderHeadlessInvalidSize(t *testing.T) {
	scene, err := NewScene(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RenderHeadless(scene, 0, 10, 0, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("expected error for empty output size")
	}
}

func TestResolveTools(t *testing.T) {
	found := func(_ context.Context, path string) error {
		if path == "ffmpeg" || path == "/opt/magick" {
			return nil
		}
		return errors.New("not found")
	}

	reg, err := ResolveTools(context.Background(), config.ToolsConfig{
		FFmpeg:      "auto-detect",
		ImageMagick: "/opt/magick",
	}, tools.WithProber(found))
	if err != nil {
		t.Fatalf("ResolveTools() error = %v", err)
	}
	if v, _ := reg.Get(tools.FFmpeg); v != "ffmpeg" {
		t.Errorf("ffmpeg = %q, want ffmpeg", v)
	}
	if v, _ := reg.Get(tools.ImageMagick); v != "/opt/magick" {
		t.Errorf("imagemagick = %q, want /opt/magick", v)
	}
}

func TestResolveToolsSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte("ffmpeg_binary: unset\nimagemagick_binary: unset\n"), 0644); err != nil {
		t.Fatal(err)
	}

	never := func(context.Context, string) error {
		t.Error("nothing should be probed for unset tools")
		return nil
	}
	reg, err := ResolveTools(context.Background(), config.ToolsConfig{
		FFmpeg:       "auto-detect",
		SettingsFile: path,
	}, tools.WithProber(never))
	if err != nil {
		t.Fatalf("ResolveTools() error = %v", err)
	}
	if v, _ := reg.Get(tools.FFmpeg); v != tools.Unset {
		t.Errorf("ffmpeg = %q, want unset from the settings file", v)
	}
}

func TestResolveToolsExplicitPathFails(t *testing.T) {
	_, err := ResolveTools(context.Background(), config.ToolsConfig{
		FFmpeg:      filepath.Join(t.TempDir(), "no-such-ffmpeg"),
		ImageMagick: "unset",
	})
	if !errors.Is(err, tools.ErrBinaryNotExecutable) {
		t.Errorf("ResolveTools() error = %v, want ErrBinaryNotExecutable", err)
	}
}

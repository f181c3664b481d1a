package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipPixels(t *testing.T) {
	// two rows, bottom row red, top row blue (GL order: bottom first)
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("FlipPixels() error = %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top row = %v, want blue", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom row = %v, want red", got)
	}
}

func TestFlipPixelsSizeMismatch(t *testing.T) {
	tests := []struct {
		name          string
		n             int
		width, height int
	}{
		{"short", 15, 2, 2},
		{"long", 17, 2, 2},
		{"zero width", 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipPixels(make([]byte, tt.n), tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCaptureFromImage(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "surfaceview")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{G: 200, A: 255})

	first, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("CaptureFromImage() error = %v", err)
	}
	if want := filepath.Join(dir, "shots", "surfaceview_2024-03-01_12-30-00.png"); first != want {
		t.Errorf("filename = %q, want %q", first, want)
	}

	second, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("second CaptureFromImage() error = %v", err)
	}
	if second == first || !strings.HasSuffix(second, "_1.png") {
		t.Errorf("second filename = %q, want a _1 suffix", second)
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	if r, g, b, _ := decoded.At(2, 1).RGBA(); r != 0 || g>>8 != 200 || b != 0 {
		t.Errorf("pixel = %v, want green 200", decoded.At(2, 1))
	}
}

func TestSavePNGCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "frame.png")
	if err := SavePNG(path, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

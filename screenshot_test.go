package kaboom

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"level-1", "level-1"},
		{"  ", "unlabeled"},
		{"", "unlabeled"},
		{"boss fight/2", "boss_fight_2"},
		{"v1.2", "v1.2"},
		{"héros", "h_ros"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		64, 32, 0, 128, // half transparent
		10, 20, 30, 0, // transparent
		1, 2, 3, 255, // opaque
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{127, 63, 0, 128, 10, 20, 30, 0, 1, 2, 3, 255}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Fatalf("pix = %v, want %v", img.Pix[:12], want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, imageOf(4, 2)); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 4 || cfg.Height != 2 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestScreenshotQueues(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Screenshot("a")
	e.Screenshot("b")
	if len(e.shots) != 2 || e.shots[1] != "b" {
		t.Errorf("shots = %v", e.shots)
	}
	// Nothing queued means the screen is never touched.
	e.shots = nil
	e.flushScreenshots(nil)
}

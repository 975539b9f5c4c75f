package image

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 200, G: 40, B: 40, A: 255})
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	return path
}

func TestFileLoaderRoundTrip(t *testing.T) {
	path := writeTestPNG(t, 4, 3)

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", b)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 200 || g>>8 != 40 || b>>8 != 40 {
		t.Errorf("pixel = (%d,%d,%d), want (200,40,40)", r>>8, g>>8, b>>8)
	}
}

func TestFileLoaderMaxPixels(t *testing.T) {
	path := writeTestPNG(t, 10, 10)
	l := &FileLoader{MaxPixels: 50}
	if _, err := l.Load(path); err == nil {
		t.Error("Load() expected error for oversized image")
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("not a png"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
		{name: "not an image", path: notImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileLoader().Load(tt.path); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "shot.PNG", want: true},
		{path: "shot.webp", want: true},
		{path: "page.json", want: false},
		{path: "noext", want: false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

package cvd

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

func TestSimulateImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 3, 9, 12))
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if x%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}

	s := New(WithBackend(BackendFallback), WithWorkers(3))
	out, err := s.SimulateImage(context.Background(), img, Protanopia)
	if err != nil {
		t.Fatalf("SimulateImage() error = %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Fatalf("Bounds() = %v, want %v", out.Bounds(), img.Bounds())
	}

	red, _ := FallbackModel{}.Simulate(colour.RGB(255, 0, 0), Protanopia)
	blue, _ := FallbackModel{}.Simulate(colour.RGB(0, 0, 255), Protanopia)
	for y := out.Bounds().Min.Y; y < out.Bounds().Max.Y; y++ {
		for x := out.Bounds().Min.X; x < out.Bounds().Max.X; x++ {
			want := blue
			if x%2 == 0 {
				want = red
			}
			if got := colour.FromColor(out.RGBAAt(x, y)); got != want {
				t.Fatalf("pixel (%d,%d) = %s, want %s", x, y, got, want)
			}
		}
	}
}

func TestSimulateImageEmpty(t *testing.T) {
	out, err := New().SimulateImage(context.Background(), image.NewRGBA(image.Rectangle{}), Tritanopia)
	if err != nil {
		t.Fatalf("SimulateImage() error = %v", err)
	}
	if !out.Bounds().Empty() {
		t.Errorf("Bounds() = %v, want empty", out.Bounds())
	}
}

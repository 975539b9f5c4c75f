package colour

import (
	"image"
	"image/color"
	"testing"
)

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestImageExtractorFewColours(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fillRect(img, img.Bounds(), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fillRect(img, image.Rect(0, 0, 10, 3), color.RGBA{R: 0, G: 0, B: 128, A: 255})

	palette, err := NewImageExtractor(1).Extract(img, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", palette.Len())
	}
	if !palette.Entries[0].Color.Equal(White) {
		t.Errorf("dominant colour = %s, want #ffffff", palette.Entries[0].Color.Hex())
	}
	if !palette.Entries[1].Color.Equal(RGB(0, 0, 128)) {
		t.Errorf("second colour = %s, want #000080", palette.Entries[1].Color.Hex())
	}
	for _, e := range palette.Entries {
		if e.Source != SourceImage {
			t.Errorf("Source = %s, want %s", e.Source, SourceImage)
		}
	}
}

func TestImageExtractorClusters(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	// Two slightly noisy bands collapse into two clusters.
	for y := range 60 {
		for x := range 60 {
			n := uint8((x + y) % 4)
			if y < 40 {
				img.SetRGBA(x, y, color.RGBA{R: 250 - n, G: 250 - n, B: 250 - n, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 10 + n, G: 20 + n, B: 120 + n, A: 255})
			}
		}
	}

	ex := NewImageExtractor(42)
	palette, err := ex.Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", palette.Len())
	}
	if lum := palette.Entries[0].Color.Luminance(); lum < 0.8 {
		t.Errorf("dominant cluster luminance = %v, want a light colour", lum)
	}
	if lum := palette.Entries[1].Color.Luminance(); lum > 0.1 {
		t.Errorf("second cluster luminance = %v, want a dark colour", lum)
	}

	again, err := NewImageExtractor(42).Extract(img, 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for i := range palette.Entries {
		if palette.Entries[i].Color != again.Entries[i].Color {
			t.Errorf("same seed produced different colour at %d: %s vs %s",
				i, palette.Entries[i].Color.Hex(), again.Entries[i].Color.Hex())
		}
	}
}

func TestImageExtractorErrors(t *testing.T) {
	ex := NewImageExtractor(0)
	if _, err := ex.Extract(nil, 4); err == nil {
		t.Error("Extract(nil) expected error")
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := ex.Extract(img, 0); err == nil {
		t.Error("Extract(count=0) expected error")
	}
	if _, err := ex.Extract(img, MaxExtractCount+1); err == nil {
		t.Error("Extract(count too large) expected error")
	}
	if _, err := ex.Extract(image.NewRGBA(image.Rectangle{}), 4); err == nil {
		t.Error("Extract(empty image) expected error")
	}
}

package colour

import (
	"encoding/json"
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestNewPalette(t *testing.T) {
	palette := NewPalette(RGB(255, 0, 0), RGB(0, 255, 0), RGB(255, 0, 0), RGB(0, 0, 255))

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestDedupe(t *testing.T) {
	tokens := []Token{
		{Value: "#FF0000", Source: SourceCSS},
		{Value: "not-a-colour", Source: SourceCSS},
		{Value: "rgb(255,0,0)", Source: SourceInline},
		{Value: "white", Source: SourceThemeColor},
		{Value: "red", Source: SourceInline},
		{Value: "hsl(0, 0%, 0%)"},
		{Value: "url(#grad)", Source: SourceCSS},
	}

	palette, errs := Dedupe(tokens)

	if palette.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", palette.Len())
	}
	if palette.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", palette.Skipped)
	}
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2", len(errs))
	}
	for _, err := range errs {
		if !errors.Is(err, ErrUnrecognisedColour) {
			t.Errorf("error %v does not wrap ErrUnrecognisedColour", err)
		}
	}

	want := []struct {
		hex    string
		source Source
	}{
		{"#ff0000", SourceCSS},
		{"#ffffff", SourceThemeColor},
		{"#000000", SourceUnknown},
	}
	for i, w := range want {
		e := palette.Entries[i]
		if e.Color.Hex() != w.hex || e.Source != w.source {
			t.Errorf("Entries[%d] = %s/%s, want %s/%s", i, e.Color.Hex(), e.Source, w.hex, w.source)
		}
	}
}

func TestDedupeEmpty(t *testing.T) {
	palette, errs := Dedupe(nil)
	if palette.Len() != 0 || len(errs) != 0 {
		t.Errorf("Dedupe(nil) = %d entries, %d errors; want 0, 0", palette.Len(), len(errs))
	}
}

func TestPaletteGet(t *testing.T) {
	palette := NewPalette(RGB(1, 2, 3))

	c, err := palette.Get(0)
	if err != nil {
		t.Fatalf("Get(0) error = %v", err)
	}
	if c != RGB(1, 2, 3) {
		t.Errorf("Get(0) = %v, want rgb(1, 2, 3)", c)
	}

	if _, err := palette.Get(1); err == nil {
		t.Error("Get(1) expected out of bounds error")
	}
	if _, err := palette.Get(-1); err == nil {
		t.Error("Get(-1) expected out of bounds error")
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := NewPalette(RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255))
	want := []string{"#ff0000", "#00ff00", "#0000ff"}

	got := palette.ToHex()
	if len(got) != len(want) {
		t.Fatalf("ToHex() returned %d colours, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPaletteAll(t *testing.T) {
	palette := NewPalette(RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255))

	count := 0
	for i, c := range palette.All() {
		if c != palette.Entries[i].Color {
			t.Errorf("All() index %d = %v, want %v", i, c, palette.Entries[i].Color)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("All() yielded %d colours before break, want 2", count)
	}
}

func TestPaletteString(t *testing.T) {
	if got := (&Palette{}).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}

	got := NewPalette(RGB(255, 0, 0)).String()
	if !strings.Contains(got, "#ff0000") || !strings.Contains(got, "1 colours") {
		t.Errorf("String() = %q, missing expected content", got)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want string
	}{
		{name: "red", c: RGB(255, 0, 0), want: "#ff0000"},
		{name: "green", c: RGB(0, 255, 0), want: "#00ff00"},
		{name: "blue", c: RGB(0, 0, 255), want: "#0000ff"},
		{name: "grey", c: RGB(128, 128, 128), want: "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestColorEqualIgnoresAlpha(t *testing.T) {
	a := Color{R: 10, G: 20, B: 30, Alpha: 1}
	b := Color{R: 10, G: 20, B: 30, Alpha: 0.5}
	if !a.Equal(b) {
		t.Error("colours with equal RGB should be equal regardless of alpha")
	}
	if a.Equal(RGB(10, 20, 31)) {
		t.Error("colours with different RGB should not be equal")
	}
}

func TestFromColor(t *testing.T) {
	if got := FromColor(color.RGBA{R: 12, G: 34, B: 56, A: 255}); got != RGB(12, 34, 56) {
		t.Errorf("FromColor(opaque) = %v, want rgb(12, 34, 56)", got)
	}

	// Half-transparent black over white is mid grey.
	got := FromColor(color.NRGBA{R: 0, G: 0, B: 0, A: 128})
	if got.R != 127 || got.G != 127 || got.B != 127 {
		t.Errorf("FromColor(translucent) = %v, want rgb(127, 127, 127)", got)
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(RGB(255, 0, 0))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(data)
	for _, want := range []string{`"r":255`, `"g":0`, `"hex":"#ff0000"`, `"alpha":1`} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal() = %s, missing %s", s, want)
		}
	}
}

package cvd

import (
	"errors"
	"testing"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

func TestFallbackModel(t *testing.T) {
	tests := []struct {
		name string
		in   colour.Color
		d    Deficiency
		want colour.Color
	}{
		{name: "protanopia red", in: colour.RGB(255, 0, 0), d: Protanopia, want: colour.RGB(145, 142, 0)},
		{name: "deuteranopia red", in: colour.RGB(255, 0, 0), d: Deuteranopia, want: colour.RGB(159, 179, 0)},
		{name: "tritanopia blue", in: colour.RGB(0, 0, 255), d: Tritanopia, want: colour.RGB(0, 145, 134)},
		{name: "black", in: colour.Black, d: Deuteranopia, want: colour.Black},
		{name: "white", in: colour.White, d: Protanopia, want: colour.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FallbackModel{}.Simulate(tt.in, tt.d)
			if err != nil {
				t.Fatalf("Simulate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Simulate() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFallbackModelDeterministic(t *testing.T) {
	m := FallbackModel{}
	for _, d := range AllDeficiencies {
		for v := 0; v < 256; v += 15 {
			c := colour.RGB(uint8(v), uint8(255-v), uint8(v/2))
			a, _ := m.Simulate(c, d)
			b, _ := m.Simulate(c, d)
			if a != b {
				t.Fatalf("Simulate(%s, %s) not deterministic: %s vs %s", c.Hex(), d, a, b)
			}
		}
	}
}

func TestFallbackModelUnknownDeficiency(t *testing.T) {
	_, err := FallbackModel{}.Simulate(colour.White, Deficiency("achromatopsia"))
	if !errors.Is(err, ErrUnknownDeficiency) {
		t.Errorf("Simulate() error = %v, want ErrUnknownDeficiency", err)
	}
}

func TestParseDeficiency(t *testing.T) {
	tests := []struct {
		in      string
		want    Deficiency
		wantErr bool
	}{
		{in: "protanopia", want: Protanopia},
		{in: "Deutan", want: Deuteranopia},
		{in: " tritanopia ", want: Tritanopia},
		{in: "mono", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDeficiency(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDeficiency(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDeficiency(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

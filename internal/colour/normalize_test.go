package colour

import (
	"errors"
	"testing"
)

func TestNormalizeEquivalentEncodings(t *testing.T) {
	want := RGB(255, 0, 0)
	for _, token := range []string{"#FF0000", "rgb(255,0,0)", "red", "#f00", "RED", "hsl(0, 100%, 50%)", "#ff0000ff"} {
		got, err := Normalize(token)
		if err != nil {
			t.Errorf("Normalize(%q) error = %v", token, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Normalize(%q) = %v, want %v", token, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		want   Color
		format Format
	}{
		{name: "short hex", token: "#abc", want: RGB(0xaa, 0xbb, 0xcc), format: FormatHex},
		{name: "long hex", token: " #1A2b3C ", want: RGB(0x1a, 0x2b, 0x3c), format: FormatHex},
		{name: "hex with alpha", token: "#00000080", want: Color{R: 127, G: 127, B: 127, Alpha: 128.0 / 255.0}, format: FormatHex},
		{name: "rgb spaces", token: "rgb(10 20 30)", want: RGB(10, 20, 30), format: FormatRGB},
		{name: "rgb percent", token: "rgb(100%, 50%, 0%)", want: RGB(255, 128, 0), format: FormatRGB},
		{name: "rgb clamps", token: "rgb(300, -5, 12.6)", want: RGB(255, 0, 13), format: FormatRGB},
		{name: "rgba translucent", token: "rgba(0, 0, 0, 0.5)", want: Color{R: 128, G: 128, B: 128, Alpha: 0.5}, format: FormatRGB},
		{name: "rgb slash alpha", token: "rgb(255 255 255 / 50%)", want: Color{R: 255, G: 255, B: 255, Alpha: 0.5}, format: FormatRGB},
		{name: "rgba opaque", token: "rgba(1,2,3,1)", want: RGB(1, 2, 3), format: FormatRGB},
		{name: "hsl green", token: "hsl(120, 100%, 50%)", want: RGB(0, 255, 0), format: FormatHSL},
		{name: "hsl deg", token: "hsl(240deg 100% 50%)", want: RGB(0, 0, 255), format: FormatHSL},
		{name: "hsl grey", token: "hsl(0, 0%, 50%)", want: RGB(128, 128, 128), format: FormatHSL},
		{name: "hsl wraps hue", token: "hsl(480, 100%, 50%)", want: RGB(0, 255, 0), format: FormatHSL},
		{name: "hsla", token: "hsla(0, 100%, 50%, 0)", want: Color{R: 255, G: 255, B: 255, Alpha: 0}, format: FormatHSL},
		{name: "named", token: "navy", want: RGB(0, 0, 128), format: FormatNamed},
		{name: "named grey alias", token: "Grey", want: RGB(128, 128, 128), format: FormatNamed},
		{name: "important suffix", token: "#fff !important", want: RGB(255, 255, 255), format: FormatHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := NormalizeFormat(tt.token)
			if err != nil {
				t.Fatalf("NormalizeFormat(%q) error = %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeFormat(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
			if format != tt.format {
				t.Errorf("NormalizeFormat(%q) format = %s, want %s", tt.token, format, tt.format)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	for _, token := range []string{
		"",
		"#12",
		"#12345",
		"#gggggg",
		"rgb(1,2)",
		"rgb(a,b,c)",
		"hsl(1,2,3,4,5)",
		"transparent",
		"inherit",
		"oklch(0.5 0.1 20)",
		"linear-gradient(red, blue)",
	} {
		_, err := Normalize(token)
		if err == nil {
			t.Errorf("Normalize(%q) expected error", token)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Normalize(%q) error type = %T, want *ParseError", token, err)
			continue
		}
		if pe.Token != token {
			t.Errorf("ParseError.Token = %q, want %q", pe.Token, token)
		}
		if !errors.Is(err, ErrUnrecognisedColour) {
			t.Errorf("Normalize(%q) error does not wrap ErrUnrecognisedColour", token)
		}
	}
}

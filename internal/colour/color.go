// Package colour provides colour normalisation, palette handling and WCAG contrast analysis.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// Color is a canonical sRGB colour.
// Tokens carrying transparency are composited against white when they are
// normalised, so R, G and B always hold the visible colour and Alpha is kept
// for reporting only.
type Color struct {
	R     uint8
	G     uint8
	B     uint8
	Alpha float64
}

// RGB returns an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Alpha: 1}
}

// Common reference colours.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// Key returns a value that identifies the colour by its RGB triple.
// Two colours are equal for palette and contrast purposes iff their keys match.
func (c Color) Key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Equal reports whether c and other have the same RGB triple.
func (c Color) Equal(other Color) bool {
	return c.Key() == other.Key()
}

// Hex returns the colour as a lowercase hex string (e.g., "#1a2b3c").
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the colour in the format "rgb(r, g, b)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Luminance returns the WCAG relative luminance of the colour.
func (c Color) Luminance() float64 {
	return Luminance(c)
}

// RGBA implements color.Color. The colour is always reported as opaque
// because any transparency was resolved during normalisation.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// FromColor converts any color.Color into a Color, compositing translucent
// values against white.
func FromColor(c color.Color) Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nrgba.A == 255 {
		return RGB(nrgba.R, nrgba.G, nrgba.B)
	}
	alpha := float64(nrgba.A) / 255.0
	return composite(float64(nrgba.R), float64(nrgba.G), float64(nrgba.B), alpha)
}

// colorJSON is the serialised form of a Color.
type colorJSON struct {
	R     uint8   `json:"r" yaml:"r"`
	G     uint8   `json:"g" yaml:"g"`
	B     uint8   `json:"b" yaml:"b"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Hex   string  `json:"hex" yaml:"hex"`
}

func (c Color) serialised() colorJSON {
	return colorJSON{R: c.R, G: c.G, B: c.B, Alpha: c.Alpha, Hex: c.Hex()}
}

// MarshalJSON encodes the colour with its derived hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.serialised())
}

// UnmarshalJSON decodes a colour written by MarshalJSON.
func (c *Color) UnmarshalJSON(data []byte) error {
	var v colorJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Color{R: v.R, G: v.G, B: v.B, Alpha: v.Alpha}
	return nil
}

// MarshalYAML encodes the colour with its derived hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.serialised(), nil
}

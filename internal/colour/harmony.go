package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Harmony is a colour scheme built by rotating a base colour's hue.
type Harmony string

// Supported harmonies.
const (
	HarmonyComplementary Harmony = "complementary"
	HarmonyTriadic       Harmony = "triadic"
	HarmonyAnalogous     Harmony = "analogous"
	HarmonyTetradic      Harmony = "tetradic"
)

// AllHarmonies lists every harmony in display order.
var AllHarmonies = []Harmony{HarmonyComplementary, HarmonyTriadic, HarmonyAnalogous, HarmonyTetradic}

// harmonyOffsets are HSV hue rotations in member order; 0 is the base.
var harmonyOffsets = map[Harmony][]float64{
	HarmonyComplementary: {0, 180},
	HarmonyTriadic:       {0, 120, 240},
	HarmonyAnalogous:     {-30, 0, 30},
	HarmonyTetradic:      {0, 90, 180, 270},
}

// ParseHarmony converts a string to a Harmony.
func ParseHarmony(s string) (Harmony, error) {
	h := Harmony(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := harmonyOffsets[h]; ok {
		return h, nil
	}
	return "", fmt.Errorf("invalid harmony: %s (valid: complementary, triadic, analogous, tetradic)", s)
}

// Colors returns the members of the harmony around base. The base itself is
// returned unchanged; the other members keep its saturation and value.
// Achromatic bases have no hue, so every member equals the base.
func (h Harmony) Colors(base Color) []Color {
	offsets := harmonyOffsets[h]
	out := make([]Color, len(offsets))
	for i, deg := range offsets {
		if deg == 0 {
			out[i] = base
			continue
		}
		out[i] = RotateHue(base, deg)
	}
	return out
}

// Harmonies returns every harmony around base.
func Harmonies(base Color) map[Harmony][]Color {
	out := make(map[Harmony][]Color, len(AllHarmonies))
	for _, h := range AllHarmonies {
		out[h] = h.Colors(base)
	}
	return out
}

// RotateHue turns c by deg degrees around the HSV hue circle. The result is
// opaque.
func RotateHue(c Color, deg float64) Color {
	h, s, v := colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}.Hsv()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return RGB(r, g, b)
}

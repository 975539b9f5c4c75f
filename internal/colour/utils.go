package colour

import (
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.1.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance.
func Luminance(c Color) float64 {
	rf := gammaCorrect(float64(c.R) / 255.0)
	rg := gammaCorrect(float64(c.G) / 255.0)
	rb := gammaCorrect(float64(c.B) / 255.0)

	l := 0.2126*rf + 0.7152*rg + 0.0722*rb
	return math.Max(0, math.Min(1, l))
}

// gammaCorrect linearises an sRGB channel in [0,1].
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Contrast ratio bounds: identical colours and black on white.
const (
	MinRatio = 1.0
	MaxRatio = 21.0
)

// Ratio calculates the contrast ratio between two colours according to WCAG 2.1.
// The result is symmetric and lies in [1, 21].
// https://www.w3.org/TR/WCAG21/#dfn-contrast-ratio.
func Ratio(a, b Color) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	r := (l1 + 0.05) / (l2 + 0.05)
	return math.Max(MinRatio, math.Min(MaxRatio, r))
}

// SuggestForeground returns black or white, whichever reaches target contrast
// against bg. When neither does, the higher-contrast one is returned.
func SuggestForeground(bg Color, target float64) Color {
	black := Ratio(bg, Black)
	white := Ratio(bg, White)
	switch {
	case black >= target:
		return Black
	case white >= target:
		return White
	case black > white:
		return Black
	default:
		return White
	}
}

// BestTextColour returns black or white, whichever contrasts more with bg.
func BestTextColour(bg Color) Color {
	if Ratio(bg, White) >= Ratio(bg, Black) {
		return White
	}
	return Black
}

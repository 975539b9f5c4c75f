package cvd

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

// Linear RGB to LMS cone response and back (Viénot, Brettel and Mollon 1999).
var (
	rgbToLMS = matrix{
		{17.8824, 43.5161, 4.11935},
		{3.45565, 27.1554, 3.86714},
		{0.0299566, 0.184309, 1.46709},
	}
	lmsToRGB = matrix{
		{0.0809444479, -0.130504409, 0.116721066},
		{-0.0102485335, 0.0540193266, -0.113614708},
		{-0.000365296938, -0.00412161469, 0.693511405},
	}

	// Tritanopia in linear RGB (Machado, Oliveira and Fernandes 2009, severity
	// 1.0). Rows sum to 1, so greys are preserved.
	tritanopia = matrix{
		{1.255528, -0.076749, -0.178779},
		{-0.078411, 0.930809, 0.147602},
		{0.004733, 0.691367, 0.303900},
	}
)

// PerceptualModel simulates dichromacy in linear RGB. Protanopia and
// deuteranopia replace the missing L or M response with its projection onto
// the confusion plane in LMS space; tritanopia uses the Machado matrix.
type PerceptualModel struct {
	// Severity in [0,1] blends between normal vision and full dichromacy.
	Severity float64
}

// NewPerceptualModel returns a model simulating complete dichromacy.
func NewPerceptualModel() *PerceptualModel {
	return &PerceptualModel{Severity: 1}
}

// Name implements ColorVisionModel.
func (m *PerceptualModel) Name() string { return "lms" }

// Simulate implements ColorVisionModel.
func (m *PerceptualModel) Simulate(c colour.Color, d Deficiency) (colour.Color, error) {
	src := colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
	lr, lg, lb := src.LinearRgb()

	severity := math.Max(0, math.Min(1, m.Severity))

	var r, g, b float64
	switch d {
	case Protanopia, Deuteranopia:
		l, mm, s := rgbToLMS.apply(lr, lg, lb)
		if d == Protanopia {
			l = blend(l, 2.02344*mm-2.52581*s, severity)
		} else {
			mm = blend(mm, 0.494207*l+1.24827*s, severity)
		}
		r, g, b = lmsToRGB.apply(l, mm, s)
	case Tritanopia:
		tr, tg, tb := tritanopia.apply(lr, lg, lb)
		r, g, b = blend(lr, tr, severity), blend(lg, tg, severity), blend(lb, tb, severity)
	default:
		return colour.Color{}, fmt.Errorf("%w: %q", ErrUnknownDeficiency, d)
	}

	for _, v := range [...]float64{r, g, b} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return colour.Color{}, fmt.Errorf("simulating %s for %s: %w", d, c.Hex(), ErrDomain)
		}
	}

	out := colorful.LinearRgb(clamp01(r), clamp01(g), clamp01(b))
	r8, g8, b8 := out.Clamped().RGB255()
	return colour.RGB(r8, g8, b8), nil
}

func blend(from, to, t float64) float64 {
	return from + (to-from)*t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

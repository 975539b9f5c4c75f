package cvd

import (
	"fmt"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

type matrix [3][3]float64

func (m matrix) apply(r, g, b float64) (float64, float64, float64) {
	return m[0][0]*r + m[0][1]*g + m[0][2]*b,
		m[1][0]*r + m[1][1]*g + m[1][2]*b,
		m[2][0]*r + m[2][1]*g + m[2][2]*b
}

// fallbackMatrices are the widely published dichromat approximations,
// applied directly to gamma-encoded sRGB.
var fallbackMatrices = map[Deficiency]matrix{
	Protanopia: {
		{0.567, 0.433, 0},
		{0.558, 0.442, 0},
		{0, 0.242, 0.758},
	},
	Deuteranopia: {
		{0.625, 0.375, 0},
		{0.7, 0.3, 0},
		{0, 0.3, 0.7},
	},
	Tritanopia: {
		{0.95, 0.05, 0},
		{0, 0.433, 0.567},
		{0, 0.475, 0.525},
	},
}

// FallbackModel is a fixed-matrix approximation with no external
// dependencies. It is deterministic and always available.
type FallbackModel struct{}

// Name implements ColorVisionModel.
func (FallbackModel) Name() string { return "fallback" }

// Simulate implements ColorVisionModel.
func (FallbackModel) Simulate(c colour.Color, d Deficiency) (colour.Color, error) {
	m, ok := fallbackMatrices[d]
	if !ok {
		return colour.Color{}, fmt.Errorf("%w: %q", ErrUnknownDeficiency, d)
	}
	r, g, b := m.apply(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0)
	return colour.RGB(unitToByte(r), unitToByte(g), unitToByte(b)), nil
}

// unitToByte clips v to [0,1] and scales to the nearest byte.
func unitToByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255.0 + 0.5) // #nosec G115 -- clipped to 0-1
}

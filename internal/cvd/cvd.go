// Package cvd simulates how colours appear to viewers with colour vision
// deficiencies.
package cvd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

// Deficiency is a type of dichromacy.
type Deficiency string

// Supported deficiencies.
const (
	Protanopia   Deficiency = "protanopia"
	Deuteranopia Deficiency = "deuteranopia"
	Tritanopia   Deficiency = "tritanopia"
)

// AllDeficiencies lists every supported deficiency in report order.
var AllDeficiencies = []Deficiency{Protanopia, Deuteranopia, Tritanopia}

// ParseDeficiency parses a deficiency name. The short forms "protan",
// "deutan" and "tritan" are accepted.
func ParseDeficiency(s string) (Deficiency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "protanopia", "protan":
		return Protanopia, nil
	case "deuteranopia", "deutan":
		return Deuteranopia, nil
	case "tritanopia", "tritan":
		return Tritanopia, nil
	}
	return "", fmt.Errorf("%w: %q (valid: protanopia, deuteranopia, tritanopia)", ErrUnknownDeficiency, s)
}

// Mode reports which model produced a simulated colour.
type Mode string

// Simulation modes.
const (
	ModePerceptual Mode = "perceptual"
	ModeFallback   Mode = "fallback"
)

var (
	// ErrDomain is returned when a colour leaves the valid numeric domain
	// during conversion.
	ErrDomain = errors.New("colour conversion produced a non-finite value")

	// ErrUnknownDeficiency is returned for unsupported deficiency names.
	ErrUnknownDeficiency = errors.New("unknown deficiency")
)

// Result is the simulation of one colour under one deficiency.
type Result struct {
	Original   colour.Color `json:"original" yaml:"original"`
	Deficiency Deficiency   `json:"deficiency_type" yaml:"deficiency_type"`
	Simulated  colour.Color `json:"simulated" yaml:"simulated"`
	ModeUsed   Mode         `json:"mode_used" yaml:"mode_used"`
	// FallbackReason is set when the perceptual model failed for this
	// colour and the fallback model was used instead.
	FallbackReason string `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty"`
}

// ColorVisionModel simulates a single colour.
type ColorVisionModel interface {
	Name() string
	Simulate(c colour.Color, d Deficiency) (colour.Color, error)
}

package colour

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrUnrecognisedColour is the sentinel wrapped by every ParseError.
var ErrUnrecognisedColour = errors.New("unrecognised colour token")

// ParseError reports a token that matched none of the supported encodings.
type ParseError struct {
	Token string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnrecognisedColour, e.Token)
}

// Unwrap allows errors.Is(err, ErrUnrecognisedColour).
func (e *ParseError) Unwrap() error {
	return ErrUnrecognisedColour
}

// Format identifies which matcher recognised a token.
type Format string

// Supported token formats, in matching priority order.
const (
	FormatHex   Format = "hex"
	FormatRGB   Format = "rgb"
	FormatHSL   Format = "hsl"
	FormatNamed Format = "named"
)

type matcher struct {
	format Format
	match  func(token string) (Color, bool)
}

// matchers are tried in order; the first success wins.
var matchers = []matcher{
	{format: FormatHex, match: matchHex},
	{format: FormatRGB, match: matchRGB},
	{format: FormatHSL, match: matchHSL},
	{format: FormatNamed, match: matchNamed},
}

var (
	hexRegex = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	rgbRegex = regexp.MustCompile(`^rgba?\s*\(([^()]*)\)$`)
	hslRegex = regexp.MustCompile(`^hsla?\s*\(([^()]*)\)$`)
)

// Normalize parses a colour token into its canonical Color.
// Supports hex (#rgb, #rrggbb, #rrggbbaa), rgb()/rgba(), hsl()/hsla() and
// the CSS named colours. Returns a *ParseError when nothing matches.
func Normalize(token string) (Color, error) {
	c, _, err := NormalizeFormat(token)
	return c, err
}

// NormalizeFormat is Normalize but also reports which format matched.
func NormalizeFormat(token string) (Color, Format, error) {
	value := strings.ToLower(strings.TrimSpace(token))
	value = strings.TrimSuffix(value, "!important")
	value = strings.TrimSpace(value)

	for _, m := range matchers {
		if c, ok := m.match(value); ok {
			return c, m.format, nil
		}
	}
	return Color{}, "", &ParseError{Token: token}
}

// matchHex parses #rgb, #rrggbb and #rrggbbaa.
func matchHex(value string) (Color, bool) {
	m := hexRegex.FindStringSubmatch(value)
	if m == nil {
		return Color{}, false
	}
	hex := m[1]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	// Regex guarantees valid hex digits, errors ignored.
	r, _ := strconv.ParseUint(hex[0:2], 16, 8) //nolint:errcheck
	g, _ := strconv.ParseUint(hex[2:4], 16, 8) //nolint:errcheck
	b, _ := strconv.ParseUint(hex[4:6], 16, 8) //nolint:errcheck

	alpha := 1.0
	if len(hex) == 8 {
		a, _ := strconv.ParseUint(hex[6:8], 16, 8) //nolint:errcheck
		alpha = float64(a) / 255.0
	}
	return composite(float64(r), float64(g), float64(b), alpha), true
}

// matchRGB parses rgb()/rgba() in comma or space separated form, with
// numeric or percentage channels and an optional alpha.
func matchRGB(value string) (Color, bool) {
	m := rgbRegex.FindStringSubmatch(value)
	if m == nil {
		return Color{}, false
	}
	args := splitArgs(m[1])
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}

	var ch [3]float64
	for i := range 3 {
		v, ok := parseChannel(args[i])
		if !ok {
			return Color{}, false
		}
		ch[i] = v
	}

	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return Color{}, false
		}
		alpha = a
	}
	return composite(ch[0], ch[1], ch[2], alpha), true
}

// matchHSL parses hsl()/hsla() and converts using the hue-sector formula.
func matchHSL(value string) (Color, bool) {
	m := hslRegex.FindStringSubmatch(value)
	if m == nil {
		return Color{}, false
	}
	args := splitArgs(m[1])
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return Color{}, false
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	s, ok := parseFraction(args[1])
	if !ok {
		return Color{}, false
	}
	l, ok := parseFraction(args[2])
	if !ok {
		return Color{}, false
	}

	alpha := 1.0
	if len(args) == 4 {
		a, ok := parseAlpha(args[3])
		if !ok {
			return Color{}, false
		}
		alpha = a
	}

	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return composite(float64(r), float64(g), float64(b), alpha), true
}

// matchNamed looks the token up in the CSS named colour table.
func matchNamed(value string) (Color, bool) {
	c, ok := colornames.Map[value]
	if !ok {
		return Color{}, false
	}
	return RGB(c.R, c.G, c.B), true
}

// splitArgs splits functional notation arguments on commas, slashes and whitespace.
func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/' || unicode.IsSpace(r)
	})
}

// parseChannel parses an rgb channel: 0-255 or a percentage.
func parseChannel(arg string) (float64, bool) {
	if pct, ok := strings.CutSuffix(arg, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || math.IsNaN(v) {
			return 0, false
		}
		return v / 100.0 * 255.0, true
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseAlpha parses an alpha value as a fraction or percentage, clamped to [0,1].
func parseAlpha(arg string) (float64, bool) {
	if pct, ok := strings.CutSuffix(arg, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || math.IsNaN(v) {
			return 0, false
		}
		return clampUnit(v / 100.0), true
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return clampUnit(v), true
}

// parseFraction parses an hsl saturation or lightness. Percentages are
// divided by 100; bare values above 1 are treated as percentages too.
func parseFraction(arg string) (float64, bool) {
	pct, hadPercent := strings.CutSuffix(arg, "%")
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	if hadPercent || v > 1 {
		v /= 100.0
	}
	return clampUnit(v), true
}

// composite blends a channel triple against white using alpha and rounds
// each channel to the nearest integer in [0,255].
func composite(r, g, b, alpha float64) Color {
	alpha = clampUnit(alpha)
	blend := func(v float64) uint8 {
		v = math.Max(0, math.Min(255, v))
		return clampByte(alpha*v + (1-alpha)*255)
	}
	return Color{R: blend(r), G: blend(g), B: blend(b), Alpha: alpha}
}

// clampByte rounds v and restricts it to [0,255].
func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v) // #nosec G115 -- clamped to 0-255
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

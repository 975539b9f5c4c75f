// Package typography audits heading hierarchy and font consistency.
package typography

import (
	"fmt"
	"math"
	"strings"
)

// Kind classifies a typography violation.
type Kind string

// Violation kinds.
const (
	KindSkippedLevel     Kind = "skipped_level"
	KindMultipleTopLevel Kind = "multiple_top_level"
	KindMissingTopLevel  Kind = "missing_top_level"
	KindFontFamilyCount  Kind = "font_family_count"
	KindFontSizeCount    Kind = "font_size_count"
)

// DocumentWide is the Position of violations that concern the whole page
// rather than one heading.
const DocumentWide = -1

// Heading is one heading in document order.
type Heading struct {
	Level int `json:"level" yaml:"level"`
	// Scope names the page section the heading belongs to. Headings with an
	// empty scope belong to the page itself.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// Fonts lists the font families and sizes used on a page.
type Fonts struct {
	Families []string `json:"families,omitempty" yaml:"families,omitempty"`
	Sizes    []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
}

// Violation is one typography problem. Position indexes HeadingSequence.
type Violation struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Position int    `json:"position" yaml:"position"`
	Expected int    `json:"expected" yaml:"expected"`
	Found    int    `json:"found" yaml:"found"`
	Scope    string `json:"scope,omitempty" yaml:"scope,omitempty"`
}

// Margin returns how far the violation is from compliance; more negative
// is worse.
func (v Violation) Margin() float64 {
	return -math.Abs(float64(v.Found - v.Expected))
}

// String describes the violation.
func (v Violation) String() string {
	switch v.Kind {
	case KindSkippedLevel:
		return fmt.Sprintf("heading %d jumps to H%d, expected at most H%d", v.Position, v.Found, v.Expected)
	case KindMultipleTopLevel:
		return fmt.Sprintf("%d top-level headings in %s, expected %d", v.Found, scopeName(v.Scope), v.Expected)
	case KindMissingTopLevel:
		return fmt.Sprintf("%s starts at H%d with no H%d", scopeName(v.Scope), v.Found, v.Expected)
	case KindFontFamilyCount:
		return fmt.Sprintf("%d font families used, expected at most %d", v.Found, v.Expected)
	case KindFontSizeCount:
		return fmt.Sprintf("%d font sizes used, expected at most %d", v.Found, v.Expected)
	}
	return string(v.Kind)
}

func scopeName(scope string) string {
	if scope == "" {
		return "page"
	}
	return "section " + scope
}

// Report is the result of an audit.
type Report struct {
	HeadingSequence  []int       `json:"heading_sequence" yaml:"heading_sequence"`
	Violations       []Violation `json:"violations" yaml:"violations"`
	ConsistencyScore float64     `json:"consistency_score" yaml:"consistency_score"`
	FontFamilyCount  int         `json:"font_family_count" yaml:"font_family_count"`
	FontSizeCount    int         `json:"font_size_count" yaml:"font_size_count"`
}

// Has reports whether any violation of kind k was found.
func (r Report) Has(k Kind) bool {
	for _, v := range r.Violations {
		if v.Kind == k {
			return true
		}
	}
	return false
}

// Config holds audit thresholds and penalties.
type Config struct {
	MaxFontFamilies int              `koanf:"max_font_families"`
	MaxFontSizes    int              `koanf:"max_font_sizes"`
	Penalties       map[Kind]float64 `koanf:"penalties"`
}

// DefaultConfig returns the default audit configuration.
func DefaultConfig() Config {
	return Config{
		MaxFontFamilies: 3,
		MaxFontSizes:    8,
		Penalties: map[Kind]float64{
			KindSkippedLevel:     20,
			KindMultipleTopLevel: 15,
			KindMissingTopLevel:  20,
			KindFontFamilyCount:  10,
			KindFontSizeCount:    10,
		},
	}
}

// Auditor checks headings and fonts against a Config.
type Auditor struct {
	cfg Config
}

// NewAuditor creates an Auditor.
func NewAuditor(cfg Config) *Auditor {
	return &Auditor{cfg: cfg}
}

// Audit checks headings (in document order) and fonts. Headings with a
// level outside 1..6 are skipped and reported as errors; the audit still
// completes.
func (a *Auditor) Audit(headings []Heading, fonts Fonts) (Report, []error) {
	var errs []error
	valid := make([]Heading, 0, len(headings))
	for i, h := range headings {
		if h.Level < 1 || h.Level > 6 {
			errs = append(errs, fmt.Errorf("heading %d: invalid level %d", i, h.Level))
			continue
		}
		valid = append(valid, h)
	}

	r := Report{
		HeadingSequence: make([]int, len(valid)),
		Violations:      []Violation{},
	}
	for i, h := range valid {
		r.HeadingSequence[i] = h.Level
	}

	r.Violations = append(r.Violations, checkHierarchy(valid)...)

	r.FontFamilyCount = countDistinct(fonts.Families)
	if r.FontFamilyCount > a.cfg.MaxFontFamilies {
		r.Violations = append(r.Violations, Violation{
			Kind: KindFontFamilyCount, Position: DocumentWide,
			Expected: a.cfg.MaxFontFamilies, Found: r.FontFamilyCount,
		})
	}
	r.FontSizeCount = countDistinct(fonts.Sizes)
	if a.cfg.MaxFontSizes > 0 && r.FontSizeCount > a.cfg.MaxFontSizes {
		r.Violations = append(r.Violations, Violation{
			Kind: KindFontSizeCount, Position: DocumentWide,
			Expected: a.cfg.MaxFontSizes, Found: r.FontSizeCount,
		})
	}

	r.ConsistencyScore = a.score(r)
	return r, errs
}

// checkHierarchy finds skipped levels and top-level problems per scope.
func checkHierarchy(headings []Heading) []Violation {
	var out []Violation

	type scopeState struct {
		prev     int
		first    int
		firstPos int
		topLevel int
	}
	scopes := make(map[string]*scopeState)
	var order []string

	for i, h := range headings {
		st, ok := scopes[h.Scope]
		if !ok {
			st = &scopeState{first: h.Level, firstPos: i}
			scopes[h.Scope] = st
			order = append(order, h.Scope)
		}

		if st.prev > 0 && h.Level > st.prev+1 {
			out = append(out, Violation{
				Kind: KindSkippedLevel, Position: i,
				Expected: st.prev + 1, Found: h.Level, Scope: h.Scope,
			})
		}

		if h.Level == 1 {
			st.topLevel++
			if st.topLevel > 1 {
				out = append(out, Violation{
					Kind: KindMultipleTopLevel, Position: i,
					Expected: 1, Found: st.topLevel, Scope: h.Scope,
				})
			}
		}
		st.prev = h.Level
	}

	for _, name := range order {
		st := scopes[name]
		if st.topLevel == 0 {
			out = append(out, Violation{
				Kind: KindMissingTopLevel, Position: st.firstPos,
				Expected: 1, Found: st.first, Scope: name,
			})
		}
	}
	return out
}

// score applies one penalty per violation class present.
func (a *Auditor) score(r Report) float64 {
	score := 100.0
	seen := make(map[Kind]bool)
	for _, v := range r.Violations {
		if seen[v.Kind] {
			continue
		}
		seen[v.Kind] = true
		score -= a.cfg.Penalties[v.Kind]
	}
	return math.Max(0, score)
}

func countDistinct(values []string) int {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.Join(strings.Fields(v), " "))
		key = strings.Trim(key, `"'`)
		if key != "" {
			seen[key] = true
		}
	}
	return len(seen)
}

// Package compliance aggregates the sub-analyses of one page into an
// immutable report with an overall score and ranked findings.
package compliance

import (
	"errors"
	"fmt"
	"time"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/heatmap"
	"github.com/marianadeem755/VisionChroma-pro/internal/readability"
	"github.com/marianadeem755/VisionChroma-pro/internal/typography"
)

// ErrIncomplete is returned by Build when a sub-analysis was never supplied.
var ErrIncomplete = errors.New("report incomplete")

// Conformance is the overall compliance grade derived from the score.
type Conformance string

// Conformance grades.
const (
	ConformanceA   Conformance = "A"
	ConformanceAA  Conformance = "AA"
	ConformanceAAA Conformance = "AAA"
)

// Grade thresholds on the overall score.
const (
	GradeAAA = 85.0
	GradeAA  = 70.0
)

// Grade maps an overall score to a conformance grade.
func Grade(score float64) Conformance {
	switch {
	case score >= GradeAAA:
		return ConformanceAAA
	case score >= GradeAA:
		return ConformanceAA
	}
	return ConformanceA
}

// WarningKind classifies a recoverable problem met during analysis.
type WarningKind string

// Warning kinds.
const (
	WarningParseError          WarningKind = "parse_error"
	WarningInsufficientContent WarningKind = "insufficient_content"
	WarningSimulationFallback  WarningKind = "simulation_fallback"
	WarningInvalidHeading      WarningKind = "invalid_heading"
	WarningHeatmapElement      WarningKind = "heatmap_element"
)

// Warning is a recoverable problem attached to a report.
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Subject string      `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Subject == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Subject, w.Message)
}

// Metadata describes the run that produced a report.
type Metadata struct {
	Tool        string    `json:"tool" yaml:"tool"`
	Version     string    `json:"version" yaml:"version"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
}

// Status reports whether a sub-score contributed to the overall score.
type Status string

// Sub-score statuses.
const (
	StatusScored    Status = "scored"
	StatusNotScored Status = "not_scored"
)

// SubScore is one weighted component of the overall score.
type SubScore struct {
	Status Status  `json:"status" yaml:"status"`
	Score  float64 `json:"score" yaml:"score"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Scored reports whether the sub-score contributed.
func (s SubScore) Scored() bool {
	return s.Status == StatusScored
}

// Scores holds the sub-scores and their weighted average.
type Scores struct {
	Contrast    SubScore `json:"contrast" yaml:"contrast"`
	Readability SubScore `json:"readability" yaml:"readability"`
	Typography  SubScore `json:"typography" yaml:"typography"`
	Overall     float64  `json:"overall" yaml:"overall"`
}

// FindingKind names the analysis a finding came from.
type FindingKind string

// Finding kinds.
const (
	FindingContrast   FindingKind = "contrast"
	FindingTypography FindingKind = "typography"
)

// Finding is one ranked compliance problem. Margin is the distance from
// compliance; the most negative findings come first.
type Finding struct {
	Kind      FindingKind           `json:"kind" yaml:"kind"`
	Subject   string                `json:"subject" yaml:"subject"`
	Message   string                `json:"message" yaml:"message"`
	Margin    float64               `json:"margin" yaml:"margin"`
	Pair      *colour.ContrastPair  `json:"pair,omitempty" yaml:"pair,omitempty"`
	Violation *typography.Violation `json:"violation,omitempty" yaml:"violation,omitempty"`
}

// Suggestion proposes a foreground that reaches AAA on a pair's background.
type Suggestion struct {
	Current   colour.ContrastPair        `json:"current" yaml:"current"`
	Suggested colour.ContrastPair        `json:"suggested" yaml:"suggested"`
	CVDRatios map[cvd.Deficiency]float64 `json:"cvd_ratios,omitempty" yaml:"cvd_ratios,omitempty"`
}

// Report is the aggregate result of one analysis. It is never modified
// after Build returns.
type Report struct {
	Metadata        Metadata                        `json:"metadata" yaml:"metadata"`
	Level           colour.Level                    `json:"wcag_level" yaml:"wcag_level"`
	Palette         *colour.Palette                 `json:"palette" yaml:"palette"`
	ContrastPairs   []colour.ContrastPair           `json:"contrast_pairs" yaml:"contrast_pairs"`
	SimulationMode  cvd.Mode                        `json:"simulation_mode" yaml:"simulation_mode"`
	SimulationModel string                          `json:"simulation_model,omitempty" yaml:"simulation_model,omitempty"`
	CVD             map[cvd.Deficiency][]cvd.Result `json:"cvd_simulations" yaml:"cvd_simulations"`
	Readability     readability.Result              `json:"readability" yaml:"readability"`
	Typography      typography.Report               `json:"typography" yaml:"typography"`
	Heatmap         heatmap.Grid                    `json:"heatmap" yaml:"heatmap"`
	Scores          Scores                          `json:"scores" yaml:"scores"`
	Conformance     Conformance                     `json:"compliance_level" yaml:"compliance_level"`
	Findings        []Finding                       `json:"findings" yaml:"findings"`
	Suggestions     []Suggestion                    `json:"suggestions" yaml:"suggestions"`
	Recommendations []string                        `json:"recommendations" yaml:"recommendations"`
	Warnings        []Warning                       `json:"warnings" yaml:"warnings"`
}

// WorstPairs returns up to n pairs with the lowest contrast.
func (r *Report) WorstPairs(n int) []colour.ContrastPair {
	return colour.WorstPairs(r.ContrastPairs, n)
}

// Simulations returns the simulation results for one deficiency, in
// palette order.
func (r *Report) Simulations(d cvd.Deficiency) []cvd.Result {
	return r.CVD[d]
}

// FailingPairs returns the pairs that fail the report's WCAG level.
func (r *Report) FailingPairs() []colour.ContrastPair {
	return colour.Failing(r.ContrastPairs, r.Level)
}

// Warned reports whether a warning of kind k was recorded.
func (r *Report) Warned(k WarningKind) bool {
	for _, w := range r.Warnings {
		if w.Kind == k {
			return true
		}
	}
	return false
}

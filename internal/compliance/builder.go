package compliance

import (
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/heatmap"
	"github.com/marianadeem755/VisionChroma-pro/internal/readability"
	"github.com/marianadeem755/VisionChroma-pro/internal/typography"
)

// Weights are the relative weights of the sub-scores.
type Weights struct {
	Contrast    float64 `koanf:"contrast"`
	Readability float64 `koanf:"readability"`
	Typography  float64 `koanf:"typography"`
}

// Config controls aggregation.
type Config struct {
	Level   colour.Level `koanf:"level"`
	Weights Weights      `koanf:"weights"`
	// SuggestionTarget is the ratio suggested foregrounds must reach.
	SuggestionTarget float64 `koanf:"suggestion_target"`
	MaxSuggestions   int     `koanf:"max_suggestions"`
}

// DefaultConfig grades against AA with equal weights.
func DefaultConfig() Config {
	return Config{
		Level:            colour.LevelAA,
		Weights:          Weights{Contrast: 1.0 / 3, Readability: 1.0 / 3, Typography: 1.0 / 3},
		SuggestionTarget: colour.ThresholdAAA,
		MaxSuggestions:   15,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := colour.ParseLevel(string(c.Level)); err != nil {
		return err
	}
	w := c.Weights
	if w.Contrast < 0 || w.Readability < 0 || w.Typography < 0 {
		return fmt.Errorf("score weights must not be negative")
	}
	if w.Contrast+w.Readability+w.Typography == 0 {
		return fmt.Errorf("at least one score weight must be positive")
	}
	if c.SuggestionTarget < colour.MinRatio || c.SuggestionTarget > colour.MaxRatio {
		return fmt.Errorf("suggestion target must be between %v and %v, got %v", colour.MinRatio, colour.MaxRatio, c.SuggestionTarget)
	}
	if c.MaxSuggestions < 0 {
		return fmt.Errorf("max suggestions must not be negative")
	}
	return nil
}

// Builder collects sub-analyses and assembles a Report. Each With method
// records one sub-analysis; Build fails until all of them are present.
type Builder struct {
	cfg      Config
	metadata Metadata

	palette     *colour.Palette
	pairs       []colour.ContrastPair
	hasPairs    bool
	mode        cvd.Mode
	model       string
	sims        map[cvd.Deficiency][]cvd.Result
	readability *readability.Result
	typography  *typography.Report
	heatmap     *heatmap.Grid
	warnings    []Warning
}

// NewBuilder creates a Builder.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// WithMetadata sets the run metadata.
func (b *Builder) WithMetadata(m Metadata) *Builder {
	b.metadata = m
	return b
}

// WithPalette sets the normalised palette.
func (b *Builder) WithPalette(p *colour.Palette) *Builder {
	b.palette = p
	return b
}

// WithContrast sets the pairwise contrast results, sorted worst first.
func (b *Builder) WithContrast(pairs []colour.ContrastPair) *Builder {
	b.pairs = pairs
	b.hasPairs = true
	return b
}

// WithSimulations sets the CVD results for every deficiency and the mode
// and model that produced them.
func (b *Builder) WithSimulations(mode cvd.Mode, model string, sims map[cvd.Deficiency][]cvd.Result) *Builder {
	b.mode = mode
	b.model = model
	b.sims = sims
	return b
}

// WithReadability sets the readability result.
func (b *Builder) WithReadability(r readability.Result) *Builder {
	b.readability = &r
	return b
}

// WithTypography sets the typography report.
func (b *Builder) WithTypography(r typography.Report) *Builder {
	b.typography = &r
	return b
}

// WithHeatmap sets the attention grid.
func (b *Builder) WithHeatmap(g heatmap.Grid) *Builder {
	b.heatmap = &g
	return b
}

// AddWarning records recoverable problems.
func (b *Builder) AddWarning(w ...Warning) *Builder {
	b.warnings = append(b.warnings, w...)
	return b
}

func (b *Builder) missing() []string {
	var missing []string
	if b.palette == nil {
		missing = append(missing, "palette")
	}
	if !b.hasPairs {
		missing = append(missing, "contrast")
	}
	if b.sims == nil {
		missing = append(missing, "simulations")
	}
	if b.readability == nil {
		missing = append(missing, "readability")
	}
	if b.typography == nil {
		missing = append(missing, "typography")
	}
	if b.heatmap == nil {
		missing = append(missing, "heatmap")
	}
	return missing
}

// Build assembles the report. The builder's inputs are copied so later
// calls on the builder do not affect the returned report.
func (b *Builder) Build() (*Report, error) {
	if missing := b.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid compliance config: %w", err)
	}

	r := &Report{
		Metadata:        b.metadata,
		Level:           b.cfg.Level,
		Palette:         clonePalette(b.palette),
		ContrastPairs:   slices.Clone(b.pairs),
		SimulationMode:  b.mode,
		SimulationModel: b.model,
		CVD:             cloneSimulations(b.sims),
		Readability:     cloneReadability(*b.readability),
		Typography:      cloneTypography(*b.typography),
		Heatmap:         cloneGrid(*b.heatmap),
		Warnings:        slices.Clone(b.warnings),
	}
	if r.ContrastPairs == nil {
		r.ContrastPairs = []colour.ContrastPair{}
	}
	if r.Warnings == nil {
		r.Warnings = []Warning{}
	}

	r.Scores = b.scores()
	r.Conformance = Grade(r.Scores.Overall)
	r.Findings = b.findings()
	r.Suggestions = b.suggestions()
	r.Recommendations = b.recommendations(r.Scores)
	return r, nil
}

func (b *Builder) scores() Scores {
	w := b.cfg.Weights
	s := Scores{
		Contrast:    SubScore{Status: StatusNotScored, Weight: w.Contrast},
		Readability: SubScore{Status: StatusNotScored, Weight: w.Readability},
		Typography:  SubScore{Status: StatusScored, Weight: w.Typography, Score: b.typography.ConsistencyScore},
	}

	if rate, ok := colour.PassRate(b.pairs, b.cfg.Level); ok {
		s.Contrast.Status = StatusScored
		s.Contrast.Score = 100 * rate
	}
	if b.readability.Scored() {
		s.Readability.Status = StatusScored
		s.Readability.Score = math.Max(0, math.Min(100, b.readability.Metrics.FleschReadingEase))
	}

	// Not-scored components drop out and the remaining weights renormalise.
	var sum, total float64
	for _, sub := range []SubScore{s.Contrast, s.Readability, s.Typography} {
		if sub.Scored() {
			sum += sub.Score * sub.Weight
			total += sub.Weight
		}
	}
	if total > 0 {
		s.Overall = sum / total
	}
	return s
}

func (b *Builder) findings() []Finding {
	threshold := b.cfg.Level.Threshold()
	findings := make([]Finding, 0)

	for _, p := range colour.Failing(b.pairs, b.cfg.Level) {
		pair := p
		findings = append(findings, Finding{
			Kind:    FindingContrast,
			Subject: p.String(),
			Message: fmt.Sprintf("fails %s, needs %.1f:1", b.cfg.Level, threshold),
			Margin:  p.Ratio - threshold,
			Pair:    &pair,
		})
	}
	for _, v := range b.typography.Violations {
		violation := v
		findings = append(findings, Finding{
			Kind:      FindingTypography,
			Subject:   string(v.Kind),
			Message:   v.String(),
			Margin:    v.Margin(),
			Violation: &violation,
		})
	}

	// Stable: equal margins keep first-occurrence order.
	slices.SortStableFunc(findings, func(a, b Finding) int {
		return cmp.Compare(a.Margin, b.Margin)
	})
	return findings
}

// simulatedRatio returns the contrast of a pair as seen under d, or false
// if either colour has no simulation.
func (b *Builder) simulatedRatio(p colour.ContrastPair, d cvd.Deficiency) (float64, bool) {
	var fg, bg *colour.Color
	for _, res := range b.sims[d] {
		if res.Original.Equal(p.Foreground) {
			fg = &res.Simulated
		}
		if res.Original.Equal(p.Background) {
			bg = &res.Simulated
		}
	}
	if fg == nil || bg == nil {
		return 0, false
	}
	return colour.Ratio(*fg, *bg), true
}

// suggestions lists pairs below the target ratio, in normal vision or under
// any simulated deficiency, with a black or white replacement foreground.
func (b *Builder) suggestions() []Suggestion {
	target := b.cfg.SuggestionTarget
	out := make([]Suggestion, 0)

	for _, p := range b.pairs {
		if len(out) >= b.cfg.MaxSuggestions {
			break
		}

		ratios := make(map[cvd.Deficiency]float64)
		below := p.Ratio < target
		for _, d := range cvd.AllDeficiencies {
			if r, ok := b.simulatedRatio(p, d); ok {
				ratios[d] = r
				below = below || r < target
			}
		}
		if !below {
			continue
		}
		if len(ratios) == 0 {
			ratios = nil
		}

		fg := colour.SuggestForeground(p.Background, target)
		out = append(out, Suggestion{
			Current:   p,
			Suggested: colour.NewContrastPair(fg, p.Background),
			CVDRatios: ratios,
		})
	}
	return out
}

// Recommendation texts.
const (
	RecShortenSentences  = "Shorten sentences to improve readability (aim for fewer than 20 words per sentence)"
	RecSimplifyLanguage  = "Simplify vocabulary and sentence structure"
	RecAddText           = "Add more text content so readability can be measured"
	RecAddTopLevel       = "Add an H1 heading as the main page heading (only one per page)"
	RecSingleTopLevel    = "Use only one H1 per page; use H2-H6 for subheadings"
	RecNoSkippedLevels   = "Do not skip heading levels; step down one level at a time"
	RecFewerFontSizes    = "Reduce font size variations to 4-6 sizes for visual consistency"
	RecFewerFontFamilies = "Limit the page to two or three font families"
	RecFixContrast       = "Increase contrast for the failing colour pairs listed in the findings"
	RecCVDContrast       = "Some pairs lose contrast under colour vision deficiencies; avoid relying on hue alone"
	RecLooksGood         = "No major accessibility issues detected"
)

// maxWordsPerSentence is the sentence length above which shorter sentences
// are recommended.
const maxWordsPerSentence = 20

func (b *Builder) recommendations(s Scores) []string {
	var recs []string

	if s.Contrast.Scored() && s.Contrast.Score < 100 {
		recs = append(recs, RecFixContrast)
	}
	if b.cvdLoss() {
		recs = append(recs, RecCVDContrast)
	}

	switch rd := b.readability; {
	case !rd.Scored():
		recs = append(recs, RecAddText)
	default:
		if rd.WordsPerSentence > maxWordsPerSentence {
			recs = append(recs, RecShortenSentences)
		}
		if rd.Metrics.FleschReadingEase < 50 {
			recs = append(recs, RecSimplifyLanguage)
		}
	}

	t := b.typography
	if t.Has(typography.KindMissingTopLevel) {
		recs = append(recs, RecAddTopLevel)
	}
	if t.Has(typography.KindMultipleTopLevel) {
		recs = append(recs, RecSingleTopLevel)
	}
	if t.Has(typography.KindSkippedLevel) {
		recs = append(recs, RecNoSkippedLevels)
	}
	if t.Has(typography.KindFontSizeCount) {
		recs = append(recs, RecFewerFontSizes)
	}
	if t.Has(typography.KindFontFamilyCount) {
		recs = append(recs, RecFewerFontFamilies)
	}

	if len(recs) == 0 {
		recs = append(recs, RecLooksGood)
	}
	return recs
}

// cvdLoss reports whether a pair that passes the level in normal vision
// fails it under some deficiency.
func (b *Builder) cvdLoss() bool {
	threshold := b.cfg.Level.Threshold()
	for _, p := range b.pairs {
		if !p.Passes(b.cfg.Level) {
			continue
		}
		for _, d := range cvd.AllDeficiencies {
			if r, ok := b.simulatedRatio(p, d); ok && r < threshold {
				return true
			}
		}
	}
	return false
}

func clonePalette(p *colour.Palette) *colour.Palette {
	return &colour.Palette{Entries: slices.Clone(p.Entries), Skipped: p.Skipped}
}

func cloneSimulations(sims map[cvd.Deficiency][]cvd.Result) map[cvd.Deficiency][]cvd.Result {
	out := maps.Clone(sims)
	for d, rs := range out {
		out[d] = slices.Clone(rs)
	}
	return out
}

func cloneReadability(r readability.Result) readability.Result {
	if r.Metrics != nil {
		m := *r.Metrics
		r.Metrics = &m
	}
	return r
}

func cloneTypography(r typography.Report) typography.Report {
	r.HeadingSequence = slices.Clone(r.HeadingSequence)
	r.Violations = slices.Clone(r.Violations)
	return r
}

func cloneGrid(g heatmap.Grid) heatmap.Grid {
	if g.Weights != nil {
		rows := make([][]float64, len(g.Weights))
		for i, row := range g.Weights {
			rows[i] = slices.Clone(row)
		}
		g.Weights = rows
	}
	return g
}

package colour

import (
	"cmp"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Level is a WCAG contrast conformance level.
type Level string

// WCAG 2.1 contrast levels.
const (
	LevelAALarge Level = "AA_LARGE"
	LevelAA      Level = "AA"
	LevelAAA     Level = "AAA"
)

// WCAG minimum contrast ratios.
const (
	ThresholdAALarge = 3.0
	ThresholdAA      = 4.5
	ThresholdAAA     = 7.0
)

// AllLevels lists the levels from least to most strict.
var AllLevels = []Level{LevelAALarge, LevelAA, LevelAAA}

// Threshold returns the minimum ratio for the level.
func (l Level) Threshold() float64 {
	switch l {
	case LevelAALarge:
		return ThresholdAALarge
	case LevelAAA:
		return ThresholdAAA
	default:
		return ThresholdAA
	}
}

// ParseLevel parses a level name such as "AA" or "aa_large".
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, l := range AllLevels {
		if string(l) == name {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid WCAG level: %s (valid: AA_LARGE, AA, AAA)", s)
}

// Levels is the set of levels a ratio satisfies, ordered least strict first.
type Levels []Level

// Has reports whether l is in the set.
func (ls Levels) Has(l Level) bool {
	return slices.Contains(ls, l)
}

// Classify returns every level the ratio passes.
// A ratio passing AAA also passes AA and AA_LARGE.
func Classify(ratio float64) Levels {
	levels := Levels{}
	for _, l := range AllLevels {
		if ratio >= l.Threshold() {
			levels = append(levels, l)
		}
	}
	return levels
}

// ContrastPair is the contrast evaluation of one foreground/background pair.
type ContrastPair struct {
	Foreground   Color   `json:"foreground" yaml:"foreground"`
	Background   Color   `json:"background" yaml:"background"`
	Ratio        float64 `json:"ratio" yaml:"ratio"`
	LevelsPassed Levels  `json:"levels_passed" yaml:"levels_passed"`
}

// NewContrastPair computes the ratio and classification for fg on bg.
func NewContrastPair(fg, bg Color) ContrastPair {
	r := Ratio(fg, bg)
	return ContrastPair{
		Foreground:   fg,
		Background:   bg,
		Ratio:        r,
		LevelsPassed: Classify(r),
	}
}

// Passes reports whether the pair meets the level.
func (p ContrastPair) Passes(l Level) bool {
	return p.LevelsPassed.Has(l)
}

// String returns a short description such as "#777777 on #ffffff (4.48:1)".
func (p ContrastPair) String() string {
	return fmt.Sprintf("%s on %s (%.2f:1)", p.Foreground.Hex(), p.Background.Hex(), p.Ratio)
}

// AnalyzeOption configures AnalyzeAll.
type AnalyzeOption func(*analyzeOptions)

type analyzeOptions struct {
	background *Color
	workers    int
}

// WithBackground also pairs every palette colour against the page background.
func WithBackground(bg Color) AnalyzeOption {
	return func(o *analyzeOptions) {
		o.background = &bg
	}
}

// WithWorkers bounds the number of goroutines computing pairs.
func WithWorkers(n int) AnalyzeOption {
	return func(o *analyzeOptions) {
		o.workers = n
	}
}

// AnalyzeAll evaluates every unordered pair in the palette.
// Entry i is the foreground and entry j the background for i < j, giving
// n(n-1)/2 pairs. If a page background is supplied and is not already in the
// palette, each colour is also paired against it. Pairs are computed
// concurrently and returned sorted ascending by ratio, so the worst pairs
// come first; ties keep generation order.
func AnalyzeAll(p *Palette, opts ...AnalyzeOption) []ContrastPair {
	o := analyzeOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	colors := p.Colors()
	n := len(colors)

	type job struct{ fg, bg Color }
	jobs := make([]job, 0, n*(n-1)/2+n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs = append(jobs, job{fg: colors[i], bg: colors[j]})
		}
	}
	if o.background != nil && !p.Contains(*o.background) {
		for _, c := range colors {
			jobs = append(jobs, job{fg: c, bg: *o.background})
		}
	}

	pairs := make([]ContrastPair, len(jobs))
	chunk := (len(jobs) + o.workers - 1) / o.workers

	var g errgroup.Group
	g.SetLimit(o.workers)
	for start := 0; start < len(jobs); start += chunk {
		end := min(start+chunk, len(jobs))
		g.Go(func() error {
			for k := start; k < end; k++ {
				pairs[k] = NewContrastPair(jobs[k].fg, jobs[k].bg)
			}
			return nil
		})
	}
	// Workers never fail; Wait is the barrier before sorting.
	_ = g.Wait()

	slices.SortStableFunc(pairs, func(a, b ContrastPair) int {
		return cmp.Compare(a.Ratio, b.Ratio)
	})
	return pairs
}

// WorstPairs returns up to n of the lowest-contrast pairs from a sorted slice.
func WorstPairs(pairs []ContrastPair, n int) []ContrastPair {
	if n < 0 || n > len(pairs) {
		n = len(pairs)
	}
	return slices.Clone(pairs[:n])
}

// Failing returns the pairs that do not meet the level, preserving order.
func Failing(pairs []ContrastPair, l Level) []ContrastPair {
	var out []ContrastPair
	for _, p := range pairs {
		if !p.Passes(l) {
			out = append(out, p)
		}
	}
	return out
}

// PassRate returns the fraction of pairs meeting the level.
// The second return value is false when there are no pairs.
func PassRate(pairs []ContrastPair, l Level) (float64, bool) {
	if len(pairs) == 0 {
		return 0, false
	}
	passed := 0
	for _, p := range pairs {
		if p.Passes(l) {
			passed++
		}
	}
	return float64(passed) / float64(len(pairs)), true
}

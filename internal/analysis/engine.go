// Package analysis runs every accessibility check over one page and
// assembles the compliance report.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
	"github.com/marianadeem755/VisionChroma-pro/internal/config"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/heatmap"
	"github.com/marianadeem755/VisionChroma-pro/internal/input"
	"github.com/marianadeem755/VisionChroma-pro/internal/metrics"
	"github.com/marianadeem755/VisionChroma-pro/internal/readability"
	"github.com/marianadeem755/VisionChroma-pro/internal/typography"
	"github.com/marianadeem755/VisionChroma-pro/internal/version"
)

// Input is everything known about one page.
type Input struct {
	URL    string
	Tokens []colour.Token
	// Background is the page background colour token; empty if unknown.
	Background string
	Corpus     readability.Corpus
	Headings   []typography.Heading
	Fonts      typography.Fonts
	Layout     heatmap.Layout
}

// FromDocument converts a loaded page document.
func FromDocument(doc *input.Document) Input {
	return Input{
		URL:        doc.URL,
		Tokens:     doc.Tokens(),
		Background: doc.PageBackground,
		Corpus:     doc.Corpus(),
		Headings:   doc.Headings,
		Fonts:      doc.Fonts,
		Layout:     doc.HeatmapLayout(),
	}
}

// Builder provides a fluent interface for constructing an Engine.
type Builder struct {
	cfg       *config.Config
	logger    hclog.Logger
	metrics   *metrics.Metrics
	simulator *cvd.Simulator
	now       func() time.Time
}

// NewBuilder creates a builder with the default configuration.
func NewBuilder() *Builder {
	return &Builder{
		cfg:    config.Default(),
		logger: hclog.NewNullLogger(),
		now:    time.Now,
	}
}

// WithConfig sets the configuration.
func (b *Builder) WithConfig(cfg *config.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetrics records analysis metrics into m.
func (b *Builder) WithMetrics(m *metrics.Metrics) *Builder {
	b.metrics = m
	return b
}

// WithSimulator uses s instead of building one from the configuration.
// The engine does not close a simulator it did not create.
func (b *Builder) WithSimulator(s *cvd.Simulator) *Builder {
	b.simulator = s
	return b
}

// WithClock sets the report timestamp source.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration and constructs the Engine.
func (b *Builder) Build() (*Engine, error) {
	if errs := b.cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	estimator, err := heatmap.NewEstimator(b.cfg.Heatmap)
	if err != nil {
		return nil, err
	}

	workers := b.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		cfg:       b.cfg,
		logger:    b.logger,
		metrics:   b.metrics,
		auditor:   typography.NewAuditor(b.cfg.Typography),
		estimator: estimator,
		workers:   workers,
		now:       b.now,
		simulator: b.simulator,
	}
	if e.simulator == nil {
		e.simulator = cvd.New(
			cvd.WithBackend(b.cfg.Backend()),
			cvd.WithPluginPath(b.cfg.Vision.PluginPath),
			cvd.WithSeverity(b.cfg.Vision.Severity),
			cvd.WithLogger(b.logger.Named("cvd")),
			cvd.WithWorkers(workers),
		)
		e.ownsSimulator = true
	}
	return e, nil
}

// Engine analyses pages. It holds no per-analysis state, so one Engine may
// run concurrent analyses.
type Engine struct {
	cfg       *config.Config
	logger    hclog.Logger
	metrics   *metrics.Metrics
	auditor   *typography.Auditor
	estimator *heatmap.Estimator
	workers   int
	now       func() time.Time

	simulator     *cvd.Simulator
	ownsSimulator bool
}

// Simulator returns the engine's CVD simulator.
func (e *Engine) Simulator() *cvd.Simulator {
	return e.simulator
}

// Close releases the simulator's plugin process, if any.
func (e *Engine) Close() error {
	if e.ownsSimulator {
		return e.simulator.Close()
	}
	return nil
}

// Analyze runs every check over in. Problems with individual inputs become
// report warnings; the only error is a done context.
func (e *Engine) Analyze(ctx context.Context, in Input) (*compliance.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis not started: %w", err)
	}
	start := time.Now()
	b := compliance.NewBuilder(e.cfg.Compliance)

	stage := e.stageTimer()

	palette, parseErrs := colour.Dedupe(in.Tokens)
	for _, err := range parseErrs {
		b.AddWarning(parseWarning(err))
	}
	if e.metrics != nil {
		e.metrics.AddParseErrors(len(parseErrs))
	}
	b.WithPalette(palette)

	opts := []colour.AnalyzeOption{colour.WithWorkers(e.workers)}
	simPalette := palette
	if in.Background != "" {
		bg, err := colour.Normalize(in.Background)
		if err != nil {
			b.AddWarning(compliance.Warning{Kind: compliance.WarningParseError, Subject: "page_background", Message: err.Error()})
		} else {
			opts = append(opts, colour.WithBackground(bg))
			if !palette.Contains(bg) {
				simPalette = &colour.Palette{Entries: append(append([]colour.PaletteEntry{}, palette.Entries...),
					colour.PaletteEntry{Color: bg, Source: colour.SourceBackground})}
			}
		}
	}
	stage(metrics.StageNormalize)

	pairs := colour.AnalyzeAll(palette, opts...)
	b.WithContrast(pairs)
	if e.metrics != nil {
		fail := len(colour.Failing(pairs, e.cfg.Compliance.Level))
		e.metrics.AddContrastPairs(len(pairs)-fail, fail)
	}
	stage(metrics.StageContrast)

	sims, err := e.simulator.SimulateAll(ctx, simPalette)
	if err != nil {
		return nil, err
	}
	b.WithSimulations(e.simulator.Mode(), e.simulator.ModelName(), sims)
	b.AddWarning(e.simulationWarnings(sims)...)
	stage(metrics.StageSimulate)

	rd := readability.Analyze(in.Corpus)
	if !rd.Scored() {
		b.AddWarning(compliance.Warning{
			Kind:    compliance.WarningInsufficientContent,
			Subject: "readability",
			Message: readability.ErrInsufficientContent.Error(),
		})
	}
	b.WithReadability(rd)
	stage(metrics.StageReadability)

	typo, headingErrs := e.auditor.Audit(in.Headings, in.Fonts)
	for _, err := range headingErrs {
		b.AddWarning(compliance.Warning{Kind: compliance.WarningInvalidHeading, Subject: "headings", Message: err.Error()})
	}
	b.WithTypography(typo)
	stage(metrics.StageTypography)

	grid, layoutErrs := e.estimator.Estimate(in.Layout)
	for _, err := range layoutErrs {
		b.AddWarning(compliance.Warning{Kind: compliance.WarningHeatmapElement, Subject: "layout", Message: err.Error()})
	}
	b.WithHeatmap(grid)
	stage(metrics.StageHeatmap)

	b.WithMetadata(compliance.Metadata{
		Tool:        version.Name,
		Version:     version.Short(),
		GeneratedAt: e.now().UTC(),
		URL:         in.URL,
	})
	report, err := b.Build()
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.ObserveStage(metrics.StageTotal, time.Since(start).Seconds())
		e.metrics.ObserveAnalysis(string(report.Conformance), report.Scores.Overall)
	}
	e.logger.Info("analysis complete",
		"url", in.URL,
		"colours", palette.Len(),
		"pairs", len(pairs),
		"score", fmt.Sprintf("%.1f", report.Scores.Overall),
		"level", report.Conformance,
		"warnings", len(report.Warnings))
	return report, nil
}

// stageTimer returns a func that logs and records the time since its
// previous call.
func (e *Engine) stageTimer() func(name string) {
	last := time.Now()
	return func(name string) {
		elapsed := time.Since(last)
		last = time.Now()
		e.logger.Debug("stage complete", "stage", name, "duration", elapsed)
		if e.metrics != nil {
			e.metrics.ObserveStage(name, elapsed.Seconds())
		}
	}
}

func parseWarning(err error) compliance.Warning {
	w := compliance.Warning{Kind: compliance.WarningParseError, Message: err.Error()}
	var pe *colour.ParseError
	if errors.As(err, &pe) {
		w.Subject = pe.Token
		w.Message = colour.ErrUnrecognisedColour.Error()
	}
	return w
}

// simulationWarnings reports a degraded simulator once and each per-colour
// fallback separately.
func (e *Engine) simulationWarnings(sims map[cvd.Deficiency][]cvd.Result) []compliance.Warning {
	var out []compliance.Warning
	if err := e.simulator.Degraded(); err != nil {
		out = append(out, compliance.Warning{
			Kind:    compliance.WarningSimulationFallback,
			Subject: "simulator",
			Message: "perceptual model unavailable, all colours simulated with the fallback model: " + err.Error(),
		})
	}

	for _, d := range cvd.AllDeficiencies {
		for _, res := range sims[d] {
			if res.ModeUsed == cvd.ModeFallback && e.metrics != nil {
				e.metrics.IncFallback(string(d))
			}
			if res.FallbackReason == "" {
				continue
			}
			out = append(out, compliance.Warning{
				Kind:    compliance.WarningSimulationFallback,
				Subject: fmt.Sprintf("%s/%s", res.Original.Hex(), d),
				Message: res.FallbackReason,
			})
		}
	}
	return out
}

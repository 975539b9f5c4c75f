package cvd

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

// Backend selects the perceptual model implementation.
type Backend string

// Supported backends.
const (
	// BackendBuiltin is the in-process LMS model.
	BackendBuiltin Backend = "builtin"
	// BackendPlugin runs a model from a vision plugin binary.
	BackendPlugin Backend = "plugin"
	// BackendFallback disables the perceptual model entirely.
	BackendFallback Backend = "fallback"
)

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendBuiltin, BackendPlugin, BackendFallback:
		return b, nil
	}
	return "", fmt.Errorf("invalid vision backend: %s (valid: builtin, plugin, fallback)", s)
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithBackend selects the perceptual backend.
func WithBackend(b Backend) Option {
	return func(s *Simulator) { s.backend = b }
}

// WithPluginPath sets the vision plugin binary used by BackendPlugin.
func WithPluginPath(path string) Option {
	return func(s *Simulator) { s.pluginPath = path }
}

// WithSeverity sets the perceptual model severity in [0,1].
func WithSeverity(severity float64) Option {
	return func(s *Simulator) { s.severity = severity }
}

// WithModel uses m as the perceptual model instead of a named backend.
func WithModel(m ColorVisionModel) Option {
	return func(s *Simulator) { s.custom = m }
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithWorkers bounds per-colour parallelism.
func WithWorkers(n int) Option {
	return func(s *Simulator) { s.workers = n }
}

// Simulator produces CVD simulations for palettes. The perceptual model is
// selected once at construction; if it cannot be initialised or fails its
// probe, every colour is simulated with the fallback model and Degraded
// reports why.
type Simulator struct {
	backend    Backend
	pluginPath string
	severity   float64
	custom     ColorVisionModel
	logger     hclog.Logger
	workers    int

	perceptual ColorVisionModel
	fallback   FallbackModel
	degraded   error
	closer     io.Closer
}

// New creates a Simulator. It never fails: an unavailable perceptual
// backend degrades to fallback mode.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		backend:  BackendBuiltin,
		severity: 1,
		logger:   hclog.NewNullLogger(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}

	model, err := s.initModel()
	if err == nil {
		err = probe(model)
	}
	if err != nil {
		s.degraded = err
		if s.closer != nil {
			_ = s.closer.Close()
			s.closer = nil
		}
		s.logger.Warn("perceptual model unavailable, using fallback", "backend", s.backend, "error", err)
		return s
	}

	s.perceptual = model
	s.logger.Debug("perceptual model ready", "model", model.Name())
	return s
}

func (s *Simulator) initModel() (ColorVisionModel, error) {
	if s.custom != nil {
		return s.custom, nil
	}
	switch s.backend {
	case BackendBuiltin:
		return &PerceptualModel{Severity: s.severity}, nil
	case BackendPlugin:
		m, err := NewPluginModel(s.pluginPath, s.severity, s.logger)
		if err != nil {
			return nil, err
		}
		s.closer = m
		return m, nil
	case BackendFallback:
		return nil, fmt.Errorf("fallback backend selected")
	}
	return nil, fmt.Errorf("invalid vision backend: %s", s.backend)
}

// probe checks that a model can simulate a known colour for every deficiency.
func probe(m ColorVisionModel) error {
	for _, d := range AllDeficiencies {
		if _, err := m.Simulate(colour.RGB(200, 40, 40), d); err != nil {
			return fmt.Errorf("probe %s: %w", d, err)
		}
	}
	return nil
}

// Mode reports the mode selected at construction.
func (s *Simulator) Mode() Mode {
	if s.perceptual == nil {
		return ModeFallback
	}
	return ModePerceptual
}

// Degraded returns the reason the simulator is in fallback mode, or nil.
func (s *Simulator) Degraded() error {
	return s.degraded
}

// ModelName names the active model.
func (s *Simulator) ModelName() string {
	if s.perceptual == nil {
		return s.fallback.Name()
	}
	return s.perceptual.Name()
}

// Close releases any plugin process.
func (s *Simulator) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// SimulateColor simulates one colour. A perceptual failure is retried with
// the fallback model and recorded in the result.
func (s *Simulator) SimulateColor(c colour.Color, d Deficiency) Result {
	res := Result{Original: c, Deficiency: d}

	if s.perceptual != nil {
		out, err := s.perceptual.Simulate(c, d)
		if err == nil {
			res.Simulated = out
			res.ModeUsed = ModePerceptual
			return res
		}
		res.FallbackReason = err.Error()
		s.logger.Warn("perceptual simulation failed, using fallback", "colour", c.Hex(), "deficiency", d, "error", err)
	}

	out, err := s.fallback.Simulate(c, d)
	if err != nil {
		// Unknown deficiency: report the colour unchanged.
		out = c
		res.FallbackReason = err.Error()
	}
	res.Simulated = out
	res.ModeUsed = ModeFallback
	return res
}

// Simulate simulates every palette colour under d. Results keep palette
// order. The only error is a cancelled context.
func (s *Simulator) Simulate(ctx context.Context, p *colour.Palette, d Deficiency) ([]Result, error) {
	colors := p.Colors()
	results := make([]Result, len(colors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, c := range colors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.SimulateColor(c, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SimulateAll simulates the palette under every deficiency.
func (s *Simulator) SimulateAll(ctx context.Context, p *colour.Palette) (map[Deficiency][]Result, error) {
	all := make(map[Deficiency][]Result, len(AllDeficiencies))
	for _, d := range AllDeficiencies {
		results, err := s.Simulate(ctx, p, d)
		if err != nil {
			return nil, fmt.Errorf("simulating %s: %w", d, err)
		}
		all[d] = results
	}
	return all, nil
}

// Ratio returns the WCAG contrast ratio of fg on bg as perceived under d.
func (s *Simulator) Ratio(fg, bg colour.Color, d Deficiency) float64 {
	return colour.Ratio(s.SimulateColor(fg, d).Simulated, s.SimulateColor(bg, d).Simulated)
}

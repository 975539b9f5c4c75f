// Package metrics provides Prometheus collectors for analysis runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	MetricAnalysesTotal            = "visionchroma_analyses_total"
	MetricStageDuration            = "visionchroma_stage_duration_seconds"
	MetricParseErrorsTotal         = "visionchroma_parse_errors_total"
	MetricSimulationFallbacksTotal = "visionchroma_simulation_fallbacks_total"
	MetricContrastPairsTotal       = "visionchroma_contrast_pairs_total"
	MetricOverallScore             = "visionchroma_overall_score"
)

// Analysis stages for duration labels.
const (
	StageNormalize   = "normalize"
	StageContrast    = "contrast"
	StageSimulate    = "simulate"
	StageReadability = "readability"
	StageTypography  = "typography"
	StageHeatmap     = "heatmap"
	StageTotal       = "total"
)

// Contrast pair results.
const (
	ResultPass = "pass"
	ResultFail = "fail"
)

// Metrics contains the analysis collectors. All methods are safe for
// concurrent use.
type Metrics struct {
	analyses      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	parseErrors   prometheus.Counter
	fallbacks     *prometheus.CounterVec
	contrastPairs *prometheus.CounterVec
	overallScore  prometheus.Gauge
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricAnalysesTotal,
				Help: "Total number of completed analyses by compliance level",
			},
			[]string{"compliance_level"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricStageDuration,
				Help:    "Histogram of analysis stage duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		parseErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricParseErrorsTotal,
				Help: "Total number of colour tokens that failed to parse",
			},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSimulationFallbacksTotal,
				Help: "Total number of colours simulated with the fallback model by deficiency",
			},
			[]string{"deficiency"},
		),
		contrastPairs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricContrastPairsTotal,
				Help: "Total number of evaluated contrast pairs by result at the selected level",
			},
			[]string{"result"},
		),
		overallScore: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricOverallScore,
				Help: "Overall compliance score of the most recent analysis",
			},
		),
	}
}

// Collectors returns every collector.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.analyses,
		m.stageDuration,
		m.parseErrors,
		m.fallbacks,
		m.contrastPairs,
		m.overallScore,
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// AddParseErrors counts unparseable colour tokens.
func (m *Metrics) AddParseErrors(n int) {
	m.parseErrors.Add(float64(n))
}

// IncFallback counts one fallback simulation.
func (m *Metrics) IncFallback(deficiency string) {
	m.fallbacks.WithLabelValues(deficiency).Inc()
}

// AddContrastPairs counts passing and failing pairs.
func (m *Metrics) AddContrastPairs(pass, fail int) {
	m.contrastPairs.WithLabelValues(ResultPass).Add(float64(pass))
	m.contrastPairs.WithLabelValues(ResultFail).Add(float64(fail))
}

// ObserveAnalysis records a completed analysis.
func (m *Metrics) ObserveAnalysis(level string, score float64) {
	m.analyses.WithLabelValues(level).Inc()
	m.overallScore.Set(score)
}

// WriteTextfile registers the collectors with a fresh registry and writes
// them in the text exposition format, for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

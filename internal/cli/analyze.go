package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marianadeem755/VisionChroma-pro/internal/analysis"
	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/input"
	"github.com/marianadeem755/VisionChroma-pro/internal/metrics"
	"github.com/marianadeem755/VisionChroma-pro/internal/report"
)

type analyzeOptions struct {
	format      string
	output      string
	level       string
	metricsFile string
	worstPairs  int
	color       string
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <document>",
		Short: "Analyse a page document and print its compliance report",
		Long: `Run every accessibility check over a page document and print the report.

The document is JSON or YAML and may be gzip, bzip2 or xz compressed; use
"-" to read standard input.

Examples:
  # Print a terminal summary
  visionchroma analyze page.json

  # Write a Markdown report checked against AAA
  visionchroma analyze --level AAA --format markdown -o report.md page.yaml

  # Analyse a compressed document with the fallback simulator
  visionchroma analyze --backend fallback --format json page.json.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, global, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatText), "output format (json, yaml, markdown, text)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&opts.level, "level", "l", "", "WCAG level to check (AA_LARGE, AA, AAA)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	flags.IntVar(&opts.worstPairs, "worst", report.DefaultWorstPairs, "contrast pairs to list in text and markdown output")
	flags.StringVar(&opts.color, "color", "auto", "colour swatches in text output (auto, always, never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, global *globalOptions, opts *analyzeOptions, path string) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	useColor, err := colorMode(opts.color, cmd)
	if err != nil {
		return err
	}

	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.level != "" {
		level, err := colour.ParseLevel(opts.level)
		if err != nil {
			return err
		}
		cfg.Compliance.Level = level
	}
	if opts.metricsFile != "" {
		cfg.MetricsFile = opts.metricsFile
	}

	logger := global.logger(cmd)

	var doc *input.Document
	if path == input.Stdin {
		doc, err = input.Read(cmd.InOrStdin(), "stdin", cfg.MaxInputSize)
	} else {
		doc, err = input.Load(path, cfg.MaxInputSize)
	}
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	logger.Debug("document loaded", "path", path, "colors", len(doc.Colors), "headings", len(doc.Headings))

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	builder := analysis.NewBuilder().WithConfig(cfg).WithLogger(logger)
	if m != nil {
		builder = builder.WithMetrics(m)
	}
	engine, err := builder.Build()
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, cancel := global.context(cmd)
	defer cancel()

	rep, err := engine.Analyze(ctx, analysis.FromDocument(doc))
	if err != nil {
		return err
	}
	for _, w := range rep.Warnings {
		logger.Warn(w.Message, "kind", w.Kind, "subject", w.Subject)
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, rep, format, report.Options{Color: useColor && opts.output == "", WorstPairs: opts.worstPairs}); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := writeOutput(cmd, opts.output, buf.Bytes()); err != nil {
		return err
	}

	if m != nil {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		logger.Debug("metrics written", "path", cfg.MetricsFile)
	}
	return nil
}

// colorMode resolves a --color flag value.
func colorMode(mode string, cmd *cobra.Command) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return isTerminal(cmd.OutOrStdout()), nil
	}
	return false, fmt.Errorf("invalid color mode: %s (valid: auto, always, never)", mode)
}

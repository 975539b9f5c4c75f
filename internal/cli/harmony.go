package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/report"
)

type harmonyOptions struct {
	harmony    string
	background string
	level      string
	format     string
	color      string
}

// harmonyResult is one harmony in JSON output.
type harmonyResult struct {
	Harmony colour.Harmony        `json:"harmony"`
	Colors  []colour.Color        `json:"colors"`
	Pairs   []colour.ContrastPair `json:"pairs"`
	Passing int                   `json:"passing"`
}

func newHarmonyCmd(global *globalOptions) *cobra.Command {
	opts := &harmonyOptions{}

	cmd := &cobra.Command{
		Use:   "harmony <colour>",
		Short: "Build colour harmonies and check their contrast",
		Long: `Build complementary, triadic, analogous and tetradic palettes by rotating
the hue of a base colour, then check the WCAG contrast of every pair in each
palette.

Examples:
  # Every harmony around a brand colour
  visionchroma harmony '#3366cc'

  # Triadic only, also checked against the page background
  visionchroma harmony --harmony triadic --background white '#e41a1c'

  # Machine-readable output
  visionchroma harmony --format json 'hsl(200, 70%, 40%)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmony(cmd, global, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.harmony, "harmony", "H", "", "only build this harmony (complementary, triadic, analogous, tetradic)")
	flags.StringVarP(&opts.background, "background", "b", "", "also check every colour against this background")
	flags.StringVarP(&opts.level, "level", "l", string(colour.LevelAA), "WCAG level to check (AA_LARGE, AA, AAA)")
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatText), "output format (json, text)")
	flags.StringVar(&opts.color, "color", "auto", "colour swatches (auto, always, never)")

	return cmd
}

func runHarmony(cmd *cobra.Command, global *globalOptions, opts *harmonyOptions, arg string) error {
	if opts.format != string(report.FormatText) && opts.format != string(report.FormatJSON) {
		return fmt.Errorf("invalid format: %s (valid: json, text)", opts.format)
	}
	level, err := colour.ParseLevel(opts.level)
	if err != nil {
		return err
	}
	useColor, err := colorMode(opts.color, cmd)
	if err != nil {
		return err
	}
	harmonies := colour.AllHarmonies
	if opts.harmony != "" {
		h, err := colour.ParseHarmony(opts.harmony)
		if err != nil {
			return err
		}
		harmonies = []colour.Harmony{h}
	}
	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}

	base, err := colour.Normalize(arg)
	if err != nil {
		return err
	}

	analyzeOpts := []colour.AnalyzeOption{}
	if cfg.Workers > 0 {
		analyzeOpts = append(analyzeOpts, colour.WithWorkers(cfg.Workers))
	}
	if opts.background != "" {
		bg, err := colour.Normalize(opts.background)
		if err != nil {
			return fmt.Errorf("invalid background: %w", err)
		}
		analyzeOpts = append(analyzeOpts, colour.WithBackground(bg))
	}

	results := make([]harmonyResult, 0, len(harmonies))
	for _, h := range harmonies {
		members := h.Colors(base)
		pairs := colour.AnalyzeAll(colour.NewPalette(members...), analyzeOpts...)
		results = append(results, harmonyResult{
			Harmony: h,
			Colors:  members,
			Pairs:   pairs,
			Passing: len(pairs) - len(colour.Failing(pairs, level)),
		})
	}
	global.logger(cmd).Debug("harmonies built", "base", base.Hex(), "count", len(results))

	if opts.format == string(report.FormatJSON) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
		return writeOutput(cmd, "", buf.Bytes())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Base: %s\n", swatchHex(base, useColor))
	for _, res := range results {
		hexes := make([]string, len(res.Colors))
		for i, c := range res.Colors {
			hexes[i] = swatchHex(c, useColor)
		}
		fmt.Fprintf(&b, "\n%s: %s\n", res.Harmony, strings.Join(hexes, " "))
		if len(res.Pairs) == 0 {
			b.WriteString("No distinct colours; the base has no hue to rotate.\n")
			continue
		}
		b.WriteString(pairTable(res.Pairs, level, useColor).Render())
		b.WriteString(passSummary(res.Pairs, level) + "\n")
	}
	return writeOutput(cmd, "", []byte(b.String()))
}

func swatchHex(c colour.Color, useColor bool) string {
	if useColor {
		return colour.FormatWithPreview(c, 2)
	}
	return c.Hex()
}

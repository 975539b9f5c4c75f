package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/image"
	"github.com/marianadeem755/VisionChroma-pro/internal/report"
)

type contrastOptions struct {
	image      string
	colours    int
	seed       uint64
	background string
	level      string
	failing    bool
	color      string
}

func newContrastCmd(global *globalOptions) *cobra.Command {
	opts := &contrastOptions{}

	cmd := &cobra.Command{
		Use:   "contrast [colour...]",
		Short: "Check WCAG contrast between colours",
		Long: `Check the WCAG 2.x contrast ratio of every pair of colours.

Colours may be hex (#fff, #ffffff, #ffffff80), rgb()/rgba(), hsl()/hsla() or
CSS names. With --image, the palette is extracted from a screenshot instead.

Examples:
  # Check two colours
  visionchroma contrast '#777777' white

  # Check a palette against a page background, showing only failures
  visionchroma contrast --background '#fafafa' --failing red navy 'rgb(0,128,0)'

  # Extract eight colours from a screenshot and check them against AAA
  visionchroma contrast --image screenshot.png --colours 8 --level AAA`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContrast(cmd, global, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.image, "image", "i", "", "extract colours from this image")
	flags.IntVarP(&opts.colours, "colours", "c", colour.DefaultExtractCount, fmt.Sprintf("colours to extract with --image (1-%d)", colour.MaxExtractCount))
	flags.Uint64Var(&opts.seed, "seed", 1, "random seed for image extraction")
	flags.StringVarP(&opts.background, "background", "b", "", "also check every colour against this background")
	flags.StringVarP(&opts.level, "level", "l", string(colour.LevelAA), "WCAG level to check (AA_LARGE, AA, AAA)")
	flags.BoolVar(&opts.failing, "failing", false, "only list failing pairs")
	flags.StringVar(&opts.color, "color", "auto", "colour swatches (auto, always, never)")

	return cmd
}

func runContrast(cmd *cobra.Command, global *globalOptions, opts *contrastOptions, args []string) error {
	level, err := colour.ParseLevel(opts.level)
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
	logger := global.logger(cmd)

	palette, err := paletteFromArgs(args, opts.image, opts.colours, opts.seed)
	if err != nil {
		return err
	}
	if palette.Skipped > 0 {
		logger.Warn("skipped unrecognised colours", "count", palette.Skipped)
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

	pairs := colour.AnalyzeAll(palette, analyzeOpts...)
	if len(pairs) == 0 {
		return errors.New("need at least two distinct colours")
	}
	shown := pairs
	if opts.failing {
		shown = colour.Failing(pairs, level)
	}

	var b strings.Builder
	b.WriteString(pairTable(shown, level, useColor).Render())
	b.WriteString("\n" + passSummary(pairs, level) + "\n")
	return writeOutput(cmd, "", []byte(b.String()))
}

// pairTable lists contrast pairs with their ratio and result at level.
func pairTable(pairs []colour.ContrastPair, level colour.Level, useColor bool) *report.Table {
	table := report.NewTable([]string{"Sample", "Foreground", "Background", "Ratio", "Levels", string(level)})
	for _, p := range pairs {
		sample := "Aa"
		if useColor {
			sample = colour.PreviewPair(p.Foreground, p.Background, "Aa", 4)
		}
		table.AddRow([]string{sample, p.Foreground.Hex(), p.Background.Hex(), fmt.Sprintf("%.2f:1", p.Ratio), levelList(p.LevelsPassed), pass(p.Passes(level))})
	}
	return table
}

// passSummary returns a line such as "1 of 3 pairs pass AA (33%)".
func passSummary(pairs []colour.ContrastPair, level colour.Level) string {
	rate, _ := colour.PassRate(pairs, level)
	return fmt.Sprintf("%d of %d pairs pass %s (%.0f%%)", len(pairs)-len(colour.Failing(pairs, level)), len(pairs), level, rate*100)
}

// paletteFromArgs parses colour arguments, or extracts a palette from an
// image when path is set.
func paletteFromArgs(args []string, path string, count int, seed uint64) (*colour.Palette, error) {
	if path != "" {
		if len(args) > 0 {
			return nil, errors.New("colour arguments cannot be combined with --image")
		}
		img, err := image.NewFileLoader().Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load image: %w", err)
		}
		return colour.NewImageExtractor(seed).Extract(img, count)
	}

	if len(args) == 0 {
		return nil, errors.New("no colours given")
	}
	tokens := make([]colour.Token, len(args))
	for i, a := range args {
		if image.IsImageFile(a) {
			return nil, fmt.Errorf("%s looks like an image, pass it with --image", a)
		}
		tokens[i] = colour.Token{Value: a, Source: colour.SourceUnknown}
	}
	palette, errs := colour.Dedupe(tokens)
	if palette.Len() == 0 {
		return nil, fmt.Errorf("no valid colours: %w", errors.Join(errs...))
	}
	return palette, nil
}

func levelList(levels colour.Levels) string {
	if len(levels) == 0 {
		return "-"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

func pass(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}

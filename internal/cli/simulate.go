package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/image"
	"github.com/marianadeem755/VisionChroma-pro/internal/report"
)

type simulateOptions struct {
	image      string
	output     string
	deficiency string
	color      string
}

func newSimulateCmd(global *globalOptions) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate [colour...]",
		Short: "Simulate colour vision deficiencies",
		Long: `Show how colours, or a whole screenshot, appear under protanopia,
deuteranopia and tritanopia.

With --image, a simulated PNG is written for each deficiency (or only the
one named by --deficiency). The output path defaults to the image name with
the deficiency appended.

Examples:
  # Simulate a palette
  visionchroma simulate '#e41a1c' '#4daf4a' '#377eb8'

  # Simulate a screenshot under deuteranopia
  visionchroma simulate --image page.png --deficiency deutan -o page-deutan.png

  # Use the fallback model
  visionchroma simulate --backend fallback red green`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, global, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.image, "image", "i", "", "simulate this image instead of colours")
	flags.StringVarP(&opts.output, "output", "o", "", "output PNG for --image with a single --deficiency")
	flags.StringVarP(&opts.deficiency, "deficiency", "d", "", "only simulate this deficiency")
	flags.StringVar(&opts.color, "color", "auto", "colour swatches (auto, always, never)")

	return cmd
}

func runSimulate(cmd *cobra.Command, global *globalOptions, opts *simulateOptions, args []string) error {
	deficiencies := cvd.AllDeficiencies
	if opts.deficiency != "" {
		d, err := cvd.ParseDeficiency(opts.deficiency)
		if err != nil {
			return err
		}
		deficiencies = []cvd.Deficiency{d}
	}
	if opts.output != "" && len(deficiencies) != 1 {
		return errors.New("--output requires a single --deficiency")
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

	simOpts := []cvd.Option{
		cvd.WithBackend(cfg.Backend()),
		cvd.WithPluginPath(cfg.Vision.PluginPath),
		cvd.WithSeverity(cfg.Vision.Severity),
		cvd.WithLogger(logger.Named("cvd")),
	}
	if cfg.Workers > 0 {
		simOpts = append(simOpts, cvd.WithWorkers(cfg.Workers))
	}
	sim := cvd.New(simOpts...)
	defer sim.Close()
	logger.Debug("simulator ready", "mode", sim.Mode(), "model", sim.ModelName())

	ctx, cancel := global.context(cmd)
	defer cancel()

	if opts.image != "" {
		if len(args) > 0 {
			return errors.New("colour arguments cannot be combined with --image")
		}
		img, err := image.NewFileLoader().Load(opts.image)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
		for _, d := range deficiencies {
			out, err := sim.SimulateImage(ctx, img, d)
			if err != nil {
				return fmt.Errorf("simulating %s: %w", d, err)
			}
			path := opts.output
			if path == "" {
				path = simulatedPath(opts.image, d)
			}
			if err := image.SavePNG(path, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", d, path)
		}
		return nil
	}

	palette, err := paletteFromArgs(args, "", 0, 0)
	if err != nil {
		return err
	}

	swatch := func(c colour.Color) string {
		if useColor {
			return colour.FormatWithPreview(c, 4)
		}
		return c.Hex()
	}

	header := []string{"Original"}
	for _, d := range deficiencies {
		header = append(header, string(d))
	}
	table := report.NewTable(header)
	for _, c := range palette.Colors() {
		row := []string{swatch(c)}
		for _, d := range deficiencies {
			res := sim.SimulateColor(c, d)
			cell := swatch(res.Simulated)
			if res.ModeUsed == cvd.ModeFallback && sim.Mode() == cvd.ModePerceptual {
				cell += " *"
			}
			row = append(row, cell)
		}
		table.AddRow(row)
	}

	var b strings.Builder
	b.WriteString(table.Render())
	fmt.Fprintf(&b, "\nmodel: %s (%s)\n", sim.ModelName(), sim.Mode())
	if err := sim.Degraded(); err != nil {
		fmt.Fprintf(&b, "perceptual model unavailable: %v\n", err)
	}
	return writeOutput(cmd, "", []byte(b.String()))
}

// simulatedPath derives an output name such as page-protanopia.png.
func simulatedPath(path string, d cvd.Deficiency) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + string(d) + ".png"
}

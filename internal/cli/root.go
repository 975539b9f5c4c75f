// Package cli provides the command-line interface for VisionChroma.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marianadeem755/VisionChroma-pro/internal/config"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
	workers    int
	backend    string
	plugin     string
	severity   float64
	timeout    time.Duration
}

// NewRootCmd builds the command tree. Each call returns an independent
// tree, so tests can execute commands side by side.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "visionchroma",
		Short: "Accessibility and colour-science checks for web pages",
		Long: `VisionChroma audits a page for accessibility: WCAG contrast between every
pair of colours, colour vision deficiency simulation, readability, heading
structure and a layout attention heatmap, combined into a scored report.

Pages are described by a JSON or YAML document (optionally gzip, bzip2 or
xz compressed) listing colours, text, headings, fonts and layout boxes.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/visionchroma/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	flags.IntVar(&opts.workers, "workers", 0, "parallel workers (default: one per CPU)")
	flags.StringVar(&opts.backend, "backend", "", "vision backend (builtin, plugin, fallback)")
	flags.StringVar(&opts.plugin, "plugin", "", "vision plugin binary for the plugin backend")
	flags.Float64Var(&opts.severity, "severity", 1, "simulated deficiency severity (0-1)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort analysis after this long (0 = no limit)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newContrastCmd(opts))
	rootCmd.AddCommand(newSimulateCmd(opts))
	rootCmd.AddCommand(newReadabilityCmd(opts))
	rootCmd.AddCommand(newHarmonyCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// logger builds the CLI logger. Output goes to the command's error stream.
func (o *globalOptions) logger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   version.Name,
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
}

// loadConfig loads the config file and environment, then applies any flags
// set on the command line.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, errs := config.Load(o.configPath)
	if cfg == nil {
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		if errors.Is(err, config.ErrInvalidEnv) {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("backend") {
		cfg.Vision.Backend = o.backend
	}
	if flags.Changed("plugin") {
		cfg.Vision.PluginPath = o.plugin
		if !flags.Changed("backend") {
			cfg.Vision.Backend = string(cvd.BackendPlugin)
		}
	}
	if flags.Changed("severity") {
		cfg.Vision.Severity = o.severity
	}

	// Flags may have fixed what the file or environment got wrong.
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// context returns the command context bounded by --timeout.
func (o *globalOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// writeOutput writes data to path, or to the command's output when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- reports are not secret
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, Go version and the vision plugin protocol.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marianadeem755/VisionChroma-pro/internal/input"
	"github.com/marianadeem755/VisionChroma-pro/internal/readability"
	"github.com/marianadeem755/VisionChroma-pro/internal/report"
	"github.com/marianadeem755/VisionChroma-pro/internal/security"
)

type readabilityOptions struct {
	text   string
	format string
}

func newReadabilityCmd(global *globalOptions) *cobra.Command {
	opts := &readabilityOptions{}

	cmd := &cobra.Command{
		Use:   "readability [file]",
		Short: "Score the readability of plain text",
		Long: `Compute Flesch Reading Ease and Flesch-Kincaid Grade for plain text.

Text is read from the file argument, from --text, or from standard input
when the argument is "-" or missing.

Examples:
  visionchroma readability article.txt
  visionchroma readability --text "The cat sat on the mat."
  cat article.txt | visionchroma readability --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReadability(cmd, global, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.text, "text", "t", "", "text to score")
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatText), "output format (json, text)")

	return cmd
}

func runReadability(cmd *cobra.Command, global *globalOptions, opts *readabilityOptions, args []string) error {
	if opts.format != string(report.FormatText) && opts.format != string(report.FormatJSON) {
		return fmt.Errorf("invalid format: %s (valid: json, text)", opts.format)
	}
	cfg, err := global.loadConfig(cmd)
	if err != nil {
		return err
	}

	text := opts.text
	if text == "" {
		data, err := readText(cmd, args, cfg.MaxInputSize)
		if err != nil {
			return err
		}
		text = string(data)
	} else if len(args) > 0 {
		return fmt.Errorf("a file argument cannot be combined with --text")
	}

	res := readability.Analyze(readability.Segment(text))

	if opts.format == string(report.FormatJSON) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		return writeOutput(cmd, "", buf.Bytes())
	}

	var b strings.Builder
	if !res.Scored() {
		fmt.Fprintf(&b, "%s\n", res.Summary)
		return writeOutput(cmd, "", []byte(b.String()))
	}
	m := res.Metrics
	table := report.NewTable([]string{"Metric", "Value"})
	table.AddRow([]string{"Flesch Reading Ease", fmt.Sprintf("%.2f", m.FleschReadingEase)})
	table.AddRow([]string{"Flesch-Kincaid Grade", fmt.Sprintf("%.2f", m.FleschKincaidGrade)})
	table.AddRow([]string{"Sentences", fmt.Sprint(m.SentenceCount)})
	table.AddRow([]string{"Words", fmt.Sprint(m.WordCount)})
	table.AddRow([]string{"Syllables", fmt.Sprint(m.SyllableCount)})
	table.AddRow([]string{"Words per Sentence", fmt.Sprintf("%.1f", res.WordsPerSentence)})
	table.AddRow([]string{"Summary", res.Summary})
	b.WriteString(table.Render())
	return writeOutput(cmd, "", []byte(b.String()))
}

// readText reads the file argument, or the command's input for "-" or no
// argument, bounded by maxBytes.
func readText(cmd *cobra.Command, args []string, maxBytes int64) ([]byte, error) {
	if len(args) == 0 || args[0] == input.Stdin {
		return security.ReadAll(cmd.InOrStdin(), maxBytes)
	}
	path := args[0]
	if err := security.ValidateFileSize(path, maxBytes); err != nil {
		return nil, err
	}
	f, err := os.Open(path) // #nosec G304 - User-specified text path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open text: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

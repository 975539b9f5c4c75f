package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
)

const swatchWidth = 4

// TextWriter writes a terminal summary of a report. With Options.Color set,
// colours are shown as ANSI swatches.
type TextWriter struct {
	output io.Writer
	opts   Options
}

// NewTextWriter creates a TextWriter.
func NewTextWriter(output io.Writer, opts Options) *TextWriter {
	return &TextWriter{output: output, opts: opts}
}

// Write renders r.
func (w *TextWriter) Write(r *compliance.Report) error {
	var b strings.Builder

	title := "Accessibility report"
	if r.Metadata.URL != "" {
		title += ": " + r.Metadata.URL
	}
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("=", len(title)))
	fmt.Fprintf(&b, "Compliance: %s (overall %.1f, WCAG %s)\n", r.Conformance, r.Scores.Overall, r.Level)
	fmt.Fprintf(&b, "Simulation: %s\n\n", simulationLabel(r))

	scores := NewTable([]string{"Component", "Score", "Weight"})
	scores.AddRow([]string{"contrast", score(r.Scores.Contrast), fmt.Sprintf("%.2f", r.Scores.Contrast.Weight)})
	scores.AddRow([]string{"readability", score(r.Scores.Readability), fmt.Sprintf("%.2f", r.Scores.Readability.Weight)})
	scores.AddRow([]string{"typography", score(r.Scores.Typography), fmt.Sprintf("%.2f", r.Scores.Typography.Weight)})
	b.WriteString(scores.Render())
	b.WriteString("\n")

	w.writePalette(&b, r)
	w.writeContrast(&b, r)
	w.writeReadability(&b, r)

	if len(r.Typography.Violations) > 0 {
		b.WriteString("Typography:\n")
		for _, v := range r.Typography.Violations {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
		b.WriteString("\n")
	}

	if len(r.Suggestions) > 0 {
		t := NewTable([]string{"Pair", "Ratio", "Suggested", "New Ratio"})
		for _, s := range r.Suggestions {
			t.AddRow([]string{
				s.Current.Foreground.Hex() + " on " + s.Current.Background.Hex(),
				ratio(s.Current.Ratio),
				w.colour(s.Suggested.Foreground),
				ratio(s.Suggested.Ratio),
			})
		}
		b.WriteString("Suggested fixes:\n")
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString("Recommendations:\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(&b, "  ! %s\n", warn)
		}
	}

	_, err := io.WriteString(w.output, b.String())
	return err
}

// colour formats c with a swatch when colour output is enabled.
func (w *TextWriter) colour(c colour.Color) string {
	if !w.opts.Color {
		return c.Hex()
	}
	return colour.FormatWithPreview(c, swatchWidth)
}

func (w *TextWriter) writePalette(b *strings.Builder, r *compliance.Report) {
	if r.Palette == nil || r.Palette.Len() == 0 {
		b.WriteString("Palette: no colours found\n\n")
		return
	}

	header := []string{"Colour", "Source"}
	for _, d := range cvd.AllDeficiencies {
		header = append(header, string(d))
	}
	t := NewTable(header)
	for i, e := range r.Palette.Entries {
		row := []string{w.colour(e.Color), string(e.Source)}
		for _, d := range cvd.AllDeficiencies {
			results := r.Simulations(d)
			if i < len(results) {
				row = append(row, w.colour(results[i].Simulated))
			} else {
				row = append(row, "-")
			}
		}
		t.AddRow(row)
	}
	fmt.Fprintf(b, "Palette (%d colours, %d skipped):\n", r.Palette.Len(), r.Palette.Skipped)
	b.WriteString(t.Render())
	b.WriteString("\n")
}

func (w *TextWriter) writeContrast(b *strings.Builder, r *compliance.Report) {
	pairs := r.WorstPairs(w.opts.worstPairs())
	if len(pairs) == 0 {
		return
	}

	t := NewTable([]string{"Sample", "Foreground", "Background", "Ratio", string(r.Level)})
	for _, p := range pairs {
		sample := "Aa"
		if w.opts.Color {
			sample = colour.PreviewPair(p.Foreground, p.Background, "Aa", swatchWidth)
		}
		t.AddRow([]string{sample, p.Foreground.Hex(), p.Background.Hex(), ratio(p.Ratio), passFail(p.Passes(r.Level))})
	}
	fmt.Fprintf(b, "Contrast (%d of %d pairs fail %s):\n", len(r.FailingPairs()), len(r.ContrastPairs), r.Level)
	b.WriteString(t.Render())
	b.WriteString("\n")
}

func (w *TextWriter) writeReadability(b *strings.Builder, r *compliance.Report) {
	res := r.Readability
	if !res.Scored() {
		fmt.Fprintf(b, "Readability: %s\n\n", res.Summary)
		return
	}
	fmt.Fprintf(b, "Readability: %s (reading ease %.1f, grade %.1f, %.1f words per sentence)\n\n",
		res.Summary, res.Metrics.FleschReadingEase, res.Metrics.FleschKincaidGrade, res.WordsPerSentence)
}

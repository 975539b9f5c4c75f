package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
)

// MarkdownWriter writes reports as GitHub-flavoured Markdown.
type MarkdownWriter struct {
	output io.Writer
	opts   Options
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer, opts Options) *MarkdownWriter {
	return &MarkdownWriter{output: output, opts: opts}
}

// Write renders r.
func (w *MarkdownWriter) Write(r *compliance.Report) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, r)
	w.writeScores(md, r)
	w.writePalette(md, r)
	w.writeContrast(md, r)
	w.writeSimulations(md, r)
	w.writeReadability(md, r)
	w.writeTypography(md, r)
	w.writeHeatmap(md, r)
	w.writeFindings(md, r)
	w.writeSuggestions(md, r)
	w.writeRecommendations(md, r)
	w.writeWarnings(md, r)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by %s %s*", r.Metadata.Tool, r.Metadata.Version)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r *compliance.Report) {
	md.H1("Accessibility Report")
	md.PlainText("")

	page := r.Metadata.URL
	if page == "" {
		page = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Page", page},
			{"Generated", r.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"WCAG Level", string(r.Level)},
			{"Compliance Level", "**" + string(r.Conformance) + "**"},
			{"Overall Score", fmt.Sprintf("%.1f", r.Scores.Overall)},
			{"Simulation", simulationLabel(r)},
		},
	})
	md.PlainText("")

	failing := len(r.FailingPairs())
	switch r.Conformance {
	case compliance.ConformanceAAA:
		md.Tip("The page reaches AAA compliance.")
	case compliance.ConformanceAA:
		md.Note("The page reaches AA compliance.")
	default:
		md.Warningf("The page scores below AA. %d colour pair(s) fail %s contrast.", failing, r.Level)
	}
	md.PlainText("")

	if r.SimulationMode == cvd.ModeFallback {
		md.Importantf("Colour vision simulation ran in fallback mode with the %s model.", r.SimulationModel)
		md.PlainText("")
	}
}

func simulationLabel(r *compliance.Report) string {
	if r.SimulationModel == "" {
		return string(r.SimulationMode)
	}
	return fmt.Sprintf("%s (%s)", r.SimulationMode, r.SimulationModel)
}

func (w *MarkdownWriter) writeScores(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Scores")
	md.PlainText("")

	row := func(name string, s compliance.SubScore) []string {
		return []string{name, score(s), fmt.Sprintf("%.2f", s.Weight)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Component", "Score", "Weight"},
		Rows: [][]string{
			row("Contrast", r.Scores.Contrast),
			row("Readability", r.Scores.Readability),
			row("Typography", r.Scores.Typography),
			{"**Overall**", fmt.Sprintf("**%.1f**", r.Scores.Overall), "-"},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writePalette(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Palette")
	md.PlainText("")

	if r.Palette == nil || r.Palette.Len() == 0 {
		md.PlainText("No colours found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(r.Palette.Entries))
	for i, e := range r.Palette.Entries {
		rows[i] = []string{"`" + e.Color.Hex() + "`", string(e.Source), fmt.Sprintf("%.4f", e.Color.Luminance())}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Colour", "Source", "Luminance"},
		Rows:   rows,
	})
	md.PlainText("")
	if r.Palette.Skipped > 0 {
		md.PlainTextf("%d unrecognised token(s) skipped.", r.Palette.Skipped)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeContrast(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Contrast")
	md.PlainText("")

	pairs := r.WorstPairs(w.opts.worstPairs())
	if len(pairs) == 0 {
		md.PlainText("Fewer than two colours; no pairs to check.")
		md.PlainText("")
		return
	}

	md.PlainTextf("%d pair(s) checked, %d fail %s. Lowest contrast first:",
		len(r.ContrastPairs), len(r.FailingPairs()), r.Level)
	md.PlainText("")

	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{
			"`" + p.Foreground.Hex() + "`",
			"`" + p.Background.Hex() + "`",
			ratio(p.Ratio),
			passFail(p.Passes(colour.LevelAALarge)),
			passFail(p.Passes(colour.LevelAA)),
			passFail(p.Passes(colour.LevelAAA)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Foreground", "Background", "Ratio", "AA Large", "AA", "AAA"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSimulations(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Colour Vision Simulation")
	md.PlainText("")

	if r.Palette == nil || r.Palette.Len() == 0 {
		md.PlainText("No colours to simulate.")
		md.PlainText("")
		return
	}

	header := []string{"Original"}
	for _, d := range cvd.AllDeficiencies {
		header = append(header, string(d))
	}

	rows := make([][]string, 0, r.Palette.Len())
	for i, c := range r.Palette.All() {
		row := []string{"`" + c.Hex() + "`"}
		for _, d := range cvd.AllDeficiencies {
			row = append(row, simulatedCell(r.Simulations(d), i))
		}
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

func simulatedCell(results []cvd.Result, i int) string {
	if i >= len(results) {
		return "-"
	}
	cell := "`" + results[i].Simulated.Hex() + "`"
	if results[i].ModeUsed == cvd.ModeFallback {
		cell += " *"
	}
	return cell
}

func (w *MarkdownWriter) writeReadability(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Readability")
	md.PlainText("")

	res := r.Readability
	if !res.Scored() {
		md.PlainText(res.Summary + ".")
		md.PlainText("")
		return
	}

	m := res.Metrics
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Flesch Reading Ease", fmt.Sprintf("%.1f", m.FleschReadingEase)},
			{"Flesch-Kincaid Grade", fmt.Sprintf("%.1f", m.FleschKincaidGrade)},
			{"Sentences", strconv.Itoa(m.SentenceCount)},
			{"Words", strconv.Itoa(m.WordCount)},
			{"Syllables", strconv.Itoa(m.SyllableCount)},
			{"Words per Sentence", fmt.Sprintf("%.1f", res.WordsPerSentence)},
			{"Summary", "**" + res.Summary + "**"},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTypography(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Typography")
	md.PlainText("")

	t := r.Typography
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Heading Sequence", headingSequence(t.HeadingSequence)},
			{"Font Families", strconv.Itoa(t.FontFamilyCount)},
			{"Font Sizes", strconv.Itoa(t.FontSizeCount)},
			{"Consistency Score", fmt.Sprintf("%.1f", t.ConsistencyScore)},
		},
	})
	md.PlainText("")

	if len(t.Violations) == 0 {
		md.PlainText("No typography violations.")
		md.PlainText("")
		return
	}
	items := make([]string, len(t.Violations))
	for i, v := range t.Violations {
		items[i] = v.String()
	}
	md.BulletList(items...)
	md.PlainText("")
}

func headingSequence(levels []int) string {
	if len(levels) == 0 {
		return "-"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = "H" + strconv.Itoa(l)
	}
	return strings.Join(parts, " → ")
}

func (w *MarkdownWriter) writeHeatmap(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Attention Heatmap")
	md.PlainText("")

	g := r.Heatmap
	if g.Rows == 0 || g.Cols == 0 {
		md.PlainText("No layout supplied.")
		md.PlainText("")
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Focus Zones"),
		piechart.WithShowData(true),
	)
	if g.Focus.High > 0 {
		chart.LabelAndIntValue("High", uint64(g.Focus.High))
	}
	if g.Focus.Medium > 0 {
		chart.LabelAndIntValue("Medium", uint64(g.Focus.Medium))
	}
	if g.Focus.Low > 0 {
		chart.LabelAndIntValue("Low", uint64(g.Focus.Low))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	header := make([]string, g.Cols+1)
	header[0] = "Row"
	for c := range g.Cols {
		header[c+1] = strconv.Itoa(c + 1)
	}
	rows := make([][]string, g.Rows)
	for row := range g.Rows {
		cells := make([]string, g.Cols+1)
		cells[0] = strconv.Itoa(row + 1)
		for col := range g.Cols {
			cells[col+1] = fmt.Sprintf("%.2f", g.At(row, col))
		}
		rows[row] = cells
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Findings")
	md.PlainText("")

	if len(r.Findings) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(r.Findings))
	for i, f := range r.Findings {
		rows[i] = []string{string(f.Kind), f.Subject, f.Message, fmt.Sprintf("%.2f", f.Margin)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Subject", "Message", "Margin"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSuggestions(md *markdown.Markdown, r *compliance.Report) {
	if len(r.Suggestions) == 0 {
		return
	}

	md.H2("Suggested Fixes")
	md.PlainText("")

	rows := make([][]string, len(r.Suggestions))
	for i, s := range r.Suggestions {
		rows[i] = []string{
			"`" + s.Current.Foreground.Hex() + "` on `" + s.Current.Background.Hex() + "`",
			ratio(s.Current.Ratio),
			"`" + s.Suggested.Foreground.Hex() + "`",
			ratio(s.Suggested.Ratio),
			worstCVD(s.CVDRatios),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Pair", "Ratio", "Suggested Foreground", "New Ratio", "Worst Simulated"},
		Rows:   rows,
	})
	md.PlainText("")
}

// worstCVD names the deficiency under which a pair loses the most contrast.
func worstCVD(ratios map[cvd.Deficiency]float64) string {
	worst, found := 0.0, cvd.Deficiency("")
	for _, d := range cvd.AllDeficiencies {
		v, ok := ratios[d]
		if ok && (found == "" || v < worst) {
			worst, found = v, d
		}
	}
	if found == "" {
		return "-"
	}
	return fmt.Sprintf("%s %s", ratio(worst), found)
}

func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, r *compliance.Report) {
	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(r.Recommendations...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, r *compliance.Report) {
	if len(r.Warnings) == 0 {
		return
	}

	md.H2("Warnings")
	md.PlainText("")
	items := make([]string, len(r.Warnings))
	for i, warn := range r.Warnings {
		items[i] = warn.String()
	}
	md.Details(fmt.Sprintf("%d warning(s)", len(r.Warnings)), "\n- "+strings.Join(items, "\n- ")+"\n")
	md.PlainText("")
}

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
	"github.com/marianadeem755/VisionChroma-pro/internal/cvd"
	"github.com/marianadeem755/VisionChroma-pro/internal/heatmap"
	"github.com/marianadeem755/VisionChroma-pro/internal/readability"
	"github.com/marianadeem755/VisionChroma-pro/internal/typography"
)

var grey = colour.RGB(0x77, 0x77, 0x77)

// createTestReport builds a report with one failing pair, one skipped
// heading and a fallback simulation.
func createTestReport(t *testing.T) *compliance.Report {
	t.Helper()

	palette := colour.NewPalette(grey, colour.White, colour.Black)
	sim := cvd.New(cvd.WithBackend(cvd.BackendFallback))
	sims, err := sim.SimulateAll(context.Background(), palette)
	if err != nil {
		t.Fatalf("SimulateAll() error = %v", err)
	}

	headings, _ := typography.NewAuditor(typography.DefaultConfig()).Audit(
		[]typography.Heading{{Level: 1}, {Level: 3}}, typography.Fonts{})
	grid, _ := mustEstimator(t).Estimate(heatmap.Layout{
		Width: 120, Height: 60,
		Elements: []heatmap.Element{{Bounds: image.Rect(0, 0, 60, 30), Category: "cta"}},
	})

	r, err := compliance.NewBuilder(compliance.DefaultConfig()).
		WithMetadata(compliance.Metadata{Tool: "visionchroma", Version: "test", GeneratedAt: time.Unix(0, 0).UTC(), URL: "https://example.com"}).
		WithPalette(palette).
		WithContrast(colour.AnalyzeAll(palette)).
		WithSimulations(sim.Mode(), sim.ModelName(), sims).
		WithReadability(readability.Analyze(readability.Segment("The cat sat on the mat. It was warm."))).
		WithTypography(headings).
		WithHeatmap(grid).
		AddWarning(compliance.Warning{Kind: compliance.WarningParseError, Subject: "nope", Message: "unrecognised colour token"}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return r
}

func mustEstimator(t *testing.T) *heatmap.Estimator {
	t.Helper()
	e, err := heatmap.NewEstimator(heatmap.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEstimator() error = %v", err)
	}
	return e
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "md", want: FormatMarkdown},
		{in: " markdown ", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "html", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New(Format("pdf"), &bytes.Buffer{}, Options{}); err == nil {
		t.Error("New() expected error for unknown format")
	}
}

func TestJSONWriter(t *testing.T) {
	r := createTestReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, r, FormatJSON, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"metadata", "wcag_level", "palette", "contrast_pairs", "cvd_simulations",
		"readability", "typography", "heatmap", "scores", "compliance_level", "findings", "recommendations", "warnings"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("JSON output missing %q", key)
		}
	}
	if doc["compliance_level"] != string(r.Conformance) {
		t.Errorf("compliance_level = %v, want %s", doc["compliance_level"], r.Conformance)
	}
	sims, _ := doc["cvd_simulations"].(map[string]any)
	if _, ok := sims["protanopia"]; !ok {
		t.Error("cvd_simulations missing protanopia")
	}
	if !strings.Contains(buf.String(), "\n  \"metadata\"") {
		t.Error("expected indented output")
	}
}

func TestJSONWriterCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONWriter(&buf).Write(createTestReport(t)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Error("compact output should be a single line")
	}
}

func TestYAMLWriter(t *testing.T) {
	r := createTestReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, r, FormatYAML, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if doc["compliance_level"] != string(r.Conformance) {
		t.Errorf("compliance_level = %v, want %s", doc["compliance_level"], r.Conformance)
	}
	if doc["simulation_mode"] != string(cvd.ModeFallback) {
		t.Errorf("simulation_mode = %v, want fallback", doc["simulation_mode"])
	}
	if !strings.Contains(buf.String(), "hex: '#777777'") {
		t.Error("expected colours to carry their hex form")
	}
}

func TestMarkdownWriter(t *testing.T) {
	r := createTestReport(t)

	var buf bytes.Buffer
	if err := Write(&buf, r, FormatMarkdown, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Accessibility Report",
		"## Scores",
		"## Contrast",
		"## Colour Vision Simulation",
		"## Readability",
		"## Typography",
		"## Attention Heatmap",
		"## Findings",
		"## Suggested Fixes",
		"## Recommendations",
		"## Warnings",
		"https://example.com",
		"`#777777`",
		"```mermaid",
		"Focus Zones",
		"H1 → H3",
		compliance.RecFixContrast,
		"parse_error: nope",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown output missing %q", want)
		}
	}
}

func TestMarkdownWriterEmptySections(t *testing.T) {
	r := createTestReport(t)
	r.Palette = colour.NewPalette()
	r.ContrastPairs = nil
	r.Heatmap = heatmap.Grid{}
	r.Suggestions = nil
	r.Warnings = nil

	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf, Options{}).Write(r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"No colours found.", "no pairs to check", "No layout supplied."} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown output missing %q", want)
		}
	}
	for _, absent := range []string{"## Suggested Fixes", "## Warnings"} {
		if strings.Contains(out, absent) {
			t.Errorf("Markdown output should omit %q", absent)
		}
	}
}

func TestTextWriter(t *testing.T) {
	r := createTestReport(t)

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, r, FormatText, Options{}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		out := buf.String()
		if strings.Contains(out, "\x1b[") {
			t.Error("plain output contains ANSI escapes")
		}
		for _, want := range []string{"Accessibility report: https://example.com", "Compliance: ", "#777777", "FAIL", "Recommendations:", "! parse_error"} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q", want)
			}
		}
	})

	t.Run("colour", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, r, FormatText, Options{Color: true}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !strings.Contains(buf.String(), "\x1b[48;2;119;119;119m") {
			t.Error("colour output missing swatch for #777777")
		}
	})

	t.Run("worst pairs cap", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, r, FormatText, Options{WorstPairs: 1}); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		out := buf.String()
		start := strings.Index(out, "Contrast (")
		if start < 0 {
			t.Fatal("missing contrast section")
		}
		section := out[start:]
		section = section[:strings.Index(section, "\n\n")]
		// Title, header, separator and one row.
		if lines := strings.Count(section, "\n") + 1; lines != 4 {
			t.Errorf("contrast section has %d lines, want 4:\n%s", lines, section)
		}
	})
}

func TestWorstCVD(t *testing.T) {
	got := worstCVD(map[cvd.Deficiency]float64{cvd.Protanopia: 3.2, cvd.Tritanopia: 2.5})
	if want := "2.50:1 tritanopia"; got != want {
		t.Errorf("worstCVD() = %q, want %q", got, want)
	}
	if got := worstCVD(nil); got != "-" {
		t.Errorf("worstCVD(nil) = %q, want -", got)
	}
}

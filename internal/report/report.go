// Package report renders compliance reports for people and tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatText}

// ParseFormat parses a format name. "md" and "yml" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("invalid format: %s (valid: json, yaml, markdown, text)", s)
}

// DefaultWorstPairs is how many low-contrast pairs human-readable formats list.
const DefaultWorstPairs = 10

// Writer renders a report.
type Writer interface {
	Write(r *compliance.Report) error
}

// Options tune the human-readable writers.
type Options struct {
	// Color enables ANSI swatches in text output.
	Color bool
	// WorstPairs caps the contrast table. Zero means DefaultWorstPairs.
	WorstPairs int
}

func (o Options) worstPairs() int {
	if o.WorstPairs <= 0 {
		return DefaultWorstPairs
	}
	return o.WorstPairs
}

// New returns the writer for f.
func New(f Format, w io.Writer, opts Options) (Writer, error) {
	switch f {
	case FormatJSON:
		return NewJSONWriter(w, WithPrettyPrint()), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	case FormatMarkdown:
		return NewMarkdownWriter(w, opts), nil
	case FormatText:
		return NewTextWriter(w, opts), nil
	}
	return nil, fmt.Errorf("invalid format: %s", f)
}

// Write renders r to w in format f.
func Write(w io.Writer, r *compliance.Report, f Format, opts Options) error {
	rw, err := New(f, w, opts)
	if err != nil {
		return err
	}
	return rw.Write(r)
}

// ratio formats a contrast ratio the way WCAG tools print it.
func ratio(v float64) string {
	return fmt.Sprintf("%.2f:1", v)
}

func score(s compliance.SubScore) string {
	if !s.Scored() {
		return "not scored"
	}
	return fmt.Sprintf("%.1f", s.Score)
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "FAIL"
}

package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/marianadeem755/VisionChroma-pro/internal/compliance"
)

// JSONWriter writes reports as JSON.
type JSONWriter struct {
	output io.Writer
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter. Output is compact unless an indent
// option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write encodes r followed by a newline.
func (w *JSONWriter) Write(r *compliance.Report) error {
	enc := json.NewEncoder(w.output)
	if w.prefix != "" || w.indent != "" {
		enc.SetIndent(w.prefix, w.indent)
	}
	return enc.Encode(r)
}

// YAMLWriter writes reports as YAML.
type YAMLWriter struct {
	output io.Writer
}

// NewYAMLWriter creates a YAMLWriter.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{output: output}
}

// Write encodes r as a single YAML document.
func (w *YAMLWriter) Write(r *compliance.Report) error {
	enc := yaml.NewEncoder(w.output)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

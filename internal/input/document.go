// Package input loads page documents: the pre-extracted colours, text,
// headings, fonts and layout of one rendered page.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
	"github.com/marianadeem755/VisionChroma-pro/internal/compression"
	"github.com/marianadeem755/VisionChroma-pro/internal/heatmap"
	"github.com/marianadeem755/VisionChroma-pro/internal/readability"
	"github.com/marianadeem755/VisionChroma-pro/internal/security"
	"github.com/marianadeem755/VisionChroma-pro/internal/typography"
)

// Stdin is the path that reads a document from standard input.
const Stdin = "-"

// ErrUnknownFormat is returned when a document is neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown document format")

// Colors is a list of colour tokens. Each item is either a bare string or
// an object with value and source.
type Colors []colour.Token

// UnmarshalJSON accepts strings and token objects.
func (c *Colors) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Colors, 0, len(raw))
	for i, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, colour.Token{Value: s})
			continue
		}
		var tok colour.Token
		if err := json.Unmarshal(item, &tok); err != nil {
			return fmt.Errorf("colors[%d]: %w", i, err)
		}
		out = append(out, tok)
	}
	*c = out
	return nil
}

// UnmarshalYAML accepts scalars and token mappings.
func (c *Colors) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: colors must be a list", node.Line)
	}
	out := make(Colors, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode {
			out = append(out, colour.Token{Value: item.Value})
			continue
		}
		var tok colour.Token
		if err := item.Decode(&tok); err != nil {
			return fmt.Errorf("line %d: %w", item.Line, err)
		}
		out = append(out, tok)
	}
	*c = out
	return nil
}

// Box is a layout element in page pixels.
type Box struct {
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Width    int    `json:"width" yaml:"width"`
	Height   int    `json:"height" yaml:"height"`
	Category string `json:"category" yaml:"category"`
}

// Layout is the page size and its element boxes.
type Layout struct {
	Width    int   `json:"width" yaml:"width"`
	Height   int   `json:"height" yaml:"height"`
	Elements []Box `json:"elements" yaml:"elements"`
}

// Document is one page to analyse.
type Document struct {
	URL            string               `json:"url,omitempty" yaml:"url,omitempty"`
	Colors         Colors               `json:"colors" yaml:"colors"`
	PageBackground string               `json:"page_background,omitempty" yaml:"page_background,omitempty"`
	Text           string               `json:"text,omitempty" yaml:"text,omitempty"`
	Sentences      [][]string           `json:"sentences,omitempty" yaml:"sentences,omitempty"`
	Headings       []typography.Heading `json:"headings,omitempty" yaml:"headings,omitempty"`
	Fonts          typography.Fonts     `json:"fonts" yaml:"fonts"`
	Layout         Layout               `json:"layout" yaml:"layout"`
}

// Tokens returns the colour tokens with unset sources marked unknown.
func (d *Document) Tokens() []colour.Token {
	out := make([]colour.Token, len(d.Colors))
	for i, t := range d.Colors {
		if t.Source == "" {
			t.Source = colour.SourceUnknown
		}
		out[i] = t
	}
	return out
}

// Corpus returns the pre-segmented sentences if present, otherwise the raw
// text segmented into sentences and words.
func (d *Document) Corpus() readability.Corpus {
	if len(d.Sentences) > 0 {
		return readability.Corpus{Sentences: d.Sentences}
	}
	return readability.Segment(d.Text)
}

// HeatmapLayout converts the layout boxes to rectangles.
func (d *Document) HeatmapLayout() heatmap.Layout {
	l := heatmap.Layout{Width: d.Layout.Width, Height: d.Layout.Height}
	for _, b := range d.Layout.Elements {
		l.Elements = append(l.Elements, heatmap.Element{
			Bounds:   image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height),
			Category: b.Category,
		})
	}
	return l
}

// Load reads a document file. Compressed files (.gz, .bz2, .xz) are
// decompressed; maxBytes bounds both the file and its decompressed size.
// The path "-" reads standard input.
func Load(path string, maxBytes int64) (*Document, error) {
	if path == Stdin {
		return Read(os.Stdin, "stdin", maxBytes)
	}
	if err := security.ValidateFileSize(path, maxBytes); err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 - User-specified document path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	return Read(f, filepath.Base(path), maxBytes)
}

// Read decodes a document from r. name is used for format detection.
func Read(r io.Reader, name string, maxBytes int64) (*Document, error) {
	data, _, err := compression.ReadAll(r, name, maxBytes)
	if err != nil {
		return nil, err
	}
	return Parse(data, compression.TrimExt(name))
}

// Parse decodes a JSON or YAML document. The format follows the name's
// extension; without one, input starting with '{' is JSON and anything
// else YAML.
func Parse(data []byte, name string) (*Document, error) {
	var doc Document
	switch format(data, name) {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document %s: %w", name, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return &doc, nil
}

func format(data []byte, name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case "":
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("{")) {
			return "json"
		}
		return "yaml"
	}
	return ""
}

package colour

import (
	"fmt"
	"iter"
	"strings"
)

// Source tags where a colour token was found.
type Source string

// Known token sources.
const (
	SourceCSS        Source = "css"
	SourceInline     Source = "inline"
	SourceThemeColor Source = "theme-color"
	SourceBackground Source = "background"
	SourceImage      Source = "image"
	SourceUnknown    Source = "unknown"
)

// Token is a raw colour string with its provenance.
type Token struct {
	Value  string `json:"value" yaml:"value"`
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// PaletteEntry is a unique colour and the source it was first seen in.
type PaletteEntry struct {
	Color  Color  `json:"color" yaml:"color"`
	Source Source `json:"source" yaml:"source"`
}

// Palette is an ordered set of unique colours.
// No two entries share an RGB triple and insertion order is preserved.
type Palette struct {
	Entries []PaletteEntry `json:"entries" yaml:"entries"`
	// Skipped counts tokens that failed to parse.
	Skipped int `json:"skipped" yaml:"skipped"`
}

// NewPalette builds a palette from colours, dropping duplicates.
func NewPalette(colors ...Color) *Palette {
	p := &Palette{}
	seen := make(map[uint32]bool, len(colors))
	for _, c := range colors {
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		p.Entries = append(p.Entries, PaletteEntry{Color: c, Source: SourceUnknown})
	}
	return p
}

// Dedupe normalises every token into a palette.
// Tokens that fail to parse are skipped and returned as errors (each a
// *ParseError) without aborting the batch. Duplicates keep their first-seen
// position and source.
func Dedupe(tokens []Token) (*Palette, []error) {
	p := &Palette{}
	var errs []error
	seen := make(map[uint32]bool, len(tokens))

	for _, tok := range tokens {
		c, err := Normalize(tok.Value)
		if err != nil {
			p.Skipped++
			errs = append(errs, err)
			continue
		}
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true

		src := tok.Source
		if src == "" {
			src = SourceUnknown
		}
		p.Entries = append(p.Entries, PaletteEntry{Color: c, Source: src})
	}
	return p, errs
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// Colors returns the palette colours in insertion order.
func (p *Palette) Colors() []Color {
	if p == nil {
		return nil
	}
	colors := make([]Color, len(p.Entries))
	for i, e := range p.Entries {
		colors[i] = e.Color
	}
	return colors
}

// Contains reports whether a colour with the same RGB triple is in the palette.
func (p *Palette) Contains(c Color) bool {
	if p == nil {
		return false
	}
	for _, e := range p.Entries {
		if e.Color.Equal(c) {
			return true
		}
	}
	return false
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (Color, error) {
	if index < 0 || index >= p.Len() {
		return Color{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, p.Len())
	}
	return p.Entries[index].Color, nil
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hex := make([]string, p.Len())
	for i, c := range p.Colors() {
		hex[i] = c.Hex()
	}
	return hex
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() iter.Seq2[int, Color] {
	return func(yield func(int, Color) bool) {
		for i, c := range p.Colors() {
			if !yield(i, c) {
				return
			}
		}
	}
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if p.Len() == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours:\n", p.Len())
	for i, e := range p.Entries {
		fmt.Fprintf(&b, "  %2d: %s (%s) [%s]\n", i+1, e.Color.Hex(), e.Color.String(), e.Source)
	}
	return b.String()
}

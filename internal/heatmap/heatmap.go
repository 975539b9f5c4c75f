// Package heatmap estimates where a page draws attention from the position
// and type of its interactive elements.
package heatmap

import (
	"fmt"
	"image"
	"strings"
)

// Element categories with default multipliers.
const (
	CategoryCTA     = "cta"
	CategoryButton  = "button"
	CategoryInput   = "input"
	CategoryLink    = "link"
	CategoryImage   = "image"
	CategoryDefault = "default"
)

// Focus zone thresholds on normalised weights.
const (
	HighFocus   = 0.7
	MediumFocus = 0.4
)

// Element is a bounding box on the page with a category tag.
type Element struct {
	Bounds   image.Rectangle `json:"bounds" yaml:"bounds"`
	Category string          `json:"category" yaml:"category"`
}

// Layout is a page's size and its elements.
type Layout struct {
	Width    int       `json:"width" yaml:"width"`
	Height   int       `json:"height" yaml:"height"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Focus counts cells per attention zone.
type Focus struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Grid is the estimated attention per cell, rows top to bottom.
type Grid struct {
	Rows    int         `json:"rows" yaml:"rows"`
	Cols    int         `json:"cols" yaml:"cols"`
	Weights [][]float64 `json:"weights" yaml:"weights"`
	Focus   Focus       `json:"focus" yaml:"focus"`
}

// At returns the weight of a cell.
func (g Grid) At(row, col int) float64 {
	return g.Weights[row][col]
}

// Max returns the largest cell weight.
func (g Grid) Max() float64 {
	m := 0.0
	for _, row := range g.Weights {
		for _, w := range row {
			m = max(m, w)
		}
	}
	return m
}

// Hottest returns the row and column of the highest-weighted cell. Ties go
// to the first cell in row-major order.
func (g Grid) Hottest() (row, col int) {
	best := -1.0
	for r, ws := range g.Weights {
		for c, w := range ws {
			if w > best {
				best, row, col = w, r, c
			}
		}
	}
	return row, col
}

// Config is the grid size and category multiplier table.
type Config struct {
	Rows        int                `koanf:"rows"`
	Cols        int                `koanf:"cols"`
	Multipliers map[string]float64 `koanf:"multipliers"`
}

// DefaultConfig returns a 6×12 grid with the default multipliers.
func DefaultConfig() Config {
	return Config{
		Rows: 6,
		Cols: 12,
		Multipliers: map[string]float64{
			CategoryCTA:     3.0,
			CategoryButton:  2.0,
			CategoryInput:   1.5,
			CategoryLink:    1.0,
			CategoryImage:   0.5,
			CategoryDefault: 1.0,
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("heatmap grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	for k, v := range c.Multipliers {
		if v < 0 {
			return fmt.Errorf("heatmap multiplier %q must not be negative, got %v", k, v)
		}
	}
	return nil
}

// Estimator builds attention grids of a fixed size.
type Estimator struct {
	cfg Config
}

// NewEstimator creates an Estimator.
func NewEstimator(cfg Config) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{cfg: cfg}, nil
}

// Multiplier returns the weight multiplier for a category.
func (e *Estimator) Multiplier(category string) float64 {
	if m, ok := e.cfg.Multipliers[strings.ToLower(strings.TrimSpace(category))]; ok {
		return m
	}
	return e.cfg.Multipliers[CategoryDefault]
}

// Estimate spreads each element's weight over the cells it overlaps in
// proportion to the overlapping area, then normalises so the hottest cell
// is 1. A layout with no weight yields an all-zero grid. Elements with an
// empty box are skipped and returned as errors.
func (e *Estimator) Estimate(layout Layout) (Grid, []error) {
	g := Grid{Rows: e.cfg.Rows, Cols: e.cfg.Cols, Weights: make([][]float64, e.cfg.Rows)}
	for r := range g.Weights {
		g.Weights[r] = make([]float64, e.cfg.Cols)
	}

	var errs []error
	if layout.Width <= 0 || layout.Height <= 0 {
		if len(layout.Elements) > 0 {
			errs = append(errs, fmt.Errorf("layout has no area (%dx%d)", layout.Width, layout.Height))
		}
		g.Focus = focus(g)
		return g, errs
	}

	page := image.Rect(0, 0, layout.Width, layout.Height)
	for i, el := range layout.Elements {
		b := el.Bounds.Canon()
		area := b.Dx() * b.Dy()
		if area == 0 {
			errs = append(errs, fmt.Errorf("element %d (%s) has an empty bounding box", i, el.Category))
			continue
		}
		if !b.Overlaps(page) {
			errs = append(errs, fmt.Errorf("element %d (%s) at %v lies outside the %dx%d page", i, el.Category, b, layout.Width, layout.Height))
			continue
		}
		mult := e.Multiplier(el.Category)
		if mult == 0 {
			continue
		}
		for r := range g.Rows {
			for c := range g.Cols {
				overlap := e.cell(layout, r, c).Intersect(b)
				if overlap.Empty() {
					continue
				}
				g.Weights[r][c] += mult * float64(overlap.Dx()*overlap.Dy()) / float64(area)
			}
		}
	}

	if m := g.Max(); m > 0 {
		for _, row := range g.Weights {
			for c := range row {
				row[c] /= m
			}
		}
	}
	g.Focus = focus(g)
	return g, errs
}

// cell returns the page rectangle covered by grid cell (r, c).
func (e *Estimator) cell(layout Layout, r, c int) image.Rectangle {
	return image.Rect(
		c*layout.Width/e.cfg.Cols,
		r*layout.Height/e.cfg.Rows,
		(c+1)*layout.Width/e.cfg.Cols,
		(r+1)*layout.Height/e.cfg.Rows,
	)
}

func focus(g Grid) Focus {
	var f Focus
	for _, row := range g.Weights {
		for _, w := range row {
			switch {
			case w > HighFocus:
				f.High++
			case w >= MediumFocus:
				f.Medium++
			default:
				f.Low++
			}
		}
	}
	return f
}

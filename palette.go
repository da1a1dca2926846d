package perlerpix

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEmptyPalette = errors.New("palette is empty")
	ErrInvalidColor = errors.New("invalid color")
)

// PaletteEntry is one row of a bead table as it appears in configuration.
type PaletteEntry struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
	// Feature marks colors that carry small but meaningful detail (eyes,
	// ears, highlights). Feature cells win block votes at a lower share and
	// are never despeckled.
	Feature bool `json:"feature,omitempty"`
}

// PaletteColor is a validated palette entry with its Lab triple precomputed.
type PaletteColor struct {
	Hex     Token
	Name    string
	RGB     RGB
	Lab     Lab
	Feature bool
}

func (c PaletteColor) Swatch() Swatch {
	return Swatch{RGB: c.RGB, Lab: c.Lab}
}

// Palette is an immutable, ordered bead table. Table order is the tie-break
// for every nearest-color decision. A *Palette is safe for concurrent use.
type Palette struct {
	colors  []PaletteColor
	byHex   map[Token]int
	outline int
	fill    int
}

// NewPalette validates entries and precomputes their Lab triples. Entries
// repeating an earlier hex are dropped; the first occurrence keeps its slot.
func NewPalette(entries []PaletteEntry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}
	p := &Palette{
		colors: make([]PaletteColor, 0, len(entries)),
		byHex:  make(map[Token]int, len(entries)),
	}
	for i, e := range entries {
		rgb, err := ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		hex := Token(rgb.Hex())
		if _, dup := p.byHex[hex]; dup {
			Logf("palette: dropping duplicate entry %d (%s %q)", i, hex, e.Name)
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = string(hex)
		}
		p.byHex[hex] = len(p.colors)
		p.colors = append(p.colors, PaletteColor{
			Hex:     hex,
			Name:    name,
			RGB:     rgb,
			Lab:     RGBToLab(rgb),
			Feature: e.Feature,
		})
	}
	p.outline, p.fill = extremes(p.colors)
	return p, nil
}

// extremes returns the indices of the darkest and the lightest colors by
// luma, preferring the earliest entry on ties.
func extremes(colors []PaletteColor) (darkest, lightest int) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, c := range colors {
		y := c.RGB.Luma()
		if y < minY {
			minY = y
			darkest = i
		}
		if y > maxY {
			maxY = y
			lightest = i
		}
	}
	return darkest, lightest
}

func (p *Palette) Len() int { return len(p.colors) }

func (p *Palette) At(i int) PaletteColor { return p.colors[i] }

// Colors returns a copy of the table in order.
func (p *Palette) Colors() []PaletteColor {
	out := make([]PaletteColor, len(p.colors))
	copy(out, p.colors)
	return out
}

// Entries converts the table back into its configuration form.
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.colors))
	for i, c := range p.colors {
		out[i] = PaletteEntry{Hex: string(c.Hex), Name: c.Name, Feature: c.Feature}
	}
	return out
}

// Lookup finds the entry for a token. It reports false for Transparent and
// for hex values outside the table.
func (p *Palette) Lookup(t Token) (PaletteColor, bool) {
	i, ok := p.byHex[t]
	if !ok {
		return PaletteColor{}, false
	}
	return p.colors[i], true
}

// Contains reports whether t is a hex value of this palette.
func (p *Palette) Contains(t Token) bool {
	_, ok := p.byHex[t]
	return ok
}

// Outline is the darkest entry; outline votes and sealing write its token.
func (p *Palette) Outline() PaletteColor { return p.colors[p.outline] }

// Fill is the lightest entry; enclosed holes are filled with it.
func (p *Palette) Fill() PaletteColor { return p.colors[p.fill] }

// Subset builds a new palette from the entries accepted by keep, preserving
// order and feature flags.
func (p *Palette) Subset(keep func(PaletteColor) bool) (*Palette, error) {
	entries := make([]PaletteEntry, 0, len(p.colors))
	for _, c := range p.colors {
		if keep(c) {
			entries = append(entries, PaletteEntry{Hex: string(c.Hex), Name: c.Name, Feature: c.Feature})
		}
	}
	return NewPalette(entries)
}

// ============ MATCHING ============

// Matcher finds the nearest palette entry under a Metric.
type Matcher struct {
	palette *Palette
	metric  Metric
}

// NewMatcher uses CIE76 when metric is nil.
func NewMatcher(palette *Palette, metric Metric) *Matcher {
	if metric == nil {
		metric = CIE76{}
	}
	return &Matcher{palette: palette, metric: metric}
}

func (m *Matcher) Metric() Metric { return m.metric }

// Nearest returns the index of the closest entry. The first entry in table
// order wins ties.
func (m *Matcher) Nearest(c RGB) int {
	target := NewSwatch(c)
	best := 0
	bestDist := math.Inf(1)
	for i := range m.palette.colors {
		d := m.metric.Distance(target, m.palette.colors[i].Swatch())
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// NearestColor is Nearest returning the entry itself.
func (m *Matcher) NearestColor(c RGB) PaletteColor {
	return m.palette.colors[m.Nearest(c)]
}

package perlerpix

import (
	"fmt"
	"image"
	"image/color"
	"slices"
)

// Token is a cell value: a palette hex ("#RRGGBB") or Transparent.
type Token string

// Transparent marks a cell with no bead.
const Transparent Token = "TRANSPARENT"

// Grid is a row-major bead pattern.
type Grid struct {
	Width  int
	Height int
	Cells  []Token
}

// NewGrid returns a w×h grid with every cell Transparent.
func NewGrid(w, h int) *Grid {
	cells := make([]Token, w*h)
	for i := range cells {
		cells[i] = Transparent
	}
	return &Grid{Width: w, Height: h, Cells: cells}
}

func (g *Grid) At(x, y int) Token { return g.Cells[y*g.Width+x] }

func (g *Grid) Set(x, y int, t Token) { g.Cells[y*g.Width+x] = t }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	return &Grid{Width: g.Width, Height: g.Height, Cells: slices.Clone(g.Cells)}
}

// Validate checks the closure invariant: every cell is Transparent or a hex
// value of p.
func (g *Grid) Validate(p *Palette) error {
	if len(g.Cells) != g.Width*g.Height {
		return fmt.Errorf("grid has %d cells, want %dx%d", len(g.Cells), g.Width, g.Height)
	}
	for i, t := range g.Cells {
		if t != Transparent && !p.Contains(t) {
			return fmt.Errorf("cell %d: %w: %q not in palette", i, ErrInvalidColor, t)
		}
	}
	return nil
}

// PhysicalSize returns the assembled pattern size in millimeters for a bead
// pitch of beadMM.
func (g *Grid) PhysicalSize(beadMM float64) (width, height float64) {
	return float64(g.Width) * beadMM, float64(g.Height) * beadMM
}

// Image renders each cell as a cellSize square. Transparent cells stay clear.
func (g *Grid) Image(cellSize int) *image.NRGBA {
	cellSize = max(1, cellSize)
	img := image.NewNRGBA(image.Rect(0, 0, g.Width*cellSize, g.Height*cellSize))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			if t == Transparent {
				continue
			}
			c, err := ParseHex(string(t))
			if err != nil {
				continue
			}
			fill := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
			for py := y * cellSize; py < (y+1)*cellSize; py++ {
				for px := x * cellSize; px < (x+1)*cellSize; px++ {
					img.SetNRGBA(px, py, fill)
				}
			}
		}
	}
	return img
}

// ============ USAGE ============

// PaletteUsage is the bead count for one color of a finished grid.
type PaletteUsage struct {
	ID    string
	Hex   Token
	Name  string
	RGB   RGB
	Count int
}

// Usage counts the non-transparent colors of g, ordered by descending count.
// Equal counts keep the order in which colors first appear scanning g
// row-major.
func Usage(g *Grid, p *Palette) []PaletteUsage {
	counts := make(map[Token]int)
	var order []Token
	for _, t := range g.Cells {
		if t == Transparent {
			continue
		}
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}

	out := make([]PaletteUsage, 0, len(order))
	for _, t := range order {
		u := PaletteUsage{Hex: t, Name: "Unknown", Count: counts[t]}
		if c, ok := p.Lookup(t); ok {
			u.Name = c.Name
			u.RGB = c.RGB
		} else if rgb, err := ParseHex(string(t)); err == nil {
			u.RGB = rgb
		}
		out = append(out, u)
	}
	slices.SortStableFunc(out, func(a, b PaletteUsage) int {
		return b.Count - a.Count
	})
	for i := range out {
		out[i].ID = fmt.Sprintf("bead-%d", i)
	}
	return out
}

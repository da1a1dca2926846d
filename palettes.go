package perlerpix

import "sync"

// BeadSizeMM is the pitch of a mini bead.
const BeadSizeMM = 2.6

// GridSize is a preset for the longer side of a pattern.
type GridSize struct {
	Label string
	Value int
}

var GridSizes = []GridSize{
	{Label: "Small (16x16)", Value: 16},
	{Label: "Medium (32x32)", Value: 32},
	{Label: "Large (48x48)", Value: 48},
	{Label: "Extra Large (64x64)", Value: 64},
	{Label: "Detailed (80x80)", Value: 80},
}

// PerlerEntries approximates the common Perler/Hama/Artkal bead colors.
// Reds, pinks, black and white are feature colors.
var PerlerEntries = []PaletteEntry{
	{Hex: "#000000", Name: "Black", Feature: true},
	{Hex: "#FFFFFF", Name: "White", Feature: true},
	{Hex: "#888888", Name: "Grey"},
	{Hex: "#C0C0C0", Name: "Light Grey"},
	{Hex: "#555555", Name: "Dark Grey"},
	{Hex: "#E4E4E4", Name: "Clear"},
	{Hex: "#A05F35", Name: "Brown"},
	{Hex: "#D4A467", Name: "Light Brown"},
	{Hex: "#683F23", Name: "Dark Brown"},
	{Hex: "#CFA876", Name: "Tan"},
	{Hex: "#F0E68C", Name: "Sand"},
	{Hex: "#ECCDB1", Name: "Flesh"},
	{Hex: "#FFDAB9", Name: "Peach"},
	{Hex: "#FF0000", Name: "Red", Feature: true},
	{Hex: "#8B0000", Name: "Dark Red", Feature: true},
	{Hex: "#FA8072", Name: "Salmon"},
	{Hex: "#FF69B4", Name: "Hot Pink", Feature: true},
	{Hex: "#FFC0CB", Name: "Pink", Feature: true},
	{Hex: "#F7A8B8", Name: "Light Pink", Feature: true},
	{Hex: "#E05395", Name: "Raspberry"},
	{Hex: "#800080", Name: "Purple"},
	{Hex: "#DDA0DD", Name: "Plum"},
	{Hex: "#9370DB", Name: "Pastel Lavender"},
	{Hex: "#4B0082", Name: "Indigo"},
	{Hex: "#0000FF", Name: "Blue"},
	{Hex: "#00008B", Name: "Dark Blue"},
	{Hex: "#87CEEB", Name: "Light Blue"},
	{Hex: "#4169E1", Name: "Royal Blue"},
	{Hex: "#00FFFF", Name: "Cyan"},
	{Hex: "#40E0D0", Name: "Turquoise"},
	{Hex: "#008080", Name: "Teal"},
	{Hex: "#008000", Name: "Green"},
	{Hex: "#006400", Name: "Dark Green"},
	{Hex: "#90EE90", Name: "Light Green"},
	{Hex: "#32CD32", Name: "Lime Green"},
	{Hex: "#556B2F", Name: "Olive"},
	{Hex: "#FFFF00", Name: "Yellow"},
	{Hex: "#F0E632", Name: "Pastel Yellow"},
	{Hex: "#FFA500", Name: "Orange"},
	{Hex: "#FF8C00", Name: "Dark Orange"},
	{Hex: "#FFA07A", Name: "Light Salmon"},
	{Hex: "#F5F5DC", Name: "Cream"},
	{Hex: "#E6E6FA", Name: "Lavender"},
	{Hex: "#98FB98", Name: "Pale Green"},
}

var defaultPalette = sync.OnceValues(func() (*Palette, error) {
	return NewPalette(PerlerEntries)
})

// DefaultPalette returns the shared palette built from PerlerEntries.
func DefaultPalette() (*Palette, error) {
	return defaultPalette()
}

// MustDefaultPalette is DefaultPalette for program start-up; it panics if the
// built-in table is invalid.
func MustDefaultPalette() *Palette {
	p, err := defaultPalette()
	if err != nil {
		panic("perlerpix: built-in palette: " + err.Error())
	}
	return p
}

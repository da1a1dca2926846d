package perlerpix

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	black     Token = "#000000"
	white     Token = "#FFFFFF"
	red       Token = "#FF0000"
	green     Token = "#008000"
	yellow    Token = "#FFFF00"
	orange    Token = "#FFA500"
	pink      Token = "#FFC0CB"
	darkBlue  Token = "#00008B"
	lightBlue Token = "#87CEEB"
)

var legend = map[rune]Token{
	'.': Transparent,
	'K': black,
	'W': white,
	'R': red,
	'G': green,
	'Y': yellow,
	'O': orange,
	'P': pink,
	'L': lightBlue,
}

// gridFromRows builds a grid from equal-length rows using legend.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	require.NotEmpty(t, rows)
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, g.Width, "row %d", y)
		for x, r := range row {
			tok, ok := legend[r]
			require.True(t, ok, "unknown legend rune %q", r)
			g.Set(x, y, tok)
		}
	}
	return g
}

func testClasses() tokenClasses {
	return newTokenClasses(MustDefaultPalette(), DefaultOptions().OutlineLuma)
}

func fillRect(img *image.NRGBA, rect image.Rectangle, fill color.NRGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
}

func opaque(t Token) color.NRGBA {
	c, err := ParseHex(string(t))
	if err != nil {
		panic(err)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func quietLogs(t *testing.T) {
	t.Helper()
	prev := Logf
	SetLogger(nil)
	t.Cleanup(func() { Logf = prev })
}

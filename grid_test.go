package perlerpix

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsage_SortedByCountThenFirstSeen(t *testing.T) {
	t.Parallel()

	g := gridFromRows(t,
		"GRR.",
		"YGY.",
		"RKYK",
	)
	usage := Usage(g, MustDefaultPalette())
	require.Len(t, usage, 4)

	// G=2 R=3 Y=3 K=2: R is seen before Y, G before K.
	assert.Equal(t, []Token{red, yellow, green, black}, []Token{usage[0].Hex, usage[1].Hex, usage[2].Hex, usage[3].Hex})
	assert.Equal(t, []int{3, 3, 2, 2}, []int{usage[0].Count, usage[1].Count, usage[2].Count, usage[3].Count})
	assert.Equal(t, "bead-0", usage[0].ID)
	assert.Equal(t, "bead-3", usage[3].ID)
	assert.Equal(t, "Red", usage[0].Name)
	assert.Equal(t, RGB{0xFF, 0, 0}, usage[0].RGB)
}

func TestUsage_EmptyForTransparentGrid(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Usage(NewGrid(3, 2), MustDefaultPalette()))
}

func TestGrid_Validate(t *testing.T) {
	t.Parallel()

	p := MustDefaultPalette()
	g := gridFromRows(t, "KW.", "RGY")
	require.NoError(t, g.Validate(p))

	g.Set(1, 1, "#123456")
	assert.ErrorIs(t, g.Validate(p), ErrInvalidColor)

	g.Cells = g.Cells[:2]
	assert.Error(t, g.Validate(p))
}

func TestGrid_PhysicalSize(t *testing.T) {
	t.Parallel()

	w, h := NewGrid(32, 20).PhysicalSize(BeadSizeMM)
	assert.InDelta(t, 83.2, w, 1e-9)
	assert.InDelta(t, 52.0, h, 1e-9)
}

func TestGrid_Image(t *testing.T) {
	t.Parallel()

	g := gridFromRows(t, "R.", "KW")
	img := g.Image(3)
	require.Equal(t, 6, img.Bounds().Dx())
	require.Equal(t, 6, img.Bounds().Dy())

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(4, 1))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 5))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(5, 5))
}

func TestGrid_CloneIsDeep(t *testing.T) {
	t.Parallel()

	g := gridFromRows(t, "RG")
	c := g.Clone()
	c.Set(0, 0, Transparent)
	assert.Equal(t, red, g.At(0, 0))
}

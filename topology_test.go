package perlerpix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ring is a black square outline with a one-cell gap at (6,4), on a white
// background with a two-cell margin.
func ring(t *testing.T) *Grid {
	t.Helper()
	return gridFromRows(t,
		"WWWWWWWWW",
		"WWWWWWWWW",
		"WWKKKKKWW",
		"WWKWWWKWW",
		"WWKWWWWWW",
		"WWKWWWKWW",
		"WWKKKKKWW",
		"WWWWWWWWW",
		"WWWWWWWWW",
	)
}

func TestSeal_DilatesOutlineIntoCopy(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	raw := gridFromRows(t,
		".....",
		".....",
		"..K..",
		".....",
		"....R",
	)
	sealed := tc.seal(raw)

	want := gridFromRows(t,
		".....",
		".KKK.",
		".KKK.",
		".KKK.",
		"....R",
	)
	if diff := cmp.Diff(want.Cells, sealed.Cells); diff != "" {
		t.Errorf("sealed grid mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Transparent, raw.At(1, 1), "raw grid must not change")
}

func TestSeal_ClosesDiagonalGap(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	raw := gridFromRows(t,
		"K..",
		".W.",
		"..K",
	)
	sealed := tc.seal(raw)
	assert.Equal(t, black, sealed.At(1, 0))
	assert.Equal(t, black, sealed.At(0, 1))
	assert.Equal(t, black, sealed.At(1, 1))
}

func TestBackgroundMask_GapLeaksWithoutSealing(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	raw := ring(t)
	mask := tc.backgroundMask(raw, white)
	assert.True(t, mask[4*9+4], "the unsealed gap lets the fill reach the center")
}

func TestSegmentation_SealedRingKeepsInterior(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	raw := ring(t)
	mask := tc.backgroundMask(tc.seal(raw), white)
	final := tc.applyMask(raw, mask, white)

	for y := 3; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			assert.False(t, mask[y*9+x], "interior (%d,%d) marked background", x, y)
			assert.Equal(t, white, final.At(x, y), "interior (%d,%d)", x, y)
		}
	}
	for _, p := range [][2]int{{0, 0}, {8, 0}, {4, 0}, {0, 8}, {8, 8}} {
		assert.Equal(t, Transparent, final.At(p[0], p[1]), "exterior (%d,%d)", p[0], p[1])
	}

	// Outlines are never thickened in the visible grid.
	countBlack := func(g *Grid) int {
		n := 0
		for _, c := range g.Cells {
			if c == black {
				n++
			}
		}
		return n
	}
	assert.Equal(t, countBlack(raw), countBlack(final))
	assert.Equal(t, white, final.At(6, 4), "the gap is filled, not outlined")
}

func TestBackgroundMask_FeatureColorsStopFill(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	g := gridFromRows(t,
		"WWWW",
		"WRRW",
		"WRWW",
		"WWWW",
	)
	mask := tc.backgroundMask(g, white)
	assert.False(t, mask[1*4+1])
	assert.False(t, mask[0], "feature cells on the border are walls too")
	assert.True(t, mask[2*4+2], "reachable background between feature cells")
	assert.True(t, mask[3*4+3], "white is a feature color but also the background")
}

func TestBackgroundMask_NonFeatureColorsAreCut(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	raw := gridFromRows(t,
		"GWWWWWWWW",
		"GWWWWWWWW",
		"GWWKKKWWW",
		"LWWKYKWWW",
		"LWWKKKWWW",
		"LLWWWWWWW",
		"WWWWWWWWW",
	)
	mask := tc.backgroundMask(tc.seal(raw), white)
	final := tc.applyMask(raw, mask, white)

	for _, p := range [][2]int{{0, 0}, {0, 2}, {0, 3}, {1, 5}} {
		assert.Equal(t, Transparent, final.At(p[0], p[1]), "border-connected (%d,%d)", p[0], p[1])
	}
	assert.Equal(t, yellow, final.At(4, 3), "enclosed color keeps its vote")
	assert.Equal(t, black, final.At(3, 2))
}

func TestApplyMask_EnclosedHolesAreFilled(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	raw := gridFromRows(t,
		"LLLLLLL",
		"LLLLLLL",
		"LLKKKLL",
		"LLK.KLL",
		"LLKLKLL",
		"LLKKKLL",
		"LLLLLLL",
	)
	mask := tc.backgroundMask(tc.seal(raw), lightBlue)
	final := tc.applyMask(raw, mask, lightBlue)

	assert.Equal(t, white, final.At(3, 3), "enclosed transparent cell")
	assert.Equal(t, white, final.At(3, 4), "enclosed background-colored cell")
	assert.Equal(t, Transparent, final.At(0, 0))
	assert.Equal(t, Transparent, final.At(6, 3))
	assert.Equal(t, black, final.At(2, 2))
}

func TestBackgroundMask_LargeGridDoesNotRecurse(t *testing.T) {
	t.Parallel()

	tc := testClasses()
	g := NewGrid(400, 400)
	mask := tc.backgroundMask(g, white)
	require.Len(t, mask, 400*400)
	for i, m := range mask {
		if !m {
			t.Fatalf("cell %d not reached", i)
		}
	}
}

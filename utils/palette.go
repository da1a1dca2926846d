package utils

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/ZX-Mu/perlerpix"
	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod accepts the String forms.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	default:
		return 0, fmt.Errorf("unknown palette method %q", s)
	}
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

type weightedBead struct {
	Bead   perlerpix.PaletteColor
	Weight float64
}

// SuggestPalette limits palette to at most k beads chosen from the image's
// dominant colors, then adds back the outline and fill beads the pipeline
// writes on its own. Table order and feature flags are preserved.
func SuggestPalette(img image.Image, palette *perlerpix.Palette, k int, method PaletteMethod) (*perlerpix.Palette, error) {
	if palette == nil || palette.Len() == 0 {
		return nil, perlerpix.ErrEmptyPalette
	}
	if k <= 0 {
		return nil, fmt.Errorf("suggest palette: k must be positive, got %d", k)
	}
	cands := extractColors(img, k, method)
	beads := weighBeads(cands, perlerpix.NewMatcher(palette, nil))
	selected := selectDiverseBeads(beads, k)

	keep := map[perlerpix.Token]bool{
		palette.Outline().Hex: true,
		palette.Fill().Hex:    true,
	}
	for _, b := range selected {
		keep[b.Hex] = true
	}
	return palette.Subset(func(c perlerpix.PaletteColor) bool { return keep[c.Hex] })
}

// minWeight keeps zero-weight candidates selectable.
const minWeight = 1e-6

// weighBeads snaps candidate colors to beads and sums their weights, each
// candidate counting at least minWeight. Beads keep the order in which they
// were first hit.
func weighBeads(cands []weightedColor, m *perlerpix.Matcher) []weightedBead {
	index := make(map[perlerpix.Token]int)
	var out []weightedBead
	for _, c := range cands {
		r, g, b := c.Col.Clamped().RGB255()
		bead := m.NearestColor(perlerpix.RGB{R: r, G: g, B: b})
		w := max(c.Weight, minWeight)
		if i, ok := index[bead.Hex]; ok {
			out[i].Weight += w
			continue
		}
		index[bead.Hex] = len(out)
		out = append(out, weightedBead{Bead: bead, Weight: w})
	}
	return out
}

// selectDiverseBeads greedily picks up to k beads, seeding with the heaviest
// and then favoring beads far (in Lab) from those already picked, scaled by
// weight.
func selectDiverseBeads(beads []weightedBead, k int) []perlerpix.PaletteColor {
	if k <= 0 || len(beads) == 0 {
		return nil
	}
	k = min(k, len(beads))
	maxW := 0.0
	for _, b := range beads {
		maxW = max(maxW, b.Weight)
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	selected := make([]bool, len(beads))
	selectedIdx := make([]int, 0, k)

	// Seed with strongest color to stay close to dominant tones.
	bestSeed := 0
	for i := 1; i < len(beads); i++ {
		if beads[i].Weight > beads[bestSeed].Weight {
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range beads {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				minD2 = min(minD2, perlerpix.CIE76{}.Distance(beads[i].Bead.Swatch(), beads[s].Bead.Swatch()))
			}
			normW := beads[i].Weight / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]perlerpix.PaletteColor, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, beads[idx].Bead)
	}
	return out
}

// ============ COLOR EXTRACTION ============

// extractColors returns weighted candidate colors of img. The k-means method
// falls back to dominantcolor when it yields nothing.
func extractColors(img image.Image, k int, method PaletteMethod) []weightedColor {
	switch method {
	case PaletteMethodKMeans:
		c := extractKMeans(img, k)
		if len(c) != 0 {
			return c
		}
		perlerpix.Logf("palette warning: kmeans returned no colors, falling back to dominantcolor")
		return extractDominant(img, k)
	default:
		return extractDominant(img, k)
	}
}

// maxKMeansSamples bounds the observations handed to kmeans.
const maxKMeansSamples = 12000

func extractDominant(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	out := make([]weightedColor, 0, max(1, len(found)))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		out = append(out, weightedColor{Col: col, Weight: c.Weight})
	}
	if len(out) == 0 {
		out = append(out, weightedColor{Col: colorful.Color{R: 0.5, G: 0.5, B: 0.5}, Weight: 1})
	}
	return out
}

func extractKMeans(img image.Image, k int) []weightedColor {
	obs := opaqueSamples(img, maxKMeansSamples)
	if len(obs) == 0 {
		return nil
	}
	cc, err := kmeans.New().Partition(obs, min(max(k*4, k+2), len(obs)))
	if err != nil {
		perlerpix.Logf("palette warning: kmeans: %v", err)
		return nil
	}
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	var out []weightedColor
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, weightedColor{
			Col:    colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]},
			Weight: float64(len(c.Observations)),
		})
	}
	return out
}

// opaqueSamples returns up to about limit pixels of img on a regular lattice,
// as unit RGB coordinates. Pixels below the default alpha cutoff are skipped.
func opaqueSamples(img image.Image, limit int) clusters.Observations {
	b := img.Bounds()
	area := b.Dx() * b.Dy()
	if area == 0 {
		return nil
	}
	step := 1
	if area > limit {
		step = int(math.Sqrt(float64(area)/float64(limit))) + 1
	}
	cutoff := uint8(perlerpix.DefaultOptions().AlphaCutoff)

	obs := make(clusters.Observations, 0, min(area, limit))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < cutoff {
				continue
			}
			obs = append(obs, clusters.Coordinates{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255})
		}
	}
	return obs
}

package perlerpix

import "slices"

// despeckle replaces orphan cells, whose non-transparent orthogonal
// neighbors all differ from them, with the neighbors' plurality color. It is a
// single in-place forward pass over interior cells. Outline and feature cells
// are never replaced, and a replacement never introduces an outline color.
func (tc tokenClasses) despeckle(g *Grid) *Grid {
	out := g.Clone()
	var neighbors [4]Token
	for y := 1; y < out.Height-1; y++ {
		for x := 1; x < out.Width-1; x++ {
			c := out.At(x, y)
			if c == Transparent || tc.isOutline(c) || tc.isFeature(c) {
				continue
			}

			n := neighbors[:0]
			for _, t := range [4]Token{out.At(x-1, y), out.At(x+1, y), out.At(x, y-1), out.At(x, y+1)} {
				if t != Transparent {
					n = append(n, t)
				}
			}
			if len(n) == 0 || slices.Contains(n, c) {
				continue
			}

			// First color to reach the highest count wins.
			best, bestCount := n[0], 0
			counts := make(map[Token]int, len(n))
			for _, t := range n {
				counts[t]++
				if counts[t] > bestCount {
					best, bestCount = t, counts[t]
				}
			}
			if !tc.isOutline(best) {
				out.Set(x, y, best)
			}
		}
	}
	return out
}


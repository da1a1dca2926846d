package perlerpix

// ============ SEALING ============

// seal returns a copy of g in which every neighbor (8-connected) of an
// outline cell is forced to the outline token. The copy only serves as a
// fence for backgroundMask and is never returned to callers.
func (tc tokenClasses) seal(g *Grid) *Grid {
	sealed := g.Clone()
	wall := tc.outlineToken()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !tc.isOutline(g.At(x, y)) {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if (dx == 0 && dy == 0) || !g.inBounds(nx, ny) {
						continue
					}
					sealed.Set(nx, ny, wall)
				}
			}
		}
	}
	return sealed
}

// ============ SEGMENTATION ============

// backgroundMask flood-fills g (4-connected) from every border cell. Outline
// cells and feature cells other than the background itself are walls; every
// other cell reached is background. The fill uses an explicit queue.
func (tc tokenClasses) backgroundMask(g *Grid, background Token) []bool {
	mask := make([]bool, len(g.Cells))
	queue := make([]int, 0, 2*(g.Width+g.Height))

	visit := func(x, y int) {
		if !g.inBounds(x, y) {
			return
		}
		i := y*g.Width + x
		if mask[i] {
			return
		}
		t := g.Cells[i]
		if tc.isOutline(t) || (t != background && tc.isFeature(t)) {
			return
		}
		mask[i] = true
		queue = append(queue, i)
	}

	for x := 0; x < g.Width; x++ {
		visit(x, 0)
		visit(x, g.Height-1)
	}
	for y := 1; y < g.Height-1; y++ {
		visit(0, y)
		visit(g.Width-1, y)
	}

	for head := 0; head < len(queue); head++ {
		x, y := queue[head]%g.Width, queue[head]/g.Width
		visit(x-1, y)
		visit(x+1, y)
		visit(x, y-1)
		visit(x, y+1)
	}
	return mask
}

// applyMask cuts masked cells to Transparent. Unmasked cells that are
// transparent or background-colored are enclosed holes and take the fill
// color; everything else keeps its vote.
func (tc tokenClasses) applyMask(raw *Grid, mask []bool, background Token) *Grid {
	out := raw.Clone()
	fill := tc.fillToken()
	for i, t := range raw.Cells {
		switch {
		case mask[i]:
			out.Cells[i] = Transparent
		case t == Transparent || t == background:
			out.Cells[i] = fill
		}
	}
	return out
}

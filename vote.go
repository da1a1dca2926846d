package perlerpix

import (
	"image"
	"math"
	"runtime"
	"sync"
)

const maxWorkerCap = 8

// ============ BACKGROUND ============

// detectBackground matches the four corners (top-left, top-right,
// bottom-left, bottom-right) and returns the most frequent palette index.
// Ties go to the corner scanned first.
func detectBackground(src *image.NRGBA, m *Matcher) int {
	b := src.Bounds()
	corners := []image.Point{
		{b.Min.X, b.Min.Y},
		{b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1},
		{b.Max.X - 1, b.Max.Y - 1},
	}
	matched := make([]int, 0, len(corners))
	counts := make(map[int]int, len(corners))
	for _, p := range corners {
		off := src.PixOffset(p.X, p.Y)
		idx := m.Nearest(RGB{R: src.Pix[off], G: src.Pix[off+1], B: src.Pix[off+2]})
		matched = append(matched, idx)
		counts[idx]++
	}
	best := matched[0]
	for _, idx := range matched[1:] {
		if counts[idx] > counts[best] {
			best = idx
		}
	}
	return best
}

// ============ BLOCK VOTING ============

// vote builds the raw grid. Rows are split across workers; each cell reads
// only its own source block.
func (gb *GridBuilder) vote(size int, opt Options) *Grid {
	srcW, srcH := gb.Source.Bounds().Dx(), gb.Source.Bounds().Dy()
	w, h := gridDimensions(srcW, srcH, size)
	grid := NewGrid(w, h)

	workers := opt.Workers
	if workers <= 0 {
		workers = min(runtime.GOMAXPROCS(0), maxWorkerCap)
	}
	workers = max(1, min(workers, h))

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		start, end := splitRange(h, workers, worker)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			v := newBlockVoter(gb, opt, w, h)
			for y := start; y < end; y++ {
				for x := 0; x < w; x++ {
					grid.Cells[y*w+x] = v.cell(x, y)
				}
			}
		}(start, end)
	}
	wg.Wait()
	return grid
}

// splitRange returns the [start,end) band of n items owned by part.
func splitRange(n, parts, part int) (int, int) {
	chunk := n / parts
	rem := n % parts
	start := part*chunk + min(part, rem)
	end := start + chunk
	if part < rem {
		end++
	}
	return start, end
}

// blockVoter holds per-worker scratch state. It is not safe for concurrent use.
type blockVoter struct {
	src        *image.NRGBA
	matcher    *Matcher
	classes    tokenClasses
	opt        Options
	background int
	outline    int

	blockW, blockH float64
	srcW, srcH     int

	votes []int
	order []int
	memo  map[RGB]int
}

func newBlockVoter(gb *GridBuilder, opt Options, w, h int) *blockVoter {
	srcW, srcH := gb.Source.Bounds().Dx(), gb.Source.Bounds().Dy()
	return &blockVoter{
		src:        gb.Source,
		matcher:    gb.matcher,
		classes:    gb.classes,
		opt:        opt,
		background: gb.Background,
		outline:    gb.Palette.outline,
		blockW:     float64(srcW) / float64(w),
		blockH:     float64(srcH) / float64(h),
		srcW:       srcW,
		srcH:       srcH,
		votes:      make([]int, gb.Palette.Len()),
		memo:       make(map[RGB]int),
	}
}

// span returns the padded source interval of output index i. A span that
// rounds to nothing collapses onto the nearest source pixel.
func span(i int, block float64, limit int, pad float64) (int, int) {
	start := int(math.Floor(float64(i) * block))
	end := int(math.Floor(math.Min(float64(limit), float64(i+1)*block)))
	p := int(math.Floor(float64(end-start) * pad))
	start, end = start+p, end-p
	if start >= end {
		start = max(0, min(limit-1, int(math.Floor((float64(i)+0.5)*block))))
		end = start + 1
	}
	return start, end
}

func (v *blockVoter) nearest(c RGB) int {
	if idx, ok := v.memo[c]; ok {
		return idx
	}
	idx := v.matcher.Nearest(c)
	v.memo[c] = idx
	return idx
}

// cell elects the token for output cell (x,y). Priority: mostly
// transparent, then a feature color, then the outline color, then the
// plurality vote.
func (v *blockVoter) cell(x, y int) Token {
	for _, idx := range v.order {
		v.votes[idx] = 0
	}
	v.order = v.order[:0]

	x0, x1 := span(x, v.blockW, v.srcW, v.opt.EdgePad)
	y0, y1 := span(y, v.blockH, v.srcH, v.opt.EdgePad)

	total, transparent, outlineVotes := 0, 0, 0
	for py := y0; py < y1; py++ {
		off := v.src.PixOffset(x0, py)
		for px := x0; px < x1; px++ {
			total++
			if int(v.src.Pix[off+3]) < v.opt.AlphaCutoff {
				transparent++
				off += 4
				continue
			}
			idx := v.nearest(RGB{R: v.src.Pix[off], G: v.src.Pix[off+1], B: v.src.Pix[off+2]})
			if v.votes[idx] == 0 {
				v.order = append(v.order, idx)
			}
			v.votes[idx]++
			if v.classes.outline[idx] {
				outlineVotes++
			}
			off += 4
		}
	}

	if float64(transparent) > float64(total)*v.opt.TransparentShare || len(v.order) == 0 {
		return Transparent
	}
	valid := float64(total - transparent)

	featureWinner, featureVotes := -1, 0
	for _, idx := range v.order {
		if !v.classes.feature[idx] || idx == v.background {
			continue
		}
		n := v.votes[idx]
		if float64(n)/valid > v.opt.FeatureShare && n > featureVotes {
			featureWinner, featureVotes = idx, n
		}
	}
	if featureWinner >= 0 {
		return v.classes.palette.colors[featureWinner].Hex
	}

	if float64(outlineVotes)/valid > v.opt.OutlineShare && v.background != v.outline {
		return v.classes.outlineToken()
	}

	winner, most := v.order[0], 0
	for _, idx := range v.order {
		if v.votes[idx] > most {
			winner, most = idx, v.votes[idx]
		}
	}
	return v.classes.palette.colors[winner].Hex
}

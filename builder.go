// Package perlerpix turns a raster image into a bead pattern: a fixed-size
// grid of colors from a physical bead palette plus a count per color.
package perlerpix

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
)

var (
	ErrInvalidSize    = errors.New("grid size must be positive")
	ErrEmptyImage     = errors.New("image has no pixels")
	ErrInvalidOptions = errors.New("invalid options")
)

type Options struct {
	// Samples with alpha below this count as transparent.
	AlphaCutoff int `json:"alpha_cutoff"`
	// A cell becomes Transparent when more than this share of its samples
	// are transparent.
	TransparentShare float64 `json:"transparent_share"`
	// Minimum vote share for a feature color (eyes, ears) to win a cell
	// outright. Lower keeps smaller details but lets stray pinks in.
	FeatureShare float64 `json:"feature_share"`
	// Minimum share of outline votes to force the outline color.
	// Too low => outlines bleed into neighbors; too high => broken outlines.
	OutlineShare float64 `json:"outline_share"`
	// Palette colors with luma below this are outline colors.
	OutlineLuma float64 `json:"outline_luma"`
	// Fraction of the block trimmed from each side before sampling.
	// Ideal range: 0.1-0.25. Higher ignores anti-aliased edges but samples less.
	EdgePad float64 `json:"edge_pad"`
	// Color distance used for palette matching: cie76, rgb, redmean, ciede2000.
	Metric string `json:"metric"`
	// Voting workers. 0 picks from GOMAXPROCS.
	Workers int `json:"workers"`
	// Disables the despeckle pass.
	SkipDespeckle bool `json:"skip_despeckle"`
}

func DefaultOptions() Options {
	return Options{
		AlphaCutoff:      128,
		TransparentShare: 0.60,
		FeatureShare:     0.15,
		OutlineShare:     0.20,
		OutlineLuma:      35,
		EdgePad:          0.20,
		Metric:           MetricCIE76,
	}
}

// Validate reports the first out-of-range option.
func (o Options) Validate() error {
	switch {
	case o.AlphaCutoff < 0 || o.AlphaCutoff > 256:
		return fmt.Errorf("%w: alpha_cutoff %d outside [0,256]", ErrInvalidOptions, o.AlphaCutoff)
	case o.TransparentShare < 0 || o.TransparentShare > 1:
		return fmt.Errorf("%w: transparent_share %g outside [0,1]", ErrInvalidOptions, o.TransparentShare)
	case o.FeatureShare < 0 || o.FeatureShare > 1:
		return fmt.Errorf("%w: feature_share %g outside [0,1]", ErrInvalidOptions, o.FeatureShare)
	case o.OutlineShare < 0 || o.OutlineShare > 1:
		return fmt.Errorf("%w: outline_share %g outside [0,1]", ErrInvalidOptions, o.OutlineShare)
	case o.OutlineLuma < 0 || o.OutlineLuma > 255:
		return fmt.Errorf("%w: outline_luma %g outside [0,255]", ErrInvalidOptions, o.OutlineLuma)
	case o.EdgePad < 0 || o.EdgePad >= 0.5:
		return fmt.Errorf("%w: edge_pad %g outside [0,0.5)", ErrInvalidOptions, o.EdgePad)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidOptions, o.Workers)
	}
	if _, err := MetricByName(o.Metric); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// Result is a finished pattern with its bead inventory.
type Result struct {
	Grid       *Grid
	Palette    []PaletteUsage
	Background Token
}

// GridBuilder runs the pipeline for one input image. Stage outputs are kept on
// the builder so callers can inspect them after Build.
type GridBuilder struct {
	InputImage image.Image
	Palette    *Palette

	Source     *image.NRGBA
	Background int // palette index of the detected background
	Raw        *Grid
	Sealed     *Grid
	Mask       []bool
	Grid       *Grid
	Usage      []PaletteUsage

	matcher *Matcher
	classes tokenClasses
}

func NewGridBuilder(input image.Image, palette *Palette) *GridBuilder {
	return &GridBuilder{
		InputImage: input,
		Palette:    palette,
	}
}

// Build converts the input into a grid whose longer side is size cells.
func (gb *GridBuilder) Build(size int, opt Options) error {
	if gb.Palette == nil || gb.Palette.Len() == 0 {
		return ErrEmptyPalette
	}
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if err := opt.Validate(); err != nil {
		return err
	}
	if gb.InputImage == nil || gb.InputImage.Bounds().Empty() {
		return ErrEmptyImage
	}
	metric, _ := MetricByName(opt.Metric)
	gb.matcher = NewMatcher(gb.Palette, metric)
	gb.classes = newTokenClasses(gb.Palette, opt.OutlineLuma)

	gb.Source = toNRGBA(gb.InputImage)
	gb.Background = detectBackground(gb.Source, gb.matcher)
	gb.Raw = gb.vote(size, opt)
	gb.Sealed = gb.classes.seal(gb.Raw)
	gb.Mask = gb.classes.backgroundMask(gb.Sealed, gb.backgroundToken())
	gb.Grid = gb.classes.applyMask(gb.Raw, gb.Mask, gb.backgroundToken())
	if !opt.SkipDespeckle {
		gb.Grid = gb.classes.despeckle(gb.Grid)
	}
	gb.Usage = Usage(gb.Grid, gb.Palette)

	Logf("perlerpix: %dx%d -> %dx%d grid, metric=%s background=%s colors=%d",
		gb.Source.Bounds().Dx(), gb.Source.Bounds().Dy(),
		gb.Grid.Width, gb.Grid.Height, metric.Name(), gb.backgroundToken(), len(gb.Usage))
	return nil
}

func (gb *GridBuilder) backgroundToken() Token {
	return gb.Palette.At(gb.Background).Hex
}

// Result returns the output of the last successful Build.
func (gb *GridBuilder) Result() *Result {
	if gb.Grid == nil {
		return nil
	}
	return &Result{
		Grid:       gb.Grid,
		Palette:    gb.Usage,
		Background: gb.backgroundToken(),
	}
}

// Process is the one-call form of NewGridBuilder + Build.
func Process(input image.Image, size int, palette *Palette, opt Options) (*Result, error) {
	gb := NewGridBuilder(input, palette)
	if err := gb.Build(size, opt); err != nil {
		return nil, err
	}
	return gb.Result(), nil
}

// gridDimensions maps the longer source side to size and rounds the other to
// keep the aspect ratio.
func gridDimensions(srcW, srcH, size int) (int, int) {
	aspect := float64(srcW) / float64(srcH)
	w, h := size, size
	if aspect > 1 {
		h = max(1, int(math.Round(float64(size)/aspect)))
	} else {
		w = max(1, int(math.Round(float64(size)*aspect)))
	}
	return w, h
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// ============ TOKEN CLASSES ============

// tokenClasses answers outline/feature questions for tokens of one palette.
type tokenClasses struct {
	palette *Palette
	outline []bool
	feature []bool
}

func newTokenClasses(p *Palette, outlineLuma float64) tokenClasses {
	tc := tokenClasses{
		palette: p,
		outline: make([]bool, p.Len()),
		feature: make([]bool, p.Len()),
	}
	for i, c := range p.colors {
		tc.outline[i] = c.RGB.Luma() < outlineLuma
		tc.feature[i] = c.Feature
	}
	return tc
}

func (tc tokenClasses) isOutline(t Token) bool {
	i, ok := tc.palette.byHex[t]
	return ok && tc.outline[i]
}

func (tc tokenClasses) isFeature(t Token) bool {
	i, ok := tc.palette.byHex[t]
	return ok && tc.feature[i]
}

func (tc tokenClasses) outlineToken() Token {
	return tc.palette.Outline().Hex
}

func (tc tokenClasses) fillToken() Token {
	return tc.palette.Fill().Hex
}

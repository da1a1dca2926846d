package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/ZX-Mu/perlerpix"
	"github.com/lucasb-eyer/go-colorful"
	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes any registered format (png, jpeg, gif, bmp, webp, qoi).
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()
	img, _, err := DecodeImage(file)
	return img, err
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveGridImage renders g with cellSize pixels per bead.
func SaveGridImage(g *perlerpix.Grid, cellSize int, filename string) error {
	return SaveImage(g.Image(cellSize), filename)
}

// SortUsageByBrightness orders usage entries from darkest to brightest.
func SortUsageByBrightness(usage []perlerpix.PaletteUsage) {
	slices.SortStableFunc(usage, func(a, b perlerpix.PaletteUsage) int {
		yi := relativeLuminance(a.RGB)
		yj := relativeLuminance(b.RGB)
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func relativeLuminance(c perlerpix.RGB) float64 {
	r, g, b := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SaveUsageSwatches writes one tileSize square per used color, in the given
// order, to filename.
func SaveUsageSwatches(usage []perlerpix.PaletteUsage, tileSize int, filename string) error {
	if len(usage) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(usage)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, u := range usage {
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := 0; y < h; y++ {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, color.RGBA{R: u.RGB.R, G: u.RGB.G, B: u.RGB.B, A: 255})
			}
		}
	}

	return SaveImage(img, filepath.Clean(filename))
}

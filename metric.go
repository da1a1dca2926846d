package perlerpix

import (
	"fmt"
	"strings"
)

// Swatch pairs an sRGB color with its Lab representation so that a metric can
// use whichever space it needs without converting again.
type Swatch struct {
	RGB RGB
	Lab Lab
}

// NewSwatch converts c once and keeps both representations.
func NewSwatch(c RGB) Swatch {
	return Swatch{RGB: c, Lab: RGBToLab(c)}
}

// Metric orders colors by dissimilarity. Only the ordering of returned values
// matters, so implementations may skip square roots.
type Metric interface {
	Name() string
	Distance(a, b Swatch) float64
}

const (
	MetricCIE76        = "cie76"
	MetricRGBEuclidean = "rgb"
	MetricRedmean      = "redmean"
	MetricCIEDE2000    = "ciede2000"
)

// CIE76 is squared Euclidean distance in L*a*b*.
type CIE76 struct{}

func (CIE76) Name() string { return MetricCIE76 }

func (CIE76) Distance(a, b Swatch) float64 {
	dL := a.Lab.L - b.Lab.L
	da := a.Lab.A - b.Lab.A
	db := a.Lab.B - b.Lab.B
	return dL*dL + da*da + db*db
}

// RGBEuclidean is squared Euclidean distance on raw 8-bit channels.
type RGBEuclidean struct{}

func (RGBEuclidean) Name() string { return MetricRGBEuclidean }

func (RGBEuclidean) Distance(a, b Swatch) float64 {
	dr := float64(a.RGB.R) - float64(b.RGB.R)
	dg := float64(a.RGB.G) - float64(b.RGB.G)
	db := float64(a.RGB.B) - float64(b.RGB.B)
	return dr*dr + dg*dg + db*db
}

// Redmean weights the RGB channels by the mean red level of the pair.
type Redmean struct{}

func (Redmean) Name() string { return MetricRedmean }

func (Redmean) Distance(a, b Swatch) float64 {
	rmean := (float64(a.RGB.R) + float64(b.RGB.R)) / 2
	dr := float64(a.RGB.R) - float64(b.RGB.R)
	dg := float64(a.RGB.G) - float64(b.RGB.G)
	db := float64(a.RGB.B) - float64(b.RGB.B)
	return (2+rmean/256)*dr*dr + 4*dg*dg + (2+(255-rmean)/256)*db*db
}

// CIEDE2000 delegates to go-colorful's implementation.
type CIEDE2000 struct{}

func (CIEDE2000) Name() string { return MetricCIEDE2000 }

func (CIEDE2000) Distance(a, b Swatch) float64 {
	return a.RGB.toColorful().DistanceCIEDE2000(b.RGB.toColorful())
}

// MetricByName resolves a metric name. The empty string selects CIE76.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MetricCIE76, "lab":
		return CIE76{}, nil
	case MetricRGBEuclidean:
		return RGBEuclidean{}, nil
	case MetricRedmean:
		return Redmean{}, nil
	case MetricCIEDE2000:
		return CIEDE2000{}, nil
	default:
		return nil, fmt.Errorf("unknown color metric %q", name)
	}
}

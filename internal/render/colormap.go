package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// stop anchors one color of a scale at a position in [0, 1].
type stop struct {
	pos     float64
	r, g, b float64
}

// Colormap maps a normalized value in [0, 1] to a color by linear
// interpolation between anchored stops.
type Colormap struct {
	name  string
	stops []stop
}

// Approximations of the scientific color scales the configuration
// documents name (Crameri's batlow, lajolla and roma). Anchors only;
// intermediate colors are interpolated.
var palettes = map[string][]stop{
	"batlow": {
		{0.00, 0.005, 0.085, 0.380},
		{0.15, 0.060, 0.245, 0.390},
		{0.30, 0.145, 0.350, 0.350},
		{0.45, 0.320, 0.430, 0.260},
		{0.60, 0.550, 0.490, 0.220},
		{0.75, 0.800, 0.560, 0.320},
		{0.90, 0.975, 0.665, 0.565},
		{1.00, 0.995, 0.800, 0.800},
	},
	"lajolla": {
		{0.00, 1.000, 1.000, 0.800},
		{0.20, 0.980, 0.870, 0.470},
		{0.40, 0.920, 0.640, 0.340},
		{0.60, 0.840, 0.380, 0.280},
		{0.80, 0.550, 0.200, 0.180},
		{1.00, 0.100, 0.100, 0.100},
	},
	"roma": {
		{0.00, 0.490, 0.090, 0.000},
		{0.20, 0.680, 0.395, 0.130},
		{0.40, 0.870, 0.720, 0.400},
		{0.60, 0.700, 0.870, 0.760},
		{0.80, 0.320, 0.620, 0.740},
		{1.00, 0.100, 0.200, 0.600},
	},
}

// ByName resolves a colormap identifier from a profile. Accepts the bare
// scale name, the cmc. prefix used by older configs, and an _r suffix for
// the reversed scale. Unknown names wrap domain.ErrConfiguration.
func ByName(name string) (Colormap, error) {
	base := strings.TrimPrefix(name, "cmc.")
	reversed := strings.HasSuffix(base, "_r")
	base = strings.TrimSuffix(base, "_r")

	anchors, ok := palettes[base]
	if !ok {
		return Colormap{}, fmt.Errorf("%w: unknown colormap %q", domain.ErrConfiguration, name)
	}

	stops := make([]stop, len(anchors))
	copy(stops, anchors)
	if reversed {
		for i, j := 0, len(stops)-1; i < j; i, j = i+1, j-1 {
			stops[i], stops[j] = stops[j], stops[i]
		}
		for i := range stops {
			stops[i].pos = 1 - stops[i].pos
		}
	}
	return Colormap{name: name, stops: stops}, nil
}

// Name returns the identifier the colormap was resolved from.
func (c Colormap) Name() string { return c.name }

// At returns the color at normalized position t, clamped to [0, 1].
func (c Colormap) At(t float64) color.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	s := c.stops
	for i := 1; i < len(s); i++ {
		if t <= s[i].pos {
			span := s[i].pos - s[i-1].pos
			f := 0.0
			if span > 0 {
				f = (t - s[i-1].pos) / span
			}
			return rgb(
				lerp(s[i-1].r, s[i].r, f),
				lerp(s[i-1].g, s[i].g, f),
				lerp(s[i-1].b, s[i].b, f),
			)
		}
	}
	last := s[len(s)-1]
	return rgb(last.r, last.g, last.b)
}

// Normalize maps v linearly from [vmin, vmax] to [0, 1], clamping outside
// values to the scale ends.
func Normalize(v, vmin, vmax float64) float64 {
	if v < vmin {
		return 0
	}
	if v > vmax {
		return 1
	}
	return (v - vmin) / (vmax - vmin)
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }

func rgb(r, g, b float64) color.Color {
	return color.RGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}

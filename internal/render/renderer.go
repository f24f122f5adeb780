// Package render draws composite map images: the observation mesh plus
// coastlines, borders, roads, labels and figure furniture. Two renderers
// exist, global and regional; a request is consumed by exactly one.
package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/fmi-ika/plot-tropomi/internal/adapter/overlay"
	"github.com/fmi-ika/plot-tropomi/internal/domain"
	"github.com/fmi-ika/plot-tropomi/internal/observability"
)

// Canvas layout. 2000x1000 matches the historical 20x10 inch figure at
// 100 dpi; the right margin hosts the colorbar, the top margin the title.
const (
	canvasW = 2000
	canvasH = 1000

	marginLeft   = 80.0
	marginRight  = 190.0
	marginTop    = 110.0
	marginBottom = 70.0
)

var worldExtent = domain.Extent{LonMin: -180, LonMax: 180, LatMin: -90, LatMax: 90}

// Renderer draws render requests onto a fresh canvas per call.
type Renderer struct {
	overlays *overlay.Store
	logger   *slog.Logger
	metrics  *observability.Metrics

	titleFace font.Face
	labelFace font.Face
	tickFace  font.Face
}

// New creates a Renderer. The only failure mode is the embedded typeface
// not parsing, which indicates a broken build.
func New(overlays *overlay.Store, logger *slog.Logger, metrics *observability.Metrics) (*Renderer, error) {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded typeface: %w", err)
	}

	r := &Renderer{overlays: overlays, logger: logger, metrics: metrics}
	for _, f := range []struct {
		face *font.Face
		size float64
	}{
		{&r.titleFace, 30},
		{&r.labelFace, 22},
		{&r.tickFace, 17},
	} {
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: f.size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("build typeface at %gpt: %w", f.size, err)
		}
		*f.face = face
	}
	return r, nil
}

// mapArea is the equirectangular projection from a geographic extent onto
// the map rectangle of the canvas.
type mapArea struct {
	extent     domain.Extent
	x, y, w, h float64
}

func newMapArea(extent domain.Extent) mapArea {
	return mapArea{
		extent: extent,
		x:      marginLeft,
		y:      marginTop,
		w:      canvasW - marginLeft - marginRight,
		h:      canvasH - marginTop - marginBottom,
	}
}

// point projects a coordinate to canvas pixels. Latitude grows upward,
// pixel y grows downward.
func (m mapArea) point(c domain.Coord) (float64, float64) {
	px := m.x + (c.Lon-m.extent.LonMin)/(m.extent.LonMax-m.extent.LonMin)*m.w
	py := m.y + (m.extent.LatMax-c.Lat)/(m.extent.LatMax-m.extent.LatMin)*m.h
	return px, py
}

// newCanvas returns a white canvas clipped to nothing.
func newCanvas() *gg.Context {
	dc := gg.NewContext(canvasW, canvasH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	return dc
}

// clipToMap restricts drawing to the map rectangle until ResetClip.
func clipToMap(dc *gg.Context, area mapArea) {
	dc.DrawRectangle(area.x, area.y, area.w, area.h)
	dc.Clip()
}

// drawMesh fills one rectangle per grid cell, colored by the linear
// profile-range-to-colormap rule. Missing cells (NaN) are skipped and
// stay transparent. Returns drawn and missing cell counts.
func (r *Renderer) drawMesh(dc *gg.Context, area mapArea, grid domain.ObservationGrid, cmap Colormap, vmin, vmax float64) (rendered, missing int) {
	latEdges := cellEdges(grid.Lat)
	lonEdges := cellEdges(grid.Lon)

	for i, row := range grid.Values {
		for j, v := range row {
			if math.IsNaN(v) {
				missing++
				continue
			}
			x0, y0 := area.point(domain.Coord{Lon: lonEdges[j], Lat: latEdges[i+1]})
			x1, y1 := area.point(domain.Coord{Lon: lonEdges[j+1], Lat: latEdges[i]})
			dc.SetColor(cmap.At(Normalize(v, vmin, vmax)))
			// Slight overlap hides antialiasing seams between cells.
			dc.DrawRectangle(x0, y0, x1-x0+0.5, y1-y0+0.5)
			dc.Fill()
			rendered++
		}
	}
	return rendered, missing
}

// cellEdges converts cell-center coordinates to cell boundaries.
func cellEdges(centers []float64) []float64 {
	n := len(centers)
	edges := make([]float64, n+1)
	if n == 1 {
		edges[0], edges[1] = centers[0]-0.5, centers[0]+0.5
		return edges
	}
	edges[0] = centers[0] - (centers[1]-centers[0])/2
	for i := 1; i < n; i++ {
		edges[i] = (centers[i-1] + centers[i]) / 2
	}
	edges[n] = centers[n-1] + (centers[n-1]-centers[n-2])/2
	return edges
}

// strokeLines draws each polyline with the given style.
func strokeLines(dc *gg.Context, area mapArea, lines [][]domain.Coord, width float64, r, g, b float64) {
	dc.SetRGB(r, g, b)
	dc.SetLineWidth(width)
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		x, y := area.point(line[0])
		dc.MoveTo(x, y)
		for _, c := range line[1:] {
			x, y = area.point(c)
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}
}

// graticule draws grid lines every step degrees. With labels enabled,
// longitude labels run along the bottom edge and latitude labels along
// the left edge only; the top and right edges stay unlabeled.
func (r *Renderer) graticule(dc *gg.Context, area mapArea, step float64, labels bool) {
	dc.SetRGBA(0.5, 0.5, 0.5, 0.6)
	dc.SetLineWidth(0.8)
	dc.SetDash(6, 4)

	for lon := math.Ceil(area.extent.LonMin/step) * step; lon <= area.extent.LonMax; lon += step {
		x0, y0 := area.point(domain.Coord{Lon: lon, Lat: area.extent.LatMax})
		x1, y1 := area.point(domain.Coord{Lon: lon, Lat: area.extent.LatMin})
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}
	for lat := math.Ceil(area.extent.LatMin/step) * step; lat <= area.extent.LatMax; lat += step {
		x0, y0 := area.point(domain.Coord{Lon: area.extent.LonMin, Lat: lat})
		x1, y1 := area.point(domain.Coord{Lon: area.extent.LonMax, Lat: lat})
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}
	dc.SetDash()

	if !labels {
		return
	}
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(r.tickFace)
	for lon := math.Ceil(area.extent.LonMin/step) * step; lon <= area.extent.LonMax; lon += step {
		x, _ := area.point(domain.Coord{Lon: lon, Lat: area.extent.LatMin})
		dc.DrawStringAnchored(lonLabel(lon), x, area.y+area.h+8, 0.5, 1)
	}
	for lat := math.Ceil(area.extent.LatMin/step) * step; lat <= area.extent.LatMax; lat += step {
		_, y := area.point(domain.Coord{Lon: area.extent.LonMin, Lat: lat})
		dc.DrawStringAnchored(latLabel(lat), area.x-8, y, 1, 0.4)
	}
}

func lonLabel(lon float64) string {
	switch {
	case lon > 0:
		return fmt.Sprintf("%g°E", lon)
	case lon < 0:
		return fmt.Sprintf("%g°W", -lon)
	default:
		return "0°"
	}
}

func latLabel(lat float64) string {
	switch {
	case lat > 0:
		return fmt.Sprintf("%g°N", lat)
	case lat < 0:
		return fmt.Sprintf("%g°S", -lat)
	default:
		return "0°"
	}
}

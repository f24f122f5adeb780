package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// Stroke styles for border polygons. The focal country always gets the
// emphasized stroke; context countries share the lighter one. Styling
// follows the source tag, never the draw order.
type borderStyle struct {
	width   float64
	r, g, b float64
}

func styleForTag(tag string) borderStyle {
	if tag == domain.TagFocal {
		return borderStyle{width: 2.8, r: 0.05, g: 0.05, b: 0.05}
	}
	return borderStyle{width: 1.2, r: 0.45, g: 0.45, b: 0.45}
}

// visibleRoads drops every record whose road type equals the excluded
// category; all other records pass through unchanged.
func visibleRoads(roads []domain.Road, excludeType string) []domain.Road {
	visible := make([]domain.Road, 0, len(roads))
	for _, road := range roads {
		if road.Type == excludeType {
			continue
		}
		visible = append(visible, road)
	}
	return visible
}

// Regional draws the observation grid restricted to the region's bounding
// box with its overlay layers. Layers are strictly additive and ordered:
// borders, roads, observation mesh, coastline, city labels, graticule,
// then the shared figure furniture. Any missing overlay source aborts the
// render before an image exists.
func (r *Renderer) Regional(req domain.RenderRequest) (image.Image, error) {
	region := req.Region

	// Load every source first so a missing one aborts before drawing.
	type taggedRings struct {
		style borderStyle
		rings [][]domain.Coord
	}
	borders := make([]taggedRings, 0, len(region.Borders))
	for _, src := range region.Borders {
		rings, err := r.overlays.Borders(src)
		if err != nil {
			return nil, err
		}
		borders = append(borders, taggedRings{style: styleForTag(src.Tag), rings: rings})
	}

	var roads []domain.Road
	if region.Roads.File != "" {
		all, err := r.overlays.Roads(region.Roads)
		if err != nil {
			return nil, err
		}
		roads = visibleRoads(all, region.Roads.ExcludeType)
		r.metrics.RoadsExcluded.Add(float64(len(all) - len(roads)))
	}

	coast, err := r.overlays.Coastline(region.Coastline)
	if err != nil {
		return nil, err
	}
	cities, err := r.overlays.Cities(region.Cities)
	if err != nil {
		return nil, err
	}
	banner, fmiLogo, err := r.overlays.Logos()
	if err != nil {
		return nil, err
	}
	cmap, err := ByName(req.Profile.Colormap)
	if err != nil {
		return nil, err
	}

	dc := newCanvas()
	area := newMapArea(region.Extent)
	clipToMap(dc, area)

	for _, b := range borders {
		strokeLines(dc, area, b.rings, b.style.width, b.style.r, b.style.g, b.style.b)
		r.metrics.OverlayFeatures.WithLabelValues("border").Add(float64(len(b.rings)))
	}

	for _, road := range roads {
		strokeLines(dc, area, [][]domain.Coord{road.Line}, 0.9, 0.55, 0.45, 0.40)
	}
	r.metrics.OverlayFeatures.WithLabelValues("road").Add(float64(len(roads)))

	rendered, missing := r.drawMesh(dc, area, req.Grid, cmap, req.Profile.VMin, req.Profile.VMax)
	r.metrics.CellsRendered.Add(float64(rendered))
	r.metrics.CellsMissing.Add(float64(missing))

	strokeLines(dc, area, coast, 1.0, 0, 0, 0)
	r.metrics.OverlayFeatures.WithLabelValues("coastline").Add(float64(len(coast)))

	r.drawCities(dc, area, region, cities)
	r.metrics.OverlayFeatures.WithLabelValues("city").Add(float64(len(cities)))

	dc.ResetClip()
	r.graticule(dc, area, 5, true)

	r.logger.Debug("regional layers drawn",
		"region", region.Name,
		"cells", rendered,
		"missing", missing,
		"roads", len(roads),
		"cities", len(cities),
	)

	r.drawTitle(dc, area, req.Description, req.Window)
	r.drawColorbar(dc, area, cmap, req.Profile.VMin, req.Profile.VMax,
		fmt.Sprintf("%s [%s]", req.Description, req.Unit))
	drawLogos(dc, banner, fmiLogo)

	return dc.Image(), nil
}

// drawCities plots each point as a marker and annotates it with its name,
// displaced by the per-name offset override when one exists.
func (r *Renderer) drawCities(dc *gg.Context, area mapArea, region *domain.RegionSpec, cities []domain.LabelPoint) {
	dc.SetFontFace(r.labelFace)
	for _, city := range cities {
		if !region.Extent.Contains(domain.Coord{Lon: city.Lon, Lat: city.Lat}) {
			continue
		}
		x, y := area.point(domain.Coord{Lon: city.Lon, Lat: city.Lat})

		dc.SetRGB(0, 0, 0)
		dc.DrawCircle(x, y, 3.5)
		dc.Fill()

		off := region.LabelOffset(city.Name)
		dc.DrawStringAnchored(city.Name, x+off.DX, y+off.DY, 0, 0.5)
	}
}

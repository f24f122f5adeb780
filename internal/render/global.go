package render

import (
	"fmt"
	"image"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// Global draws the observation grid over the whole world on an
// equirectangular projection: colored mesh, coastlines, graticule,
// colorbar, title and logos. The grid is rendered as given; there is no
// aggregation.
func (r *Renderer) Global(req domain.RenderRequest) (image.Image, error) {
	coast, err := r.overlays.GlobalCoastline()
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
	area := newMapArea(worldExtent)

	clipToMap(dc, area)
	rendered, missing := r.drawMesh(dc, area, req.Grid, cmap, req.Profile.VMin, req.Profile.VMax)
	strokeLines(dc, area, coast, 1.0, 0, 0, 0)
	r.graticule(dc, area, 30, false)
	dc.ResetClip()

	r.metrics.CellsRendered.Add(float64(rendered))
	r.metrics.CellsMissing.Add(float64(missing))
	r.metrics.OverlayFeatures.WithLabelValues("coastline").Add(float64(len(coast)))
	r.logger.Debug("global mesh drawn", "cells", rendered, "missing", missing)

	r.drawTitle(dc, area, req.Description, req.Window)
	r.drawColorbar(dc, area, cmap, req.Profile.VMin, req.Profile.VMax,
		fmt.Sprintf("%s [%s]", req.Description, req.Unit))
	drawLogos(dc, banner, fmiLogo)

	return dc.Image(), nil
}
